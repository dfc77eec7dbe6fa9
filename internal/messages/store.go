// Package messages persists listener messages on the local device.
package messages

import (
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/tessro/onair/internal/core"
)

// DefaultLimit is the number of messages kept; older ones are dropped.
const DefaultLimit = 50

// DefaultPlaceholder is the photo used when the sender attached none.
const DefaultPlaceholder = "https://via.placeholder.com/60?text=Foto"

// Store is a bounded, newest-first collection of messages.
type Store interface {
	// List returns the stored messages, newest first. Missing or unreadable
	// data yields an empty list.
	List() ([]core.Message, error)
	// Add validates input, stamps it and stores it at the front.
	Add(in Input) (core.Message, error)
	// Delete removes the message with id. Unknown ids are ignored.
	Delete(id string) error
	Close() error
}

// Input is a message as submitted, before it gets an id and timestamp.
type Input struct {
	Name  string
	City  string
	Text  string
	Photo string // data URI; empty uses the placeholder
}

// Options tunes a store. Zero values take the defaults.
type Options struct {
	Limit       int
	Placeholder string
	Clock       clock.Clock
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o
}

// newMessage validates in and builds the message to store.
func newMessage(in Input, opts Options) (core.Message, error) {
	if err := Validate(in); err != nil {
		return core.Message{}, err
	}

	photo := in.Photo
	if photo == "" {
		photo = opts.Placeholder
	}

	return core.Message{
		ID:         uuid.New().String(),
		SenderName: strings.TrimSpace(in.Name),
		City:       strings.TrimSpace(in.City),
		Text:       strings.TrimSpace(in.Text),
		Photo:      photo,
		CreatedAt:  opts.Clock.Now().UnixMilli(),
	}, nil
}

// prepend puts m in front of list and drops anything past limit.
func prepend(list []core.Message, m core.Message, limit int) []core.Message {
	out := make([]core.Message, 0, len(list)+1)
	out = append(out, m)
	out = append(out, list...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func without(list []core.Message, id string) ([]core.Message, bool) {
	for i, m := range list {
		if m.ID == id {
			out := make([]core.Message, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

// Package tail follows what is on air: the now-playing title and the
// program schedule.
package tail

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/metadata"
	"github.com/tessro/onair/internal/schedule"
)

// EventType represents the type of on-air event.
type EventType int

const (
	EventTitleChange EventType = iota
	EventProgramChange
)

// Event represents an on-air change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Title     string
	Program   core.Program
}

// Watcher merges metadata updates and schedule evaluations into a single
// stream of change events.
type Watcher struct {
	meta         *metadata.Client
	programs     []core.Program
	clock        clock.Clock
	interval     time.Duration
	defaultTitle string
	events       chan Event
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithClock sets the clock used for timestamps and schedule ticks.
func WithClock(c clock.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithInterval sets how often the schedule is re-evaluated.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

// WithDefaultTitle sets the title reported when the feed sends an empty one.
func WithDefaultTitle(title string) Option {
	return func(w *Watcher) { w.defaultTitle = title }
}

// NewWatcher creates a new on-air watcher.
func NewWatcher(meta *metadata.Client, programs []core.Program, opts ...Option) *Watcher {
	w := &Watcher{
		meta:     meta,
		programs: programs,
		clock:    clock.New(),
		interval: time.Minute,
		events:   make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the channel of on-air events. It is closed when Start
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start follows the station until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.events)

	updates := make(chan Event, 16)
	push := func(e Event) {
		select {
		case updates <- e:
		case <-ctx.Done():
		}
	}

	resolver := schedule.NewResolver(w.programs, w.interval, w.clock, func(s schedule.Status) {
		push(Event{Type: EventProgramChange, Timestamp: s.Now, Program: s.Program})
	})
	resolver.Start()
	defer resolver.Cancel()

	sub := w.meta.Subscribe(func(title string) {
		if title == "" {
			title = w.defaultTitle
		}
		push(Event{Type: EventTitleChange, Timestamp: w.clock.Now(), Title: title})
	})
	defer sub.Unsubscribe()

	var (
		lastTitle   string
		lastProgram = -1
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-updates:
			switch e.Type {
			case EventTitleChange:
				if e.Title == lastTitle {
					continue
				}
				lastTitle = e.Title
			case EventProgramChange:
				if e.Program.ID == lastProgram {
					continue
				}
				lastProgram = e.Program.ID
			}

			select {
			case w.events <- e:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

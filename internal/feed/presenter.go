// Package feed rotates listener messages one at a time and handles
// moderated deletion.
package feed

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
	onairerrors "github.com/tessro/onair/internal/errors"
	"github.com/tessro/onair/internal/logging"
	"github.com/tessro/onair/internal/tick"
)

const (
	DefaultRotateInterval = 8 * time.Second
	DefaultFadeDuration   = 500 * time.Millisecond
)

// Source is the part of a message store the presenter needs.
type Source interface {
	List() ([]core.Message, error)
	Delete(id string) error
}

// Options configures a Presenter.
type Options struct {
	Clock          clock.Clock
	RotateInterval time.Duration
	FadeDuration   time.Duration
	Passphrase     string
	// OnFrame is called whenever the visible frame changes.
	OnFrame func(Frame)
}

// Presenter shows one message at a time, advancing on a timer.
type Presenter struct {
	source     Source
	clock      clock.Clock
	fade       time.Duration
	passphrase string
	onFrame    func(Frame)
	ticker     *tick.Ticker

	mu    sync.Mutex
	list  []core.Message
	index int
	phase Phase
}

// New creates a stopped presenter over source.
func New(source Source, opts Options) *Presenter {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.RotateInterval <= 0 {
		opts.RotateInterval = DefaultRotateInterval
	}
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = DefaultFadeDuration
	}

	p := &Presenter{
		source:     source,
		clock:      opts.Clock,
		fade:       opts.FadeDuration,
		passphrase: opts.Passphrase,
		onFrame:    opts.OnFrame,
	}
	p.ticker = tick.New(opts.Clock, opts.RotateInterval, p.rotate)
	return p
}

// Start loads the messages and begins rotating.
func (p *Presenter) Start() error {
	err := p.Reload()
	p.ticker.Start(false)
	return err
}

// Stop halts rotation. It is safe to call more than once.
func (p *Presenter) Stop() {
	p.ticker.Cancel()
}

// Current returns the frame being shown.
func (p *Presenter) Current() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameLocked()
}

// Messages returns the loaded messages, newest first.
func (p *Presenter) Messages() []core.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.Message(nil), p.list...)
}

// Reload re-reads the source and keeps the index in range.
func (p *Presenter) Reload() error {
	list, err := p.source.List()
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	p.mu.Lock()
	p.list = list
	if p.index >= len(list) {
		p.index = 0
	}
	if p.phase != PhaseFading {
		p.phase = PhaseVisible
	}
	frame := p.frameLocked()
	p.mu.Unlock()

	p.emit(frame)
	return nil
}

// rotate fades the current message out and moves to the next one.
func (p *Presenter) rotate(ctx context.Context, _ time.Time) {
	p.mu.Lock()
	if len(p.list) == 0 {
		p.mu.Unlock()
		return
	}
	p.phase = PhaseFading
	frame := p.frameLocked()
	p.mu.Unlock()

	timer := p.clock.Timer(p.fade)
	p.emit(frame)

	select {
	case <-ctx.Done():
		timer.Stop()
		p.mu.Lock()
		p.phase = PhaseVisible
		p.mu.Unlock()
		return
	case <-timer.C:
	}

	p.mu.Lock()
	if len(p.list) > 0 {
		p.index = (p.index + 1) % len(p.list)
	}
	p.phase = PhaseVisible
	frame = p.frameLocked()
	p.mu.Unlock()

	p.emit(frame)
}

// CheckPassphrase reports ErrIncorrectPassword unless passphrase matches the
// moderator passphrase.
func (p *Presenter) CheckPassphrase(passphrase string) error {
	if p.passphrase == "" || subtle.ConstantTimeCompare([]byte(passphrase), []byte(p.passphrase)) != 1 {
		return onairerrors.ErrIncorrectPassword
	}
	return nil
}

// Delete removes the message with id after the moderator authenticates and
// confirms. A cancelled challenge or a declined confirmation deletes nothing
// and is not an error. It reports whether the message was deleted.
func (p *Presenter) Delete(ctx context.Context, id string, auth Authorizer) (bool, error) {
	msg, ok := p.find(id)
	if !ok {
		return false, fmt.Errorf("message %s not found", id)
	}

	passphrase, ok, err := auth.Challenge(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := p.CheckPassphrase(passphrase); err != nil {
		logging.Warn("moderator passphrase rejected", logging.String("message_id", id))
		return false, err
	}

	confirmed, err := auth.Confirm(ctx, msg)
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, nil
	}

	if err := p.source.Delete(id); err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	logging.Info("message deleted by moderator", logging.String("message_id", id))

	return true, p.Reload()
}

func (p *Presenter) find(id string) (core.Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.list {
		if m.ID == id {
			return m, true
		}
	}
	return core.Message{}, false
}

func (p *Presenter) frameLocked() Frame {
	if len(p.list) == 0 {
		return Frame{Phase: PhaseEmpty}
	}
	return Frame{
		Phase:   p.phase,
		Message: p.list[p.index],
		Index:   p.index,
		Count:   len(p.list),
	}
}

func (p *Presenter) emit(f Frame) {
	if p.onFrame != nil {
		p.onFrame(f)
	}
}

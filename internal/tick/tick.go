// Package tick provides an owned, cancellable periodic task driven by an
// injectable clock. The schedule clock, the simulated metadata refresh and the
// message rotation each hold one.
package tick

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Func is called on every tick. ctx is cancelled when the ticker is
// cancelled, so long-running work (a fade delay) can stop early.
type Func func(ctx context.Context, now time.Time)

// Ticker runs a Func every interval until cancelled.
type Ticker struct {
	clock    clock.Clock
	interval time.Duration
	fn       Func

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped ticker. A nil clock uses the wall clock.
func New(c clock.Clock, interval time.Duration, fn Func) *Ticker {
	if c == nil {
		c = clock.New()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		clock:    c,
		interval: interval,
		fn:       fn,
	}
}

// Start begins ticking. When immediate is true fn runs once synchronously
// before Start returns. Starting a running ticker does nothing.
func (t *Ticker) Start(immediate bool) {
	t.mu.Lock()
	if t.cancel != nil {
		t.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	// Created before Start returns so a tick is never missed by a caller
	// that advances a mock clock right after starting.
	ticker := t.clock.Ticker(t.interval)
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	if immediate {
		t.fn(ctx, t.clock.Now())
	}

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				t.fn(ctx, now)
			}
		}
	}()
}

// Cancel stops the ticker and waits for an in-flight fn to return. It is safe
// to call more than once. It must not be called from inside fn.
func (t *Ticker) Cancel() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker has been started and not cancelled.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

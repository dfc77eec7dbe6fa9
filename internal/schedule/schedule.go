// Package schedule resolves which program is on air from the wall clock.
package schedule

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/tick"
)

// Active returns the program on air at hour: the last program in list order
// whose start hour is <= hour. Before the earliest start hour the first
// program is returned, not the last one.
func Active(programs []core.Program, hour int) core.Program {
	if len(programs) == 0 {
		return core.Program{}
	}
	active := programs[0]
	for _, p := range programs {
		if p.StartHour <= hour {
			active = p
		}
	}
	return active
}

// Next returns the first program starting after hour, wrapping to the first
// program of the following day.
func Next(programs []core.Program, hour int) core.Program {
	if len(programs) == 0 {
		return core.Program{}
	}
	for _, p := range programs {
		if p.StartHour > hour {
			return p
		}
	}
	return programs[0]
}

// Status is one evaluation of the schedule.
type Status struct {
	Now     time.Time
	Program core.Program
	Next    core.Program
}

// Clock formats the evaluation time as HH:MM.
func (s Status) Clock() string {
	return s.Now.Format("15:04")
}

// Evaluate resolves the schedule at t (local time).
func Evaluate(programs []core.Program, t time.Time) Status {
	hour := t.Hour()
	return Status{
		Now:     t,
		Program: Active(programs, hour),
		Next:    Next(programs, hour),
	}
}

// Resolver re-evaluates the schedule on a fixed interval and reports each
// evaluation to a callback.
type Resolver struct {
	programs []core.Program
	clock    clock.Clock
	ticker   *tick.Ticker
}

// NewResolver creates a resolver. onStatus is called from the ticker's
// goroutine (the first call happens synchronously in Start).
func NewResolver(programs []core.Program, every time.Duration, c clock.Clock, onStatus func(Status)) *Resolver {
	if c == nil {
		c = clock.New()
	}
	r := &Resolver{
		programs: programs,
		clock:    c,
	}
	r.ticker = tick.New(c, every, func(_ context.Context, now time.Time) {
		onStatus(Evaluate(r.programs, now.In(time.Local)))
	})
	return r
}

// Current evaluates the schedule now.
func (r *Resolver) Current() Status {
	return Evaluate(r.programs, r.clock.Now().In(time.Local))
}

// Start emits the current status and then one per interval.
func (r *Resolver) Start() {
	r.ticker.Start(true)
}

// Cancel stops the resolver. Safe to call more than once.
func (r *Resolver) Cancel() {
	r.ticker.Cancel()
}

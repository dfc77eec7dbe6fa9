// Package player controls playback of the station's live stream.
package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tessro/onair/internal/core"
	onairerrors "github.com/tessro/onair/internal/errors"
	"github.com/tessro/onair/internal/logging"
)

// DefaultVolume is the session's starting volume.
const DefaultVolume = 0.8

// ErrClosed is returned by operations on a closed controller.
var ErrClosed = errors.New("player is closed")

// Output is the single audio sink the controller drives.
type Output interface {
	// Start opens the stream and begins audio. It returns once audio is
	// flowing or has failed. done is called if the stream later ends on its
	// own.
	Start(ctx context.Context, done func(err error)) error
	// Stop halts audio and releases the stream.
	Stop()
	// SetVolume applies a 0.0-1.0 level, also to a future Start.
	SetVolume(level float64)
	// Close releases the audio device.
	Close() error
}

// EventKind identifies a controller event.
type EventKind int

const (
	// EventStateChanged is sent on every state transition.
	EventStateChanged EventKind = iota
	// EventRevealPanel asks the UI to show the player panel after a
	// successful start.
	EventRevealPanel
	// EventPlaybackError reports a failed start or a dropped stream.
	EventPlaybackError
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state-changed"
	case EventRevealPanel:
		return "reveal-panel"
	case EventPlaybackError:
		return "playback-error"
	default:
		return "unknown"
	}
}

// Event is delivered to the controller's event handler.
type Event struct {
	Kind  EventKind
	State core.PlayState
	Err   error
}

// Controller owns the playback state machine: Idle, Playing, Paused.
type Controller struct {
	out     Output
	onEvent func(Event)

	// opMu serializes start/stop so a slow Start is never raced by another.
	opMu sync.Mutex

	mu        sync.Mutex
	state     core.PlayState
	volume    float64
	lastToken uint64
	session   uint64
	closed    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithVolume sets the starting volume (clamped to 0.0-1.0).
func WithVolume(v float64) Option {
	return func(c *Controller) {
		if !math.IsNaN(v) {
			c.volume = clamp(v)
		}
	}
}

// WithEventHandler sets the function called for every event. It runs on
// the goroutine that caused the event and must not call back into the
// controller's start/stop operations.
func WithEventHandler(fn func(Event)) Option {
	return func(c *Controller) { c.onEvent = fn }
}

// New creates an idle controller driving out.
func New(out Output, opts ...Option) *Controller {
	c := &Controller{
		out:    out,
		state:  core.StateIdle,
		volume: DefaultVolume,
	}
	for _, opt := range opts {
		opt(c)
	}
	out.SetVolume(c.volume)
	return c
}

// State returns the current state.
func (c *Controller) State() core.PlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Volume returns the current volume level.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// TogglePlay starts the stream when not playing and stops it when playing.
func (c *Controller) TogglePlay(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State() == core.StatePlaying {
		return c.stop()
	}
	return c.start(ctx)
}

// Play starts the stream unless it is already playing.
func (c *Controller) Play(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State() == core.StatePlaying {
		return nil
	}
	return c.start(ctx)
}

// Pause stops the stream if it is playing.
func (c *Controller) Pause() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State() != core.StatePlaying {
		return nil
	}
	return c.stop()
}

// RequestPlay auto-starts playback for a new request token. Each token
// triggers at most once, and only tokens greater than every token seen
// before count. It reports whether playback was attempted.
func (c *Controller) RequestPlay(ctx context.Context, token uint64) (bool, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if token <= c.lastToken {
		c.mu.Unlock()
		return false, nil
	}
	c.lastToken = token
	playing := c.state == core.StatePlaying
	c.mu.Unlock()

	if playing {
		return false, nil
	}
	return true, c.start(ctx)
}

// SetVolume sets the volume, clamped into 0.0-1.0, and applies it to the
// output right away. NaN is rejected.
func (c *Controller) SetVolume(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("invalid volume: NaN")
	}
	v = clamp(v)

	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()

	c.out.SetVolume(v)
	return nil
}

// Close stops playback and releases the output. Calling it again does
// nothing.
func (c *Controller) Close() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.session++
	c.mu.Unlock()

	c.out.Stop()
	return c.out.Close()
}

// start must be called with opMu held.
func (c *Controller) start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.session++
	session := c.session
	c.mu.Unlock()

	err := c.out.Start(ctx, func(err error) { c.streamEnded(session, err) })
	if err != nil {
		err = fmt.Errorf("%w: %v", onairerrors.ErrPlaybackFailed, err)
		logging.Warn("failed to start playback", logging.Err(err))
		c.emit(Event{Kind: EventPlaybackError, State: c.State(), Err: err})
		return err
	}

	c.setState(core.StatePlaying)
	logging.Info("playback started")
	c.emit(Event{Kind: EventRevealPanel, State: core.StatePlaying})
	return nil
}

// stop must be called with opMu held.
func (c *Controller) stop() error {
	c.mu.Lock()
	c.session++
	c.mu.Unlock()

	c.out.Stop()
	c.setState(core.StatePaused)
	logging.Info("playback paused")
	return nil
}

// streamEnded handles the output finishing without being asked to.
func (c *Controller) streamEnded(session uint64, err error) {
	c.mu.Lock()
	if session != c.session || c.state != core.StatePlaying {
		c.mu.Unlock()
		return
	}
	c.session++
	c.mu.Unlock()

	if err == nil {
		err = errors.New("stream ended")
	}
	err = fmt.Errorf("%w: %v", onairerrors.ErrPlaybackFailed, err)
	logging.Warn("stream stopped unexpectedly", logging.Err(err))

	c.setState(core.StatePaused)
	c.emit(Event{Kind: EventPlaybackError, State: core.StatePaused, Err: err})
}

func (c *Controller) setState(s core.PlayState) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.mu.Unlock()

	if changed {
		c.emit(Event{Kind: EventStateChanged, State: s})
	}
}

func (c *Controller) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

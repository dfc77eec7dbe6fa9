// Package metadata follows the station's now-playing feed, falling back to a
// deterministic simulated title when the live feed is unavailable.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/logging"
	"github.com/tessro/onair/internal/tick"
)

// DefaultFallbackInterval is how often a simulated title is re-emitted.
const DefaultFallbackInterval = 10 * time.Second

// Mode is the state of a subscription.
type Mode int

const (
	// ModeLive means titles come from the server-push connection.
	ModeLive Mode = iota
	// ModeFallback means titles are simulated from the clock. Terminal.
	ModeFallback
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Client opens subscriptions to a metadata endpoint.
type Client struct {
	url              string
	httpClient       *http.Client
	clock            clock.Clock
	playlist         []string
	slot             time.Duration
	fallbackInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for the live connection.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock sets the clock used for simulated titles and the refresh timer.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithPlaylist sets the titles used in fallback mode.
func WithPlaylist(playlist []string) Option {
	return func(c *Client) { c.playlist = playlist }
}

// WithSlot sets the simulated track length.
func WithSlot(d time.Duration) Option {
	return func(c *Client) { c.slot = d }
}

// WithFallbackInterval sets how often fallback mode re-emits a title.
func WithFallbackInterval(d time.Duration) Option {
	return func(c *Client) { c.fallbackInterval = d }
}

// NewClient creates a metadata client for the given event-stream URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		httpClient: &http.Client{
			// No overall timeout: the connection is long-lived.
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
			},
		},
		slot:             DefaultSlot,
		fallbackInterval: DefaultFallbackInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	return c
}

// Simulated returns the fallback title for the client's clock right now.
func (c *Client) Simulated() string {
	return SimulatedTitle(c.playlist, c.slot, c.clock.Now())
}

// Subscription is a live metadata feed with a one-way fallback.
type Subscription struct {
	client   *Client
	onUpdate func(title string)

	mu          sync.Mutex
	mode        Mode
	transitions int
	closed      bool
	cancelLive  context.CancelFunc
	liveDone    chan struct{}
	fallback    *tick.Ticker
}

type payload struct {
	StreamTitle string `json:"streamTitle"`
}

// Subscribe opens the live feed and calls onUpdate for every title. The
// first connection error switches the subscription to simulated titles for
// the rest of its life. onUpdate must not call Unsubscribe.
func (c *Client) Subscribe(onUpdate func(title string)) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription{
		client:     c,
		onUpdate:   onUpdate,
		mode:       ModeLive,
		cancelLive: cancel,
		liveDone:   make(chan struct{}),
	}
	go s.runLive(ctx)
	return s
}

func (s *Subscription) runLive(ctx context.Context) {
	defer close(s.liveDone)

	err := s.connect(ctx)
	if ctx.Err() != nil {
		return
	}
	s.engageFallback(err)
}

func (s *Subscription) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata endpoint returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	logging.Info("connected to metadata stream", logging.String("url", s.client.url))

	return readEvents(resp.Body, s.handleEvent)
}

// handleEvent applies one live event. Events arriving after the subscription
// left live mode are dropped.
func (s *Subscription) handleEvent(data string) {
	s.mu.Lock()
	live := s.mode == ModeLive && !s.closed
	s.mu.Unlock()
	if !live {
		return
	}

	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		logging.Debug("ignoring malformed metadata event", logging.Err(err))
		return
	}
	if p.StreamTitle == "" {
		return
	}
	s.onUpdate(p.StreamTitle)
}

func (s *Subscription) engageFallback(cause error) {
	s.mu.Lock()
	if s.closed || s.mode == ModeFallback {
		s.mu.Unlock()
		return
	}
	s.mode = ModeFallback
	s.transitions++

	cancel := s.cancelLive
	s.cancelLive = nil
	if cancel != nil {
		cancel()
	}

	s.fallback = tick.New(s.client.clock, s.client.fallbackInterval, func(_ context.Context, now time.Time) {
		s.emitSimulated(now)
	})
	s.fallback.Start(false)
	s.mu.Unlock()

	logging.Info("metadata feed unavailable, using simulated titles", logging.Err(cause))
	s.emitSimulated(s.client.clock.Now())
}

func (s *Subscription) emitSimulated(now time.Time) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	if title := SimulatedTitle(s.client.playlist, s.client.slot, now); title != "" {
		s.onUpdate(title)
	}
}

// Mode returns the current mode.
func (s *Subscription) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Transitions returns how many times the subscription switched to fallback
// (0 or 1).
func (s *Subscription) Transitions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitions
}

// Active reports whether the subscription still holds a connection or a
// running fallback timer.
func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelLive != nil {
		return true
	}
	return s.fallback != nil && s.fallback.Running()
}

// Unsubscribe closes the live connection and stops the fallback timer,
// waiting for both to finish. Calling it again does nothing.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancelLive
	s.cancelLive = nil
	fallback := s.fallback
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if fallback != nil {
		fallback.Cancel()
	}
	<-s.liveDone
}

package metadata

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

type recorder struct {
	mu     sync.Mutex
	titles []string
}

func (r *recorder) add(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.titles)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// streamServer sends the given events and then holds the connection open
// until the client goes away.
func streamServer(t *testing.T, events ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q, want text/event-stream", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, e := range events {
			fmt.Fprintf(w, "data: %s\n\n", e)
		}
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubscribeLiveTitles(t *testing.T) {
	srv := streamServer(t,
		`{"streamTitle":"Artist - Song"}`,
		`not json`,
		`{"streamTitle":""}`,
		`{"streamTitle":"Other - Tune"}`,
	)

	rec := &recorder{}
	sub := NewClient(srv.URL, WithPlaylist(testPlaylist)).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "two live titles", func() bool { return rec.len() == 2 })

	got := rec.all()
	if got[0] != "Artist - Song" || got[1] != "Other - Tune" {
		t.Errorf("titles = %q", got)
	}
	if sub.Mode() != ModeLive {
		t.Errorf("Mode() = %v, want live", sub.Mode())
	}
	if sub.Transitions() != 0 {
		t.Errorf("Transitions() = %d, want 0", sub.Transitions())
	}
}

func TestSubscribeFallsBackOnError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	mock := clock.NewMock()
	mock.Set(time.UnixMilli(350000)) // ten seconds before the third slot

	rec := &recorder{}
	sub := NewClient(srv.URL,
		WithClock(mock),
		WithPlaylist(testPlaylist),
		WithFallbackInterval(10*time.Second),
	).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "immediate simulated title", func() bool { return rec.len() == 1 })
	if got := rec.all()[0]; got != "Two" {
		t.Errorf("first simulated title = %q, want Two", got)
	}
	if sub.Mode() != ModeFallback {
		t.Errorf("Mode() = %v, want fallback", sub.Mode())
	}

	mock.Add(10 * time.Second)
	waitFor(t, "refreshed simulated title", func() bool { return rec.len() == 2 })

	if got := rec.all()[1]; got != "Three" {
		t.Errorf("refreshed title = %q, want Three", got)
	}
	if sub.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", sub.Transitions())
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (no reconnect)", hits.Load())
	}
}

func TestSubscribeFallsBackOnWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"streamTitle":"nope"}`)
	}))
	defer srv.Close()

	rec := &recorder{}
	sub := NewClient(srv.URL, WithClock(clock.NewMock()), WithPlaylist(testPlaylist)).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "fallback", func() bool { return sub.Mode() == ModeFallback })
	waitFor(t, "simulated title", func() bool { return rec.len() == 1 })
	if got := rec.all()[0]; got != "One" {
		t.Errorf("title = %q, want One", got)
	}
}

func TestSubscribeFallsBackWhenStreamEnds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"streamTitle\":\"Live\"}\n\n")
	}))
	defer srv.Close()

	rec := &recorder{}
	sub := NewClient(srv.URL, WithClock(clock.NewMock()), WithPlaylist(testPlaylist)).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "live then simulated", func() bool { return rec.len() == 2 })
	got := rec.all()
	if got[0] != "Live" || got[1] != "One" {
		t.Errorf("titles = %q, want [Live One]", got)
	}
}

func TestSubscribeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := &recorder{}
	sub := NewClient(url, WithClock(clock.NewMock()), WithPlaylist(testPlaylist)).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "fallback", func() bool { return rec.len() == 1 })
}

func TestLiveEventsIgnoredAfterFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	rec := &recorder{}
	sub := NewClient(srv.URL, WithClock(clock.NewMock()), WithPlaylist(testPlaylist)).Subscribe(rec.add)
	defer sub.Unsubscribe()

	waitFor(t, "fallback", func() bool { return rec.len() == 1 })

	sub.handleEvent(`{"streamTitle":"Late"}`)
	for _, title := range rec.all() {
		if title == "Late" {
			t.Fatal("live event delivered after fallback")
		}
	}

	// A second failure must not re-enter fallback.
	sub.engageFallback(fmt.Errorf("again"))
	if sub.Transitions() != 1 {
		t.Errorf("Transitions() = %d, want 1", sub.Transitions())
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	var entered, closed atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		entered.Store(true)
		<-r.Context().Done()
		closed.Store(true)
	}))
	defer srv.Close()

	rec := &recorder{}
	sub := NewClient(srv.URL, WithPlaylist(testPlaylist)).Subscribe(rec.add)
	if !sub.Active() {
		t.Fatal("Active() = false right after Subscribe")
	}
	waitFor(t, "stream connected", entered.Load)

	sub.Unsubscribe()
	sub.Unsubscribe()

	if sub.Active() {
		t.Error("Active() = true after Unsubscribe")
	}
	waitFor(t, "server sees disconnect", closed.Load)
	if rec.len() != 0 {
		t.Errorf("titles after unsubscribe = %q, want none", rec.all())
	}
}

func TestUnsubscribeStopsFallbackTimer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	mock := clock.NewMock()
	rec := &recorder{}
	sub := NewClient(srv.URL, WithClock(mock), WithPlaylist(testPlaylist)).Subscribe(rec.add)

	waitFor(t, "fallback", func() bool { return rec.len() == 1 })
	sub.Unsubscribe()

	mock.Add(time.Minute)
	time.Sleep(20 * time.Millisecond)
	if rec.len() != 1 {
		t.Errorf("titles after unsubscribe = %d, want 1", rec.len())
	}
	if sub.Active() {
		t.Error("Active() = true after Unsubscribe")
	}
}

package tail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/metadata"
)

func TestFormatLine(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local)
	program := core.Program{ID: 2, StartHour: 8, Name: "Dia com Kira", Announcer: "Kira"}

	tests := []struct {
		name  string
		opts  []FormatterOption
		event Event
		want  string
	}{
		{
			name:  "title with emoji",
			event: Event{Type: EventTitleChange, Timestamp: ts, Title: "Dua Lipa - Houdini"},
			want:  "🎵 Now playing: Dua Lipa - Houdini",
		},
		{
			name:  "program without emoji",
			opts:  []FormatterOption{WithEmoji(false)},
			event: Event{Type: EventProgramChange, Timestamp: ts, Program: program},
			want:  "On air: Dia com Kira with Kira (08:00)",
		},
		{
			name:  "timestamp",
			opts:  []FormatterOption{WithEmoji(false), WithTimestamp(true)},
			event: Event{Type: EventTitleChange, Timestamp: ts, Title: "X"},
			want:  "09:30:15 Now playing: X",
		},
		{
			name:  "template",
			opts:  []FormatterOption{WithTemplate("{{.Type}}|{{.Program}}|{{.Slot}}")},
			event: Event{Type: EventProgramChange, Timestamp: ts, Program: program},
			want:  "program_change|Dia com Kira|08:00",
		},
		{
			name:  "invalid template falls back to line",
			opts:  []FormatterOption{WithEmoji(false), WithTemplate("{{.Title")},
			event: Event{Type: EventTitleChange, Timestamp: ts, Title: "X"},
			want:  "Now playing: X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.opts...).Format(tt.event)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatcherFollowsStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, title := range []string{"A", "A", "B"} {
			fmt.Fprintf(w, "data: {\"streamTitle\":%q}\n\n", title)
		}
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	mock := clock.NewMock()
	programs := []core.Program{{ID: 1, StartHour: 0, Name: "Madrugada com Zara", Announcer: "Zara"}}

	w := NewWatcher(metadata.NewClient(srv.URL, metadata.WithClock(mock)), programs,
		WithClock(mock), WithInterval(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	var titles []string
	programsSeen := 0
	timeout := time.After(3 * time.Second)
	for len(titles) < 2 || programsSeen < 1 {
		select {
		case e := <-w.Events():
			switch e.Type {
			case EventTitleChange:
				titles = append(titles, e.Title)
			case EventProgramChange:
				programsSeen++
				if e.Program.ID != 1 {
					t.Errorf("program = %+v", e.Program)
				}
			}
		case <-timeout:
			t.Fatalf("titles = %v, programs = %d before timeout", titles, programsSeen)
		}
	}

	if titles[0] != "A" || titles[1] != "B" {
		t.Errorf("titles = %v, want [A B]", titles)
	}

	// Re-evaluating the same program reports nothing new.
	mock.Add(time.Minute)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
	for e := range w.Events() {
		if e.Type == EventProgramChange {
			t.Errorf("unexpected repeated program event: %+v", e)
		}
	}
}

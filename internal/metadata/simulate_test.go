package metadata

import (
	"testing"
	"time"
)

var testPlaylist = []string{"One", "Two", "Three"}

func TestSimulatedTitle(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"epoch", 0, "One"},
		{"end of first slot", 179999, "One"},
		{"second slot", 180000, "Two"},
		{"third slot", 360000, "Three"},
		{"wraps", 540000, "One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimulatedTitle(testPlaylist, DefaultSlot, time.UnixMilli(tt.ms))
			if got != tt.want {
				t.Errorf("SimulatedTitle(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestSimulatedTitleDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	first := SimulatedTitle(testPlaylist, DefaultSlot, at)
	for i := 0; i < 10; i++ {
		if got := SimulatedTitle(testPlaylist, DefaultSlot, at.In(time.Local)); got != first {
			t.Fatalf("SimulatedTitle not deterministic: %q then %q", first, got)
		}
	}
}

func TestSimulatedTitleEmptyPlaylist(t *testing.T) {
	if got := SimulatedTitle(nil, DefaultSlot, time.Now()); got != "" {
		t.Errorf("SimulatedTitle(nil) = %q, want empty", got)
	}
}

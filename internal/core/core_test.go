package core

import (
	"testing"
	"time"
)

func TestProgramFormatting(t *testing.T) {
	p := Program{ID: 3, StartHour: 16, Name: "Noite com Khaled", Announcer: "Khaled"}

	if got := p.Slot(); got != "16:00" {
		t.Errorf("Slot() = %q, want 16:00", got)
	}
	if got := p.String(); got != "Noite com Khaled (Khaled)" {
		t.Errorf("String() = %q", got)
	}
	if got := (Program{StartHour: 0, Name: "Madrugada"}).String(); got != "Madrugada" {
		t.Errorf("String() without announcer = %q", got)
	}
}

func TestMessagePhoto(t *testing.T) {
	const placeholder = "https://via.placeholder.com/60?text=Foto"

	tests := []struct {
		photo string
		want  bool
	}{
		{"", false},
		{placeholder, false},
		{"data:image/png;base64,AAAA", true},
	}

	for _, tt := range tests {
		m := Message{Photo: tt.photo}
		if got := m.HasCustomPhoto(placeholder); got != tt.want {
			t.Errorf("HasCustomPhoto(%q) = %v, want %v", tt.photo, got, tt.want)
		}
	}
}

func TestMessageTime(t *testing.T) {
	m := Message{CreatedAt: 1714564800123}
	want := time.UnixMilli(1714564800123)
	if !m.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", m.Time(), want)
	}
}

func TestPlaybackState(t *testing.T) {
	var nilState *PlaybackState
	if nilState.IsPlaying() || nilState.VolumePercent() != 0 {
		t.Error("nil state should be silent")
	}

	s := &PlaybackState{State: StatePlaying, Volume: 0.8}
	if !s.IsPlaying() {
		t.Error("IsPlaying() = false, want true")
	}
	if got := s.VolumePercent(); got != 80 {
		t.Errorf("VolumePercent() = %d, want 80", got)
	}

	for state, want := range map[PlayState]string{
		StateIdle: "idle", StatePlaying: "playing", StatePaused: "paused", PlayState(9): "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}

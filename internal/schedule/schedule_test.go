package schedule

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
)

var testPrograms = []core.Program{
	{ID: 1, StartHour: 0, Name: "Madrugada"},
	{ID: 2, StartHour: 8, Name: "Dia"},
	{ID: 3, StartHour: 16, Name: "Noite"},
}

func TestActive(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{0, 0},
		{5, 0},
		{7, 0},
		{8, 8},
		{15, 8},
		{16, 16},
		{23, 16},
	}

	for _, tt := range tests {
		got := Active(testPrograms, tt.hour)
		if got.StartHour != tt.want {
			t.Errorf("Active(hour=%d) starts at %d, want %d", tt.hour, got.StartHour, tt.want)
		}
	}
}

func TestActiveAllHours(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		got := Active(testPrograms, hour)

		want := testPrograms[0]
		for _, p := range testPrograms {
			if p.StartHour <= hour && p.StartHour >= want.StartHour {
				want = p
			}
		}
		if got.ID != want.ID {
			t.Errorf("hour %d: got program %d, want %d", hour, got.ID, want.ID)
		}
	}
}

func TestActiveBeforeFirstProgram(t *testing.T) {
	late := []core.Program{
		{ID: 1, StartHour: 6, Name: "Manhã"},
		{ID: 2, StartHour: 18, Name: "Noite"},
	}
	// Before 06:00 the first entry is on air, not the last one.
	for hour := 0; hour < 6; hour++ {
		if got := Active(late, hour); got.ID != 1 {
			t.Errorf("Active(hour=%d) = program %d, want 1", hour, got.ID)
		}
	}
}

func TestActiveEmpty(t *testing.T) {
	if got := Active(nil, 12); got != (core.Program{}) {
		t.Errorf("Active(nil) = %+v, want zero program", got)
	}
}

func TestNext(t *testing.T) {
	if got := Next(testPrograms, 5); got.StartHour != 8 {
		t.Errorf("Next(5) starts at %d, want 8", got.StartHour)
	}
	if got := Next(testPrograms, 20); got.StartHour != 0 {
		t.Errorf("Next(20) starts at %d, want 0 (tomorrow)", got.StartHour)
	}
}

func TestResolverTicks(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 10, 15, 7, 59, 30, 0, time.Local))

	statuses := make(chan Status, 4)
	r := NewResolver(testPrograms, time.Minute, mock, func(s Status) {
		statuses <- s
	})
	r.Start()
	defer r.Cancel()

	first := <-statuses
	if first.Program.StartHour != 0 {
		t.Errorf("first status program = %d, want 0", first.Program.StartHour)
	}
	if first.Clock() != "07:59" {
		t.Errorf("Clock() = %q, want 07:59", first.Clock())
	}

	mock.Add(time.Minute)

	select {
	case s := <-statuses:
		if s.Program.StartHour != 8 {
			t.Errorf("after a minute program = %d, want 8", s.Program.StartHour)
		}
		if s.Next.StartHour != 16 {
			t.Errorf("Next = %d, want 16", s.Next.StartHour)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no status after clock advanced")
	}
}

func TestResolverCurrent(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 10, 15, 23, 0, 0, 0, time.Local))

	r := NewResolver(testPrograms, time.Minute, mock, func(Status) {})
	if got := r.Current().Program.Name; got != "Noite" {
		t.Errorf("Current().Program = %q, want Noite", got)
	}
	r.Cancel()
}

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/tui/styles"
)

// Schedule lists the day's programs with the one on air highlighted.
type Schedule struct{}

// NewSchedule creates a new Schedule component
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Render renders the schedule panel
func (s *Schedule) Render(programs []core.Program, onAir core.Program, width, height int) string {
	title := styles.PanelTitle("Schedule", false)

	var content string
	if len(programs) == 0 {
		content = styles.Muted.Render("No programs")
	} else {
		content = s.renderPrograms(programs, onAir, width-4, height-4)
	}

	panel := styles.Panel(false).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (s *Schedule) renderPrograms(programs []core.Program, onAir core.Program, width, maxLines int) string {
	lines := make([]string, 0, len(programs))

	// "HH:00 " (6) + "▶ " (2) + " — " (3)
	const overhead = 11

	for _, p := range programs {
		if len(lines) >= maxLines {
			lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(programs)-len(lines))))
			break
		}

		available := width - overhead
		name := truncate(p.Name, available/2+available%2)
		announcer := truncate(p.Announcer, available/2)

		var line string
		if p.ID == onAir.ID {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", p.Slot(), name, announcer))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(p.Slot()),
				name,
				styles.Muted.Render(announcer))
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

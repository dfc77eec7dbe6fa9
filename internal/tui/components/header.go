package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/schedule"
	"github.com/tessro/onair/internal/tui/styles"
)

// Header shows the station, the clock and the program on air.
type Header struct {
	Station string
	Slogan  string
}

// NewHeader creates a header for the given station branding.
func NewHeader(station, slogan string) *Header {
	return &Header{Station: station, Slogan: slogan}
}

// Render renders the header line.
func (h *Header) Render(status schedule.Status, width int) string {
	left := styles.Highlight.Render(h.Station)
	if h.Slogan != "" {
		left += styles.Muted.Render(" · " + h.Slogan)
	}

	right := styles.Dim.Render("--:--")
	if !status.Now.IsZero() {
		onAir := styles.OnAir.Render("ON AIR")
		right = onAir + " " + styles.Title.Render(status.Program.Name)
		if status.Program.Announcer != "" {
			right += styles.Muted.Render(" with " + status.Program.Announcer)
		}
		right += "  " + styles.Title.Render(status.Clock())
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(left + styles.Repeat(" ", gap) + right)
}

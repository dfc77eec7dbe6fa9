package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/tui/styles"
)

// HistoryEntry is a title that was on air.
type HistoryEntry struct {
	Title   string
	AiredAt time.Time
}

// History displays recently aired titles
type History struct {
	now func() time.Time
}

// NewHistory creates a new History component
func NewHistory(now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{now: now}
}

// Render renders the history panel
func (h *History) Render(entries []HistoryEntry, width, height int) string {
	title := styles.PanelTitle("Recently Played", false)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(entries, width-4, height-4)
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

func (h *History) renderHistory(entries []HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		timeAgo := h.formatTimeAgo(entry.AiredAt)

		// icon + space, at least one space before the time
		available := width - 3 - len(timeAgo)
		title := truncate(entry.Title, available)

		padding := available - lipgloss.Width(title) + 1
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render("♪"),
			title,
			styles.Repeat(" ", padding),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (h *History) formatTimeAgo(t time.Time) string {
	d := h.now().Sub(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}

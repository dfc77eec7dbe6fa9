package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/feed"
	"github.com/tessro/onair/internal/tui/styles"
)

// Feed shows the rotating listener message.
type Feed struct {
	placeholder string
}

// NewFeed creates a feed card. Messages whose photo equals placeholder are
// shown without a photo marker.
func NewFeed(placeholder string) *Feed {
	return &Feed{placeholder: placeholder}
}

// Render renders the message card
func (f *Feed) Render(frame feed.Frame, width, height int) string {
	title := styles.PanelTitle("Listener Messages", false)

	var content string
	if frame.Empty() {
		content = styles.Muted.Render("No messages yet. Send one with 'onair messages send'.")
	} else {
		content = f.renderMessage(frame, width-4)
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

func (f *Feed) renderMessage(frame feed.Frame, width int) string {
	m := frame.Message

	name := styles.Title
	city := styles.Subtitle.Copy().Italic(true)
	text := lipgloss.NewStyle().Width(width)
	if frame.Phase == feed.PhaseFading {
		name, city, text = styles.Dim, styles.Dim, text.Foreground(styles.TextDim)
	}

	photo := styles.Dim.Render("○")
	if m.HasCustomPhoto(f.placeholder) {
		photo = styles.Highlight.Render("◉")
	}

	position := styles.Dim.Render(fmt.Sprintf("%d/%d", frame.Index+1, frame.Count))

	return lipgloss.JoinVertical(lipgloss.Left,
		photo+" "+name.Render(truncate(m.SenderName, width-10))+"  "+position,
		"  "+city.Render(truncate(m.City, width-2)),
		text.Render(m.Text),
		styles.Dim.Render("d: delete (moderator)"),
	)
}

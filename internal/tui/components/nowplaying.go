package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/tui/styles"
)

// NowPlaying displays the current title and, when revealed, the player
// controls.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state core.PlaybackState, width, height int, showPlayer bool) string {
	title := styles.PanelTitle("Now Playing", showPlayer)

	lines := []string{
		title,
		"",
		styles.Title.Copy().Width(width - 4).Render(truncate(state.NowPlaying, width-4)),
	}
	if state.CurrentProgram != nil {
		lines = append(lines, styles.Subtitle.Render(state.CurrentProgram.String()))
	}

	if showPlayer {
		lines = append(lines, "", n.renderPlayer(state, width-4))
	} else {
		lines = append(lines, "", styles.Dim.Render("p: show player"))
	}

	panel := styles.Panel(showPlayer).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (n *NowPlaying) renderPlayer(state core.PlaybackState, width int) string {
	icon := styles.StatusIcon(state.IsPlaying())

	label := "Listen live"
	switch state.State {
	case core.StatePlaying:
		label = styles.Playing.Render("Live")
	case core.StatePaused:
		label = styles.Paused.Render("Paused")
	}

	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	volume := fmt.Sprintf("🔊 %s %3d%%", styles.VolumeBar(state.Volume, barWidth), state.VolumePercent())

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+label,
		volume,
	)
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/config"
	"github.com/tessro/onair/internal/core"
	onairerrors "github.com/tessro/onair/internal/errors"
	"github.com/tessro/onair/internal/feed"
	"github.com/tessro/onair/internal/player"
	"github.com/tessro/onair/internal/schedule"
	"github.com/tessro/onair/internal/tui/components"
	"github.com/tessro/onair/internal/tui/styles"
)

// LoadingTitle is shown until the first metadata update arrives.
const LoadingTitle = "Carregando..."

const (
	volumeStep   = 0.05
	noticeTTL    = 5 * time.Second
	historyLimit = 20
	startTimeout = 20 * time.Second
)

// overlay is the modal currently covering the dashboard.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayPassphrase
	overlayConfirm
)

// Model is the main TUI model
type Model struct {
	app    *App
	width  int
	height int

	// State
	status     schedule.Status
	playback   core.PlaybackState
	showPlayer bool
	frame      feed.Frame
	history    []components.HistoryEntry
	playToken  uint64

	// Components
	header      *components.Header
	nowPlaying  *components.NowPlaying
	scheduleV   *components.Schedule
	feedView    *components.Feed
	historyView *components.History

	// Moderator delete
	overlay       overlay
	passInput     textinput.Model
	pendingDelete core.Message
	pendingPass   string

	// Notices
	notice       string
	noticeExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "passphrase"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 30

	cfg := app.cfg
	styles.SetTheme(cfg.TUI.Theme)

	return Model{
		app: app,
		playback: core.PlaybackState{
			State:      core.StateIdle,
			Volume:     app.player.Volume(),
			NowPlaying: LoadingTitle,
		},
		frame:       feed.Frame{Phase: feed.PhaseEmpty},
		header:      components.NewHeader(cfg.Station.Name, cfg.Station.Slogan),
		nowPlaying:  components.NewNowPlaying(),
		scheduleV:   components.NewSchedule(),
		feedView:    components.NewFeed(cfg.Station.PlaceholderPhoto),
		historyView: components.NewHistory(app.clock.Now),
		passInput:   ti,
	}
}

// Messages
type statusMsg schedule.Status
type titleMsg string
type frameMsg feed.Frame
type playerEventMsg player.Event
type messagesChangedMsg struct{}
type noticeMsg string
type errMsg struct{ err error }
type deleteResultMsg struct {
	deleted bool
	err     error
}

// Init starts the background services.
func (m Model) Init() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		app.Start()
		return nil
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.status = schedule.Status(msg)
		program := m.status.Program
		m.playback.CurrentProgram = &program
		return m, nil

	case titleMsg:
		m.setTitle(string(msg))
		return m, nil

	case frameMsg:
		m.frame = feed.Frame(msg)
		return m, nil

	case playerEventMsg:
		switch msg.Kind {
		case player.EventStateChanged:
			m.playback.State = msg.State
		case player.EventRevealPanel:
			m.showPlayer = true
		case player.EventPlaybackError:
			m.playback.State = msg.State
			m.setNotice(onairerrors.Notice(msg.Err))
		}
		return m, nil

	case messagesChangedMsg:
		return m, m.reloadMessages()

	case noticeMsg:
		m.setNotice(string(msg))
		return m, nil

	case errMsg:
		m.setNotice(onairerrors.Notice(msg.err))
		return m, nil

	case deleteResultMsg:
		switch {
		case msg.err != nil:
			m.setNotice(onairerrors.Notice(msg.err))
		case msg.deleted:
			m.setNotice("Message deleted.")
		}
		return m, nil
	}

	if m.overlay == overlayPassphrase {
		var cmd tea.Cmd
		m.passInput, cmd = m.passInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setTitle applies a metadata update. Empty titles show the station
// default.
func (m *Model) setTitle(title string) {
	if title == "" {
		title = m.app.cfg.Station.DefaultTitle
	}
	if title == m.playback.NowPlaying {
		return
	}
	m.playback.NowPlaying = title

	entry := components.HistoryEntry{Title: title, AiredAt: m.app.clock.Now()}
	m.history = append([]components.HistoryEntry{entry}, m.history...)
	if len(m.history) > historyLimit {
		m.history = m.history[:historyLimit]
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeExpiry = m.app.clock.Now().Add(noticeTTL)
}

func (m Model) currentNotice() string {
	if m.notice == "" || m.app.clock.Now().After(m.noticeExpiry) {
		return ""
	}
	return m.notice
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.overlay = overlayNone
		}
		return m, nil
	case overlayPassphrase:
		return m.handlePassphraseKey(msg)
	case overlayConfirm:
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.overlay = overlayHelp
		return m, nil

	case " ":
		return m, m.togglePlay()

	case "l":
		m.playToken++
		return m, m.requestPlay(m.playToken)

	case "+", "=":
		m.changeVolume(volumeStep)
		return m, nil

	case "-":
		m.changeVolume(-volumeStep)
		return m, nil

	case "p":
		m.showPlayer = !m.showPlayer
		return m, nil

	case "c":
		return m, m.copyTitle()

	case "r":
		return m, m.reloadMessages()

	case "t":
		return m, m.toggleTheme()

	case "d":
		if m.frame.Empty() {
			return m, nil
		}
		m.pendingDelete = m.frame.Message
		m.pendingPass = ""
		m.overlay = overlayPassphrase
		m.passInput.SetValue("")
		m.passInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) handlePassphraseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return m, nil

	case "enter":
		passphrase := m.passInput.Value()
		if err := m.app.feed.CheckPassphrase(passphrase); err != nil {
			m.closeOverlay()
			m.setNotice(onairerrors.Notice(err))
			return m, nil
		}
		m.pendingPass = passphrase
		m.passInput.Blur()
		m.overlay = overlayConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.passInput, cmd = m.passInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id, pass := m.pendingDelete.ID, m.pendingPass
		m.closeOverlay()
		return m, m.deleteMessage(id, pass)
	case "n", "N", "esc":
		m.closeOverlay()
	}
	return m, nil
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.passInput.Blur()
	m.passInput.SetValue("")
	m.pendingDelete = core.Message{}
	m.pendingPass = ""
}

func (m *Model) changeVolume(delta float64) {
	if err := m.app.player.SetVolume(m.app.player.Volume() + delta); err != nil {
		m.setNotice(err.Error())
		return
	}
	m.playback.Volume = m.app.player.Volume()
}

// Commands

func (m Model) togglePlay() tea.Cmd {
	p := m.app.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
		defer cancel()
		// Failures arrive as player events.
		_ = p.TogglePlay(ctx)
		return nil
	}
}

func (m Model) requestPlay(token uint64) tea.Cmd {
	p := m.app.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
		defer cancel()
		_, _ = p.RequestPlay(ctx, token)
		return nil
	}
}

func (m Model) copyTitle() tea.Cmd {
	title := m.playback.NowPlaying
	copyText := m.app.copyText
	return func() tea.Msg {
		if err := copyText(title); err != nil {
			return errMsg{fmt.Errorf("copy failed: %w", err)}
		}
		return noticeMsg("Copied: " + title)
	}
}

func (m Model) reloadMessages() tea.Cmd {
	presenter := m.app.feed
	return func() tea.Msg {
		if err := presenter.Reload(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) deleteMessage(id, passphrase string) tea.Cmd {
	presenter := m.app.feed
	return func() tea.Msg {
		deleted, err := presenter.Delete(context.Background(), id, feed.Answers{
			Passphrase: passphrase,
			Confirmed:  true,
		})
		return deleteResultMsg{deleted: deleted, err: err}
	}
}

func (m Model) toggleTheme() tea.Cmd {
	theme := "dark"
	if styles.IsDark() {
		theme = "light"
	}
	styles.SetTheme(theme)

	path := m.app.configPath
	return func() tea.Msg {
		if path == "" {
			path = config.Path()
		}
		if err := config.SetValue(path, "tui.theme", theme); err != nil {
			return errMsg{fmt.Errorf("failed to save theme: %w", err)}
		}
		return noticeMsg("Theme: " + theme)
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return LoadingTitle
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayPassphrase:
		return m.renderPassphrase()
	case overlayConfirm:
		return m.renderConfirm()
	}

	// Header, then two columns:
	// Left: Now Playing (top), Messages (bottom)
	// Right: Schedule (top), History (bottom)
	header := m.header.Render(m.status, m.width)

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	body := m.height - 2
	topHeight := body * 45 / 100
	bottomHeight := body - topHeight - 2

	nowPlaying := m.nowPlaying.Render(m.playback, leftWidth-2, topHeight-2, m.showPlayer)
	feedView := m.feedView.Render(m.frame, leftWidth-2, bottomHeight-2)
	scheduleView := m.scheduleV.Render(m.app.Programs(), m.status.Program, rightWidth-2, topHeight-2)
	historyView := m.historyView.Render(m.history, rightWidth-2, bottomHeight-2)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, feedView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, scheduleView, historyView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  space:play/pause  l:listen live  +/-:volume  p:player  c:copy  d:delete  r:reload")

	if notice := m.currentNotice(); notice != "" {
		status = styles.Notice.Render(notice)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) centered(content string, focused bool) string {
	border := styles.BorderStyle
	if focused {
		border = styles.FocusedBorder
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(border.Render(content))
}

func (m Model) renderHelp() string {
	title := m.app.cfg.Station.Name + " - Keyboard Shortcuts"
	divider := styles.Repeat("═", lipgloss.Width(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  t            Switch light/dark theme

  Playback
  ────────
  Space        Play/Pause
  l            Listen live
  +/=          Volume up
  -            Volume down
  p            Show/hide player
  c            Copy title

  Messages
  ────────
  r            Reload
  d            Delete shown message (moderator)

  Press ? or Esc to close
`
	return m.centered(help, false)
}

func (m Model) renderPassphrase() string {
	var b strings.Builder
	b.WriteString(styles.Highlight.Render("🔐 Moderator passphrase"))
	b.WriteString("\n\n")
	b.WriteString(m.passInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Dim.Render("Enter:continue  Esc:cancel"))

	content := lipgloss.NewStyle().Width(44).Padding(1, 2).Render(b.String())
	return m.centered(content, true)
}

func (m Model) renderConfirm() string {
	msg := m.pendingDelete

	var b strings.Builder
	b.WriteString(styles.Highlight.Render("Delete message?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Title.Render(msg.SenderName))
	b.WriteString(styles.Muted.Render(" (" + msg.City + ")"))
	b.WriteString("\n")
	b.WriteString(msg.Text)
	b.WriteString("\n\n")
	b.WriteString(styles.Dim.Render("y:delete  n:keep"))

	content := lipgloss.NewStyle().Width(50).Padding(1, 2).Render(b.String())
	return m.centered(content, true)
}

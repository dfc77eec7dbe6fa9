package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/onair/internal/core"
)

// PickerModel is the bubbletea model for choosing a message.
type PickerModel struct {
	messages    []core.Message
	placeholder string
	cursor      int
	selected    *core.Message
	width       int
	height      int
}

// Styles for the message picker
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	pickerItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	pickerSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	pickerPhotoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82"))

	pickerDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewPickerModel creates a picker over list.
func NewPickerModel(list []core.Message, placeholder string) PickerModel {
	return PickerModel{
		messages:    list,
		placeholder: placeholder,
		width:       80,
		height:      20,
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.messages) > 0 && m.cursor < len(m.messages) {
				m.selected = &m.messages[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.messages)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.messages) > 0 {
				m.cursor = len(m.messages) - 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("🗑  Select a message to delete"))
	b.WriteString("\n\n")

	if len(m.messages) == 0 {
		b.WriteString(pickerDimStyle.Render("No messages"))
	} else {
		textWidth := m.width - 40
		if textWidth < 20 {
			textWidth = 20
		}
		for i, msg := range m.messages {
			var line strings.Builder

			if msg.HasCustomPhoto(m.placeholder) {
				line.WriteString(pickerPhotoStyle.Render("◉ "))
			} else {
				line.WriteString(pickerDimStyle.Render("○ "))
			}
			line.WriteString(msg.SenderName)
			line.WriteString(pickerDimStyle.Render(" (" + msg.City + ", " + msg.Time().Format("02/01 15:04") + ")"))
			line.WriteString(" ")
			line.WriteString(truncate(msg.Text, textWidth))

			if i == m.cursor {
				b.WriteString(pickerSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(pickerItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("◉ with photo  ○ placeholder"))

	return b.String()
}

// Selected returns the selected message, or nil if none.
func (m PickerModel) Selected() *core.Message {
	return m.selected
}

// RunMessagePicker runs the picker and returns the chosen message.
func RunMessagePicker(list []core.Message, placeholder string) (*core.Message, error) {
	model := NewPickerModel(list, placeholder)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(PickerModel).Selected(), nil
}

func truncate(s string, max int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}

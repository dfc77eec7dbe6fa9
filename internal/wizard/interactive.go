package wizard

import (
	"os"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/messages"
	"golang.org/x/term"
)

// Interactive provides interactive fallbacks for commands run without the
// arguments they need.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptMessage opens the compose form, prefilled with partial. Returns nil
// if cancelled or not interactive.
func (i *Interactive) PromptMessage(partial Draft) (*Draft, error) {
	if !i.CanInteract() {
		return nil, nil
	}
	return RunCompose(partial)
}

// PromptMessagePick shows the message picker. Returns nil if cancelled or
// not interactive.
func (i *Interactive) PromptMessagePick(list []core.Message, placeholder string) (*core.Message, error) {
	if !i.CanInteract() || len(list) == 0 {
		return nil, nil
	}
	return RunMessagePicker(list, placeholder)
}

// NeedsCompose returns true if any required message field is missing.
func NeedsCompose(d Draft) bool {
	return messages.Validate(d.Input) != nil
}

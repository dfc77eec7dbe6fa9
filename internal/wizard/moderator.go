package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/tessro/onair/internal/core"
)

// Moderator asks for the moderator passphrase and a delete confirmation on
// the terminal.
type Moderator struct{}

// Challenge prompts for the passphrase. Escape or Ctrl+C cancels.
func (Moderator) Challenge(ctx context.Context) (string, bool, error) {
	var passphrase string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("🔐 Moderator passphrase").
				EchoMode(huh.EchoModePassword).
				Value(&passphrase),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return passphrase, true, nil
}

// Confirm asks whether m should be deleted.
func (Moderator) Confirm(ctx context.Context, m core.Message) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete message?").
				Description(fmt.Sprintf("%s (%s): %s", m.SenderName, m.City, m.Text)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

package wizard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/tessro/onair/internal/messages"
)

// Draft is a message being composed, plus an optional photo file to attach.
type Draft struct {
	messages.Input
	PhotoPath string
}

func required(field string, max int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		if utf8.RuneCountInString(s) > max {
			return fmt.Errorf("%s must be at most %d characters", field, max)
		}
		return nil
	}
}

// RunCompose asks for the sender's name, city, message and photo. Returns
// nil if the user aborted.
func RunCompose(partial Draft) (*Draft, error) {
	d := partial

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				CharLimit(messages.MaxNameLength).
				Validate(required("name", messages.MaxNameLength)).
				Value(&d.Name),
			huh.NewInput().
				Title("City").
				CharLimit(messages.MaxCityLength).
				Validate(required("city", messages.MaxCityLength)).
				Value(&d.City),
			huh.NewText().
				Title("Message").
				CharLimit(messages.MaxTextLength).
				Validate(required("message", messages.MaxTextLength)).
				Value(&d.Text),
			huh.NewInput().
				Title("Photo").
				Description("Path to an image file (optional)").
				Value(&d.PhotoPath),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	d.PhotoPath = strings.TrimSpace(d.PhotoPath)
	return &d, nil
}

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrPlaybackFailed    = errors.New("playback failed")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidMessage    = errors.New("invalid message")
	ErrPhotoUnreadable   = errors.New("photo could not be processed")
	ErrNetworkError      = errors.New("network error")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// OnAirError wraps an error with a user-friendly suggestion.
type OnAirError struct {
	Err        error
	Suggestion string
}

func (e *OnAirError) Error() string {
	return e.Err.Error()
}

func (e *OnAirError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &OnAirError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var onAirErr *OnAirError
	if errors.As(err, &onAirErr) && onAirErr.Suggestion != "" {
		return onAirErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrPlaybackFailed) {
		return "The stream could not be started. Check your connection and try again"
	}

	if errors.Is(err, ErrIncorrectPassword) {
		return "Ask the station team for the moderator passphrase"
	}

	if errors.Is(err, ErrInvalidMessage) {
		return "Name and city are required (max 50 characters), message text is required (max 300 characters)"
	}

	if errors.Is(err, ErrPhotoUnreadable) {
		return "Attach a JPEG, PNG, GIF or WebP image under 2 MiB, or send without a photo"
	}

	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'onair config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// Notice returns the short, user-facing line for an error, without the
// "Error:" prefix or suggestion. Used by the TUI status bar.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncorrectPassword):
		return "Incorrect password."
	case errors.Is(err, ErrPlaybackFailed):
		return "Could not play the radio. Please try again."
	case errors.Is(err, ErrPhotoUnreadable):
		return "Error processing photo. Please try again."
	}
	return err.Error()
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

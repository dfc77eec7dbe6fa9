package messages

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	onairerrors "github.com/tessro/onair/internal/errors"
)

// Field limits, in characters.
const (
	MaxNameLength = 50
	MaxCityLength = 50
	MaxTextLength = 300
)

// Validate checks that every field is present and within its limit.
// Whitespace-only values count as missing.
func Validate(in Input) error {
	var errs []error
	check := func(field, value string, max int) {
		value = strings.TrimSpace(value)
		switch {
		case value == "":
			errs = append(errs, fmt.Errorf("%w: %s is required", onairerrors.ErrInvalidMessage, field))
		case utf8.RuneCountInString(value) > max:
			errs = append(errs, fmt.Errorf("%w: %s must be at most %d characters", onairerrors.ErrInvalidMessage, field, max))
		}
	}

	check("name", in.Name, MaxNameLength)
	check("city", in.City, MaxCityLength)
	check("text", in.Text, MaxTextLength)

	return errors.Join(errs...)
}

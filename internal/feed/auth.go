package feed

import (
	"context"

	"github.com/tessro/onair/internal/core"
)

// Authorizer collects the moderator's passphrase and confirmation for a
// deletion.
type Authorizer interface {
	// Challenge asks for the passphrase. ok is false when the moderator
	// cancelled.
	Challenge(ctx context.Context) (passphrase string, ok bool, err error)
	// Confirm asks whether m should really be deleted.
	Confirm(ctx context.Context, m core.Message) (bool, error)
}

// Answers is an Authorizer whose responses were collected up front.
type Answers struct {
	Passphrase string
	Cancelled  bool
	Confirmed  bool
}

func (a Answers) Challenge(context.Context) (string, bool, error) {
	return a.Passphrase, !a.Cancelled, nil
}

func (a Answers) Confirm(context.Context, core.Message) (bool, error) {
	return a.Confirmed, nil
}

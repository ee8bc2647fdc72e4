package profile

import (
	"context"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

type CheckUsername struct {
	store ports.ProfileStore
}

func NewCheckUsername(store ports.ProfileStore) *CheckUsername {
	return &CheckUsername{store: store}
}

// Execute reports whether username is well formed and free.
func (uc *CheckUsername) Execute(ctx context.Context, username string) (bool, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return false, err
	}
	ok, err := uc.store.IsUsernameAvailable(ctx, username)
	if err != nil {
		return false, domerrors.FromGateway(gatewayStore, "check username", err)
	}
	return ok, nil
}

package storage

import (
	"context"
	"errors"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// ErrStorageDisabled is returned by DisabledStore.
var ErrStorageDisabled = errors.New("media storage is not configured")

// DisabledStore is the MediaStore used when no bucket is configured. Every
// upload fails, so saves carrying an avatar are rejected and saves without
// one go through.
type DisabledStore struct{}

var _ ports.MediaStore = DisabledStore{}

func (DisabledStore) UploadImage(context.Context, []byte) (string, error) {
	return "", ErrStorageDisabled
}

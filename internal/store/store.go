package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when no document has been persisted yet.
var ErrNotFound = errors.New("config not found")

// Backend persists the configuration document as opaque JSON text.
// Save replaces any previous value.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

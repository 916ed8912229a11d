package daystate

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no state has been saved under a day key.
var ErrNotFound = errors.New("no state stored for day")

// Store persists one serialized board state per calendar day.
type Store interface {
	Get(ctx context.Context, dayKey string) ([]byte, error)
	Put(ctx context.Context, dayKey string, payload []byte) error
}

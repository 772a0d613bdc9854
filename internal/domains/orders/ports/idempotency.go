package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIdempotencyConflict indicates the same key was used with a different order request.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrIdempotencyKeyTaken is returned by Save when another placement already claimed the key.
	ErrIdempotencyKeyTaken = errors.New("idempotency key taken")
)

// IdempotencyRecord ties a client-supplied key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
}

// IdempotencyStore remembers placements so a retried request replays the
// first result instead of placing a second order.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores a new record. It fails with ErrIdempotencyKeyTaken when the key exists.
	Save(ctx context.Context, record IdempotencyRecord) error
}

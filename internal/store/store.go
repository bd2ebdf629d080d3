// Package store persists opaque values under string keys.
package store

import (
	"context"
	"errors"
)

// Logical keys used by the progression ledger.
const (
	KeyUserProgress = "user_progress"
	KeyLeaderboard  = "leaderboard"
)

// ErrStorageFailure wraps every read or write failure of a backend.
var ErrStorageFailure = errors.New("storage failure")

// KeyValueStore is a minimal persistence backend.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

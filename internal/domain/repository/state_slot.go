// Package repository defines the storage contracts the navigation core depends on.
package repository

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a StateSlot when a write does not fit.
var ErrQuotaExceeded = errors.New("state slot quota exceeded")

// StateSlot is a durable key/value slot for serialized navigation state.
type StateSlot interface {
	// Get returns the stored value. A missing key yields ("", false, nil).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing what was there.
	// Implementations wrap ErrQuotaExceeded when the value does not fit.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Package store defines the backing key-value store and its implementations.
package store

import "errors"

// Store is a synchronous string-keyed persistence primitive.
// Each named collection is kept under one key as a single encoded payload.
type Store interface {
	// Get returns the value stored under key. ok is false if the key was never written.
	Get(key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Returns true if it existed.
	Delete(key string) (bool, error)

	// Keys returns all keys currently holding a value, sorted.
	Keys() ([]string, error)
}

var (
	// ErrQuotaExceeded is returned when a write would exceed the store capacity.
	ErrQuotaExceeded = errors.New("store quota exceeded")

	// ErrInvalidKey is returned for keys a backend cannot represent.
	ErrInvalidKey = errors.New("invalid store key")
)

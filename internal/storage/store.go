// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"context"
	"errors"
	"fmt"
)

// Store is a byte-oriented key-value store.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or replaces key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Collector is implemented by backends that need periodic space reclamation.
type Collector interface {
	RunGC() error
}

// Errors
var (
	// ErrNotFound is returned when a key has no value.
	ErrNotFound = errors.New("key not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidRecord wraps schema violations found by CheckRecord.
	ErrInvalidRecord = errors.New("invalid record")
)

// RecordKind names one of the persisted session records.
type RecordKind string

const (
	RecordCart        RecordKind = "tigana-cart"
	RecordPreferences RecordKind = "tigana-preferences"
	RecordBehavior    RecordKind = "tigana-behavior"
)

// RecordKinds lists every persisted record.
var RecordKinds = []RecordKind{RecordCart, RecordPreferences, RecordBehavior}

// SessionKey returns the store key of kind for session id.
func SessionKey(sessionID string, kind RecordKind) string {
	return fmt.Sprintf("session:%s:%s", sessionID, kind)
}

// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/huangsam/loadout/schema"
)

// StoreManager defines the interface for managing persistent stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetPinnedStore() PinnedStore
}

// PinnedStore defines the interface for saved combination storage.
type PinnedStore interface {
	// List returns every pinned combination ordered by creation time.
	List() ([]schema.PinnedCombination, error)

	// Add stores a new pinned combination.
	Add(pin schema.PinnedCombination) error

	// Remove deletes a pinned combination and reports whether it existed.
	Remove(id string) (bool, error)

	// Rename changes the display name and reports whether the id existed.
	Rename(id, name string) (bool, error)

	// Clear deletes every pinned combination.
	Clear() error

	// GetStatus returns status information about the pinned store
	GetStatus() (schema.PinnedStatus, error)

	// Close closes the underlying connection
	Close() error
}

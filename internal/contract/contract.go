// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/tracelens/tracelens/schema"
)

// SnapshotStore defines the interface for snapshot persistence.
// This allows the store layer to be mocked for testing.
type SnapshotStore interface {
	// Save persists a named snapshot, replacing any existing one with the same name.
	Save(name string, snapshot schema.Snapshot) error

	// Load retrieves a snapshot by name.
	Load(name string) (schema.Snapshot, error)

	// List returns metadata for all stored snapshots, newest first.
	List() ([]schema.SnapshotInfo, error)

	// Delete removes a stored snapshot by name.
	Delete(name string) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// SourceLocator finds the file declaring a class within a workspace.
type SourceLocator interface {
	FindClass(className string) (string, bool, error)
}

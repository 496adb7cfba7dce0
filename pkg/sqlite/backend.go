// Package sqlite provides the public API for the SQLite layout store.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"github.com/mesh-intelligence/taglayout/internal/sqlite"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// NewBackend creates a new SQLite layout store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".taglayout-db",
//	})
//	defer store.Detach()
func NewBackend() types.LayoutStore {
	return sqlite.NewBackend()
}

package types

import (
	"errors"
	"time"
)

// LayoutStore persists one encoded Layout per standardized tag.
// Callers attach to a backend, load and save layouts, and detach when done.
type LayoutStore interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// Load returns the layout recorded for tag.
	// Returns ErrNotFound if no layout is recorded, which is distinct from
	// a recorded empty layout. A stored string with unparseable slots yields
	// the decoded layout together with an error wrapping ErrMalformedSlot.
	Load(tag string) (*Layout, error)

	// Save records l under its tag, replacing any previous layout.
	Save(l *Layout) error

	// Remove forgets the layout for tag. Removing an absent tag succeeds.
	Remove(tag string) error

	// History returns up to limit history entries for tag, newest first.
	// A limit of zero returns every entry.
	History(tag string, limit int) ([]HistoryEntry, error)
}

// History operation constants.
const (
	HistoryOpSave   = "save"
	HistoryOpRemove = "remove"
)

// HistoryEntry records one change to a tag's persisted layout.
type HistoryEntry struct {
	// HistoryID is a UUID v7, generated when the entry is written.
	HistoryID string `json:"history_id"`

	// Tag is the standardized tag the change applies to.
	Tag string `json:"tag"`

	// Encoded is the layout string after the change; empty for removals.
	Encoded string `json:"layout"`

	// Operation is one of HistoryOpSave or HistoryOpRemove.
	Operation string `json:"operation"`

	// CreatedAt is the timestamp of this change.
	CreatedAt time.Time `json:"created_at"`
}

// Store lifecycle and lookup errors.
var (
	ErrStoreDetached   = errors.New("layout store is detached")
	ErrAlreadyAttached = errors.New("layout store is already attached")
	ErrNotFound        = errors.New("layout not found")
)

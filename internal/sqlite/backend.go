// Package sqlite implements the SQLite layout store. SQLite is the query
// engine; JSONL files in DataDir are the source of truth and are rewritten
// after every mutation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

const dbFile = "taglayout.db"

var _ types.LayoutStore = (*Backend)(nil)

// Backend implements types.LayoutStore.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	now      func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: func() time.Time { return time.Now().UTC() }}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite database from
// the JSONL files and marks the backend attached.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files and is rebuilt every time.
	dbPath := filepath.Join(config.DataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Load returns the layout recorded for tag. A layout with undecodable slots
// is returned together with an error wrapping ErrMalformedSlot.
func (b *Backend) Load(tag string) (*types.Layout, error) {
	key := types.StandardizeTag(tag)
	if key == "" {
		return nil, types.ErrInvalidTag
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var encoded string
	err := b.db.QueryRow("SELECT layout FROM layouts WHERE tag = ?", key).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting layout %s: %w", key, err)
	}
	l, err := types.DecodeLayout(key, encoded)
	if err != nil {
		return l, fmt.Errorf("decoding layout %s: %w", key, err)
	}
	return l, nil
}

// Save records l under its standardized tag and appends a history entry.
func (b *Backend) Save(l *types.Layout) error {
	if l == nil {
		return types.ErrInvalidTag
	}
	key := types.StandardizeTag(l.Tag())
	if key == "" {
		return types.ErrInvalidTag
	}
	encoded := types.EncodeLayout(l)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	now := b.now().Format(time.RFC3339Nano)
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO layouts (tag, layout, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(tag) DO UPDATE SET layout = excluded.layout, updated_at = excluded.updated_at`,
		key, encoded, now,
	)
	if err != nil {
		return fmt.Errorf("persisting layout: %w", err)
	}

	hist, err := b.recordHistory(tx, key, encoded, types.HistoryOpSave, now)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout: %w", err)
	}

	return b.persist(hist)
}

// Remove forgets the layout for tag. Removing an absent tag succeeds and
// records nothing.
func (b *Backend) Remove(tag string) error {
	key := types.StandardizeTag(tag)
	if key == "" {
		return types.ErrInvalidTag
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM layouts WHERE tag = ?", key)
	if err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	if n == 0 {
		return nil
	}

	hist, err := b.recordHistory(tx, key, "", types.HistoryOpRemove, b.now().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout removal: %w", err)
	}

	return b.persist(hist)
}

// History returns up to limit entries for tag, newest first. A limit of zero
// or less returns every entry.
func (b *Backend) History(tag string, limit int) ([]types.HistoryEntry, error) {
	key := types.StandardizeTag(tag)
	if key == "" {
		return nil, types.ErrInvalidTag
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT history_id, tag, layout, operation, created_at FROM layout_history WHERE tag = ? ORDER BY history_id DESC"
	args := []any{key}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying layout history: %w", err)
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		var e types.HistoryEntry
		var createdAt string
		if err := rows.Scan(&e.HistoryID, &e.Tag, &e.Encoded, &e.Operation, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing history created_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history entries: %w", err)
	}
	return entries, nil
}

// recordHistory inserts one history row inside tx and returns its JSONL
// record.
func (b *Backend) recordHistory(tx *sql.Tx, tag, encoded, operation, createdAt string) (historyRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return historyRecord{}, fmt.Errorf("generating history UUID v7: %w", err)
	}
	rec := historyRecord{
		HistoryID: id.String(),
		Tag:       tag,
		Layout:    encoded,
		Operation: operation,
		CreatedAt: createdAt,
	}
	_, err = tx.Exec(
		"INSERT INTO layout_history (history_id, tag, layout, operation, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.HistoryID, rec.Tag, rec.Layout, rec.Operation, rec.CreatedAt,
	)
	if err != nil {
		return historyRecord{}, fmt.Errorf("recording layout history: %w", err)
	}
	return rec, nil
}

// persist rewrites layouts.jsonl and appends hist to layout_history.jsonl.
// The caller must hold b.mu.
func (b *Backend) persist(hist historyRecord) error {
	if err := b.persistLayoutsJSONL(); err != nil {
		return fmt.Errorf("persisting %s: %w", layoutsJSONL, err)
	}
	if err := b.appendHistoryJSONL(hist); err != nil {
		return fmt.Errorf("appending %s: %w", historyJSONL, err)
	}
	return nil
}

func (b *Backend) persistLayoutsJSONL() error {
	rows, err := b.db.Query("SELECT tag, layout, updated_at FROM layouts ORDER BY tag ASC")
	if err != nil {
		return fmt.Errorf("querying layouts for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec layoutRecord
		if err := rows.Scan(&rec.Tag, &rec.Layout, &rec.UpdatedAt); err != nil {
			return fmt.Errorf("scanning layout for JSONL: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling layout for JSONL: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating layouts for JSONL: %w", err)
	}

	return writeJSONL(filepath.Join(b.config.DataDir, layoutsJSONL), records)
}

// appendHistoryJSONL appends a single entry to layout_history.jsonl, which
// is append-only.
func (b *Backend) appendHistoryJSONL(rec historyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}
	path := filepath.Join(b.config.DataDir, historyJSONL)
	existing, err := readJSONL(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", historyJSONL, err)
	}
	return writeJSONL(path, append(existing, data))
}

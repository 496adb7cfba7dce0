package sqlite

// Schema DDL. layouts holds the current encoded layout per standardized tag;
// layout_history records every save and remove.
const (
	createLayouts = `CREATE TABLE layouts (
    tag TEXT PRIMARY KEY,
    layout TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLayoutHistory = `CREATE TABLE layout_history (
    history_id TEXT PRIMARY KEY,
    tag TEXT NOT NULL,
    layout TEXT NOT NULL,
    operation TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxLayoutHistoryTag = `CREATE INDEX idx_layout_history_tag ON layout_history(tag, history_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createLayouts,
	createLayoutHistory,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLayoutHistoryTag,
}

// Store configuration and the editor preferences shared by the CLI.
package types

import "errors"

// Config holds backend selection and parameters for LayoutStore.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Insert modes for plain (unmodified) drags.
const (
	InsertModeSwap   = "swap"
	InsertModeInsert = "insert"
)

// Config validation errors.
var (
	ErrBackendEmpty      = errors.New("backend must not be empty")
	ErrBackendUnknown    = errors.New("unknown backend")
	ErrInvalidInsertMode = errors.New("insert mode must be swap or insert")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// ValidateInsertMode reports ErrInvalidInsertMode unless mode is one of the
// InsertMode constants.
func ValidateInsertMode(mode string) error {
	switch mode {
	case InsertModeSwap, InsertModeInsert:
		return nil
	default:
		return ErrInvalidInsertMode
	}
}

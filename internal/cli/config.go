// Config loading for the taglayout CLI.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/taglayout/internal/paths"
	"github.com/mesh-intelligence/taglayout/internal/reconcile"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyInsertMode  = "insert_mode"
	cfgKeyLogLevel    = "log_level"
	cfgKeyCatalog     = "catalog"
	cfgKeyPossessions = "possessions"
	cfgKeyGrid        = "grid"

	defaultLogLevel = "warn"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# taglayout configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Plain drags swap slots or insert and shift: swap | insert
insert_mode: swap

# panic | fatal | error | warn | info | debug | trace
log_level: warn

# Item catalog and possessions, relative to this directory
# catalog: items.yaml
# possessions: possessions.yaml

# Slot actions
quantity_type: 0
requested_quantity: 0
bank_ops: false
leave_placeholders: false
allow_modifications: true

grid:
  items_per_row: 8
  item_width: 36
  item_height: 32
  x_padding: 12
  y_padding: 4
  start_x: 51
  min_slots: 0
`

// loadConfig resolves the config directory and reads config.yaml with Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func (e *env) loadConfig() error {
	configDir, err := paths.ResolveConfigDir(e.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	if err := ensureConfigDir(configDir); err != nil {
		return sysError("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return sysError("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyInsertMode, types.InsertModeSwap)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault("allow_modifications", true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return userError("read config: %w", err)
		}
	}

	e.configDir = configDir
	e.cfg = v
	return nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig returns the backend configuration with the data directory
// resolved: --data-dir flag > config.yaml > TAGLAYOUT_DATA_DIR > default.
func (e *env) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(e.flags.dataDir, e.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{Backend: e.cfg.GetString(cfgKeyBackend), DataDir: dataDir}, nil
}

func (e *env) grid() (reconcile.Grid, error) {
	g := reconcile.DefaultGrid()
	if err := e.cfg.UnmarshalKey(cfgKeyGrid, &g); err != nil {
		return g, fmt.Errorf("parse grid: %w", err)
	}
	return g, nil
}

func (e *env) options() (reconcile.Options, error) {
	var o reconcile.Options
	if err := e.cfg.Unmarshal(&o); err != nil {
		return o, fmt.Errorf("parse slot options: %w", err)
	}
	return o, nil
}

// logger writes to the command's stderr at the configured level.
func (e *env) logger(errOut io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(errOut)
	level, err := logrus.ParseLevel(e.cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgKeyLogLevel, err)
	}
	l.SetLevel(level)
	return l, nil
}

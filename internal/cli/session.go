// Session setup shared by the layout commands.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/internal/catalog"
	"github.com/mesh-intelligence/taglayout/internal/manager"
	"github.com/mesh-intelligence/taglayout/internal/paths"
	"github.com/mesh-intelligence/taglayout/internal/reconcile"
	"github.com/mesh-intelligence/taglayout/internal/sqlite"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// session is an attached store plus the host state the layout engine reads.
type session struct {
	store       *sqlite.Backend
	catalog     *catalog.Catalog
	possessions *catalog.Possessions
	manager     *manager.LayoutManager
}

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must Detach the returned backend.
func (e *env) attachBackend() (*sqlite.Backend, error) {
	cfg, err := e.storeConfig()
	if err != nil {
		return nil, sysError("%w", err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, userError("attach backend %q: %w", cfg.Backend, err)
		}
		return nil, sysError("attach backend: %w", err)
	}
	return backend, nil
}

// openSession attaches the store, loads the catalog and possessions named in
// config.yaml and builds a LayoutManager over them. The caller must call
// close.
func (e *env) openSession(cmd *cobra.Command) (*session, error) {
	cat, err := catalog.Load(paths.ResolveFile(e.configDir, e.cfg.GetString(cfgKeyCatalog)))
	if err != nil {
		return nil, userError("%w", err)
	}
	poss, err := catalog.LoadPossessions(paths.ResolveFile(e.configDir, e.cfg.GetString(cfgKeyPossessions)))
	if err != nil {
		return nil, userError("%w", err)
	}
	grid, err := e.grid()
	if err != nil {
		return nil, userError("%w", err)
	}
	opts, err := e.options()
	if err != nil {
		return nil, userError("%w", err)
	}
	log, err := e.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, userError("%w", err)
	}

	backend, err := e.attachBackend()
	if err != nil {
		return nil, err
	}

	m, err := manager.New(log, backend, manager.Config{
		Resolver:    cat,
		Container:   poss.Bank(),
		Secondary:   poss.Secondary(),
		Possessions: poss,
		Grid:        grid,
		Options:     opts,
		InsertMode:  e.cfg.GetString(cfgKeyInsertMode),
	})
	if err != nil {
		backend.Detach()
		return nil, userError("%s: %w", cfgKeyInsertMode, err)
	}

	return &session{store: backend, catalog: cat, possessions: poss, manager: m}, nil
}

func (s *session) close() {
	s.store.Detach()
}

// snapshot returns the current possessions as a reconciliation snapshot.
func (s *session) snapshot() *reconcile.Snapshot {
	return reconcile.SnapshotFrom(s.possessions.Bank(), s.possessions.Secondary(), s.catalog)
}

// render opens tag and reconciles it against the current possessions.
func (s *session) render(tag string) (*reconcile.RenderPlan, error) {
	if _, err := s.manager.Open(tag); err != nil {
		if errors.Is(err, types.ErrInvalidTag) {
			return nil, userError("%w", err)
		}
		return nil, sysError("open %q: %w", tag, err)
	}
	plan, err := s.manager.Reconcile(s.snapshot())
	if err != nil {
		return nil, sysError("reconcile %q: %w", tag, err)
	}
	return plan, nil
}

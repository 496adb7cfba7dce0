// Package manager ties a layout store to the reconciler, the editor and the
// auto layout registry. It tracks the one tag that is currently open and
// persists that tag's layout whenever it changes.
package manager

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/taglayout/internal/autolayout"
	"github.com/mesh-intelligence/taglayout/internal/editor"
	"github.com/mesh-intelligence/taglayout/internal/reconcile"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Owner is the registry owner recorded for built-in generators.
const Owner = "taglayout"

// Config describes the host state a LayoutManager works against.
type Config struct {
	Resolver    types.ItemResolver
	Container   types.Container
	Secondary   types.SecondaryStorage
	Possessions types.Possessions
	Grid        reconcile.Grid
	Options     reconcile.Options
	InsertMode  string
}

// LayoutManager owns the active tag and its layout.
// It is not safe for concurrent use; the registry it wraps is.
type LayoutManager struct {
	store      types.LayoutStore
	registry   *autolayout.Registry
	reconciler *reconcile.Reconciler
	editor     *editor.Editor
	l          logrus.FieldLogger

	activeTag string
	active    *types.Layout
	snap      *reconcile.Snapshot
	plan      *reconcile.RenderPlan
	pending   *Proposal
}

// New creates a LayoutManager over an attached store and registers the
// Default generator.
func New(l logrus.FieldLogger, store types.LayoutStore, cfg Config) (*LayoutManager, error) {
	if cfg.InsertMode == "" {
		cfg.InsertMode = types.InsertModeSwap
	}
	ed, err := editor.New(l, cfg.Resolver, cfg.InsertMode)
	if err != nil {
		return nil, err
	}

	m := &LayoutManager{
		store:      store,
		registry:   autolayout.NewRegistry(),
		reconciler: reconcile.New(l, cfg.Resolver, cfg.Container, cfg.Secondary, cfg.Grid, cfg.Options),
		editor:     ed,
		l:          l,
	}
	def := autolayout.NewDefault(l, cfg.Possessions, cfg.Resolver)
	if err := m.registry.Register(Owner, autolayout.DefaultName, def); err != nil {
		return nil, err
	}
	return m, nil
}

// Load returns the stored layout for tag. Undecodable slots are logged and
// dropped; the rest of the layout is returned without error.
func (m *LayoutManager) Load(tag string) (*types.Layout, error) {
	l, err := m.store.Load(tag)
	if errors.Is(err, types.ErrMalformedSlot) && l != nil {
		m.l.WithField("tag", l.Tag()).Warnf("Dropping malformed layout slots: %v", err)
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Save persists l. Saving the open tag also replaces the active layout.
func (m *LayoutManager) Save(l *types.Layout) error {
	if err := m.store.Save(l); err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}
	if m.isActive(l.Tag()) {
		m.active = l.Clone()
		m.plan = nil
	}
	return nil
}

// Remove forgets the layout for tag. If tag is open it stays open with no
// layout.
func (m *LayoutManager) Remove(tag string) error {
	if err := m.store.Remove(tag); err != nil {
		return fmt.Errorf("removing layout: %w", err)
	}
	if m.isActive(tag) {
		m.active = nil
		m.plan = nil
		m.pending = nil
	}
	return nil
}

// Open makes tag the active tag. A tag without a stored layout gets a new
// empty one, which is persisted the first time it changes.
func (m *LayoutManager) Open(tag string) (*types.Layout, error) {
	key := types.StandardizeTag(tag)
	if key == "" {
		return nil, types.ErrInvalidTag
	}

	l, err := m.Load(key)
	if errors.Is(err, types.ErrNotFound) {
		m.l.Debugf("Creating layout for tag [%s].", key)
		l, err = types.NewLayout(key), nil
	}
	if err != nil {
		return nil, err
	}

	m.activeTag = key
	m.active = l
	m.plan = nil
	m.pending = nil
	return l.Clone(), nil
}

// Close clears the active tag.
func (m *LayoutManager) Close() {
	m.activeTag = ""
	m.active = nil
	m.plan = nil
	m.pending = nil
}

// Active returns the open tag and a copy of its layout. The layout is nil
// when no tag is open or the open tag has no layout.
func (m *LayoutManager) Active() (string, *types.Layout) {
	if m.active == nil {
		return m.activeTag, nil
	}
	return m.activeTag, m.active.Clone()
}

// Plan returns the most recent render of the active layout.
func (m *LayoutManager) Plan() *reconcile.RenderPlan {
	return m.plan
}

// Reconcile renders the active layout against snap and persists it when
// unlaid-out items were appended. With no active layout it returns nil.
func (m *LayoutManager) Reconcile(snap *reconcile.Snapshot) (*reconcile.RenderPlan, error) {
	m.snap = snap
	return m.render()
}

func (m *LayoutManager) render() (*reconcile.RenderPlan, error) {
	if m.active == nil {
		return nil, nil
	}
	plan, modified := m.reconciler.Reconcile(m.active, m.snap)
	m.plan = plan
	if modified && m.pending == nil {
		if err := m.store.Save(m.active); err != nil {
			return plan, fmt.Errorf("saving layout: %w", err)
		}
	}
	return plan, nil
}

// Drag applies g to the active layout, persists the result and returns the
// new render. A gesture that changes nothing returns the current render.
func (m *LayoutManager) Drag(g editor.Gesture) (*reconcile.RenderPlan, error) {
	if m.active == nil {
		return nil, nil
	}
	if m.plan == nil {
		if _, err := m.render(); err != nil {
			return nil, err
		}
	}

	// Both ends must be cells of the rendered grid.
	if _, ok := m.plan.At(g.Source); !ok {
		return m.plan, nil
	}
	if _, ok := m.plan.At(g.Target); !ok {
		return m.plan, nil
	}
	if !m.editor.Apply(m.active, m.plan, g) {
		return m.plan, nil
	}
	m.l.WithField("tag", m.activeTag).Debugf("Applied drag %s.", g)
	if m.pending == nil {
		if err := m.store.Save(m.active); err != nil {
			return nil, fmt.Errorf("saving layout: %w", err)
		}
	}
	return m.render()
}

// RegisterGenerator adds an auto layout under name.
func (m *LayoutManager) RegisterGenerator(owner, name string, gen types.Generator) error {
	return m.registry.Register(owner, name, gen)
}

// UnregisterGenerator removes the auto layout registered under name.
func (m *LayoutManager) UnregisterGenerator(name string) {
	m.registry.Unregister(name)
}

// Generators returns the registered auto layouts in registration order.
func (m *LayoutManager) Generators() []autolayout.Entry {
	return m.registry.Entries()
}

// RunGenerator runs the auto layout registered under name against previous
// and returns its layout under previous's tag. previous is not modified.
func (m *LayoutManager) RunGenerator(name string, previous *types.Layout) (*types.Layout, error) {
	gen, err := m.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	tag := ""
	if previous != nil {
		tag = previous.Tag()
	}
	out := gen.Generate(previous)
	if out == nil {
		return types.NewLayout(tag), nil
	}
	return types.NewLayoutFromSlots(tag, out.Slots()), nil
}

// AutoLayout replaces the active layout of tag with the output of the named
// generator. Nothing is persisted until the returned Proposal is kept.
func (m *LayoutManager) AutoLayout(tag, name string) (*Proposal, error) {
	if !m.isActive(tag) {
		return nil, types.ErrTagNotActive
	}
	if m.active == nil {
		return nil, types.ErrNoActiveLayout
	}

	old := m.active
	if m.pending != nil {
		old = m.pending.old
	}
	proposed, err := m.RunGenerator(name, old)
	if err != nil {
		return nil, err
	}

	m.l.WithField("tag", m.activeTag).Debugf("Previewing auto layout [%s].", name)
	p := &Proposal{m: m, name: name, old: old.Clone()}
	m.pending = p
	m.active = proposed
	m.plan = nil
	return p, nil
}

// Pending reports whether an auto layout is awaiting Keep or Undo.
func (m *LayoutManager) Pending() bool {
	return m.pending != nil
}

func (m *LayoutManager) isActive(tag string) bool {
	return m.activeTag != "" && types.StandardizeTag(tag) == m.activeTag
}

// Proposal is an auto layout shown in place of the active layout until it
// is kept or undone. Only the most recent proposal can be resolved.
type Proposal struct {
	m    *LayoutManager
	name string
	old  *types.Layout
}

// Name returns the generator that produced the proposal.
func (p *Proposal) Name() string {
	return p.name
}

// Layout returns a copy of the proposed layout, including any edits made
// while it was previewed.
func (p *Proposal) Layout() *types.Layout {
	if p.m.pending != p || p.m.active == nil {
		return nil
	}
	return p.m.active.Clone()
}

// Keep persists the proposed layout.
func (p *Proposal) Keep() error {
	m := p.m
	if m.pending != p {
		return nil
	}
	m.pending = nil
	if err := m.store.Save(m.active); err != nil {
		return fmt.Errorf("saving auto layout: %w", err)
	}
	m.l.WithField("tag", m.activeTag).Debugf("Kept auto layout [%s].", p.name)
	return nil
}

// Undo restores the layout that was active before the proposal.
func (p *Proposal) Undo() error {
	m := p.m
	if m.pending != p {
		return nil
	}
	m.pending = nil
	m.active = p.old
	m.plan = nil
	m.l.WithField("tag", m.activeTag).Debugf("Undid auto layout [%s].", p.name)
	return nil
}

// Package editor applies drag gestures to a Layout.
package editor

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/taglayout/internal/reconcile"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Gesture is one completed drag between two cells of the item grid.
// Modifier selects candidate-list editing instead of a plain move.
type Gesture struct {
	Source   int  `json:"source"`
	Target   int  `json:"target"`
	Modifier bool `json:"modifier"`
}

func (g Gesture) String() string {
	if g.Modifier {
		return fmt.Sprintf("%d => %d (edit)", g.Source, g.Target)
	}
	return fmt.Sprintf("%d => %d", g.Source, g.Target)
}

// Editor mutates layouts in response to gestures.
type Editor struct {
	resolver   types.ItemResolver
	insertMode string
	l          logrus.FieldLogger
}

// New creates an Editor. insertMode is one of types.InsertModeSwap or
// types.InsertModeInsert.
func New(l logrus.FieldLogger, resolver types.ItemResolver, insertMode string) (*Editor, error) {
	if err := types.ValidateInsertMode(insertMode); err != nil {
		return nil, err
	}
	return &Editor{resolver: resolver, insertMode: insertMode, l: l}, nil
}

// InsertMode returns the plain drag mode.
func (e *Editor) InsertMode() string {
	return e.insertMode
}

// Apply edits layout for g, reading displayed ids from plan, the render of
// layout the gesture was made on. It reports whether layout was edited; the
// caller persists and re-renders when it was. Positions outside
// [0, types.MaxSlots) are ignored.
func (e *Editor) Apply(layout *types.Layout, plan *reconcile.RenderPlan, g Gesture) bool {
	if layout == nil || !onGrid(g.Source) || !onGrid(g.Target) {
		return false
	}
	if g.Modifier {
		return e.editCandidates(layout, plan, g)
	}

	e.ensureExtent(layout, g)
	if e.insertMode == types.InsertModeInsert {
		e.l.Debugf("Insert [%d] -> [%d].", g.Source, g.Target)
		layout.Insert(g.Source, g.Target)
	} else {
		e.l.Debugf("Swap [%d] <-> [%d].", g.Source, g.Target)
		layout.Swap(g.Source, g.Target)
	}
	return true
}

// editCandidates handles modifier drags. Dropping onto an occupied slot
// inserts the item just before the candidate being shown there; dropping
// onto an empty slot moves the item out into its own slot.
func (e *Editor) editCandidates(layout *types.Layout, plan *reconcile.RenderPlan, g Gesture) bool {
	shown := plan.Displayed(g.Source)
	if shown <= 0 || e.resolver.Item(shown).Filler {
		return false
	}
	id := e.resolver.Canonicalize(shown)
	if id == types.NoItem {
		return false
	}

	e.ensureExtent(layout, g)

	target := layout.Candidates(g.Target)
	if target == nil {
		e.l.Debugf("Extract/move [%d] from [%d] -> [%d].", id, g.Source, g.Target)
		layout.RemoveFromPos(id, g.Source)
		layout.SetPrimary(id, g.Target)
		return true
	}

	if g.Source != g.Target {
		layout.RemoveFromPos(id, g.Source)
	}
	idx := e.ActiveCandidateIndex(target, plan.Displayed(g.Target))
	e.l.Debugf("Insert [%d] into candidate list at [%d] before index [%d].", id, g.Target, idx)
	layout.InsertBeforeIndexAtPos(id, g.Target, idx)
	return true
}

func onGrid(pos int) bool {
	return pos >= 0 && pos < types.MaxSlots
}

func (e *Editor) ensureExtent(layout *types.Layout, g Gesture) {
	if g.Source >= layout.Size() || g.Target >= layout.Size() {
		layout.Resize(max(g.Source, g.Target) + 1)
	}
}

// ActiveCandidateIndex maps the id shown in a slot back to the index of the
// candidate it stands for. The shown id may be the candidate, its canonical
// form, its placeholder, or a variant or variant placeholder. When nothing
// matches the lowest priority candidate is assumed.
func (e *Editor) ActiveCandidateIndex(candidates []int, shown int) int {
	if len(candidates) == 0 {
		return 0
	}

	canonical := e.resolver.Canonicalize(shown)
	for i, c := range candidates {
		if c == shown || c == canonical {
			return i
		}
		if ph := e.resolver.Item(c).PlaceholderID; ph != types.NoItem && ph == shown {
			return i
		}
		for _, v := range e.resolver.Variants(e.resolver.VariantBase(c)) {
			if v == shown || v == canonical {
				return i
			}
			if ph := e.resolver.Item(v).PlaceholderID; ph != types.NoItem && ph == shown {
				return i
			}
		}
	}
	return len(candidates) - 1
}

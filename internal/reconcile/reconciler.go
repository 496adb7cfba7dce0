package reconcile

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Withdraw quantity types.
const (
	QuantityOne = iota
	QuantityFive
	QuantityTen
	QuantityRequested
	QuantityAll
)

// Options are the user preferences that shape per-cell actions.
type Options struct {
	QuantityType       int  `json:"quantity_type" mapstructure:"quantity_type"`
	RequestedQuantity  int  `json:"requested_quantity" mapstructure:"requested_quantity"`
	BankOps            bool `json:"bank_ops" mapstructure:"bank_ops"`
	LeavePlaceholders  bool `json:"leave_placeholders" mapstructure:"leave_placeholders"`
	AllowModifications bool `json:"allow_modifications" mapstructure:"allow_modifications"`
}

// Reconciler decides, slot by slot, which possessed item a Layout shows.
type Reconciler struct {
	resolver  types.ItemResolver
	container types.Container
	secondary types.SecondaryStorage
	grid      Grid
	opts      Options
	l         logrus.FieldLogger
}

// New creates a Reconciler. container and secondary may be nil, in which
// case every quantity they would report is zero.
func New(l logrus.FieldLogger, resolver types.ItemResolver, container types.Container,
	secondary types.SecondaryStorage, grid Grid, opts Options) *Reconciler {
	return &Reconciler{
		resolver:  resolver,
		container: container,
		secondary: secondary,
		grid:      grid.normalized(),
		opts:      opts,
		l:         l,
	}
}

// Grid returns the geometry used for rendered cells.
func (r *Reconciler) Grid() Grid {
	return r.grid
}

// pass holds the per-call matching state.
type pass struct {
	all       *Snapshot
	remaining *Snapshot
	claimed   map[int]bool
}

// available reports whether id is possessed and not yet shown by an
// earlier slot.
func (p *pass) available(id int) bool {
	return id != types.NoItem && p.all.Contains(id) && !p.claimed[id]
}

// Reconcile renders l against snap. Possessed items that no slot claims are
// appended to l in the first empty slots; the returned bool reports whether l
// was modified and so needs persisting. snap is not modified.
func (r *Reconciler) Reconcile(l *types.Layout, snap *Snapshot) (*RenderPlan, bool) {
	if l == nil {
		return nil, false
	}
	if snap == nil {
		snap = NewSnapshot()
	}

	log := r.l.WithField("tag", l.Tag())
	p := &pass{
		all:       snap,
		remaining: snap.Clone(),
		claimed:   make(map[int]bool),
	}

	// Positions are decided against the layout as it was on entry; l itself
	// grows while unlaid-out items are appended.
	layout := l.Slots()
	cells := make(map[int]SlotRender, len(layout))

	for pos, candidates := range layout {
		if candidates == nil {
			continue
		}

		// No id referenced by this slot is auto-added elsewhere.
		for _, c := range candidates {
			r.removeReals(p.remaining, c)
		}

		selected := types.NoItem
		for _, c := range candidates {
			if m := r.matchReal(p, c); m != types.NoItem {
				selected = m
				break
			}
		}
		if selected != types.NoItem {
			p.remaining.Remove(selected)
			p.claimed[selected] = true
			if ph := r.resolver.Item(selected).PlaceholderID; ph != types.NoItem {
				p.remaining.Remove(ph)
			}
			for _, c := range candidates {
				r.removePlaceholders(p.remaining, c)
			}
			cells[pos] = r.draw(selected, pos, false)
			continue
		}

		// Placeholders are searched lowest priority first.
		placeholder := types.NoItem
		for i := len(candidates) - 1; i >= 0; i-- {
			if m := r.matchPlaceholder(p, candidates[i]); m != types.NoItem {
				placeholder = m
				break
			}
		}
		if placeholder != types.NoItem {
			p.claimed[placeholder] = true
			for _, c := range candidates {
				r.removePlaceholders(p.remaining, c)
			}
			cells[pos] = r.draw(placeholder, pos, false)
			continue
		}

		cells[pos] = r.draw(candidates[len(candidates)-1], pos, true)
	}

	next := -1
	nextEmpty := func() int {
		for {
			next++
			if next >= len(layout) || layout[next] == nil {
				return next
			}
		}
	}

	modified := false
	for _, id := range p.remaining.IDs() {
		canonical := r.resolver.Canonicalize(id)
		if canonical == types.NoItem {
			log.Debugf("Possession [%d] cannot be laid out, skipping.", id)
			continue
		}
		pos := nextEmpty()
		cells[pos] = r.draw(id, pos, false)
		log.Debugf("Possession [%d] %s is not in the layout, adding [%d] at [%d].",
			id, r.describe(id), canonical, pos)
		l.Add(canonical)
		modified = true
	}

	total := max(l.Size(), r.grid.MinSlots)
	if rem := total % r.grid.ItemsPerRow; rem != 0 {
		total += r.grid.ItemsPerRow - rem
	}
	for pos := nextEmpty(); pos < total; pos = nextEmpty() {
		cells[pos] = r.draw(types.NoItem, pos, false)
	}

	plan := &RenderPlan{
		Tag:         l.Tag(),
		ItemsPerRow: r.grid.ItemsPerRow,
		Slots:       make([]SlotRender, total),
	}
	for pos := range plan.Slots {
		plan.Slots[pos] = cells[pos]
	}
	return plan, modified
}

// matchReal returns the possessed id that satisfies candidate: the exact id,
// then a member of its variant family, then a secondary storage form.
func (r *Reconciler) matchReal(p *pass, candidate int) int {
	if p.available(candidate) {
		return candidate
	}
	if base := r.resolver.VariantBase(candidate); base != candidate {
		for _, v := range r.resolver.Variants(base) {
			if p.available(v) {
				return v
			}
		}
	}
	if r.secondary != nil {
		if m := r.secondary.Match(candidate); m != types.NoItem && !p.claimed[m] {
			return m
		}
	}
	return types.NoItem
}

// matchPlaceholder returns the possessed placeholder for candidate or for a
// member of its variant family.
func (r *Reconciler) matchPlaceholder(p *pass, candidate int) int {
	if ph := r.resolver.Item(candidate).PlaceholderID; p.available(ph) {
		return ph
	}
	if base := r.resolver.VariantBase(candidate); base != candidate {
		for _, v := range r.resolver.Variants(base) {
			if ph := r.resolver.Item(v).PlaceholderID; p.available(ph) {
				return ph
			}
		}
	}
	return types.NoItem
}

func (r *Reconciler) removeReals(s *Snapshot, candidate int) {
	s.Remove(candidate)
	if base := r.resolver.VariantBase(candidate); base != candidate {
		for _, v := range r.resolver.Variants(base) {
			s.Remove(v)
		}
	}
}

func (r *Reconciler) removePlaceholders(s *Snapshot, candidate int) {
	if ph := r.resolver.Item(candidate).PlaceholderID; ph != types.NoItem {
		s.Remove(ph)
	}
	if base := r.resolver.VariantBase(candidate); base != candidate {
		for _, v := range r.resolver.Variants(base) {
			if ph := r.resolver.Item(v).PlaceholderID; ph != types.NoItem {
				s.Remove(ph)
			}
		}
	}
}

func (r *Reconciler) count(id int) (primary, secondary int) {
	if r.container != nil {
		primary = r.container.Count(id)
	}
	if r.secondary != nil {
		secondary = r.secondary.Count(id)
	}
	return primary, secondary
}

// draw renders id at idx. layoutOnly forces the layout placeholder form used
// when no possessed item satisfies the slot.
func (r *Reconciler) draw(id, idx int, layoutOnly bool) SlotRender {
	x, y := r.grid.Position(idx)
	cell := SlotRender{Pos: idx, X: x, Y: y}

	if id <= types.NoItem {
		cell.ItemID = types.NoItem
		cell.Mode = ModeEmpty
		return cell
	}
	info := r.resolver.Item(id)
	if info.Filler {
		cell.ItemID = types.NoItem
		cell.Mode = ModeEmpty
		return cell
	}

	primary, sec := r.count(id)
	qty := primary
	if qty <= 0 {
		qty = sec
	}
	fromSecondary := primary <= 0 && qty > 0
	if layoutOnly {
		qty = 0
	}

	cell.ItemID = id
	cell.Name = info.Name
	cell.Quantity = qty
	cell.QuantityMode = QuantityStackable
	cell.Draggable = true

	switch {
	case info.IsPlaceholder() && !layoutOnly:
		cell.Mode = ModePlaceholder
		cell.Opacity = PlaceholderOpacity
		cell.Actions = []Action{{Slot: 7, Label: "Release"}, {Slot: 9, Label: "Examine"}}
	case qty == 0:
		cell.Mode = ModeLayoutPlaceholder
		cell.Opacity = PlaceholderOpacity
		cell.QuantityMode = QuantityNever
		if r.opts.AllowModifications {
			cell.Actions = []Action{{Slot: 6, Label: ActionDuplicateItem}, {Slot: 7, Label: ActionRemoveLayout}}
		}
	default:
		cell.Mode = ModeItem
		if fromSecondary {
			cell.Mode = ModeSecondary
		}
		cell.Actions = r.withdrawActions(info, fromSecondary)
	}
	return cell
}

func (r *Reconciler) withdrawActions(info types.ItemInfo, fromSecondary bool) []Action {
	req := r.opts.RequestedQuantity

	var suffix string
	switch r.opts.QuantityType {
	case QuantityFive:
		suffix = "5"
	case QuantityTen:
		suffix = "10"
	case QuantityRequested:
		suffix = strconv.Itoa(max(1, req))
	case QuantityAll:
		suffix = "All"
	default:
		suffix = "1"
	}

	actions := []Action{{Slot: 0, Label: "Withdraw-" + suffix}}
	if r.opts.QuantityType != QuantityOne {
		actions = append(actions, Action{Slot: 1, Label: "Withdraw-1"})
	}
	actions = append(actions,
		Action{Slot: 2, Label: "Withdraw-5"},
		Action{Slot: 3, Label: "Withdraw-10"},
	)
	if req > 0 {
		actions = append(actions, Action{Slot: 4, Label: "Withdraw-" + strconv.Itoa(req)})
	}
	actions = append(actions,
		Action{Slot: 5, Label: "Withdraw-X"},
		Action{Slot: 6, Label: "Withdraw-All"},
		Action{Slot: 7, Label: "Withdraw-All-but-1"},
	)
	if fromSecondary {
		return actions
	}
	if r.opts.BankOps && info.Autocharge {
		actions = append(actions, Action{Slot: 8, Label: "Configure-Charges"})
	}
	if !r.opts.LeavePlaceholders {
		actions = append(actions, Action{Slot: 9, Label: "Placeholder"})
	}
	return append(actions, Action{Slot: 10, Label: "Examine"})
}

func (r *Reconciler) describe(id int) string {
	info := r.resolver.Item(id)
	if info.IsPlaceholder() {
		return info.Name + " (placeholder)"
	}
	return info.Name
}

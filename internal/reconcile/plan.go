package reconcile

import (
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Grid is the display geometry of the item area.
type Grid struct {
	ItemsPerRow int `json:"items_per_row" mapstructure:"items_per_row"`
	ItemWidth   int `json:"item_width" mapstructure:"item_width"`
	ItemHeight  int `json:"item_height" mapstructure:"item_height"`
	XPadding    int `json:"x_padding" mapstructure:"x_padding"`
	YPadding    int `json:"y_padding" mapstructure:"y_padding"`
	StartX      int `json:"start_x" mapstructure:"start_x"`

	// MinSlots is the least number of cells drawn, empty markers included.
	MinSlots int `json:"min_slots" mapstructure:"min_slots"`
}

// Default grid geometry.
const (
	DefaultItemsPerRow = 8
	DefaultItemWidth   = 36
	DefaultItemHeight  = 32
	DefaultXPadding    = 12
	DefaultYPadding    = 4
	DefaultStartX      = 51
)

// DefaultGrid returns the standard 8-wide item grid.
func DefaultGrid() Grid {
	return Grid{
		ItemsPerRow: DefaultItemsPerRow,
		ItemWidth:   DefaultItemWidth,
		ItemHeight:  DefaultItemHeight,
		XPadding:    DefaultXPadding,
		YPadding:    DefaultYPadding,
		StartX:      DefaultStartX,
	}
}

func (g Grid) normalized() Grid {
	if g.ItemsPerRow <= 0 {
		g.ItemsPerRow = DefaultItemsPerRow
	}
	if g.ItemWidth <= 0 {
		g.ItemWidth = DefaultItemWidth
	}
	if g.ItemHeight <= 0 {
		g.ItemHeight = DefaultItemHeight
	}
	return g
}

// Position returns the screen offset of cell idx.
func (g Grid) Position(idx int) (x, y int) {
	g = g.normalized()
	x = (idx%g.ItemsPerRow)*(g.ItemWidth+g.XPadding) + g.StartX
	y = (idx / g.ItemsPerRow) * (g.ItemHeight + g.YPadding)
	return x, y
}

// Mode describes what a rendered cell shows.
type Mode string

// Display modes.
const (
	ModeItem              Mode = "item"
	ModeSecondary         Mode = "secondary"
	ModePlaceholder       Mode = "placeholder"
	ModeLayoutPlaceholder Mode = "layout-placeholder"
	ModeEmpty             Mode = "empty"
)

// QuantityMode controls whether the quantity overlay is drawn.
type QuantityMode string

// Quantity modes.
const (
	QuantityStackable QuantityMode = "stackable"
	QuantityNever     QuantityMode = "never"
)

// Opacity of dimmed cells.
const PlaceholderOpacity = 120

// Action is one entry of a cell's interaction menu.
type Action struct {
	Slot  int    `json:"slot"`
	Label string `json:"label"`
}

// Layout placeholder action labels.
const (
	ActionDuplicateItem = "Duplicate-item"
	ActionRemoveLayout  = "Remove-layout"
)

// SlotRender is the render decision for one cell. Draggable reports whether
// the cell can start a drag; every cell, empty markers included, accepts
// drops.
type SlotRender struct {
	Pos          int          `json:"pos"`
	ItemID       int          `json:"item_id"`
	Name         string       `json:"name,omitempty"`
	Quantity     int          `json:"quantity"`
	QuantityMode QuantityMode `json:"quantity_mode,omitempty"`
	Mode         Mode         `json:"mode"`
	Opacity      int          `json:"opacity"`
	Actions      []Action     `json:"actions,omitempty"`
	X            int          `json:"x"`
	Y            int          `json:"y"`
	Draggable    bool         `json:"draggable"`
}

// RenderPlan is the ordered list of cells for one reconciliation, one per
// position from 0.
type RenderPlan struct {
	Tag         string       `json:"tag"`
	ItemsPerRow int          `json:"items_per_row"`
	Slots       []SlotRender `json:"slots"`
}

// At returns the cell at pos.
func (p *RenderPlan) At(pos int) (SlotRender, bool) {
	if p == nil || pos < 0 || pos >= len(p.Slots) {
		return SlotRender{}, false
	}
	return p.Slots[pos], true
}

// Displayed returns the item id shown at pos, or types.NoItem.
func (p *RenderPlan) Displayed(pos int) int {
	s, ok := p.At(pos)
	if !ok {
		return types.NoItem
	}
	return s.ItemID
}

// Rows returns the number of grid rows the plan covers.
func (p *RenderPlan) Rows() int {
	if p == nil || p.ItemsPerRow <= 0 {
		return 0
	}
	return (len(p.Slots) + p.ItemsPerRow - 1) / p.ItemsPerRow
}

// LastFilledRow returns the row holding the last non-empty cell, or -1 when
// every cell is empty.
func (p *RenderPlan) LastFilledRow() int {
	if p == nil || p.ItemsPerRow <= 0 {
		return -1
	}
	for i := len(p.Slots) - 1; i >= 0; i-- {
		if p.Slots[i].Mode != ModeEmpty {
			return i / p.ItemsPerRow
		}
	}
	return -1
}

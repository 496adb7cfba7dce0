// Package render turns a reconcile.RenderPlan into terminal output: a fixed
// grid of styled cells, or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mesh-intelligence/taglayout/internal/reconcile"
)

// DefaultCellWidth is the terminal width of one cell.
const DefaultCellWidth = 16

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	itemStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
	secondaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")).Faint(true)
	layoutOnlyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")).Faint(true).Italic(true)
	emptyStyle       = lipgloss.NewStyle()
	posStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
)

// Options control grid output.
type Options struct {
	// CellWidth is the width of each cell; zero means DefaultCellWidth.
	CellWidth int

	// KeepEmptyRows draws trailing rows that hold only empty markers.
	KeepEmptyRows bool

	// ShowPositions prefixes each cell with its layout position.
	ShowPositions bool
}

// Grid renders plan as rows of fixed-width cells. Real items are bold,
// placeholders dim and empty markers blank. Trailing empty rows are dropped
// unless opts.KeepEmptyRows is set.
func Grid(plan *reconcile.RenderPlan, opts Options) string {
	if plan == nil {
		return ""
	}
	width := opts.CellWidth
	if width <= 0 {
		width = DefaultCellWidth
	}

	rows := plan.Rows()
	if !opts.KeepEmptyRows {
		rows = plan.LastFilledRow() + 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(plan.Tag))
	b.WriteByte('\n')
	if rows == 0 {
		b.WriteString(placeholderStyle.Render("(empty)"))
		b.WriteByte('\n')
		return b.String()
	}

	for row := 0; row < rows; row++ {
		cells := make([]string, 0, plan.ItemsPerRow)
		for col := 0; col < plan.ItemsPerRow; col++ {
			pos := row*plan.ItemsPerRow + col
			slot, ok := plan.At(pos)
			if !ok {
				break
			}
			cells = append(cells, cell(slot, width, opts.ShowPositions))
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// cell renders one slot padded to width, with one column of spacing.
func cell(slot reconcile.SlotRender, width int, showPos bool) string {
	label := Label(slot)
	prefix := ""
	if showPos {
		prefix = posStyle.Render(fmt.Sprintf("%d:", slot.Pos))
	}
	avail := width - 1 - lipgloss.Width(prefix)
	if avail < 1 {
		avail = 1
	}
	label = ansi.Truncate(label, avail, "…")

	var styled string
	switch slot.Mode {
	case reconcile.ModeItem:
		styled = itemStyle.Render(label)
	case reconcile.ModeSecondary:
		styled = secondaryStyle.Render(label)
	case reconcile.ModePlaceholder:
		styled = placeholderStyle.Render(label)
	case reconcile.ModeLayoutPlaceholder:
		styled = layoutOnlyStyle.Render(label)
	default:
		styled = emptyStyle.Render(label)
	}
	return lipgloss.NewStyle().Width(width).Render(prefix + styled)
}

// Label returns the unstyled text for a slot: the item name, with its
// quantity when it stacks.
func Label(slot reconcile.SlotRender) string {
	if slot.Mode == reconcile.ModeEmpty {
		return ""
	}
	name := slot.Name
	if name == "" {
		name = fmt.Sprintf("#%d", slot.ItemID)
	}
	if slot.QuantityMode == reconcile.QuantityStackable && slot.Quantity > 1 {
		return fmt.Sprintf("%s x%d", name, slot.Quantity)
	}
	return name
}

// JSON writes plan as indented JSON.
func JSON(w io.Writer, plan *reconcile.RenderPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encoding render plan: %w", err)
	}
	return nil
}

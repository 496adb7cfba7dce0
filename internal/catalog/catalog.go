// Package catalog provides a file-backed item catalog and possession set
// for hosts that have no live item source, such as the taglayout CLI.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Catalog errors.
var (
	ErrInvalidItem   = errors.New("item id must not be negative")
	ErrDuplicateItem = errors.New("item is declared twice")
	ErrUnknownSlot   = errors.New("unknown equipment slot")
)

// ItemRecord is one entry of a catalog file.
type ItemRecord struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`

	// Placeholder is the id of this item's placeholder. For a placeholder
	// record (PlaceholderTemplate set) it is the real item id instead.
	Placeholder         *int `yaml:"placeholder,omitempty"`
	PlaceholderTemplate bool `yaml:"placeholder_template,omitempty"`

	NotedOf   *int `yaml:"noted_of,omitempty"`
	VariantOf *int `yaml:"variant_of,omitempty"`

	Stackable  bool `yaml:"stackable,omitempty"`
	Filler     bool `yaml:"filler,omitempty"`
	Autocharge bool `yaml:"autocharge,omitempty"`
}

type catalogFile struct {
	Items []ItemRecord `yaml:"items"`
}

// Catalog implements types.ItemResolver over a fixed set of records.
type Catalog struct {
	items    map[int]types.ItemInfo
	noted    map[int]int
	base     map[int]int
	families map[int][]int
}

// New builds a catalog from records. A real item naming a placeholder that
// has no record of its own gets one generated.
func New(records []ItemRecord) (*Catalog, error) {
	c := &Catalog{
		items:    make(map[int]types.ItemInfo, len(records)),
		noted:    make(map[int]int),
		base:     make(map[int]int),
		families: make(map[int][]int),
	}

	for _, r := range records {
		if r.ID < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidItem, r.ID)
		}
		if _, ok := c.items[r.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, r.ID)
		}
		info := types.ItemInfo{
			ID:                  r.ID,
			Name:                r.Name,
			PlaceholderID:       types.NoItem,
			PlaceholderTemplate: r.PlaceholderTemplate,
			Stackable:           r.Stackable,
			Filler:              r.Filler,
			Autocharge:          r.Autocharge,
		}
		if r.Placeholder != nil {
			info.PlaceholderID = *r.Placeholder
		}
		c.items[r.ID] = info

		if r.NotedOf != nil {
			c.noted[r.ID] = *r.NotedOf
		}
		if r.VariantOf != nil && *r.VariantOf != r.ID {
			c.base[r.ID] = *r.VariantOf
		}
	}

	for _, r := range records {
		info := c.items[r.ID]
		if info.PlaceholderTemplate || info.PlaceholderID < 0 {
			continue
		}
		if _, ok := c.items[info.PlaceholderID]; ok {
			continue
		}
		c.items[info.PlaceholderID] = types.ItemInfo{
			ID:                  info.PlaceholderID,
			Name:                info.Name,
			PlaceholderID:       info.ID,
			PlaceholderTemplate: true,
		}
	}

	// Families list the base first, then members in declaration order.
	for _, r := range records {
		b, ok := c.base[r.ID]
		if !ok {
			continue
		}
		if _, seen := c.families[b]; !seen {
			c.families[b] = []int{b}
		}
		c.families[b] = append(c.families[b], r.ID)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(f.Items)
}

// Load reads a YAML catalog file. An empty path yields an empty catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Item returns the record for id. Unknown ids have no placeholder.
func (c *Catalog) Item(id int) types.ItemInfo {
	if info, ok := c.items[id]; ok {
		return info
	}
	return types.ItemInfo{ID: id, Name: fmt.Sprintf("item %d", id), PlaceholderID: types.NoItem}
}

// Canonicalize unnotes and unplaceholders id.
func (c *Catalog) Canonicalize(id int) int {
	if id < 0 {
		return types.NoItem
	}
	if real, ok := c.noted[id]; ok {
		return real
	}
	if info := c.Item(id); info.IsPlaceholder() {
		return info.PlaceholderID
	}
	return id
}

// VariantBase returns the declared family base for id, or id.
func (c *Catalog) VariantBase(id int) int {
	if b, ok := c.base[id]; ok {
		return b
	}
	return id
}

// Variants returns the family rooted at base, base first.
func (c *Catalog) Variants(base int) []int {
	if f, ok := c.families[base]; ok {
		out := make([]int, len(f))
		copy(out, f)
		return out
	}
	return []int{base}
}

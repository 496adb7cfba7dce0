package catalog

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Container sizes.
const (
	EquipmentSize = 14
	InventorySize = 28
	RunePouchSize = 4
)

// equipmentSlots maps the slot names accepted in possession files.
var equipmentSlots = map[string]int{
	"head":   types.EquipHead,
	"cape":   types.EquipCape,
	"amulet": types.EquipAmulet,
	"weapon": types.EquipWeapon,
	"body":   types.EquipBody,
	"shield": types.EquipShield,
	"legs":   types.EquipLegs,
	"gloves": types.EquipGloves,
	"boots":  types.EquipBoots,
	"ring":   types.EquipRing,
	"ammo":   types.EquipAmmo,
}

// Stack is one filled bank slot.
type Stack struct {
	ID  int `yaml:"id"`
	Qty int `yaml:"qty"`
}

// StoredResource is one secondary storage entry. Forms lists other ids that
// are satisfied by this resource.
type StoredResource struct {
	ID    int   `yaml:"id"`
	Count int   `yaml:"count"`
	Forms []int `yaml:"forms,omitempty"`
}

// PossessionsFile is the YAML shape of a possession set.
type PossessionsFile struct {
	Bank      []Stack          `yaml:"bank"`
	Secondary []StoredResource `yaml:"secondary,omitempty"`
	Equipment map[string]int   `yaml:"equipment,omitempty"`
	Inventory []int            `yaml:"inventory,omitempty"`
	RunePouch *[]int           `yaml:"rune_pouch,omitempty"`
}

// Bank is the primary container: an ordered list of stacks. Placeholders
// occupy a slot with zero quantity.
type Bank struct {
	stacks []Stack
}

// NewBank returns a bank holding stacks in order.
func NewBank(stacks ...Stack) *Bank {
	return &Bank{stacks: slices.Clone(stacks)}
}

// Size returns the number of bank slots.
func (b *Bank) Size() int {
	return len(b.stacks)
}

// Item returns the id in slot.
func (b *Bank) Item(slot int) (int, bool) {
	if slot < 0 || slot >= len(b.stacks) || b.stacks[slot].ID < 0 {
		return types.NoItem, false
	}
	return b.stacks[slot].ID, true
}

// Count sums the quantity of id across all slots.
func (b *Bank) Count(id int) int {
	n := 0
	for _, s := range b.stacks {
		if s.ID == id {
			n += s.Qty
		}
	}
	return n
}

// Slots is a fixed-size container such as the equipment or inventory, where
// each slot holds a single item.
type Slots struct {
	ids []int
}

// NewSlots returns a container of size slots with ids copied in.
func NewSlots(size int, ids []int) *Slots {
	s := &Slots{ids: make([]int, max(size, len(ids)))}
	for i := range s.ids {
		s.ids[i] = types.NoItem
	}
	copy(s.ids, ids)
	return s
}

// Size returns the slot count.
func (s *Slots) Size() int {
	return len(s.ids)
}

// Item returns the id in slot. Ids below 1 are empty.
func (s *Slots) Item(slot int) (int, bool) {
	if slot < 0 || slot >= len(s.ids) || s.ids[slot] <= 0 {
		return types.NoItem, false
	}
	return s.ids[slot], true
}

// Count returns how many slots hold id.
func (s *Slots) Count(id int) int {
	n := 0
	for _, v := range s.ids {
		if v == id {
			n++
		}
	}
	return n
}

// Storage implements types.SecondaryStorage.
type Storage struct {
	entries []StoredResource
}

// NewStorage returns storage holding entries in order.
func NewStorage(entries ...StoredResource) *Storage {
	return &Storage{entries: slices.Clone(entries)}
}

// Count returns the stored count for id.
func (s *Storage) Count(id int) int {
	for _, e := range s.entries {
		if e.ID == id {
			return e.Count
		}
	}
	return 0
}

// Match returns the stored id that satisfies id, or types.NoItem.
func (s *Storage) Match(id int) int {
	for _, e := range s.entries {
		if e.Count <= 0 {
			continue
		}
		if e.ID == id || slices.Contains(e.Forms, id) {
			return e.ID
		}
	}
	return types.NoItem
}

// Items returns stored ids with a positive count.
func (s *Storage) Items() []int {
	var out []int
	for _, e := range s.entries {
		if e.Count > 0 {
			out = append(out, e.ID)
		}
	}
	return out
}

// Possessions implements types.Possessions and also exposes the bank and
// secondary storage used for reconciliation.
type Possessions struct {
	bank      *Bank
	secondary *Storage
	equipment *Slots
	inventory *Slots
	runePouch []int
	hasPouch  bool
}

// NewPossessions builds a possession set from its file form.
func NewPossessions(f PossessionsFile) (*Possessions, error) {
	p := &Possessions{
		bank:      NewBank(f.Bank...),
		secondary: NewStorage(f.Secondary...),
		inventory: NewSlots(InventorySize, f.Inventory),
	}

	equip := make([]int, EquipmentSize)
	for i := range equip {
		equip[i] = types.NoItem
	}
	names := make([]string, 0, len(f.Equipment))
	for name := range f.Equipment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slot, ok := equipmentSlots[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
		}
		equip[slot] = f.Equipment[name]
	}
	p.equipment = NewSlots(EquipmentSize, equip)

	if f.RunePouch != nil {
		p.hasPouch = true
		p.runePouch = make([]int, RunePouchSize)
		for i := range p.runePouch {
			p.runePouch[i] = types.NoItem
		}
		copy(p.runePouch, *f.RunePouch)
	}
	return p, nil
}

// ParsePossessions decodes a YAML possession document.
func ParsePossessions(data []byte) (*Possessions, error) {
	var f PossessionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing possessions: %w", err)
	}
	return NewPossessions(f)
}

// LoadPossessions reads a YAML possession file. An empty path yields an
// empty possession set.
func LoadPossessions(path string) (*Possessions, error) {
	if path == "" {
		return NewPossessions(PossessionsFile{})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading possessions %s: %w", path, err)
	}
	return ParsePossessions(data)
}

// Bank returns the primary container.
func (p *Possessions) Bank() *Bank {
	return p.bank
}

// Secondary returns the secondary storage.
func (p *Possessions) Secondary() *Storage {
	return p.secondary
}

// Equipment returns the worn items.
func (p *Possessions) Equipment() types.Container {
	return p.equipment
}

// Inventory returns the carried items.
func (p *Possessions) Inventory() types.Container {
	return p.inventory
}

// RunePouch returns the pouch contents when a pouch is carried.
func (p *Possessions) RunePouch() ([]int, bool) {
	if !p.hasPouch {
		return nil, false
	}
	return slices.Clone(p.runePouch), true
}

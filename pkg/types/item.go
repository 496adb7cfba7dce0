// Host-provided item lookups consumed by the layout engine.
package types

// NoItem is the sentinel item id for "nothing" (empty slot, no placeholder,
// no match).
const NoItem = -1

// ItemInfo is the metadata the layout engine needs about a single item id.
type ItemInfo struct {
	// ID is the item id this record describes.
	ID int

	// Name is the display name.
	Name string

	// PlaceholderID is the id of this item's zero-quantity placeholder, or
	// NoItem when the item has none.
	PlaceholderID int

	// PlaceholderTemplate is true when ID itself is a placeholder (a
	// "remembered, zero quantity" entry held by the container).
	PlaceholderTemplate bool

	// Stackable reports whether quantities of this item stack in one slot.
	Stackable bool

	// Filler marks container padding items that are never laid out.
	Filler bool

	// Autocharge marks items that support the Configure-Charges action.
	Autocharge bool
}

// IsPlaceholder reports whether the item is a true container placeholder.
func (i ItemInfo) IsPlaceholder() bool {
	return i.PlaceholderTemplate && i.PlaceholderID >= 0
}

// ItemResolver maps item ids onto their identity relations.
// Implementations must be deterministic for the duration of a reconciliation.
type ItemResolver interface {
	// Item returns metadata for id. Unknown ids return an ItemInfo with
	// PlaceholderID set to NoItem.
	Item(id int) ItemInfo

	// Canonicalize maps noted and placeholder ids back to the real item id.
	// Returns NoItem when id cannot be laid out.
	Canonicalize(id int) int

	// VariantBase returns the representative id of id's variant family, or
	// id itself when it has no family.
	VariantBase(id int) int

	// Variants returns every member of the family rooted at base, including
	// base itself, in a stable order.
	Variants(base int) []int
}

// Container is a live, indexable collection of possessed items.
type Container interface {
	// Size returns the number of slots in the container.
	Size() int

	// Item returns the item id held at slot and whether the slot is filled.
	Item(slot int) (int, bool)

	// Count returns the total quantity of id held by the container.
	Count(id int) int
}

// SecondaryStorage tracks bulk resources that live outside the primary
// container but are addressable by item id.
type SecondaryStorage interface {
	// Count returns the stored quantity for id.
	Count(id int) int

	// Match returns the id under which id (or one of its stored forms) is
	// available, or NoItem.
	Match(id int) int

	// Items returns the ids with a positive stored count, in a stable order.
	Items() []int
}

// Equipment slot indices used by the Default auto layout.
const (
	EquipHead   = 0
	EquipCape   = 1
	EquipAmulet = 2
	EquipWeapon = 3
	EquipBody   = 4
	EquipShield = 5
	EquipLegs   = 7
	EquipGloves = 9
	EquipBoots  = 10
	EquipRing   = 12
	EquipAmmo   = 13
)

// Possessions exposes the containers an auto layout generator reads.
// Any accessor may return nil when that container is unavailable.
type Possessions interface {
	Equipment() Container
	Inventory() Container

	// RunePouch returns the rune item ids held in the pouch, in pouch
	// order. ok is false when no pouch is carried.
	RunePouch() (runes []int, ok bool)
}

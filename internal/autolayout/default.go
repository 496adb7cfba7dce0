package autolayout

import (
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// DefaultName is the name the Default generator is registered under.
const DefaultName = "Default"

// Layout regions managed by the Default generator.
const (
	inventoryStart = 4
	runePouchStart = 40
	reinsertStart  = 56
	rowStride      = 8
	middleColumn   = 3
	equipmentRows  = 5
)

// equipmentTemplate is the 3-wide arrangement of worn items, row by row.
var equipmentTemplate = []int{
	types.NoItem, types.EquipHead, types.NoItem,
	types.EquipCape, types.EquipAmulet, types.EquipAmmo,
	types.EquipWeapon, types.EquipBody, types.EquipShield,
	types.NoItem, types.EquipLegs, types.NoItem,
	types.EquipGloves, types.EquipBoots, types.EquipRing,
}

// Default lays out worn equipment on the left, the inventory on the right
// and the rune pouch beneath the equipment. Anything it displaces is moved
// below the managed region unless it is already laid out elsewhere.
type Default struct {
	possessions types.Possessions
	resolver    types.ItemResolver
	l           logrus.FieldLogger
}

// NewDefault creates the Default generator over possessions.
func NewDefault(l logrus.FieldLogger, possessions types.Possessions, resolver types.ItemResolver) *Default {
	return &Default{possessions: possessions, resolver: resolver, l: l}
}

// Generate returns a new layout; previous is not modified.
func (d *Default) Generate(previous *types.Layout) *types.Layout {
	var l *types.Layout
	if previous == nil {
		l = types.NewLayout("")
	} else {
		l = previous.Clone()
	}

	var removed []int
	place := func(id, pos int) {
		if old := l.Primary(pos); old != types.NoItem {
			removed = append(removed, old)
		}
		if id != types.NoItem {
			id = d.resolver.Canonicalize(id)
		}
		l.SetPrimary(id, pos)
	}

	var equipment, inventory types.Container
	if d.possessions != nil {
		equipment = d.possessions.Equipment()
		inventory = d.possessions.Inventory()
	}

	if equipment != nil {
		base := 0
		for pos, slot := range equipmentTemplate {
			if pos > 0 && pos%3 == 0 {
				base += rowStride
			}
			place(itemAt(equipment, slot), base+pos%3)
		}
	}

	if inventory != nil {
		base := inventoryStart
		for pos := 0; pos < inventory.Size(); pos++ {
			if pos > 0 && pos%4 == 0 {
				base += rowStride
			}
			place(itemAt(inventory, pos), base+pos%4)
		}
	}

	if d.possessions != nil {
		if runes, ok := d.possessions.RunePouch(); ok {
			for i, id := range runes {
				if id > 0 {
					place(id, runePouchStart+i)
				}
			}
		}
	}

	for row := 0; row < equipmentRows; row++ {
		pos := row*rowStride + middleColumn
		if old := l.Primary(pos); old != types.NoItem {
			removed = append(removed, old)
			l.RemoveAt(pos)
		}
	}

	pos := reinsertStart
	for _, id := range removed {
		if l.Count(id) == 0 {
			d.l.Debugf("Auto layout displaced [%d], moving it to [%d].", id, pos)
			l.AddAfter(id, pos)
			pos++
		}
	}
	return l
}

func itemAt(c types.Container, slot int) int {
	if c == nil || slot < 0 {
		return types.NoItem
	}
	id, ok := c.Item(slot)
	if !ok {
		return types.NoItem
	}
	return id
}

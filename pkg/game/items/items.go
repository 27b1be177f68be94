// Package items provides the item definitions, loot tables, and shop
// wares the room events draw from. Tables are plain data keyed by name;
// callers do not depend on any item's internal structure beyond the Item
// type itself.
package items

import (
	"fmt"
	"math/rand"
)

// Slot is where an item is equipped or stored
type Slot string

// Item slots
const (
	SlotWeapon     Slot = "weapon"
	SlotArmor      Slot = "armor"
	SlotAccessory  Slot = "accessory"
	SlotConsumable Slot = "consumable"
	SlotTrinket    Slot = "trinket"
)

// Item is one item instance. Power scales with the floor it dropped on.
type Item struct {
	Name  string `json:"name"`
	Slot  Slot   `json:"slot"`
	Power int    `json:"power"`
	Value int    `json:"value"`
	Epic  bool   `json:"epic,omitempty"`
}

// template is a loot table row before floor scaling
type template struct {
	name  string
	slot  Slot
	power int
	value int
}

// Loot tables. Each room event names the table it draws from.
var lootTables = map[string][]template{
	"treasure": {
		{"Rusted Sword", SlotWeapon, 3, 12},
		{"Leather Cuirass", SlotArmor, 2, 10},
		{"Traveler's Charm", SlotAccessory, 1, 8},
		{"Healing Draught", SlotConsumable, 25, 15},
		{"Silver Ring", SlotTrinket, 0, 20},
	},
	"chest_good": {
		{"Steel Blade", SlotWeapon, 6, 30},
		{"Chainmail Hauberk", SlotArmor, 5, 28},
		{"Amulet of Vigor", SlotAccessory, 3, 25},
		{"Greater Healing Draught", SlotConsumable, 50, 35},
	},
	"quest_reward": {
		{"Seeker's Brand", SlotWeapon, 8, 45},
		{"Warded Plate", SlotArmor, 7, 42},
		{"Luckstone", SlotTrinket, 0, 60},
	},
	"boss": {
		{"Champion's Greatsword", SlotWeapon, 10, 70},
		{"Bulwark of the Deep", SlotArmor, 9, 65},
		{"Sigil of Dominion", SlotAccessory, 6, 55},
	},
}

// EpicUniques are the three epic meta-progression items, one per slot.
// Collecting all three unlocks the final boss.
var EpicUniques = map[Slot]Item{
	SlotWeapon:    {Name: "Spireheart Blade", Slot: SlotWeapon, Power: 25, Value: 500, Epic: true},
	SlotArmor:     {Name: "Aegis of the Deep Root", Slot: SlotArmor, Power: 22, Value: 480, Epic: true},
	SlotAccessory: {Name: "Eye of the Last Floor", Slot: SlotAccessory, Power: 18, Value: 450, Epic: true},
}

// TableNames returns the known loot table names
func TableNames() []string {
	names := make([]string, 0, len(lootTables))
	for name := range lootTables {
		names = append(names, name)
	}
	return names
}

// GenerateLoot rolls 1-2 items from the named table, scaled by floor.
// Unknown table names produce no loot.
func GenerateLoot(table string, floor int, rng *rand.Rand) []Item {
	rows, ok := lootTables[table]
	if !ok || len(rows) == 0 {
		return nil
	}
	if floor < 1 {
		floor = 1
	}

	count := 1 + rng.Intn(2)
	loot := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		row := rows[rng.Intn(len(rows))]
		loot = append(loot, Item{
			Name:  row.name,
			Slot:  row.slot,
			Power: row.power + floor/2,
			Value: row.value + floor*2,
		})
	}
	return loot
}

// RollGold returns a gold amount for the given floor
func RollGold(floor int, rng *rand.Rand) int {
	if floor < 1 {
		floor = 1
	}
	return 5 + floor*3 + rng.Intn(10+floor*2)
}

// Ware is a shop listing
type Ware struct {
	Item  Item
	Price int
}

// ShopWares returns the wares a store room offers on the given floor
func ShopWares(floor int) []Ware {
	if floor < 1 {
		floor = 1
	}
	wares := []Ware{
		{Item{Name: "Healing Draught", Slot: SlotConsumable, Power: 25, Value: 15}, 20 + floor},
		{Item{Name: "Forged Blade", Slot: SlotWeapon, Power: 4 + floor/2, Value: 25}, 40 + floor*3},
		{Item{Name: "Reinforced Mail", Slot: SlotArmor, Power: 3 + floor/2, Value: 22}, 35 + floor*3},
	}
	return wares
}

// Describe renders an item for notifications and the shop listing
func Describe(i Item) string {
	if i.Power > 0 {
		return fmt.Sprintf("%s (%s +%d)", i.Name, i.Slot, i.Power)
	}
	return fmt.Sprintf("%s (%s)", i.Name, i.Slot)
}

package items

import (
	"math/rand"
	"testing"
)

func TestGenerateLoot_KnownTables(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, table := range TableNames() {
		loot := GenerateLoot(table, 3, rng)
		if len(loot) < 1 || len(loot) > 2 {
			t.Errorf("table %q: %d items, want 1-2", table, len(loot))
		}
		for _, item := range loot {
			if item.Name == "" || item.Slot == "" {
				t.Errorf("table %q produced incomplete item %+v", table, item)
			}
		}
	}
}

func TestGenerateLoot_UnknownTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if loot := GenerateLoot("no_such_table", 1, rng); loot != nil {
		t.Errorf("unknown table should produce no loot, got %v", loot)
	}
}

func TestGenerateLoot_FloorScaling(t *testing.T) {
	shallow := GenerateLoot("treasure", 1, rand.New(rand.NewSource(9)))
	deep := GenerateLoot("treasure", 20, rand.New(rand.NewSource(9)))

	// Same seed rolls the same rows; the deep copies must be worth more
	for i := range shallow {
		if deep[i].Value <= shallow[i].Value {
			t.Errorf("item %d: floor 20 value %d not above floor 1 value %d",
				i, deep[i].Value, shallow[i].Value)
		}
	}
}

func TestEpicUniques_CoverAllSlots(t *testing.T) {
	for _, slot := range []Slot{SlotWeapon, SlotArmor, SlotAccessory} {
		item, ok := EpicUniques[slot]
		if !ok {
			t.Errorf("missing epic unique for slot %s", slot)
			continue
		}
		if !item.Epic {
			t.Errorf("epic unique %q not flagged epic", item.Name)
		}
		if item.Slot != slot {
			t.Errorf("epic unique %q has slot %s, want %s", item.Name, item.Slot, slot)
		}
	}
}

func TestRollGold_Positive(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for floor := 1; floor <= 30; floor += 7 {
		if gold := RollGold(floor, rng); gold <= 0 {
			t.Errorf("floor %d rolled %d gold", floor, gold)
		}
	}
}

func TestShopWares_NotEmpty(t *testing.T) {
	wares := ShopWares(10)
	if len(wares) == 0 {
		t.Fatal("store floors must offer wares")
	}
	for _, w := range wares {
		if w.Price <= 0 {
			t.Errorf("ware %q has non-positive price %d", w.Item.Name, w.Price)
		}
	}
}

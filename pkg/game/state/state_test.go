package state

import (
	"testing"

	"deepspire/pkg/game/items"
)

func TestHealAndDamageBounds(t *testing.T) {
	g := NewGame(1)

	if got := g.Damage(g.Player.MaxHealth * 2); got != g.Player.MaxHealth-1 {
		t.Errorf("overkill damage should stop at 1 HP, dealt %d", got)
	}
	if g.Player.Health != 1 {
		t.Errorf("health = %d, want 1", g.Player.Health)
	}

	if got := g.Heal(g.Player.MaxHealth * 2); got != g.Player.MaxHealth-1 {
		t.Errorf("overheal should cap at max, healed %d", got)
	}
	if g.Player.Health != g.Player.MaxHealth {
		t.Errorf("health = %d, want %d", g.Player.Health, g.Player.MaxHealth)
	}

	if g.Heal(10) != 0 {
		t.Error("healing at full health should report 0")
	}
}

func TestGoldSpending(t *testing.T) {
	g := NewGame(1)
	g.AddGold(50)

	if g.SpendGold(60) {
		t.Error("spending more gold than held should fail")
	}
	if !g.SpendGold(50) {
		t.Error("spending exactly the held gold should succeed")
	}
	if g.Player.Gold != 0 {
		t.Errorf("gold = %d, want 0", g.Player.Gold)
	}
}

func TestGainExperienceLevelsUp(t *testing.T) {
	g := NewGame(1)
	g.Player.Health = 50
	startMax := g.Player.MaxHealth
	startAttack := g.Player.Attack

	g.GainExperience(100)

	if g.Player.Level != 2 {
		t.Fatalf("level = %d, want 2", g.Player.Level)
	}
	if g.Player.MaxHealth != startMax+10 {
		t.Errorf("max health = %d, want %d", g.Player.MaxHealth, startMax+10)
	}
	if g.Player.Health != g.Player.MaxHealth {
		t.Error("level up should fully heal")
	}
	if g.Player.Attack != startAttack+2 {
		t.Errorf("attack = %d, want %d", g.Player.Attack, startAttack+2)
	}
}

func TestEpicProgress(t *testing.T) {
	g := NewGame(1)

	if g.EpicComplete() {
		t.Error("fresh game should not have the epic set complete")
	}
	if len(g.MissingEpicSlots()) != len(EpicSlots) {
		t.Error("fresh game should be missing every epic slot")
	}

	for _, slot := range EpicSlots {
		g.AddItem(items.EpicUniques[slot])
	}

	if !g.EpicComplete() {
		t.Error("holding every unique should complete the set")
	}
	if len(g.MissingEpicSlots()) != 0 {
		t.Error("no slots should remain missing")
	}
}

func TestMessageLogCapped(t *testing.T) {
	g := NewGame(1)
	for i := 0; i < 20; i++ {
		g.AddMessage("x")
	}
	if len(g.Messages) > 6 {
		t.Errorf("message log holds %d entries, cap is 6", len(g.Messages))
	}

	g.ClearMessages()
	if len(g.Messages) != 0 {
		t.Error("ClearMessages should empty the log")
	}
}

func TestObserversReceiveEvents(t *testing.T) {
	g := NewGame(1)
	var seen []Event
	g.Subscribe(func(e Event) { seen = append(seen, e) })

	g.Publish(EventMoved, "1,2")
	g.Publish(EventLoot, "chest")

	if len(seen) != 2 {
		t.Fatalf("observer saw %d events, want 2", len(seen))
	}
	if seen[0].Kind != EventMoved || seen[1].Kind != EventLoot {
		t.Errorf("events out of order: %v", seen)
	}
}

// Package state holds the owned game state: the active floor grid, the
// player, and the message/event surfaces other packages observe. There is
// no package-level singleton; callers construct a Game and pass it
// explicitly.
package state

import (
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/items"
)

// Epic loot slots; collecting all three unlocks the final boss
var EpicSlots = []items.Slot{items.SlotWeapon, items.SlotArmor, items.SlotAccessory}

// EventKind classifies state-change events published to observers
type EventKind string

// Event kinds
const (
	EventMoved         EventKind = "moved"
	EventFloorAdvanced EventKind = "floor_advanced"
	EventPlayerHurt    EventKind = "player_hurt"
	EventPlayerHealed  EventKind = "player_healed"
	EventLoot          EventKind = "loot"
	EventGameWon       EventKind = "game_won"
)

// Event is a state-change notification
type Event struct {
	Kind    EventKind
	Message string
}

// Observer receives state-change events
type Observer func(Event)

// Player is the player's position and progression state
type Player struct {
	X int
	Y int

	Health    int
	MaxHealth int

	Attack     int
	Gold       int
	Experience int
	Level      int

	Inventory []items.Item
}

// Game represents one running game
type Game struct {
	Grid  *dungeon.Grid
	Floor int

	Player Player

	// RNG drives gameplay rolls (event chances, loot). Floor generation
	// uses its own seeded source; see setup.GenerateFloor.
	RNG *rand.Rand

	// EpicLoot tracks which epic unique slots the player owns
	EpicLoot mapset.Set[items.Slot]

	Won bool

	Messages []string

	observers []Observer
}

// Base player stats
const (
	baseHealth = 100
	baseAttack = 10
)

// NewGame creates a new game instance on floor 1 with a fresh player.
// A zero seed falls back to the clock.
func NewGame(seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		Floor: 1,
		Player: Player{
			Health:    baseHealth,
			MaxHealth: baseHealth,
			Attack:    baseAttack,
			Level:     1,
		},
		RNG:      rand.New(rand.NewSource(seed)),
		EpicLoot: mapset.New[items.Slot](),
	}
}

// Subscribe registers an observer for state-change events
func (g *Game) Subscribe(fn Observer) {
	g.observers = append(g.observers, fn)
}

// Publish delivers an event to all observers
func (g *Game) Publish(kind EventKind, message string) {
	for _, fn := range g.observers {
		fn(Event{Kind: kind, Message: message})
	}
}

// AddMessage appends a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 6
	g.Messages = append(g.Messages, msg)
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears the message log
func (g *Game) ClearMessages() {
	g.Messages = nil
}

// CurrentRoom returns the room the player occupies, or nil when no floor
// is active.
func (g *Game) CurrentRoom() *dungeon.Room {
	if g.Grid == nil {
		return nil
	}
	return g.Grid.RoomAt(g.Player.X, g.Player.Y)
}

// Heal restores up to amount health, capped at max. Returns the amount
// actually restored.
func (g *Game) Heal(amount int) int {
	p := &g.Player
	if amount <= 0 || p.Health >= p.MaxHealth {
		return 0
	}
	healed := amount
	if p.Health+healed > p.MaxHealth {
		healed = p.MaxHealth - p.Health
	}
	p.Health += healed
	g.Publish(EventPlayerHealed, "")
	return healed
}

// Damage removes health, never dropping below 1: roguelike runs end in
// combat, not from floor hazards.
func (g *Game) Damage(amount int) int {
	p := &g.Player
	if amount <= 0 {
		return 0
	}
	dealt := amount
	if p.Health-dealt < 1 {
		dealt = p.Health - 1
	}
	if dealt <= 0 {
		return 0
	}
	p.Health -= dealt
	g.Publish(EventPlayerHurt, "")
	return dealt
}

// AddGold credits gold to the player
func (g *Game) AddGold(amount int) {
	if amount > 0 {
		g.Player.Gold += amount
	}
}

// SpendGold debits gold; returns false without change when the player
// cannot afford the amount.
func (g *Game) SpendGold(amount int) bool {
	if amount < 0 || g.Player.Gold < amount {
		return false
	}
	g.Player.Gold -= amount
	return true
}

// AddItem puts an item into the player's inventory, tracking epic
// progression for epic uniques.
func (g *Game) AddItem(item items.Item) {
	g.Player.Inventory = append(g.Player.Inventory, item)
	if item.Epic {
		g.EpicLoot.Put(item.Slot)
	}
}

// GainExperience credits experience and levels the player up every 100
// experience, boosting health and attack.
func (g *Game) GainExperience(amount int) {
	if amount <= 0 {
		return
	}
	p := &g.Player
	p.Experience += amount
	for p.Experience >= p.Level*100 {
		p.Experience -= p.Level * 100
		p.Level++
		p.MaxHealth += 10
		p.Health = p.MaxHealth
		p.Attack += 2
	}
}

// EpicComplete reports whether all epic unique slots are collected
func (g *Game) EpicComplete() bool {
	for _, slot := range EpicSlots {
		if !g.EpicLoot.Has(slot) {
			return false
		}
	}
	return true
}

// MissingEpicSlots lists the epic slots still to collect
func (g *Game) MissingEpicSlots() []items.Slot {
	var missing []items.Slot
	for _, slot := range EpicSlots {
		if !g.EpicLoot.Has(slot) {
			missing = append(missing, slot)
		}
	}
	return missing
}

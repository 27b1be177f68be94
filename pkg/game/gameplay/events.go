package gameplay

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/engine/sched"
	"deepspire/pkg/game/combat"
	"deepspire/pkg/game/items"
	"deepspire/pkg/game/state"
)

// Severity classifies notifications for the UI collaborator
type Severity int

// Notification severities
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityDanger
)

// Notifier is the UI collaborator. It is optional: every event branch
// mutates state correctly with no notifier attached.
type Notifier interface {
	ShowNotification(msg string, duration time.Duration, severity Severity)
}

// CombatRunner resolves fights; the dispatcher marks rooms cleared on
// victory.
type CombatRunner interface {
	Resolve(g *state.Game, enemy *combat.Enemy, rng *rand.Rand) combat.Result
}

// LootSource produces item instances from a named loot table
type LootSource interface {
	Generate(table string, floor int, rng *rand.Rand) []items.Item
}

// ShopOpener is the store-room collaborator
type ShopOpener interface {
	OpenShop(g *state.Game)
}

// tableLoot is the default LootSource backed by the items package tables
type tableLoot struct{}

func (tableLoot) Generate(table string, floor int, rng *rand.Rand) []items.Item {
	return items.GenerateLoot(table, floor, rng)
}

// Event timing
const (
	stairsAdvanceDelay = 2 * time.Second
	dialogDuration     = 5 * time.Second
	noticeDuration     = 3 * time.Second
)

// Event odds
const (
	emptyAmbushChance = 0.10
	chestLootChance   = 0.40
	chestGoldChance   = 0.30
	questRewardChance = 0.40
	questTrapChance   = 0.30
	startHealFraction = 0.10
	campHealFraction  = 0.50
	questTrapFraction = 0.20
)

// Dispatcher reacts to the room the player lands in. Collaborators are
// explicit optional dependencies; Shop and Notify may be nil.
type Dispatcher struct {
	Combat CombatRunner
	Loot   LootSource
	Shop   ShopOpener
	Notify Notifier
	Sched  *sched.Scheduler

	// StairsDelay overrides the descent delay; zero means the default.
	StairsDelay time.Duration

	pendingAdvance *sched.Handle
}

// NewDispatcher creates a dispatcher with the default combat resolver
// and loot tables. UI collaborators start absent.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Combat: combat.Resolver{},
		Loot:   tableLoot{},
		Sched:  sched.New(),
	}
}

// MovePlayer attempts a move to (x,y). Illegal moves are a no-op
// returning false. A legal move supersedes any pending floor advance,
// mutates position, and dispatches the destination room's event.
func (d *Dispatcher) MovePlayer(g *state.Game, x, y int) bool {
	if g == nil || g.Grid == nil {
		return false
	}
	if !g.Grid.CanMoveTo(g.Player.X, g.Player.Y, x, y) {
		d.notify("You can't go that way.", noticeDuration, SeverityWarning)
		return false
	}

	d.cancelPendingAdvance()
	applyMove(g, x, y)
	d.EnterRoom(g, g.Grid.RoomAt(x, y))
	return true
}

// MoveDirection resolves a directional command through MovePlayer
func (d *Dispatcher) MoveDirection(g *state.Game, dir dungeon.Direction) bool {
	if g == nil || g.Grid == nil || !dir.IsValid() {
		return false
	}
	dx, dy := dir.Delta()
	return d.MovePlayer(g, g.Player.X+dx, g.Player.Y+dy)
}

// EnterRoom fires the event for the room the player arrived in. Absent
// grid or room is a no-op, never a panic: events can race floor
// regeneration.
func (d *Dispatcher) EnterRoom(g *state.Game, room *dungeon.Room) {
	if g == nil || g.Grid == nil || room == nil {
		return
	}

	switch room.Type {
	case dungeon.RoomStart:
		d.enterStart(g)
	case dungeon.RoomEmpty:
		d.enterEmpty(g, room)
	case dungeon.RoomMonster:
		d.enterMonster(g, room)
	case dungeon.RoomTreasure:
		d.enterTreasure(g, room)
	case dungeon.RoomBoss:
		d.enterBoss(g, room)
	case dungeon.RoomStairs:
		d.enterStairs(g)
	case dungeon.RoomStore:
		d.enterStore(g)
	case dungeon.RoomChest:
		d.enterChest(g, room)
	case dungeon.RoomCampfire:
		d.enterCampfire(g)
	case dungeon.RoomQuest:
		d.enterQuest(g, room)
	case dungeon.RoomNPC:
		d.enterNPC(g, room)
	case dungeon.RoomBossMonster:
		d.enterBossMonster(g, room)
	case dungeon.RoomEpicBoss:
		d.enterEpicBoss(g, room)
	default:
		slog.Warn("no handler for room type", "type", room.Type,
			"room", dungeon.CoordinateKey(room.X, room.Y))
	}
}

// Start room heals a little on every visit
func (d *Dispatcher) enterStart(g *state.Game) {
	healed := g.Heal(int(float64(g.Player.MaxHealth) * startHealFraction))
	if healed > 0 {
		d.notify(fmt.Sprintf("You rest a moment and recover %d health.", healed),
			noticeDuration, SeveritySuccess)
	}
}

// Empty rooms carry a small ambush chance until cleared
func (d *Dispatcher) enterEmpty(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	if g.RNG.Float64() >= emptyAmbushChance {
		return
	}
	enemy := combat.ForFloor(combat.KindRandom, g.Floor, g.RNG)
	d.notify(fmt.Sprintf("A %s ambushes you!", enemy.Name), noticeDuration, SeverityDanger)
	if d.fight(g, enemy) {
		room.Cleared = true
	}
}

func (d *Dispatcher) enterMonster(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	enemy := combat.ForFloor(combat.KindStandard, g.Floor, g.RNG)
	d.notify(fmt.Sprintf("A %s blocks your path!", enemy.Name), noticeDuration, SeverityDanger)
	if d.fight(g, enemy) {
		room.Cleared = true
		g.AddGold(items.RollGold(g.Floor, g.RNG))
	}
}

func (d *Dispatcher) enterTreasure(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	gold := items.RollGold(g.Floor, g.RNG)
	g.AddGold(gold)
	loot := d.rollLoot("treasure", g)
	for _, item := range loot {
		g.AddItem(item)
	}
	room.Cleared = true
	g.Publish(state.EventLoot, "treasure")
	d.notify(fmt.Sprintf("Treasure! %d gold and %d item(s).", gold, len(loot)),
		noticeDuration, SeveritySuccess)
}

func (d *Dispatcher) enterBoss(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	enemy := combat.ForFloor(combat.KindBoss, g.Floor, g.RNG)
	d.notify(fmt.Sprintf("%s awaits...", enemy.Name), noticeDuration, SeverityDanger)
	if d.fight(g, enemy) {
		room.Cleared = true
		g.AddGold(items.RollGold(g.Floor, g.RNG) * 3)
		for _, item := range d.rollLoot("boss", g) {
			g.AddItem(item)
		}
		g.Publish(state.EventLoot, "boss")
	}
}

// Stairs schedule the descent; any superseding action cancels it. The
// scheduled advance runs from the session loop's RunDue drain, never on
// a timer goroutine, so a move that lands before the drain still cancels.
func (d *Dispatcher) enterStairs(g *state.Game) {
	delay := d.advanceDelay()
	d.notify("Stairs down. Descending...", delay, SeverityInfo)
	d.cancelPendingAdvance()
	d.pendingAdvance = d.Sched.After(delay, func() {
		d.AdvanceFloor(g)
	})
}

func (d *Dispatcher) advanceDelay() time.Duration {
	if d.StairsDelay > 0 {
		return d.StairsDelay
	}
	return stairsAdvanceDelay
}

func (d *Dispatcher) enterStore(g *state.Game) {
	if d.Shop == nil {
		d.notify("The shopkeeper is nowhere to be found.", noticeDuration, SeverityInfo)
		return
	}
	d.Shop.OpenShop(g)
}

// Chests split three ways: good loot, gold only, or a guardian fight.
// Only the fight branch can leave the chest uncleared.
func (d *Dispatcher) enterChest(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	roll := g.RNG.Float64()
	switch {
	case roll < chestLootChance:
		for _, item := range d.rollLoot("chest_good", g) {
			g.AddItem(item)
		}
		room.Cleared = true
		g.Publish(state.EventLoot, "chest")
		d.notify("The chest is full of spoils!", noticeDuration, SeveritySuccess)
	case roll < chestLootChance+chestGoldChance:
		gold := items.RollGold(g.Floor, g.RNG)
		g.AddGold(gold)
		room.Cleared = true
		d.notify(fmt.Sprintf("The chest holds %d gold.", gold), noticeDuration, SeveritySuccess)
	default:
		enemy := combat.ForFloor(combat.KindGuardian, g.Floor, g.RNG)
		d.notify("The chest was a trap - a guardian attacks!", noticeDuration, SeverityDanger)
		if d.fight(g, enemy) {
			room.Cleared = true
			for _, item := range d.rollLoot("chest_good", g) {
				g.AddItem(item)
			}
			g.Publish(state.EventLoot, "chest")
		}
	}
}

// Campfires are reusable; they never mark cleared
func (d *Dispatcher) enterCampfire(g *state.Game) {
	healed := g.Heal(int(float64(g.Player.MaxHealth) * campHealFraction))
	if healed > 0 {
		d.notify(fmt.Sprintf("The fire's warmth restores %d health.", healed),
			noticeDuration, SeveritySuccess)
	} else {
		d.notify("You warm your hands by the fire.", noticeDuration, SeverityInfo)
	}
}

// Quest rooms are a one-shot gamble; the room clears whatever happens
func (d *Dispatcher) enterQuest(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	room.Cleared = true

	roll := g.RNG.Float64()
	switch {
	case roll < questRewardChance:
		gold := items.RollGold(g.Floor, g.RNG) * 2
		g.AddGold(gold)
		for _, item := range d.rollLoot("quest_reward", g) {
			g.AddItem(item)
		}
		g.Publish(state.EventLoot, "quest")
		d.notify(fmt.Sprintf("The hidden cache is genuine: %d gold!", gold),
			noticeDuration, SeveritySuccess)
	case roll < questRewardChance+questTrapChance:
		lost := g.Damage(int(float64(g.Player.MaxHealth) * questTrapFraction))
		d.notify(fmt.Sprintf("A trap! You take %d damage.", lost),
			noticeDuration, SeverityDanger)
	default:
		enemy := combat.ForFloor(combat.KindStandard, g.Floor, g.RNG)
		d.notify("It was an ambush!", noticeDuration, SeverityDanger)
		d.fight(g, enemy)
	}
}

// NPC rooms cache their character so revisits meet the same one
func (d *Dispatcher) enterNPC(g *state.Game, room *dungeon.Room) {
	payload, ok := room.Data.(*dungeon.NPCPayload)
	if !ok {
		payload = GenerateNPC(g.RNG)
		room.Data = payload
	}
	d.notify(fmt.Sprintf("%s, %s: \"%s\"", payload.Name, payload.Title, payload.Greeting),
		dialogDuration, SeverityInfo)
}

// Epic keeper fight: victory grants a missing epic unique
func (d *Dispatcher) enterBossMonster(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	enemy := combat.ScriptedBoss(g.Floor, false)
	d.notify(fmt.Sprintf("%s guards an epic relic!", enemy.Name), noticeDuration, SeverityDanger)
	if !d.fight(g, enemy) {
		return
	}
	room.Cleared = true

	missing := g.MissingEpicSlots()
	if len(missing) == 0 {
		g.AddGold(items.RollGold(g.Floor, g.RNG) * 5)
		return
	}
	relic := items.EpicUniques[missing[0]]
	g.AddItem(relic)
	g.Publish(state.EventLoot, "epic")
	if g.EpicComplete() {
		d.notify(fmt.Sprintf("%s claimed! The final depths are open to you.", relic.Name),
			dialogDuration, SeveritySuccess)
	} else {
		d.notify(fmt.Sprintf("%s claimed! %d relic(s) remain.", relic.Name, len(missing)-1),
			dialogDuration, SeveritySuccess)
	}
}

// The final fight; winning wins the run
func (d *Dispatcher) enterEpicBoss(g *state.Game, room *dungeon.Room) {
	if room.Cleared {
		return
	}
	enemy := combat.ScriptedBoss(g.Floor, true)
	d.notify(fmt.Sprintf("%s stirs. This is the end.", enemy.Name), noticeDuration, SeverityDanger)
	if d.fight(g, enemy) {
		room.Cleared = true
		g.Won = true
		g.Publish(state.EventGameWon, enemy.Name)
		d.notify("The Deepspire falls silent. You have won.", dialogDuration, SeveritySuccess)
	}
}

// fight runs a combat through the collaborator. Returns true on victory;
// with no combat collaborator attached nothing happens and the room
// stays untouched.
func (d *Dispatcher) fight(g *state.Game, enemy *combat.Enemy) bool {
	if d.Combat == nil {
		return false
	}
	res := d.Combat.Resolve(g, enemy, g.RNG)
	if res.Victory {
		d.notify(fmt.Sprintf("%s defeated (+%d exp).", enemy.Name, res.Experience),
			noticeDuration, SeveritySuccess)
	} else {
		d.notify(fmt.Sprintf("You barely escape the %s.", enemy.Name),
			noticeDuration, SeverityDanger)
	}
	return res.Victory
}

func (d *Dispatcher) rollLoot(table string, g *state.Game) []items.Item {
	if d.Loot == nil {
		return nil
	}
	return d.Loot.Generate(table, g.Floor, g.RNG)
}

func (d *Dispatcher) notify(msg string, duration time.Duration, severity Severity) {
	if d.Notify == nil {
		return
	}
	d.Notify.ShowNotification(msg, duration, severity)
}

func (d *Dispatcher) cancelPendingAdvance() {
	if d.pendingAdvance != nil {
		d.pendingAdvance.Cancel()
		d.pendingAdvance = nil
	}
}

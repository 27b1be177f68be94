package gameplay

import (
	"math/rand"
	"testing"
	"time"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/combat"
	"deepspire/pkg/game/state"
)

// stubCombat forces fight outcomes and records calls
type stubCombat struct {
	win   bool
	calls int
}

func (s *stubCombat) Resolve(g *state.Game, enemy *combat.Enemy, rng *rand.Rand) combat.Result {
	s.calls++
	return combat.Result{Victory: s.win, Rounds: 1}
}

// recordingNotifier captures notifications to prove branches ran
type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) ShowNotification(msg string, d time.Duration, sev Severity) {
	r.messages = append(r.messages, msg)
}

func roomOfType(g *state.Game, t dungeon.RoomType, x, y int) *dungeon.Room {
	r := g.Grid.CreateRoom(x, y, t)
	return r
}

func TestEnterRoom_NilSafety(t *testing.T) {
	d := NewDispatcher()

	// Must not panic on any of these
	d.EnterRoom(nil, nil)
	d.EnterRoom(state.NewGame(1), nil)

	g := makeGameOnGrid(t)
	d.EnterRoom(g, nil)
}

func TestEnterRoom_WorksWithoutCollaborators(t *testing.T) {
	g := makeGameOnGrid(t)
	d := &Dispatcher{Sched: NewDispatcher().Sched} // no combat, loot, shop, notifier

	// Every handler must run without the optional collaborators
	types := []dungeon.RoomType{
		dungeon.RoomStart, dungeon.RoomEmpty, dungeon.RoomMonster,
		dungeon.RoomTreasure, dungeon.RoomBoss, dungeon.RoomStore,
		dungeon.RoomChest, dungeon.RoomCampfire, dungeon.RoomQuest,
		dungeon.RoomNPC, dungeon.RoomBossMonster, dungeon.RoomEpicBoss,
	}
	x := 0
	for _, rt := range types {
		room := roomOfType(g, rt, x%5, x/5)
		d.EnterRoom(g, room)
		x++
	}
}

func TestStartRoom_HealsWhenHurt(t *testing.T) {
	g := makeGameOnGrid(t)
	g.Player.Health = 50
	d := NewDispatcher()

	d.EnterRoom(g, g.Grid.StartRoom())
	want := 50 + g.Player.MaxHealth/10
	if g.Player.Health != want {
		t.Errorf("health = %d, want %d", g.Player.Health, want)
	}

	// At full health the visit is a no-op
	g.Player.Health = g.Player.MaxHealth
	d.EnterRoom(g, g.Grid.StartRoom())
	if g.Player.Health != g.Player.MaxHealth {
		t.Error("start room must not overheal")
	}
}

func TestCampfire_ReusableAndNeverCleared(t *testing.T) {
	g := makeGameOnGrid(t)
	camp := roomOfType(g, dungeon.RoomCampfire, 1, 1)
	d := NewDispatcher()

	g.Player.Health = 10
	d.EnterRoom(g, camp)
	afterFirst := g.Player.Health
	if afterFirst != 10+g.Player.MaxHealth/2 {
		t.Errorf("campfire healed to %d, want %d", afterFirst, 10+g.Player.MaxHealth/2)
	}
	if camp.Cleared {
		t.Error("campfire must never be marked cleared")
	}

	g.Player.Health = 20
	d.EnterRoom(g, camp)
	if g.Player.Health != 20+g.Player.MaxHealth/2 {
		t.Error("campfire must heal again on revisit")
	}
}

func TestTreasure_OneShot(t *testing.T) {
	g := makeGameOnGrid(t)
	treasure := roomOfType(g, dungeon.RoomTreasure, 1, 1)
	d := NewDispatcher()

	d.EnterRoom(g, treasure)
	if !treasure.Cleared {
		t.Fatal("treasure room should clear on first visit")
	}
	goldAfterFirst := g.Player.Gold
	itemsAfterFirst := len(g.Player.Inventory)
	if goldAfterFirst == 0 {
		t.Error("treasure should grant gold")
	}
	if itemsAfterFirst == 0 {
		t.Error("treasure should grant loot")
	}

	d.EnterRoom(g, treasure)
	if g.Player.Gold != goldAfterFirst || len(g.Player.Inventory) != itemsAfterFirst {
		t.Error("cleared treasure must not grant again")
	}
}

func TestMonster_ClearsOnlyOnVictory(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()

	lose := &stubCombat{win: false}
	d.Combat = lose
	monster := roomOfType(g, dungeon.RoomMonster, 1, 1)
	d.EnterRoom(g, monster)
	if monster.Cleared {
		t.Error("lost fight must not clear the room")
	}
	if lose.calls != 1 {
		t.Errorf("combat calls = %d, want 1", lose.calls)
	}

	win := &stubCombat{win: true}
	d.Combat = win
	d.EnterRoom(g, monster)
	if !monster.Cleared {
		t.Error("victory must clear the room")
	}
	if g.Player.Gold == 0 {
		t.Error("monster victory should pay out gold")
	}

	d.EnterRoom(g, monster)
	if win.calls != 1 {
		t.Error("cleared monster room must not re-trigger combat")
	}
}

func TestChest_WinningPlayerAlwaysResolves(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	d.Combat = &stubCombat{win: true}

	// All three chest branches end cleared when fights are won
	for i := 0; i < 40; i++ {
		chest := dungeon.NewRoom(1, 1, dungeon.RoomChest)
		d.enterChest(g, chest)
		if !chest.Cleared {
			t.Fatalf("trial %d: chest with winning player left uncleared", i)
		}
	}
}

func TestChest_GuardianLossLeavesUncleared(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	stub := &stubCombat{win: false}
	d.Combat = stub

	uncleared := 0
	for i := 0; i < 200; i++ {
		chest := dungeon.NewRoom(1, 1, dungeon.RoomChest)
		d.enterChest(g, chest)
		if !chest.Cleared {
			uncleared++
		}
	}
	if stub.calls == 0 {
		t.Fatal("guardian branch never rolled in 200 trials")
	}
	if uncleared != stub.calls {
		t.Errorf("uncleared chests = %d, guardian fights = %d; only lost fights leave chests uncleared",
			uncleared, stub.calls)
	}
}

func TestQuest_ClearsRegardlessOfOutcome(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	d.Combat = &stubCombat{win: false}

	for i := 0; i < 50; i++ {
		quest := dungeon.NewRoom(1, 1, dungeon.RoomQuest)
		d.enterQuest(g, quest)
		if !quest.Cleared {
			t.Fatalf("trial %d: quest room left uncleared", i)
		}
	}
}

func TestNPC_CachedAcrossVisits(t *testing.T) {
	g := makeGameOnGrid(t)
	npcRoom := roomOfType(g, dungeon.RoomNPC, 1, 1)
	notifier := &recordingNotifier{}
	d := NewDispatcher()
	d.Notify = notifier

	d.EnterRoom(g, npcRoom)
	first, ok := npcRoom.Data.(*dungeon.NPCPayload)
	if !ok {
		t.Fatal("npc visit should cache an NPCPayload")
	}

	d.EnterRoom(g, npcRoom)
	second := npcRoom.Data.(*dungeon.NPCPayload)
	if first != second {
		t.Error("revisit should meet the same cached NPC")
	}
	if len(notifier.messages) != 2 {
		t.Errorf("npc dialog shown %d times, want 2", len(notifier.messages))
	}
	if notifier.messages[0] != notifier.messages[1] {
		t.Error("cached NPC should produce identical dialog")
	}
}

func TestEpicProgression(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	d.Combat = &stubCombat{win: true}

	for i := 0; i < 3; i++ {
		g.Floor = 15 * (i + 1)
		keeper := dungeon.NewRoom(1, 1, dungeon.RoomBossMonster)
		d.enterBossMonster(g, keeper)
		if !keeper.Cleared {
			t.Fatalf("keeper %d not cleared on victory", i)
		}
	}
	if !g.EpicComplete() {
		t.Fatal("three keeper victories should complete the epic set")
	}

	final := dungeon.NewRoom(1, 1, dungeon.RoomEpicBoss)
	d.enterEpicBoss(g, final)
	if !g.Won {
		t.Error("defeating the epic boss should win the game")
	}
	if !final.Cleared {
		t.Error("epic boss room should clear on victory")
	}
}

func TestEmptyRoom_AmbushOnlyWhileUncleared(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	stub := &stubCombat{win: true}
	d.Combat = stub

	// Over many uncleared visits the 10% ambush must fire at least once
	room := dungeon.NewRoom(1, 1, dungeon.RoomEmpty)
	for i := 0; i < 200 && stub.calls == 0; i++ {
		room.Cleared = false
		d.enterEmpty(g, room)
	}
	if stub.calls == 0 {
		t.Fatal("ambush never fired in 200 uncleared visits")
	}

	// A cleared room never ambushes
	calls := stub.calls
	room.Cleared = true
	for i := 0; i < 200; i++ {
		d.enterEmpty(g, room)
	}
	if stub.calls != calls {
		t.Error("cleared empty room must not start combat")
	}
}

func TestStairs_AdvanceFiresAfterDelay(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	d.StairsDelay = 5 * time.Millisecond

	stairs := roomOfType(g, dungeon.RoomStairs, 3, 2)
	d.EnterRoom(g, stairs)

	if g.Floor != 1 {
		t.Fatalf("floor advanced before the delay, floor = %d", g.Floor)
	}

	time.Sleep(30 * time.Millisecond)
	if ran := d.Sched.RunDue(); ran != 1 {
		t.Fatalf("RunDue ran %d tasks, want 1", ran)
	}
	if g.Floor != 2 {
		t.Errorf("floor = %d, want 2", g.Floor)
	}
	if g.Grid.StartRoom() == nil || !g.Grid.StartRoom().HasPlayer {
		t.Error("player not placed on the new floor's start room")
	}
}

func TestStairs_MoveBeforeDelayCancelsAdvance(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()
	d.StairsDelay = 5 * time.Millisecond

	roomOfType(g, dungeon.RoomStairs, 3, 2)
	g.Grid.ConnectRooms(2, 2, 3, 2)
	oldGrid := g.Grid

	if !d.MovePlayer(g, 3, 2) {
		t.Fatal("move onto stairs failed")
	}
	if !d.MovePlayer(g, 2, 2) {
		t.Fatal("move off stairs failed")
	}

	time.Sleep(30 * time.Millisecond)
	if ran := d.Sched.RunDue(); ran != 0 {
		t.Errorf("RunDue ran %d tasks, want 0", ran)
	}
	if g.Floor != 1 {
		t.Errorf("floor = %d, want 1; stepping away must cancel the descent", g.Floor)
	}
	if g.Grid != oldGrid {
		t.Error("cancelled descent regenerated the grid")
	}
}

func TestGenerateNewFloor_CancelsPendingTimers(t *testing.T) {
	g := makeGameOnGrid(t)
	d := NewDispatcher()

	fired := false
	d.Sched.After(30*time.Millisecond, func() { fired = true })

	d.GenerateNewFloor(g, 2, FloorOptions{Seed: 5})
	time.Sleep(60 * time.Millisecond)
	d.Sched.RunDue()

	if fired {
		t.Error("floor change must cancel pending timers")
	}
	if g.Floor != 2 {
		t.Errorf("floor = %d, want 2", g.Floor)
	}
	if g.Grid == nil || g.Grid.StartRoom() == nil {
		t.Fatal("new floor missing start room")
	}
	if !g.Grid.StartRoom().HasPlayer {
		t.Error("player not placed on new floor's start room")
	}
}

func TestAdvanceFloor(t *testing.T) {
	d := NewDispatcher()
	g := d.NewGame(3, FloorOptions{Seed: 3})

	oldGrid := g.Grid
	d.AdvanceFloor(g)

	if g.Floor != 2 {
		t.Errorf("floor = %d, want 2", g.Floor)
	}
	if g.Grid == oldGrid {
		t.Error("advancing floors must regenerate the grid")
	}
}

package setup

import (
	"math/rand"
	"testing"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/generator"
)

// generateRawFloor builds a layouted, augmented grid without type
// assignment, so assignment can be tested in isolation.
func generateRawFloor(t *testing.T, floor, target int, seed int64) *dungeon.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := dungeon.NewGrid(5, 5, floor, seed)
	sx, sy := g.StartPosition()
	g.CreateRoom(sx, sy, dungeon.RoomStart)
	generator.Cross.Generate(g, rng, target)
	generator.AddRandomConnections(g, rng)
	return g
}

func countType(g *dungeon.Grid, t dungeon.RoomType) int {
	n := 0
	g.ForEachRoom(func(r *dungeon.Room) {
		if r.Type == t {
			n++
		}
	})
	return n
}

func TestAssignRoomTypes_ExactlyOneStartAndStairs(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := generateRawFloor(t, 1, 8, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))

		if n := countType(g, dungeon.RoomStart); n != 1 {
			t.Errorf("seed %d: %d start rooms, want 1", seed, n)
		}
		if n := countType(g, dungeon.RoomStairs); n != 1 {
			t.Errorf("seed %d: %d stairs rooms, want 1", seed, n)
		}
		if g.StairsRoom() == nil {
			t.Errorf("seed %d: stairs room not recorded on grid", seed)
		}
	}
}

func TestAssignRoomTypes_StairsIsFarthestEmpty(t *testing.T) {
	g := generateRawFloor(t, 1, 7, 42)

	// Record candidate distances before assignment mutates types
	sx, sy := g.StartPosition()
	maxDist := 0
	g.ForEachRoom(func(r *dungeon.Room) {
		if r.Type != dungeon.RoomEmpty {
			return
		}
		if d := manhattan(sx, sy, r.X, r.Y); d > maxDist {
			maxDist = d
		}
	})

	AssignRoomTypes(g, rand.New(rand.NewSource(42)))

	stairs := g.StairsRoom()
	if stairs == nil {
		t.Fatal("no stairs assigned")
	}
	if d := manhattan(sx, sy, stairs.X, stairs.Y); d != maxDist {
		t.Errorf("stairs at distance %d, want farthest distance %d", d, maxDist)
	}
}

func TestAssignRoomTypes_StoreOnlyOnTenthFloors(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := generateRawFloor(t, 10, 8, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))
		if countType(g, dungeon.RoomStore) != 1 {
			t.Errorf("seed %d: floor 10 should have a store", seed)
		}

		g = generateRawFloor(t, 7, 8, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))
		if countType(g, dungeon.RoomStore) != 0 {
			t.Errorf("seed %d: floor 7 should not have a store", seed)
		}
	}
}

func TestAssignRoomTypes_BossRequiresSevenRooms(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := generateRawFloor(t, 2, 8, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))
		if g.RoomCount() >= bossMinRooms && countType(g, dungeon.RoomBoss) != 1 {
			t.Errorf("seed %d: %d-room floor should have a boss", seed, g.RoomCount())
		}

		g = generateRawFloor(t, 2, 5, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))
		if g.RoomCount() < bossMinRooms && countType(g, dungeon.RoomBoss) != 0 {
			t.Errorf("seed %d: %d-room floor should not have a boss", seed, g.RoomCount())
		}
	}
}

func TestAssignRoomTypes_QuestFloorGating(t *testing.T) {
	g := generateRawFloor(t, 5, 9, 7)
	AssignRoomTypes(g, rand.New(rand.NewSource(7)))
	if countType(g, dungeon.RoomQuest) != 1 {
		t.Error("floor 5 should carry a quest room")
	}

	// Quest floors start at floor 3; floor 10 qualifies, floor 4 does not
	g = generateRawFloor(t, 4, 9, 7)
	AssignRoomTypes(g, rand.New(rand.NewSource(7)))
	if countType(g, dungeon.RoomQuest) != 0 {
		t.Error("floor 4 should not carry a quest room")
	}
}

func TestAssignRoomTypes_EmptyPoolIsSafe(t *testing.T) {
	g := dungeon.NewGrid(5, 5, 1, 1)
	sx, sy := g.StartPosition()
	g.CreateRoom(sx, sy, dungeon.RoomStart)

	// Only the start room exists; the empty pool is empty
	AssignRoomTypes(g, rand.New(rand.NewSource(1)))
	if countType(g, dungeon.RoomStairs) != 0 {
		t.Error("no stairs should be assigned when no empty room exists")
	}
}

func TestAssignRoomTypes_RemainderTypesAreKnown(t *testing.T) {
	allowed := map[dungeon.RoomType]bool{
		dungeon.RoomStart: true, dungeon.RoomStairs: true, dungeon.RoomStore: true,
		dungeon.RoomBoss: true, dungeon.RoomCampfire: true, dungeon.RoomQuest: true,
		dungeon.RoomNPC: true, dungeon.RoomMonster: true, dungeon.RoomTreasure: true,
		dungeon.RoomChest: true, dungeon.RoomEmpty: true,
	}
	for seed := int64(1); seed <= 20; seed++ {
		g := generateRawFloor(t, 5, 10, seed)
		AssignRoomTypes(g, rand.New(rand.NewSource(seed)))
		g.ForEachRoom(func(r *dungeon.Room) {
			if !allowed[r.Type] {
				t.Errorf("seed %d: unexpected room type %q", seed, r.Type)
			}
		})
	}
}

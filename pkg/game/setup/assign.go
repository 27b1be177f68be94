package setup

import (
	"math/rand"
	"sort"

	"deepspire/pkg/engine/dungeon"
)

// Per-floor assignment constraints and odds
const (
	storeFloorInterval = 10
	questFloorInterval = 5
	questMinFloor      = 3
	npcMinFloor        = 2

	bossMinRooms     = 7
	campfireMinRooms = 6
	npcMinRooms      = 5

	campfireChance = 0.15
	npcChance      = 0.20

	monsterChance  = 0.25
	treasureChance = 0.15
	chestChance    = 0.15
)

// AssignRoomTypes labels the grid's empty rooms after layout and
// augmentation. Each special category removes its chosen room from the
// pool before the next category rolls, so categories never collide;
// stairs goes first and is guaranteed whenever any empty room exists.
func AssignRoomTypes(grid *dungeon.Grid, rng *rand.Rand) {
	pool := emptyRoomPool(grid)
	if len(pool) == 0 {
		return
	}
	floor := grid.Floor()
	roomCount := grid.RoomCount()
	startX, startY := grid.StartPosition()

	// Stairs: the empty room farthest from start, first-seen on ties
	stairsIdx := 0
	bestDist := -1
	for i, r := range pool {
		d := manhattan(startX, startY, r.X, r.Y)
		if d > bestDist {
			bestDist = d
			stairsIdx = i
		}
	}
	stairs := pool[stairsIdx]
	stairs.Type = dungeon.RoomStairs
	grid.SetStairsRoom(stairs)
	pool = removeAt(pool, stairsIdx)

	// Store floors repeat every ten floors
	if floor%storeFloorInterval == 0 && len(pool) > 0 {
		pool = takeRandom(pool, rng, dungeon.RoomStore)
	}

	// Boss only on roomy floors
	if roomCount >= bossMinRooms && len(pool) > 0 {
		idx := rng.Intn(len(pool))
		boss := pool[idx]
		boss.Type = dungeon.RoomBoss
		grid.SetBossRoom(boss)
		pool = removeAt(pool, idx)
	}

	if roomCount >= campfireMinRooms && len(pool) > 0 && rng.Float64() < campfireChance {
		pool = takeRandom(pool, rng, dungeon.RoomCampfire)
	}

	if floor >= questMinFloor && floor%questFloorInterval == 0 && len(pool) > 0 {
		pool = takeRandom(pool, rng, dungeon.RoomQuest)
	}

	if floor >= npcMinFloor && roomCount >= npcMinRooms && len(pool) > 0 && rng.Float64() < npcChance {
		pool = takeRandom(pool, rng, dungeon.RoomNPC)
	}

	// Everything left rolls independently; misses stay empty
	for _, r := range pool {
		roll := rng.Float64()
		switch {
		case roll < monsterChance:
			r.Type = dungeon.RoomMonster
		case roll < monsterChance+treasureChance:
			r.Type = dungeon.RoomTreasure
		case roll < monsterChance+treasureChance+chestChance:
			r.Type = dungeon.RoomChest
		}
	}
}

// emptyRoomPool returns the assignable rooms in deterministic coordinate
// order, so a seeded generation run always assigns the same layout.
func emptyRoomPool(grid *dungeon.Grid) []*dungeon.Room {
	var pool []*dungeon.Room
	grid.ForEachRoom(func(r *dungeon.Room) {
		if r.Type == dungeon.RoomEmpty {
			pool = append(pool, r)
		}
	})
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Y != pool[j].Y {
			return pool[i].Y < pool[j].Y
		}
		return pool[i].X < pool[j].X
	})
	return pool
}

func takeRandom(pool []*dungeon.Room, rng *rand.Rand, t dungeon.RoomType) []*dungeon.Room {
	idx := rng.Intn(len(pool))
	pool[idx].Type = t
	return removeAt(pool, idx)
}

func removeAt(pool []*dungeon.Room, idx int) []*dungeon.Room {
	return append(pool[:idx], pool[idx+1:]...)
}

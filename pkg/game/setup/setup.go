package setup

import (
	"log/slog"
	"math/rand"
	"time"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/generator"
)

// Epic boss floors repeat every fifteen floors
const epicBossFloorInterval = 15

// FloorConfig controls one floor generation run. Zero values mean
// defaults: 5x5 grid, time-based seed, random room count and strategy.
type FloorConfig struct {
	Width  int
	Height int
	Floor  int

	// Seed drives the whole run; reusing a seed regenerates the same floor.
	Seed int64

	// RoomRequest is clamped to [MinRooms, MaxRooms]; 0 picks randomly.
	RoomRequest int

	// Strategy forces a layout strategy; nil picks one at random.
	Strategy generator.LayoutGenerator

	// EpicComplete switches epic boss floors from boss_monster (drops a
	// missing epic unique) to epic_boss (the final fight).
	EpicComplete bool
}

// FloorResult reports what generation actually produced. AchievedRooms
// is authoritative; strategies may under-shoot the request and repair
// may add bridge rooms.
type FloorResult struct {
	Grid           *dungeon.Grid
	Strategy       string
	RequestedRooms int
	AchievedRooms  int
	RepairedEdges  int
}

// GenerateFloor runs the full pipeline for one floor: place the start
// room, run a layout strategy, densify connections, assign room types,
// then validate and repair connectivity. The returned grid always has
// every room reachable from start.
func GenerateFloor(cfg FloorConfig) *FloorResult {
	if cfg.Width <= 0 {
		cfg.Width = dungeon.DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = dungeon.DefaultHeight
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	target := cfg.RoomRequest
	if target == 0 {
		target = generator.MinRooms + rng.Intn(generator.MaxRooms-generator.MinRooms+1)
	}
	target = generator.ClampRoomTarget(target)

	strategy := cfg.Strategy
	if strategy == nil {
		strategy = generator.Pick(rng)
	}

	grid := dungeon.NewGrid(cfg.Width, cfg.Height, cfg.Floor, cfg.Seed)
	startX, startY := grid.StartPosition()
	grid.CreateRoom(startX, startY, dungeon.RoomStart)

	achieved := strategy.Generate(grid, rng, target)
	if achieved < target {
		slog.Debug("layout under-shot room target",
			"strategy", strategy.Name(), "requested", target, "achieved", achieved)
	}

	generator.AddRandomConnections(grid, rng)
	AssignRoomTypes(grid, rng)
	markEpicBossFloor(grid, cfg.EpicComplete)

	repaired := 0
	if !ValidateConnectivity(grid) {
		slog.Warn("generated floor has unreachable rooms, repairing",
			"floor", cfg.Floor, "strategy", strategy.Name())
		repaired = RepairConnectivity(grid)
		if !ValidateConnectivity(grid) {
			slog.Error("floor still has unreachable rooms after repair",
				"floor", cfg.Floor, "seed", cfg.Seed)
		}
	}

	return &FloorResult{
		Grid:           grid,
		Strategy:       strategy.Name(),
		RequestedRooms: target,
		AchievedRooms:  grid.RoomCount(),
		RepairedEdges:  repaired,
	}
}

// markEpicBossFloor upgrades the boss room on every fifteenth floor to
// the epic-loot scripted fight. With all three epic uniques collected
// the fight becomes the final epic boss instead.
func markEpicBossFloor(grid *dungeon.Grid, epicComplete bool) {
	floor := grid.Floor()
	if floor <= 0 || floor%epicBossFloorInterval != 0 {
		return
	}
	boss := grid.BossRoom()
	if boss == nil {
		return
	}
	if epicComplete {
		boss.Type = dungeon.RoomEpicBoss
	} else {
		boss.Type = dungeon.RoomBossMonster
	}
	boss.Data = &dungeon.EpicLootPayload{Floor: floor}
}

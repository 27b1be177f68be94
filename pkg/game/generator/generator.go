// Package generator provides the floor layout generation strategies.
// Each strategy is a one-shot procedure that places rooms and connections
// into a grid whose start room already exists at the grid center.
package generator

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// Room count bounds for the standard generation path
const (
	MinRooms = 5
	MaxRooms = 10
)

// LayoutGenerator is the interface all layout strategies implement.
// Generate places up to roomTarget-1 additional rooms (the start room is
// already placed) and returns the number of rooms actually placed,
// including the start room. Strategies may under-shoot the target when no
// valid placement exists; callers must use the returned count, not the
// request.
type LayoutGenerator interface {
	Generate(grid *dungeon.Grid, rng *rand.Rand, roomTarget int) int
	Name() string
}

// Available strategies
var (
	Linear    = &LinearGenerator{}
	Cross     = &CrossGenerator{}
	Spiral    = &SpiralGenerator{}
	Branching = &BranchingGenerator{}
)

// Strategies lists all layout strategies in registration order
var Strategies = []LayoutGenerator{Linear, Cross, Spiral, Branching}

// Pick selects a strategy uniformly at random. Floors get visually
// distinct shapes this way; no gameplay rule depends on the choice.
func Pick(rng *rand.Rand) LayoutGenerator {
	return Strategies[rng.Intn(len(Strategies))]
}

// ByName returns the strategy with the given name, or nil
func ByName(name string) LayoutGenerator {
	for _, s := range Strategies {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// ClampRoomTarget clamps a requested room count to [MinRooms, MaxRooms].
// The bound applies to the layout request; connectivity repair may carve
// additional rooms afterwards.
func ClampRoomTarget(n int) int {
	if n < MinRooms {
		return MinRooms
	}
	if n > MaxRooms {
		return MaxRooms
	}
	return n
}

func randomDirection(rng *rand.Rand) dungeon.Direction {
	return dungeon.Direction(rng.Intn(4))
}

// cellFree reports whether (x,y) is in bounds and has no room yet
func cellFree(grid *dungeon.Grid, x, y int) bool {
	return grid.IsValidCoordinate(x, y) && grid.RoomAt(x, y) == nil
}

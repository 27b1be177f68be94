package generator

import (
	"math"
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// BranchingGenerator builds one straight main path from the start room
// and hangs single-room branches off random points along it.
type BranchingGenerator struct{}

// Name returns the name of this strategy
func (g *BranchingGenerator) Name() string {
	return "branching"
}

// Share of the room target that goes to the main path
const branchingMainShare = 0.6

// Generate places ceil(0.6*roomTarget) rooms in one straight direction,
// then one-room branches off random main-path rooms for the remainder.
// Branches are always length 1.
func (g *BranchingGenerator) Generate(grid *dungeon.Grid, rng *rand.Rand, roomTarget int) int {
	startX, startY := grid.StartPosition()
	placed := grid.RoomCount()

	mainDir := randomDirection(rng)
	mainTarget := int(math.Ceil(branchingMainShare * float64(roomTarget)))

	type coord struct{ x, y int }
	mainPath := []coord{{startX, startY}}

	dx, dy := mainDir.Delta()
	prevX, prevY := startX, startY
	for placed < mainTarget {
		x, y := prevX+dx, prevY+dy
		if !cellFree(grid, x, y) {
			break
		}
		grid.CreateRoom(x, y, dungeon.RoomEmpty)
		grid.ConnectRooms(prevX, prevY, x, y)
		mainPath = append(mainPath, coord{x, y})
		prevX, prevY = x, y
		placed++
	}

	// Branch rooms. Each attempt picks a random main-path room and a
	// random free direction off it; attempts are bounded so a fully
	// boxed-in main path cannot spin forever.
	attempts := 0
	for placed < roomTarget && attempts < 4*roomTarget {
		attempts++

		at := mainPath[rng.Intn(len(mainPath))]
		dir, ok := freeDirectionFrom(grid, rng, at.x, at.y)
		if !ok {
			continue
		}

		bdx, bdy := dir.Delta()
		bx, by := at.x+bdx, at.y+bdy
		grid.CreateRoom(bx, by, dungeon.RoomEmpty)
		grid.ConnectRooms(at.x, at.y, bx, by)
		placed++
	}

	return placed
}

// freeDirectionFrom returns a random direction from (x,y) whose adjacent
// cell is in bounds and unoccupied, or false when all four are taken.
func freeDirectionFrom(grid *dungeon.Grid, rng *rand.Rand, x, y int) (dungeon.Direction, bool) {
	var open []dungeon.Direction
	for _, d := range dungeon.AllDirections() {
		dx, dy := d.Delta()
		if cellFree(grid, x+dx, y+dy) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return dungeon.North, false
	}
	return open[rng.Intn(len(open))], true
}

package generator

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// SpiralGenerator walks an expanding square spiral outward from the
// start room.
type SpiralGenerator struct{}

// Name returns the name of this strategy
func (g *SpiralGenerator) Name() string {
	return "spiral"
}

// Generate walks the spiral, placing a room on every free in-bounds cell
// it passes through. Occupied and out-of-bounds cells are stepped over
// without counting. Segments are capped at 2x the room target so a grid
// too small for the spiral cannot loop forever; the shortfall is accepted.
func (g *SpiralGenerator) Generate(grid *dungeon.Grid, rng *rand.Rand, roomTarget int) int {
	x, y := grid.StartPosition()
	lastX, lastY := x, y
	placed := grid.RoomCount()

	// Spiral turn order; step counts run 1,1,2,2,3,3,...
	dirs := []dungeon.Direction{dungeon.East, dungeon.South, dungeon.West, dungeon.North}
	dirIdx := rng.Intn(len(dirs))
	stepLen := 1
	turns := 0

	for segment := 0; segment < 2*roomTarget && placed < roomTarget; segment++ {
		dx, dy := dirs[dirIdx].Delta()

		for step := 0; step < stepLen && placed < roomTarget; step++ {
			x += dx
			y += dy
			if !cellFree(grid, x, y) {
				continue
			}
			grid.CreateRoom(x, y, dungeon.RoomEmpty)
			// Fails when the spiral re-entered bounds away from the last
			// placed room; the repair pass bridges those.
			grid.ConnectRooms(lastX, lastY, x, y)
			lastX, lastY = x, y
			placed++
		}

		dirIdx = (dirIdx + 1) % len(dirs)
		turns++
		if turns%2 == 0 {
			stepLen++
		}
	}

	return placed
}

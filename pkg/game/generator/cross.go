package generator

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// CrossGenerator grows four arms outward from the start room, one per
// cardinal direction.
type CrossGenerator struct{}

// Name returns the name of this strategy
func (g *CrossGenerator) Name() string {
	return "cross"
}

// Generate divides roomTarget-1 rooms across the four arms (remainder to
// the first arms) and walks each arm outward, stopping an arm early when
// it hits an occupied or out-of-bounds cell.
func (g *CrossGenerator) Generate(grid *dungeon.Grid, rng *rand.Rand, roomTarget int) int {
	startX, startY := grid.StartPosition()
	placed := grid.RoomCount()

	remaining := roomTarget - placed
	if remaining <= 0 {
		return placed
	}

	arms := dungeon.AllDirections()
	perArm := remaining / len(arms)
	extra := remaining % len(arms)

	for i, dir := range arms {
		armLen := perArm
		if i < extra {
			armLen++
		}

		dx, dy := dir.Delta()
		prevX, prevY := startX, startY

		for step := 1; step <= armLen; step++ {
			x := startX + dx*step
			y := startY + dy*step
			if !cellFree(grid, x, y) {
				break
			}
			grid.CreateRoom(x, y, dungeon.RoomEmpty)
			grid.ConnectRooms(prevX, prevY, x, y)
			prevX, prevY = x, y
			placed++
		}
	}

	return placed
}

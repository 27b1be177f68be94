package generator

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// LinearGenerator walks a meandering corridor from the start room,
// preferring to keep going the way it was already heading.
type LinearGenerator struct{}

// Name returns the name of this strategy
func (g *LinearGenerator) Name() string {
	return "linear"
}

// Chance of continuing in the previous walk direction
const linearMomentum = 0.7

// Generate walks from the current head position until roomTarget rooms
// exist or no placement is possible for a step.
func (g *LinearGenerator) Generate(grid *dungeon.Grid, rng *rand.Rand, roomTarget int) int {
	headX, headY := grid.StartPosition()
	placed := grid.RoomCount()

	prevDir := randomDirection(rng)

	for placed < roomTarget {
		dir := prevDir
		if rng.Float64() >= linearMomentum {
			dir = randomDirection(rng)
		}

		dx, dy := dir.Delta()
		nextX, nextY := headX+dx, headY+dy

		if !cellFree(grid, nextX, nextY) {
			// Blocked: fall back to the nearest free cell around the head.
			// A diagonal fallback leaves the connect below failing, which
			// the post-generation repair pass resolves.
			fx, fy, ok := findNearestValidPosition(grid, headX, headY)
			if !ok {
				break
			}
			nextX, nextY = fx, fy
		}

		grid.CreateRoom(nextX, nextY, dungeon.RoomEmpty)
		grid.ConnectRooms(headX, headY, nextX, nextY)

		headX, headY = nextX, nextY
		prevDir = dir
		placed++
	}

	return placed
}

// neighborOffsets is scanned in order by findNearestValidPosition:
// the four orthogonal offsets first, then the four diagonals.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// findNearestValidPosition returns the first free in-bounds cell around
// (x,y), scanning orthogonal neighbors before diagonal ones.
func findNearestValidPosition(grid *dungeon.Grid, x, y int) (int, int, bool) {
	for _, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if cellFree(grid, nx, ny) {
			return nx, ny, true
		}
	}
	return 0, 0, false
}

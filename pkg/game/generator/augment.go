package generator

import (
	"math/rand"

	"deepspire/pkg/engine/dungeon"
)

// Chance of connecting an adjacent-but-unconnected room pair
const extraConnectionChance = 0.15

// AddRandomConnections is the post-layout densification pass: for every
// placed room and direction, an adjacent room with no connection yet gets
// one with a small probability. Purely additive, so it can only increase
// reachability.
func AddRandomConnections(grid *dungeon.Grid, rng *rand.Rand) int {
	added := 0
	for _, room := range grid.AllRooms() {
		for _, dir := range dungeon.AllDirections() {
			if room.Connected(dir) {
				continue
			}
			adj := grid.AdjacentRoom(room.X, room.Y, dir)
			if adj == nil {
				continue
			}
			if rng.Float64() < extraConnectionChance {
				if grid.ConnectRooms(room.X, room.Y, adj.X, adj.Y) {
					added++
				}
			}
		}
	}
	return added
}

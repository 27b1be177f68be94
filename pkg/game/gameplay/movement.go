// Package gameplay provides the core game logic: player movement, the
// room-event dispatch that fires on arrival, and floor lifecycle.
package gameplay

import (
	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/state"
)

// Move is one legal move from the player's current position
type Move struct {
	X         int
	Y         int
	Direction dungeon.Direction
}

// ValidMoves returns the legal moves from the player's current position,
// as attested by the grid's connection flags.
func ValidMoves(g *state.Game) []Move {
	if g.Grid == nil {
		return nil
	}
	var moves []Move
	for _, dir := range dungeon.AllDirections() {
		dx, dy := dir.Delta()
		x, y := g.Player.X+dx, g.Player.Y+dy
		if g.Grid.CanMoveTo(g.Player.X, g.Player.Y, x, y) {
			moves = append(moves, Move{X: x, Y: y, Direction: dir})
		}
	}
	return moves
}

// applyMove mutates the player position after CanMoveTo has passed:
// transfers the HasPlayer flag, marks the destination explored, and
// publishes the move.
func applyMove(g *state.Game, x, y int) {
	if from := g.CurrentRoom(); from != nil {
		from.HasPlayer = false
	}
	g.Player.X = x
	g.Player.Y = y

	to := g.Grid.RoomAt(x, y)
	to.HasPlayer = true
	to.Explored = true

	g.Publish(state.EventMoved, dungeon.CoordinateKey(x, y))
}

// placePlayerAtStart drops the player on the start room of a fresh floor
func placePlayerAtStart(g *state.Game) {
	start := g.Grid.StartRoom()
	if start == nil {
		return
	}
	g.Player.X = start.X
	g.Player.Y = start.Y
	start.HasPlayer = true
	start.Explored = true
}

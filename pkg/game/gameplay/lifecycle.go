package gameplay

import (
	"fmt"

	"deepspire/pkg/game/generator"
	"deepspire/pkg/game/setup"
	"deepspire/pkg/game/state"
)

// FloorOptions tweaks floor generation for a running game. The zero
// value is the standard path: 5x5 grid, random seed, random strategy,
// random room count.
type FloorOptions struct {
	Width       int
	Height      int
	Seed        int64
	RoomRequest int
	Strategy    string
}

// NewGame builds a game and generates its first floor
func (d *Dispatcher) NewGame(seed int64, opts FloorOptions) *state.Game {
	g := state.NewGame(seed)
	d.GenerateNewFloor(g, 1, opts)
	g.AddMessage("Welcome to the Deepspire.")
	return g
}

// GenerateNewFloor replaces the game's grid with a freshly generated
// floor and places the player on its start room. Any pending timers from
// the old floor are cancelled first.
func (d *Dispatcher) GenerateNewFloor(g *state.Game, floor int, opts FloorOptions) *setup.FloorResult {
	d.cancelPendingAdvance()
	d.Sched.CancelAll()

	cfg := setup.FloorConfig{
		Width:        opts.Width,
		Height:       opts.Height,
		Floor:        floor,
		Seed:         opts.Seed,
		RoomRequest:  opts.RoomRequest,
		EpicComplete: g.EpicComplete(),
	}
	if opts.Strategy != "" {
		cfg.Strategy = generator.ByName(opts.Strategy)
	}

	res := setup.GenerateFloor(cfg)
	g.Grid = res.Grid
	g.Floor = floor

	placePlayerAtStart(g)
	d.EnterRoom(g, g.Grid.StartRoom())
	return res
}

// AdvanceFloor descends to the next floor
func (d *Dispatcher) AdvanceFloor(g *state.Game) {
	next := g.Floor + 1
	d.GenerateNewFloor(g, next, FloorOptions{})
	g.AddMessage(fmt.Sprintf("You descend to floor %d.", next))
	g.Publish(state.EventFloorAdvanced, fmt.Sprintf("%d", next))
}

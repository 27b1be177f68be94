// Package persist serializes game state to a plain JSON-compatible
// structure and stores it in a local bbolt database. The snapshot is a
// point-in-time copy, not a transactional boundary; a corrupt or missing
// save falls back to a fresh game at the call site.
package persist

import (
	"encoding/json"
	"fmt"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/game/items"
	"deepspire/pkg/game/state"
)

// Position is a plain coordinate pair
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Connections mirrors a room's four connection flags
type Connections struct {
	North bool `json:"north"`
	East  bool `json:"east"`
	South bool `json:"south"`
	West  bool `json:"west"`
}

// PayloadState carries a room's tagged payload across serialization
type PayloadState struct {
	Kind     string                   `json:"kind"`
	NPC      *dungeon.NPCPayload      `json:"npc,omitempty"`
	EpicLoot *dungeon.EpicLootPayload `json:"epicLoot,omitempty"`
}

// RoomState is the plain form of one room
type RoomState struct {
	X           int           `json:"x"`
	Y           int           `json:"y"`
	Type        string        `json:"type"`
	IsExplored  bool          `json:"isExplored"`
	IsCleared   bool          `json:"isCleared"`
	HasPlayer   bool          `json:"hasPlayer"`
	Connections Connections   `json:"connections"`
	Data        *PayloadState `json:"data,omitempty"`
}

// RoomEntry is one [coordinateKey, room] pair. The rooms list is an
// explicit association list, not a live map.
type RoomEntry struct {
	Key  string
	Room RoomState
}

// MarshalJSON encodes the entry as a two-element array
func (e RoomEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Key, e.Room})
}

// UnmarshalJSON decodes the two-element array form
func (e *RoomEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("persist: room entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Key); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &e.Room)
}

// GridSnapshot is the plain form of one floor grid
type GridSnapshot struct {
	Floor          int         `json:"floor"`
	Seed           int64       `json:"seed"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	RoomCount      int         `json:"roomCount"`
	StartPosition  Position    `json:"startPosition"`
	StairsPosition *Position   `json:"stairsPosition,omitempty"`
	BossPosition   *Position   `json:"bossPosition,omitempty"`
	Rooms          []RoomEntry `json:"rooms"`
}

// GameSnapshot is the full save payload
type GameSnapshot struct {
	Grid     GridSnapshot `json:"grid"`
	Floor    int          `json:"floor"`
	Player   PlayerState  `json:"player"`
	EpicLoot []string     `json:"epicLoot"`
	Won      bool         `json:"won"`
}

// PlayerState is the plain form of the player
type PlayerState struct {
	X          int          `json:"x"`
	Y          int          `json:"y"`
	Health     int          `json:"health"`
	MaxHealth  int          `json:"maxHealth"`
	Attack     int          `json:"attack"`
	Gold       int          `json:"gold"`
	Experience int          `json:"experience"`
	Level      int          `json:"level"`
	Inventory  []items.Item `json:"inventory"`
}

// SnapshotGrid converts a live grid into its plain form
func SnapshotGrid(grid *dungeon.Grid) GridSnapshot {
	sx, sy := grid.StartPosition()
	snap := GridSnapshot{
		Floor:         grid.Floor(),
		Seed:          grid.Seed(),
		Width:         grid.Width(),
		Height:        grid.Height(),
		RoomCount:     grid.RoomCount(),
		StartPosition: Position{X: sx, Y: sy},
	}
	if stairs := grid.StairsRoom(); stairs != nil {
		snap.StairsPosition = &Position{X: stairs.X, Y: stairs.Y}
	}
	if boss := grid.BossRoom(); boss != nil {
		snap.BossPosition = &Position{X: boss.X, Y: boss.Y}
	}

	for _, r := range grid.AllRooms() {
		snap.Rooms = append(snap.Rooms, RoomEntry{
			Key: dungeon.CoordinateKey(r.X, r.Y),
			Room: RoomState{
				X:          r.X,
				Y:          r.Y,
				Type:       string(r.Type),
				IsExplored: r.Explored,
				IsCleared:  r.Cleared,
				HasPlayer:  r.HasPlayer,
				Connections: Connections{
					North: r.North, East: r.East, South: r.South, West: r.West,
				},
				Data: snapshotPayload(r.Data),
			},
		})
	}
	return snap
}

// RestoreGrid rebuilds a live grid from its plain form
func RestoreGrid(snap GridSnapshot) (*dungeon.Grid, error) {
	if snap.Width <= 0 || snap.Height <= 0 {
		return nil, fmt.Errorf("persist: invalid grid dimensions %dx%d", snap.Width, snap.Height)
	}
	grid := dungeon.NewGrid(snap.Width, snap.Height, snap.Floor, snap.Seed)

	for _, entry := range snap.Rooms {
		rs := entry.Room
		room := grid.CreateRoom(rs.X, rs.Y, dungeon.RoomType(rs.Type))
		if room == nil {
			return nil, fmt.Errorf("persist: room %q out of bounds", entry.Key)
		}
		room.Explored = rs.IsExplored
		room.Cleared = rs.IsCleared
		room.HasPlayer = rs.HasPlayer
		room.North = rs.Connections.North
		room.East = rs.Connections.East
		room.South = rs.Connections.South
		room.West = rs.Connections.West
		room.Data = restorePayload(rs.Data)
	}

	if p := snap.StairsPosition; p != nil {
		grid.SetStairsRoom(grid.RoomAt(p.X, p.Y))
	}
	if p := snap.BossPosition; p != nil {
		grid.SetBossRoom(grid.RoomAt(p.X, p.Y))
	}
	return grid, nil
}

// SnapshotGame converts a running game into the full save payload
func SnapshotGame(g *state.Game) (*GameSnapshot, error) {
	if g == nil || g.Grid == nil {
		return nil, fmt.Errorf("persist: no active game to snapshot")
	}
	snap := &GameSnapshot{
		Grid:  SnapshotGrid(g.Grid),
		Floor: g.Floor,
		Player: PlayerState{
			X: g.Player.X, Y: g.Player.Y,
			Health: g.Player.Health, MaxHealth: g.Player.MaxHealth,
			Attack: g.Player.Attack, Gold: g.Player.Gold,
			Experience: g.Player.Experience, Level: g.Player.Level,
			Inventory: g.Player.Inventory,
		},
		Won: g.Won,
	}
	g.EpicLoot.Each(func(slot items.Slot) {
		snap.EpicLoot = append(snap.EpicLoot, string(slot))
	})
	return snap, nil
}

// RestoreGame rebuilds a running game from the save payload. The
// restored game gets a fresh clock-seeded RNG: gameplay rolls are not
// part of the saved state.
func RestoreGame(snap *GameSnapshot) (*state.Game, error) {
	grid, err := RestoreGrid(snap.Grid)
	if err != nil {
		return nil, err
	}

	g := state.NewGame(0)
	g.Grid = grid
	g.Floor = snap.Floor
	g.Won = snap.Won
	g.Player = state.Player{
		X: snap.Player.X, Y: snap.Player.Y,
		Health: snap.Player.Health, MaxHealth: snap.Player.MaxHealth,
		Attack: snap.Player.Attack, Gold: snap.Player.Gold,
		Experience: snap.Player.Experience, Level: snap.Player.Level,
		Inventory: snap.Player.Inventory,
	}
	for _, slot := range snap.EpicLoot {
		g.EpicLoot.Put(items.Slot(slot))
	}

	if g.Grid.RoomAt(g.Player.X, g.Player.Y) == nil {
		return nil, fmt.Errorf("persist: player position (%d,%d) has no room",
			g.Player.X, g.Player.Y)
	}
	return g, nil
}

func snapshotPayload(p dungeon.Payload) *PayloadState {
	switch v := p.(type) {
	case *dungeon.NPCPayload:
		return &PayloadState{Kind: "npc", NPC: v}
	case *dungeon.EpicLootPayload:
		return &PayloadState{Kind: "epic_loot", EpicLoot: v}
	default:
		return nil
	}
}

func restorePayload(s *PayloadState) dungeon.Payload {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case "npc":
		if s.NPC != nil {
			return s.NPC
		}
	case "epic_loot":
		if s.EpicLoot != nil {
			return s.EpicLoot
		}
	}
	return nil
}

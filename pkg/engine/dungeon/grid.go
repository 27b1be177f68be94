package dungeon

import "fmt"

// Default floor dimensions. Callers may size grids differently; nothing in
// the engine assumes 5x5 beyond these defaults.
const (
	DefaultWidth  = 5
	DefaultHeight = 5
)

// Grid represents one dungeon floor: a sparse mapping of coordinates to
// rooms plus the floor's designated landmarks.
type Grid struct {
	floor  int
	seed   int64
	width  int
	height int

	rooms     map[string]*Room
	roomCount int

	startX int
	startY int

	stairs *Room
	boss   *Room
}

// NewGrid creates an empty grid for the given floor. The start coordinate
// is the grid center; no rooms are placed yet.
func NewGrid(width, height, floor int, seed int64) *Grid {
	if width <= 0 || height <= 0 {
		panic("dungeon: grid dimensions must be positive")
	}
	return &Grid{
		floor:  floor,
		seed:   seed,
		width:  width,
		height: height,
		rooms:  make(map[string]*Room),
		startX: width / 2,
		startY: height / 2,
	}
}

// CoordinateKey returns the map key for a coordinate pair
func CoordinateKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// Floor returns the floor number this grid represents
func (g *Grid) Floor() int { return g.floor }

// Seed returns the seed the floor was generated from
func (g *Grid) Seed() int64 { return g.seed }

// Width returns the grid width
func (g *Grid) Width() int { return g.width }

// Height returns the grid height
func (g *Grid) Height() int { return g.height }

// RoomCount returns the number of rooms placed so far
func (g *Grid) RoomCount() int { return g.roomCount }

// StartPosition returns the designated start coordinate (grid center)
func (g *Grid) StartPosition() (int, int) { return g.startX, g.startY }

// StartRoom returns the room at the start coordinate, or nil if none placed
func (g *Grid) StartRoom() *Room { return g.RoomAt(g.startX, g.startY) }

// StairsRoom returns the floor's stairs room, or nil if none assigned
func (g *Grid) StairsRoom() *Room { return g.stairs }

// BossRoom returns the floor's boss room, or nil if none assigned
func (g *Grid) BossRoom() *Room { return g.boss }

// SetStairsRoom records the floor's stairs room
func (g *Grid) SetStairsRoom(r *Room) { g.stairs = r }

// SetBossRoom records the floor's boss room
func (g *Grid) SetBossRoom(r *Room) { g.boss = r }

// IsValidCoordinate checks if a coordinate is within grid bounds
func (g *Grid) IsValidCoordinate(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// RoomAt returns the room at the given coordinate. Returns nil both when
// the coordinate is out of bounds and when no room has been placed there.
func (g *Grid) RoomAt(x, y int) *Room {
	if !g.IsValidCoordinate(x, y) {
		return nil
	}
	return g.rooms[CoordinateKey(x, y)]
}

// CreateRoom places a new room at the given coordinate and returns it.
// Returns nil for out-of-bounds coordinates. Does not check for
// overwrite; callers must verify the cell is unoccupied first.
func (g *Grid) CreateRoom(x, y int, t RoomType) *Room {
	if !g.IsValidCoordinate(x, y) {
		return nil
	}
	r := NewRoom(x, y, t)
	g.rooms[CoordinateKey(x, y)] = r
	g.roomCount++
	return r
}

// ConnectRooms creates a symmetric connection between two rooms. Returns
// false unless both rooms exist and the coordinates are exactly one
// orthogonal step apart.
func (g *Grid) ConnectRooms(x1, y1, x2, y2 int) bool {
	a := g.RoomAt(x1, y1)
	b := g.RoomAt(x2, y2)
	if a == nil || b == nil {
		return false
	}
	dir, ok := DirectionBetween(x1, y1, x2, y2)
	if !ok {
		return false
	}
	a.SetConnected(dir, true)
	b.SetConnected(dir.Opposite(), true)
	return true
}

// AllRooms returns an unordered snapshot of all placed rooms
func (g *Grid) AllRooms() []*Room {
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// ForEachRoom iterates over all placed rooms.
// Iteration order is not defined.
func (g *Grid) ForEachRoom(fn func(r *Room)) {
	for _, r := range g.rooms {
		fn(r)
	}
}

// AdjacentRoom returns the room one step from (x,y) in the given
// direction, connected or not.
func (g *Grid) AdjacentRoom(x, y int, dir Direction) *Room {
	dx, dy := dir.Delta()
	return g.RoomAt(x+dx, y+dy)
}

// ConnectedNeighbors returns the rooms reachable by a single connection
// edge from (x,y). Used by movement and by the connectivity check.
func (g *Grid) ConnectedNeighbors(x, y int) []*Room {
	r := g.RoomAt(x, y)
	if r == nil {
		return nil
	}
	var out []*Room
	for _, dir := range AllDirections() {
		if !r.Connected(dir) {
			continue
		}
		if adj := g.AdjacentRoom(x, y, dir); adj != nil {
			out = append(out, adj)
		}
	}
	return out
}

// CanMoveTo reports whether a move from (fromX,fromY) to (toX,toY) is
// legal: both rooms exist, the coordinates are orthogonally adjacent, and
// the from-room has a connection toward the to-room. This is the single
// authority on movement legality.
func (g *Grid) CanMoveTo(fromX, fromY, toX, toY int) bool {
	from := g.RoomAt(fromX, fromY)
	to := g.RoomAt(toX, toY)
	if from == nil || to == nil {
		return false
	}
	dir, ok := DirectionBetween(fromX, fromY, toX, toY)
	if !ok {
		return false
	}
	return from.Connected(dir)
}

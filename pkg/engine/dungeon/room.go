// Package dungeon provides grid-based dungeon floor primitives.
// These are engine-level constructs usable by any room-graph game.
package dungeon

// RoomType is the semantic type of a room, driving the event that fires
// when the player arrives in it.
type RoomType string

// Room types
const (
	RoomEmpty       RoomType = "empty"
	RoomMonster     RoomType = "monster"
	RoomTreasure    RoomType = "treasure"
	RoomBoss        RoomType = "boss"
	RoomStairs      RoomType = "stairs"
	RoomStart       RoomType = "start"
	RoomStore       RoomType = "store"
	RoomChest       RoomType = "chest"
	RoomCampfire    RoomType = "campfire"
	RoomQuest       RoomType = "quest"
	RoomNPC         RoomType = "npc"
	RoomBossMonster RoomType = "boss_monster"
	RoomEpicBoss    RoomType = "epic_boss"
)

// Payload is auxiliary data attached to a room by gameplay. It is a sealed
// union: each room type that needs extra state gets its own payload type.
type Payload interface {
	payloadKind() string
}

// NPCPayload caches the NPC generated for an npc room so revisits show
// the same character.
type NPCPayload struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Greeting string `json:"greeting"`
}

func (*NPCPayload) payloadKind() string { return "npc" }

// EpicLootPayload marks a room tied to the epic-loot meta-progression.
type EpicLootPayload struct {
	Floor int `json:"floor"`
}

func (*EpicLootPayload) payloadKind() string { return "epic_loot" }

// PayloadKind returns the serialization tag for a payload, or "" for nil.
func PayloadKind(p Payload) string {
	if p == nil {
		return ""
	}
	return p.payloadKind()
}

// Room represents a single cell in a dungeon floor grid.
type Room struct {
	// Grid position
	X int
	Y int

	Type RoomType

	// Visibility and event state
	Explored  bool
	Cleared   bool
	HasPlayer bool

	// Connections - one symmetric flag per direction. A true flag must be
	// mirrored by the opposite flag on the adjacent room when that room
	// exists; ConnectRooms is the only sanctioned way to set these.
	North bool
	East  bool
	South bool
	West  bool

	// Data holds room-type-specific state (cached NPC, epic-loot marker).
	Data Payload
}

// NewRoom creates a new room at the given position
func NewRoom(x, y int, t RoomType) *Room {
	return &Room{X: x, Y: y, Type: t}
}

// Connected returns whether the room has a connection in the given direction
func (r *Room) Connected(dir Direction) bool {
	if r == nil {
		return false
	}
	switch dir {
	case North:
		return r.North
	case East:
		return r.East
	case South:
		return r.South
	case West:
		return r.West
	default:
		return false
	}
}

// SetConnected sets the connection flag for the given direction
func (r *Room) SetConnected(dir Direction, connected bool) {
	if r == nil {
		return
	}
	switch dir {
	case North:
		r.North = connected
	case East:
		r.East = connected
	case South:
		r.South = connected
	case West:
		r.West = connected
	}
}

// ConnectionCount returns how many of the four connection flags are set
func (r *Room) ConnectionCount() int {
	n := 0
	for _, d := range AllDirections() {
		if r.Connected(d) {
			n++
		}
	}
	return n
}

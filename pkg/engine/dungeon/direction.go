package dungeon

import "strings"

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction.
// North is negative y: the grid origin is the top-left corner.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// ParseDirection resolves a direction command. Accepts the cardinal names
// and the up/down/left/right aliases used by arrow-key input.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "up", "n":
		return North, true
	case "south", "down", "s":
		return South, true
	case "east", "right", "e":
		return East, true
	case "west", "left", "w":
		return West, true
	default:
		return North, false
	}
}

// DirectionBetween returns the direction leading from (x1,y1) to the
// orthogonally adjacent (x2,y2), or false when the two are not adjacent.
func DirectionBetween(x1, y1, x2, y2 int) (Direction, bool) {
	dx := x2 - x1
	dy := y2 - y1
	for _, d := range AllDirections() {
		ddx, ddy := d.Delta()
		if dx == ddx && dy == ddy {
			return d, true
		}
	}
	return North, false
}

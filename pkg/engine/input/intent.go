package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceTerminal
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	// Meta / UI
	ActionHelp
	ActionInventory
	ActionSave
	ActionQuit
	ActionConfirm
)

// Intent is the high-level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "k", "arrow_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the representation after debouncing. Terminal input
// is inherently low frequency, so this is currently a thin wrapper, but
// the distinct type keeps the layering explicit for key-repeat logic
// later.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions. Multiple codes may point to the
// same Action.
var bindings = map[string]Action{
	// Movement (arrows, compass words, Vim)
	"arrow_up":    ActionMoveNorth,
	"north":       ActionMoveNorth,
	"n":           ActionMoveNorth,
	"k":           ActionMoveNorth,
	"arrow_down":  ActionMoveSouth,
	"south":       ActionMoveSouth,
	"s":           ActionMoveSouth,
	"j":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"west":        ActionMoveWest,
	"w":           ActionMoveWest,
	"h":           ActionMoveWest,
	"arrow_right": ActionMoveEast,
	"east":        ActionMoveEast,
	"e":           ActionMoveEast,
	"l":           ActionMoveEast,

	// Help
	"?":    ActionHelp,
	"help": ActionHelp,

	// Inventory
	"i":         ActionInventory,
	"inventory": ActionInventory,

	// Save
	"save": ActionSave,

	// Quit
	"quit": ActionQuit,
	"q":    ActionQuit,

	// Confirm / continue
	"enter": ActionConfirm,
}

// MapToIntent applies the current bindings to a debounced input and
// returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveEast:
		return "Move East"
	case ActionHelp:
		return "Help"
	case ActionInventory:
		return "Inventory"
	case ActionSave:
		return "Save"
	case ActionQuit:
		return "Quit"
	case ActionConfirm:
		return "Confirm"
	default:
		return "None"
	}
}

// BindingsByAction returns the current bindings grouped by action.
func BindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action so UI doesn't flicker
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Package renderer defines the rendering backend contract. The engine
// talks to a Renderer value passed in explicitly; there is no package
// global, so tests can run headless and a second backend can be added
// without touching game code.
package renderer

import (
	"deepspire/pkg/engine/input"
	"deepspire/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleRoom
	StyleItem
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
	StylePlayer
	StyleGold
	StyleHealth
	StyleDanger
	StyleEpic
)

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, terminal state)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders a complete game frame: floor header, map,
	// status bar, messages, and the input prompt
	RenderFrame(g *state.Game)

	// GetInput blocks for user input and returns a high-level Intent
	GetInput() input.Intent

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// ViewportSize returns the current viewport dimensions (rows, cols)
	ViewportSize() (rows, cols int)
}

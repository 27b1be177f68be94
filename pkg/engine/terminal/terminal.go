// Package terminal reports the terminal dimensions the renderer lays
// frames out against.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fallback dimensions when the size cannot be determined (piped
// output, dumb terminals).
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// Package floors gives each floor a thematic identity. The player never
// sees a floor total; themes cycle as the descent continues.
package floors

import (
	"github.com/leonelquinteros/gotext"
)

// Theme is the thematic layer of a floor.
type Theme int

const (
	Overgrown Theme = iota // Roots, moss, buried masonry
	Flooded                // Drowned halls and stagnant pools
	Forge                  // Old furnaces and slag channels
	Crypt                  // Burial galleries
	Crystal                // Resonant crystal veins
	Hollow                 // Bare rock near the spire's heart
)

// themeCount is the number of themes (for cycling).
const themeCount = 6

// ThemeFor returns the theme for the given floor (1-based). Themes
// cycle so every floor has an identity.
func ThemeFor(floor int) Theme {
	if floor <= 0 {
		return Overgrown
	}
	return Theme((floor - 1) % themeCount)
}

// Name returns the translated display name of a theme.
func (t Theme) Name() string {
	switch t {
	case Overgrown:
		return gotext.Get("Overgrown Halls")
	case Flooded:
		return gotext.Get("Flooded Galleries")
	case Forge:
		return gotext.Get("Dead Forges")
	case Crypt:
		return gotext.Get("Silent Crypts")
	case Crystal:
		return gotext.Get("Crystal Veins")
	case Hollow:
		return gotext.Get("The Hollow")
	default:
		return gotext.Get("Unknown Depths")
	}
}

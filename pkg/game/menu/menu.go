// Package menu provides a small list menu driven by the renderer's
// input layer. Items are static per invocation; callers rebuild the
// menu when its contents change.
package menu

import (
	"fmt"

	"deepspire/pkg/engine/input"
	"deepspire/pkg/game/renderer"
)

// Item represents a single entry in a menu.
type Item struct {
	Label string
	// Disabled items are shown but skipped during navigation.
	Disabled bool
	Help     string
}

// Run displays the menu and blocks until the player activates an item
// or backs out. It returns the index of the chosen item, or -1 when the
// menu was dismissed.
func Run(r renderer.Renderer, title string, items []Item) int {
	selected := firstSelectable(items, 0, +1)
	if selected == -1 {
		return -1
	}

	for {
		r.Clear()
		fmt.Println(r.StyleText(title, renderer.StyleAction))
		fmt.Println()

		for i, item := range items {
			label := item.Label
			switch {
			case item.Disabled:
				fmt.Println("    " + r.StyleText(label, renderer.StyleSubtle))
			case i == selected:
				fmt.Println("  " + r.StyleText("> "+label, renderer.StyleActionShort))
			default:
				fmt.Println("    " + label)
			}
		}

		fmt.Println()
		if help := items[selected].Help; help != "" {
			fmt.Println(r.StyleText(help, renderer.StyleSubtle))
		}
		fmt.Println(r.StyleText("arrows move, enter selects, q backs out", renderer.StyleSubtle))

		switch r.GetInput().Action {
		case input.ActionMoveNorth:
			if next := firstSelectable(items, selected-1, -1); next != -1 {
				selected = next
			}
		case input.ActionMoveSouth:
			if next := firstSelectable(items, selected+1, +1); next != -1 {
				selected = next
			}
		case input.ActionConfirm:
			return selected
		case input.ActionQuit:
			return -1
		}
	}
}

// firstSelectable walks from start in the given direction and returns
// the first enabled index, or -1 when none remains on that side.
func firstSelectable(items []Item, start, dir int) int {
	for i := start; i >= 0 && i < len(items); i += dir {
		if !items[i].Disabled {
			return i
		}
	}
	return -1
}

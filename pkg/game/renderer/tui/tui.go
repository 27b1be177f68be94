// Package tui is the terminal rendering backend. It draws the floor map
// with box-drawing connectors, the status bar, and the messages pane,
// and doubles as the dispatcher's Notifier and ShopOpener collaborators.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/engine/input"
	"deepspire/pkg/engine/terminal"
	"deepspire/pkg/game/floors"
	"deepspire/pkg/game/gameplay"
	"deepspire/pkg/game/items"
	"deepspire/pkg/game/renderer"
	"deepspire/pkg/game/state"
)

// Map icons
const (
	PlayerIcon  = "@"
	IconUnknown = "●" // adjacent but unexplored room
	IconVoid    = " "
)

// Room icons keyed by room type
var roomIcons = map[dungeon.RoomType]string{
	dungeon.RoomStart:       "◎",
	dungeon.RoomEmpty:       "·",
	dungeon.RoomMonster:     "!",
	dungeon.RoomTreasure:    "$",
	dungeon.RoomChest:       "□",
	dungeon.RoomBoss:        "▣",
	dungeon.RoomStairs:      "▲",
	dungeon.RoomStore:       "⌂",
	dungeon.RoomCampfire:    "♨",
	dungeon.RoomQuest:       "✦",
	dungeon.RoomNPC:         "☺",
	dungeon.RoomBossMonster: "◆",
	dungeon.RoomEpicBoss:    "◈",
}

// Minimum lines reserved outside the map: floor header, room line,
// status bar, messages pane, and the input prompt
const (
	ViewportMinRows  = 7
	ViewportMinCols  = 15
	ViewportChrome   = 18
	roomColumnStride = 4 // icon plus three connector columns
)

// dynamicGet is used for runtime translation key lookups.
// A function variable avoids go vet's non-constant format string check,
// since translation keys are looked up dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorRoom        color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorItem        color.Style
	colorSubtle      color.Style
	colorPlayer      color.Style
	colorGold        color.Style
	colorHealth      color.Style
	colorDanger      color.Style
	colorEpic        color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorRoom = color.Style{color.FgGray}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorGold = color.Style{color.FgYellow, color.OpBold}
	t.colorHealth = color.Style{color.FgGreen}
	t.colorDanger = color.Style{color.FgRed}
	t.colorEpic = color.Style{color.FgCyan, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// GetInput gets user input from the terminal and returns a high-level Intent.
func (t *TUIRenderer) GetInput() input.Intent {
	debounced := input.NewDebouncedInput(input.ReadEvent())
	return input.MapToIntent(debounced)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleRoom:
		return t.colorRoom.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleGold:
		return t.colorGold.Sprint(text)
	case renderer.StyleHealth:
		return t.colorHealth.Sprint(text)
	case renderer.StyleDanger:
		return t.colorDanger.Sprint(text)
	case renderer.StyleEpic:
		return t.colorEpic.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		val := "blat"

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ITEM":
			val = t.colorItem.Sprint(operand)
		case "ROOM":
			val = t.colorRoom.Sprint(dynamicGet(operand))
		case "GOLD":
			val = t.colorGold.Sprint(operand)
		case "EPIC":
			val = t.colorEpic.Sprint(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Println(t.FormatText("%s", msg))
}

// ShowNotification implements gameplay.Notifier. The terminal has no
// overlay surface, so the duration only gates a short pause on danger
// notifications.
func (t *TUIRenderer) ShowNotification(msg string, duration time.Duration, severity gameplay.Severity) {
	var styled string
	switch severity {
	case gameplay.SeveritySuccess:
		styled = t.colorHealth.Sprint(msg)
	case gameplay.SeverityWarning:
		styled = t.colorGold.Sprint(msg)
	case gameplay.SeverityDanger:
		styled = t.colorDanger.Sprint(msg)
	default:
		styled = msg
	}
	fmt.Println("  " + styled)

	if severity == gameplay.SeverityDanger && duration > 0 {
		pause := duration / 4
		if pause > time.Second {
			pause = time.Second
		}
		time.Sleep(pause)
	}
}

// ViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) ViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	cols = termWidth - 4
	rows = termHeight - ViewportChrome

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	return rows, cols
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	theme := floors.ThemeFor(g.Floor)
	t.colorAction.Printf("%s %d", gotext.Get("Floor"), g.Floor)
	fmt.Printf(" %s\n\n", t.colorSubtle.Sprint(theme.Name()))

	if room := g.CurrentRoom(); room != nil {
		t.printString("GT{IN_ROOM} ROOM{%v}\n\n", string(room.Type))
	}

	t.printMap(g)
	t.printStatusBar(g)
	t.printMessagesPane(g)

	fmt.Printf("\n> ")
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Print(t.FormatText(msg, a...))
}

// roomVisible reports whether a room should be drawn at all. Explored
// rooms are drawn fully; rooms one connection away from an explored
// room are drawn as unknown.
func roomVisible(g *state.Game, r *dungeon.Room) (visible, known bool) {
	if r.Explored {
		return true, true
	}
	for _, n := range g.Grid.ConnectedNeighbors(r.X, r.Y) {
		if n.Explored {
			return true, false
		}
	}
	return false, false
}

// renderRoom returns the single-character representation of a room
func (t *TUIRenderer) renderRoom(g *state.Game, r *dungeon.Room) string {
	if r == nil {
		return IconVoid
	}

	if r.HasPlayer {
		return t.colorPlayer.Sprint(PlayerIcon)
	}

	visible, known := roomVisible(g, r)
	if !visible {
		return IconVoid
	}
	if !known {
		return t.colorSubtle.Sprint(IconUnknown)
	}

	icon, ok := roomIcons[r.Type]
	if !ok {
		icon = "?"
	}

	switch {
	case r.Type == dungeon.RoomStairs:
		return t.colorActionShort.Sprint(icon)
	case r.Type == dungeon.RoomBossMonster || r.Type == dungeon.RoomEpicBoss:
		return t.colorEpic.Sprint(icon)
	case r.Type == dungeon.RoomBoss && !r.Cleared:
		return t.colorDenied.Sprint(icon)
	case r.Cleared:
		return t.colorSubtle.Sprint(icon)
	default:
		return t.colorRoom.Sprint(icon)
	}
}

// connectorVisible draws a corridor only once at least one endpoint has
// been explored
func connectorVisible(a, b *dungeon.Room) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Explored || b.Explored
}

// printMap renders the floor map with connectors between rooms
func (t *TUIRenderer) printMap(g *state.Game) {
	if g.Grid == nil {
		return
	}

	termWidth := terminal.GetWidth()
	mapWidth := (g.Grid.Width()-1)*roomColumnStride + 1
	indentLen := (termWidth - mapWidth) / 2
	if indentLen < 0 {
		indentLen = 0
	}
	indent := strings.Repeat(" ", indentLen)

	for y := 0; y < g.Grid.Height(); y++ {
		// Room row
		var row strings.Builder
		for x := 0; x < g.Grid.Width(); x++ {
			room := g.Grid.RoomAt(x, y)
			row.WriteString(t.renderRoom(g, room))

			if x < g.Grid.Width()-1 {
				east := g.Grid.RoomAt(x+1, y)
				if room != nil && room.East && connectorVisible(room, east) {
					row.WriteString(t.colorSubtle.Sprint("───"))
				} else {
					row.WriteString("   ")
				}
			}
		}
		fmt.Println(indent + row.String())

		// Connector row towards the next rank of rooms
		if y < g.Grid.Height()-1 {
			var link strings.Builder
			for x := 0; x < g.Grid.Width(); x++ {
				room := g.Grid.RoomAt(x, y)
				south := g.Grid.RoomAt(x, y+1)
				if room != nil && room.South && connectorVisible(room, south) {
					link.WriteString(t.colorSubtle.Sprint("│"))
				} else {
					link.WriteString(" ")
				}
				if x < g.Grid.Width()-1 {
					link.WriteString("   ")
				}
			}
			fmt.Println(indent + link.String())
		}
	}

	fmt.Println()
}

// printStatusBar renders health, gold, level, and epic progress
func (t *TUIRenderer) printStatusBar(g *state.Game) {
	healthStyle := t.colorHealth
	if g.Player.Health <= g.Player.MaxHealth/4 {
		healthStyle = t.colorDanger
	}

	fmt.Printf("%s %s   %s %s   %s %s   %s %s\n",
		t.colorSubtle.Sprint(gotext.Get("HP")),
		healthStyle.Sprintf("%d/%d", g.Player.Health, g.Player.MaxHealth),
		t.colorSubtle.Sprint(gotext.Get("Gold")),
		t.colorGold.Sprintf("%d", g.Player.Gold),
		t.colorSubtle.Sprint(gotext.Get("Level")),
		t.colorAction.Sprintf("%d (%d xp)", g.Player.Level, g.Player.Experience),
		t.colorSubtle.Sprint(gotext.Get("Relics")),
		t.epicProgress(g))
}

// epicProgress renders which epic relic slots have been collected
func (t *TUIRenderer) epicProgress(g *state.Game) string {
	marks := make([]string, 0, len(state.EpicSlots))
	for _, slot := range state.EpicSlots {
		if g.EpicLoot.Has(slot) {
			marks = append(marks, t.colorEpic.Sprint("◆"))
		} else {
			marks = append(marks, t.colorSubtle.Sprint("◇"))
		}
	}
	return strings.Join(marks, "")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	width := terminal.GetWidth()

	label := " " + gotext.Get("Messages") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", width-sideLen-labelLen)

	fmt.Println()
	fmt.Println(t.colorSubtle.Sprint(leftDashes + label + rightDashes))

	if len(g.Messages) == 0 {
		fmt.Println(t.colorSubtle.Sprint("  " + gotext.Get("(no messages)")))
	} else {
		for _, msg := range g.Messages {
			fmt.Printf("  %s\n", msg)
		}
	}

	fmt.Println(t.colorSubtle.Sprint(strings.Repeat("─", width)))
}

// ShowHelp prints the key bindings and the map legend
func (t *TUIRenderer) ShowHelp() {
	fmt.Println(t.colorAction.Sprint(gotext.Get("Keys")))
	byAction := input.BindingsByAction()
	for _, act := range []input.Action{
		input.ActionMoveNorth, input.ActionMoveSouth,
		input.ActionMoveWest, input.ActionMoveEast,
		input.ActionInventory, input.ActionSave,
		input.ActionHelp, input.ActionQuit,
	} {
		fmt.Printf("  %-12s %s\n", input.ActionName(act),
			t.colorSubtle.Sprint(strings.Join(byAction[act], ", ")))
	}

	fmt.Println(t.colorAction.Sprint(gotext.Get("Legend")))
	legend := []struct {
		roomType dungeon.RoomType
		label    string
	}{
		{dungeon.RoomStart, "start"},
		{dungeon.RoomStairs, "stairs down"},
		{dungeon.RoomMonster, "monster"},
		{dungeon.RoomTreasure, "treasure"},
		{dungeon.RoomChest, "chest"},
		{dungeon.RoomBoss, "boss"},
		{dungeon.RoomStore, "store"},
		{dungeon.RoomCampfire, "campfire"},
		{dungeon.RoomQuest, "quest"},
		{dungeon.RoomNPC, "npc"},
	}
	for _, e := range legend {
		fmt.Printf("  %s %s\n", roomIcons[e.roomType], t.colorSubtle.Sprint(gotext.Get(e.label)))
	}
}

// ShowInventory prints the player's items
func (t *TUIRenderer) ShowInventory(g *state.Game) {
	fmt.Println(t.colorAction.Sprint(gotext.Get("Inventory")))
	if len(g.Player.Inventory) == 0 {
		fmt.Println(t.colorSubtle.Sprint("  " + gotext.Get("(empty)")))
		return
	}
	for _, item := range g.Player.Inventory {
		desc := items.Describe(item)
		if item.Epic {
			fmt.Println("  " + t.colorEpic.Sprint(desc))
		} else {
			fmt.Println("  " + t.colorItem.Sprint(desc))
		}
	}
}

// OpenShop implements gameplay.ShopOpener with a line-based buy loop
func (t *TUIRenderer) OpenShop(g *state.Game) {
	wares := items.ShopWares(g.Floor)

	for {
		fmt.Println()
		fmt.Println(t.colorAction.Sprint(gotext.Get("The shopkeeper lays out their wares.")))
		for i, w := range wares {
			fmt.Printf("  %s %s %s\n",
				t.colorActionShort.Sprintf("%d)", i+1),
				t.colorItem.Sprint(items.Describe(w.Item)),
				t.colorGold.Sprintf("%dg", w.Price))
		}
		fmt.Printf("  %s\n", t.colorSubtle.Sprint(gotext.Get("Enter a number to buy, or press Enter to leave.")))
		fmt.Printf("%s > ", t.colorGold.Sprintf("%dg", g.Player.Gold))

		choice := strings.TrimSpace(input.GetLine())
		if choice == "" || strings.EqualFold(choice, "q") {
			return
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(wares) {
			fmt.Println(t.colorDenied.Sprint(gotext.Get("No such ware.")))
			continue
		}

		ware := wares[idx-1]
		if !g.SpendGold(ware.Price) {
			fmt.Println(t.colorDenied.Sprint(gotext.Get("Not enough gold.")))
			continue
		}

		g.AddItem(ware.Item)
		fmt.Println(t.colorHealth.Sprint(t.FormatText("GT{Bought} %s", items.Describe(ware.Item))))
	}
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/leonelquinteros/gotext"

	"deepspire/pkg/engine/dungeon"
	"deepspire/pkg/engine/input"
	"deepspire/pkg/game/devtools"
	"deepspire/pkg/game/gameplay"
	"deepspire/pkg/game/generator"
	"deepspire/pkg/game/menu"
	"deepspire/pkg/game/persist"
	"deepspire/pkg/game/renderer"
	"deepspire/pkg/game/renderer/tui"
	"deepspire/pkg/game/state"
)

func initGotext() {
	gotext.Configure("mo", "en_GB.utf8", "default")
}

func strategyNames() string {
	names := ""
	for i, s := range generator.Strategies {
		if i > 0 {
			names += ", "
		}
		names += s.Name()
	}
	return names
}

func main() {
	startFloor := flag.Int("floor", 1, "starting floor number (for developer testing)")
	seed := flag.Int64("seed", 0, "world seed; 0 picks one from the clock")
	strategy := flag.String("strategy", "", "force a layout strategy ("+strategyNames()+")")
	savePath := flag.String("save", persist.DefaultSavePath(), "save database path")
	fresh := flag.Bool("new", false, "ignore any existing save and start a new run")
	verbose := flag.Bool("verbose", false, "log floor generation details")
	dumpMap := flag.String("dumpmap", "", "write the generated floor to this file and exit (for developer testing)")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	initGotext()

	if *strategy != "" && generator.ByName(*strategy) == nil {
		fmt.Fprintf(os.Stderr, "unknown strategy %q, available: %s\n", *strategy, strategyNames())
		os.Exit(1)
	}

	r := tui.New()
	r.Init()

	d := gameplay.NewDispatcher()
	d.Notify = r
	d.Shop = r

	opts := gameplay.FloorOptions{Seed: *seed, Strategy: *strategy}

	var g *state.Game
	switch {
	case *fresh || *dumpMap != "":
		g = d.NewGame(*seed, opts)
	default:
		g = chooseGame(r, d, *savePath, *seed, opts)
		if g == nil {
			return
		}
	}

	if *startFloor > 1 && g.Floor < *startFloor {
		d.GenerateNewFloor(g, *startFloor, opts)
	}

	if *dumpMap != "" {
		if err := devtools.WriteMapDump(g.Grid, *dumpMap); err != nil {
			fmt.Fprintf(os.Stderr, "cannot write map dump: %v\n", err)
			os.Exit(1)
		}
		return
	}

	session := &session{
		game:       g,
		dispatcher: d,
		renderer:   r,
		savePath:   *savePath,
	}
	session.run()
}

// chooseGame runs the main menu and returns the game to play, or nil
// when the player quits from the menu.
func chooseGame(r *tui.TUIRenderer, d *gameplay.Dispatcher, savePath string, seed int64, opts gameplay.FloorOptions) *state.Game {
	hasSave := saveExists(savePath)

	items := []menu.Item{
		{Label: gotext.Get("Continue descent"), Disabled: !hasSave},
		{Label: gotext.Get("New descent"), Help: gotext.Get("Starts from floor 1. Any old save is overwritten when you next save.")},
		{Label: gotext.Get("Quit")},
	}

	for {
		switch menu.Run(r, gotext.Get("D E E P S P I R E"), items) {
		case 0:
			g, err := loadSave(savePath)
			if err != nil {
				slog.Warn("save unreadable", "path", savePath, "error", err)
				continue
			}
			return g
		case 1:
			return d.NewGame(seed, opts)
		default:
			return nil
		}
	}
}

func saveExists(path string) bool {
	store, err := persist.Open(path)
	if err != nil {
		return false
	}
	defer store.Close()
	_, err = store.Load()
	return err == nil
}

func loadSave(path string) (*state.Game, error) {
	store, err := persist.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load()
}

// session owns the interactive loop wiring
type session struct {
	game       *state.Game
	dispatcher *gameplay.Dispatcher
	renderer   *tui.TUIRenderer
	savePath   string
}

func (s *session) run() {
	for {
		s.renderer.Clear()

		if s.game.Won {
			s.victory()
			return
		}

		s.renderer.RenderFrame(s.game)
		s.handle(s.renderer.GetInput())

		// Expired timers (the stairs descent) run here, on this
		// goroutine, after input and before the next frame.
		s.dispatcher.Sched.RunDue()
	}
}

func (s *session) handle(intent input.Intent) {
	g := s.game

	switch intent.Action {
	case input.ActionMoveNorth:
		s.move(dungeon.North)
	case input.ActionMoveSouth:
		s.move(dungeon.South)
	case input.ActionMoveWest:
		s.move(dungeon.West)
	case input.ActionMoveEast:
		s.move(dungeon.East)
	case input.ActionHelp:
		s.renderer.Clear()
		s.renderer.ShowHelp()
		s.waitForKey()
	case input.ActionInventory:
		s.renderer.Clear()
		s.renderer.ShowInventory(g)
		s.waitForKey()
	case input.ActionSave:
		s.save()
	case input.ActionQuit:
		s.save()
		s.renderer.ShowMessage(gotext.Get("The spire will wait for you."))
		os.Exit(0)
	case input.ActionConfirm:
		// Redraw only
	default:
		g.AddMessage(s.renderer.StyleText(gotext.Get("Unknown command, press ? for help."), renderer.StyleSubtle))
	}
}

func (s *session) move(dir dungeon.Direction) {
	if !s.dispatcher.MoveDirection(s.game, dir) {
		s.game.AddMessage(s.renderer.StyleText(gotext.Get("There is no passage that way."), renderer.StyleSubtle))
	}
}

func (s *session) save() {
	store, err := persist.Open(s.savePath)
	if err != nil {
		slog.Warn("cannot open save database", "path", s.savePath, "error", err)
		s.game.AddMessage(s.renderer.StyleText(gotext.Get("Saving failed."), renderer.StyleDenied))
		return
	}
	defer store.Close()

	if err := store.Save(s.game); err != nil {
		slog.Warn("cannot write save", "path", s.savePath, "error", err)
		s.game.AddMessage(s.renderer.StyleText(gotext.Get("Saving failed."), renderer.StyleDenied))
		return
	}
	s.game.AddMessage(s.renderer.StyleText(gotext.Get("Game saved."), renderer.StyleItem))
}

func (s *session) victory() {
	s.renderer.ShowMessage(s.renderer.StyleText(gotext.Get("The Deepspire falls silent. You have won."), renderer.StyleEpic))
	fmt.Printf("%s %d\n", gotext.Get("Final floor:"), s.game.Floor)

	// A finished run does not leave a stale save behind
	if store, err := persist.Open(s.savePath); err == nil {
		store.Clear()
		store.Close()
	}
}

func (s *session) waitForKey() {
	fmt.Printf("\n%s", gotext.Get("Press Enter to continue."))
	input.GetLine()
}

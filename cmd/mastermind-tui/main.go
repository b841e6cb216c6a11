// Command mastermind-tui plays Mastermind in the terminal.
//
// Defaults come from the same environment as the server (MASTERMIND_COLORS,
// MASTERMIND_SLOTS, MASTERMIND_DUPLICATES, MASTERMIND_GUESSES); flags override
// them. Set MASTERMIND_LOG_FILE to keep a log, since the terminal is in use.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VinEdw/mastermind-pvp/internal/config"
	"github.com/VinEdw/mastermind-pvp/internal/game"
	"github.com/VinEdw/mastermind-pvp/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mastermind:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rules := cfg.Rules.Game()
	flag.IntVar(&rules.Colors, "colors", rules.Colors, "palette size (1-10)")
	flag.IntVar(&rules.Slots, "slots", rules.Slots, "code length (1-10)")
	flag.BoolVar(&rules.Duplicates, "duplicates", rules.Duplicates, "allow repeated colors in the code")
	flag.IntVar(&rules.Guesses, "guesses", rules.Guesses, "number of guess rows (1-20)")
	flag.Parse()

	closeLog, err := setupLogging(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	g, err := game.New(rules, nil)
	if err != nil {
		return err
	}
	log.Info().Interface("rules", rules).Msg("game started")

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	loop(screen, tui.NewBoard(g))
	return nil
}

func loop(screen tcell.Screen, b *tui.Board) {
	for {
		tui.Draw(screen, b)
		screen.Show()

		var a tui.Action
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			continue
		case *tcell.EventKey:
			a = tui.ActionForKey(ev)
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 == 0 {
				continue
			}
			x, y := ev.Position()
			a = tui.LayoutFor(b.Game()).Hit(x, y, b.Game().State().Row)
		}
		if b.Apply(a) {
			return
		}
	}
}

// setupLogging sends zerolog output to MASTERMIND_LOG_FILE, or disables it.
func setupLogging(level string) (func(), error) {
	path := os.Getenv("MASTERMIND_LOG_FILE")
	if path == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

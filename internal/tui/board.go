// Package tui is the terminal front end.
//
// Board holds the view state the game core does not know about: the row being
// edited and the selected slot. Everything about scoring and turn order is
// delegated to *game.Game; Board only reacts to its results.
package tui

import (
	"errors"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/VinEdw/mastermind-pvp/internal/game"
)

// ActionKind enumerates player inputs.
type ActionKind int

const (
	ActNone   ActionKind = iota
	ActPlace             // put Color in the selected slot and move right
	ActClear             // empty the selected slot
	ActLeft              // select the previous slot (wraps)
	ActRight             // select the next slot (wraps)
	ActSelect            // clear slot Slot and select it
	ActCheck             // submit the row, or reset once finished
	ActQuit
)

// Action is a decoded input event.
type Action struct {
	Kind  ActionKind
	Color game.Color
	Slot  int
}

// Board is the terminal view state for one game.
type Board struct {
	game     *game.Game
	draft    game.Sequence
	selected int
	status   string
}

// NewBoard wraps g with an empty draft row.
func NewBoard(g *game.Game) *Board {
	b := &Board{game: g}
	b.clearDraft()
	return b
}

// Game returns the underlying game.
func (b *Board) Game() *game.Game { return b.game }

// Draft returns the row being edited.
func (b *Board) Draft() game.Sequence { return b.draft.Clone() }

// Selected is the selected slot index.
func (b *Board) Selected() int { return b.selected }

// Status is the last message for the player.
func (b *Board) Status() string { return b.status }

// Apply handles one action and reports whether the player asked to quit.
func (b *Board) Apply(a Action) bool {
	if a.Kind == ActQuit {
		return true
	}
	if b.game.State().Finished {
		if a.Kind == ActCheck {
			b.reset()
		}
		return false
	}
	switch a.Kind {
	case ActPlace:
		b.place(a.Color)
	case ActClear:
		b.draft[b.selected] = game.Empty
	case ActLeft:
		b.selectSlot(b.selected - 1)
	case ActRight:
		b.selectSlot(b.selected + 1)
	case ActSelect:
		b.selectSlot(a.Slot)
		b.draft[b.selected] = game.Empty
	case ActCheck:
		b.check()
	}
	return false
}

func (b *Board) place(c game.Color) {
	if slices.Contains(b.game.Palette(), c) {
		b.draft[b.selected] = c
		b.selectSlot(b.selected + 1)
	}
}

// selectSlot wraps i into [0, slots).
func (b *Board) selectSlot(i int) {
	n := len(b.draft)
	b.selected = ((i % n) + n) % n
}

func (b *Board) check() {
	ev, ok, err := b.game.SubmitGuess(b.draft)
	switch {
	case errors.Is(err, game.ErrLengthMismatch):
		log.Error().Err(err).Msg("draft row does not match the board")
		b.status = "internal error: " + err.Error()
		return
	case err != nil:
		b.status = err.Error()
		return
	case !ok:
		b.status = "Fill every slot before checking."
		return
	}

	log.Debug().Int("row", ev.Row).Int("exact", ev.Feedback.Exact).Int("colorOnly", ev.Feedback.ColorOnly).Msg("row checked")
	b.clearDraft()
	switch {
	case ev.Won:
		b.status = "Solved! Press Enter to play again."
		log.Info().Int("rows", ev.Row+1).Msg("game won")
	case ev.Finished:
		b.status = "Out of guesses. Press Enter to play again."
		log.Info().Msg("game lost")
	default:
		b.status = ""
	}
}

func (b *Board) reset() {
	if err := b.game.Reset(); err != nil {
		b.status = err.Error()
		return
	}
	b.clearDraft()
	b.status = ""
}

func (b *Board) clearDraft() {
	b.draft = make(game.Sequence, b.game.Rules().Slots)
	b.selected = 0
}

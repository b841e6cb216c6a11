// internal/game/engine.go
//
// Game state machine for a single Mastermind session.
// Responsibilities:
//   - Create games from validated Rules with a freshly drawn solution.
//   - Accept complete guesses, score them, and keep the board history.
//   - Track state transitions: Playing(row) → Finished (won or out of rows).
//   - Reset to Playing(0) with an independently drawn solution.
//
// Notes:
//   - Incomplete rows are declined without a transition (ok == false, nil error);
//     callers re-prompt the player.
//   - View state (selected slot, row being edited) lives in the caller.
//   - A Game is owned by one session and is not safe for concurrent use.
package game

import (
	"fmt"
	"slices"
)

// Game holds the state of a single session.
type Game struct {
	rules    Rules
	palette  []Color
	gen      *Generator
	solution Sequence
	row      int
	finished bool
	won      bool
	history  []Row
}

// New validates rules and starts a game with a random solution.
// A nil gen uses NewGenerator(nil).
func New(rules Rules, gen *Generator) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = NewGenerator(nil)
	}
	g := &Game{rules: rules, palette: Palette(rules.Colors), gen: gen}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewWithSolution starts a game with a fixed solution. Later resets draw from gen.
func NewWithSolution(rules Rules, gen *Generator, solution Sequence) (*Game, error) {
	g, err := New(rules, gen)
	if err != nil {
		return nil, err
	}
	if len(solution) != rules.Slots {
		return nil, &ConfigError{Field: "solution", Reason: fmt.Sprintf("want %d colors, got %d", rules.Slots, len(solution))}
	}
	for i, c := range solution {
		if !slices.Contains(g.palette, c) {
			return nil, &ConfigError{Field: "solution", Reason: fmt.Sprintf("color %q is not in the palette", c)}
		}
		if !rules.Duplicates && slices.Contains(solution[:i], c) {
			return nil, &ConfigError{Field: "solution", Reason: fmt.Sprintf("color %q repeats with duplicates off", c)}
		}
	}
	g.solution = solution.Clone()
	return g, nil
}

// Rules returns the session options.
func (g *Game) Rules() Rules { return g.rules }

// Palette returns the colors a guess may use.
func (g *Game) Palette() []Color {
	out := make([]Color, len(g.palette))
	copy(out, g.palette)
	return out
}

// State reports the current state.
func (g *Game) State() State {
	if g.finished {
		return State{Row: NoRow, Finished: true, Won: g.won}
	}
	return State{Row: g.row}
}

// Rows returns the evaluated rows so far.
func (g *Game) Rows() []Row {
	out := make([]Row, len(g.history))
	for i, r := range g.history {
		out[i] = Row{Guess: r.Guess.Clone(), Feedback: r.Feedback}
	}
	return out
}

// Solution reveals the solution once the game is finished.
func (g *Game) Solution() (Sequence, bool) {
	if !g.finished {
		return nil, false
	}
	return g.solution.Clone(), true
}

// SubmitGuess scores guess for the current row and advances the state.
//
// Returns ok == false with no transition if any slot is Empty.
// Errors: ErrFinished, ErrLengthMismatch, ErrUnknownColor.
func (g *Game) SubmitGuess(guess Sequence) (Event, bool, error) {
	if g.finished {
		return Event{}, false, ErrFinished
	}
	if len(guess) != g.rules.Slots {
		return Event{}, false, fmt.Errorf("%w: guess has %d slots, game has %d", ErrLengthMismatch, len(guess), g.rules.Slots)
	}
	for _, c := range guess {
		if c != Empty && !slices.Contains(g.palette, c) {
			return Event{}, false, fmt.Errorf("%w: %q", ErrUnknownColor, c)
		}
	}
	if !guess.Complete() {
		return Event{}, false, nil
	}

	fb, err := Evaluate(guess, g.solution)
	if err != nil {
		return Event{}, false, err
	}
	g.history = append(g.history, Row{Guess: guess.Clone(), Feedback: fb})
	ev, err := g.Advance(fb)
	return ev, true, err
}

// Advance applies feedback for the current row: finish on a win or on the
// last row, otherwise move to the next row.
func (g *Game) Advance(fb Feedback) (Event, error) {
	if g.finished {
		return Event{}, ErrFinished
	}
	ev := Event{Row: g.row, Feedback: fb}
	if fb.Exact == g.rules.Slots || g.row == g.rules.Guesses-1 {
		g.finished = true
		g.won = fb.Exact == g.rules.Slots
		ev.Finished, ev.Won = true, g.won
		ev.Solution = g.solution.Clone()
		return ev, nil
	}
	g.row++
	return ev, nil
}

// Reset draws a new solution and returns to Playing(0).
func (g *Game) Reset() error {
	sol, err := g.gen.Generate(g.rules.Colors, g.rules.Slots, g.rules.Duplicates)
	if err != nil {
		return err
	}
	g.solution = sol
	g.row = 0
	g.finished, g.won = false, false
	g.history = nil
	return nil
}

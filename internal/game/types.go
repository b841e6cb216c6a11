// internal/game/types.go
//
// Core type definitions for the Mastermind engine.
// Defines:
//   - Color / Sequence: peg identifiers and ordered rows of pegs.
//   - Feedback: exact and color-only counts for an evaluated row.
//   - Row / Event / State: board history and state-machine outputs.

package game

// Color is a palette identifier ("1".."9", "0").
// The zero value Empty marks an unfilled slot in a guess.
type Color string

// Empty is the marker for a slot with no peg placed.
const Empty Color = ""

// Sequence is an ordered row of colors. Solutions never contain Empty.
type Sequence []Color

// Complete reports whether no slot is Empty.
func (s Sequence) Complete() bool {
	for _, c := range s {
		if c == Empty {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Peg is a small feedback peg.
type Peg string

const (
	PegDark  Peg = "dark"  // right color, right position
	PegLight Peg = "light" // right color, wrong position
)

// Feedback is the evaluation result of one guess.
type Feedback struct {
	Exact     int `json:"exact"`
	ColorOnly int `json:"colorOnly"`
}

// Pegs lists the feedback pegs in display order: dark pegs first, then light.
func (f Feedback) Pegs() []Peg {
	out := make([]Peg, 0, f.Exact+f.ColorOnly)
	for i := 0; i < f.Exact; i++ {
		out = append(out, PegDark)
	}
	for i := 0; i < f.ColorOnly; i++ {
		out = append(out, PegLight)
	}
	return out
}

// Row is one evaluated board row.
type Row struct {
	Guess    Sequence `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// NoRow is the row index reported once the game is finished.
const NoRow = -1

// State is a snapshot of the state machine.
type State struct {
	Row      int  `json:"row"`      // current row index, NoRow when finished
	Finished bool `json:"finished"` // true once won or out of rows
	Won      bool `json:"won"`      // true if finished with an exact match
}

// Event is emitted for every accepted guess.
// Solution is only set when the game finished with this guess.
type Event struct {
	Row      int
	Feedback Feedback
	Finished bool
	Won      bool
	Solution Sequence
}

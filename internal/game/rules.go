package game

import (
	"fmt"

	"github.com/VinEdw/mastermind-pvp/internal/palette"
)

const (
	DefaultColors  = 6
	DefaultSlots   = 4
	DefaultGuesses = 10

	// Upper bounds on client-chosen board sizes.
	MaxSlots   = 10
	MaxGuesses = 20
)

// Rules are the per-session options.
type Rules struct {
	Colors     int  `json:"colors"`     // palette size
	Slots      int  `json:"slots"`      // sequence length
	Duplicates bool `json:"duplicates"` // allow repeated colors in the solution
	Guesses    int  `json:"guesses"`    // number of guess rows
}

// DefaultRules returns 6 colors, 4 slots, no duplicates, 10 guesses.
func DefaultRules() Rules {
	return Rules{
		Colors:  DefaultColors,
		Slots:   DefaultSlots,
		Guesses: DefaultGuesses,
	}
}

// Validate checks the rules against the standard color table.
// All failures are *ConfigError.
func (r Rules) Validate() error {
	if err := validateShape(r.Colors, r.Slots, r.Duplicates); err != nil {
		return err
	}
	switch {
	case r.Guesses < 1:
		return &ConfigError{Field: "guesses", Reason: "must be at least 1"}
	case r.Guesses > MaxGuesses:
		return &ConfigError{Field: "guesses", Reason: fmt.Sprintf("at most %d guesses", MaxGuesses)}
	}
	return nil
}

func validateShape(colors, slots int, duplicates bool) error {
	defined := palette.Standard().Len()
	switch {
	case colors < 1:
		return &ConfigError{Field: "colors", Reason: "must be at least 1"}
	case colors > defined:
		return &ConfigError{Field: "colors", Reason: fmt.Sprintf("at most %d colors are defined", defined)}
	case slots < 1:
		return &ConfigError{Field: "slots", Reason: "must be at least 1"}
	case slots > MaxSlots:
		return &ConfigError{Field: "slots", Reason: fmt.Sprintf("at most %d slots", MaxSlots)}
	case !duplicates && slots > colors:
		return &ConfigError{Field: "slots", Reason: fmt.Sprintf("%d slots need duplicates with only %d colors", slots, colors)}
	}
	return nil
}

// Palette returns the first n color ids of the standard table.
func Palette(n int) []Color {
	ids := palette.Standard().IDs(n)
	out := make([]Color, len(ids))
	for i, id := range ids {
		out[i] = Color(id)
	}
	return out
}

package game

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// Source is the randomness a Generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource uses the auto-seeded math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator draws random solutions.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator over src.
// A nil src uses the process-wide random generator.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// RandomColor draws uniformly from available, skipping anything in exclude.
func (g *Generator) RandomColor(available, exclude []Color) (Color, error) {
	pool := make([]Color, 0, len(available))
	for _, c := range available {
		if !slices.Contains(exclude, c) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return Empty, errors.New("no colors left to draw from")
	}
	return pool[g.src.IntN(len(pool))], nil
}

// Generate draws a solution of slots colors from a palette of the given size.
// Left to right, each slot is drawn from the palette; without duplicates,
// colors already placed are excluded.
func (g *Generator) Generate(colors, slots int, allowDuplicates bool) (Sequence, error) {
	if err := validateShape(colors, slots, allowDuplicates); err != nil {
		return nil, err
	}
	available := Palette(colors)
	seq := make(Sequence, 0, slots)
	var exclude []Color
	for i := 0; i < slots; i++ {
		c, err := g.RandomColor(available, exclude)
		if err != nil {
			return nil, err
		}
		if !allowDuplicates {
			exclude = append(exclude, c)
		}
		seq = append(seq, c)
	}
	return seq, nil
}

package game

import "fmt"

// Evaluate scores guess against solution.
//
// Pass 1 counts exact positions. Pass 2 sums, over every distinct color of
// the guess, min(count in guess, count in solution); the color-only count is
// that total minus the exact count. Repeated colors are never double-counted,
// and the result is symmetric in its two arguments.
func Evaluate(guess, solution Sequence) (Feedback, error) {
	if len(guess) != len(solution) {
		return Feedback{}, fmt.Errorf("%w: guess has %d slots, solution %d", ErrLengthMismatch, len(guess), len(solution))
	}
	if !guess.Complete() {
		return Feedback{}, ErrIncompleteGuess
	}

	exact := 0
	for i := range guess {
		if guess[i] == solution[i] {
			exact++
		}
	}

	inGuess := tally(guess)
	inSolution := tally(solution)
	total := 0
	for c, n := range inGuess {
		total += min(n, inSolution[c])
	}

	return Feedback{Exact: exact, ColorOnly: total - exact}, nil
}

func tally(s Sequence) map[Color]int {
	m := make(map[Color]int, len(s))
	for _, c := range s {
		m[c]++
	}
	return m
}

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches every *ConfigError via errors.Is.
	ErrConfig = errors.New("invalid game configuration")

	// ErrLengthMismatch means guess and solution differ in length.
	// It signals a caller/core desynchronization, never user input.
	ErrLengthMismatch = errors.New("guess and solution length mismatch")

	// ErrIncompleteGuess is returned by Evaluate when a slot is Empty.
	ErrIncompleteGuess = errors.New("guess has empty slots")

	// ErrUnknownColor means a guess uses a color outside the session palette.
	ErrUnknownColor = errors.New("color not in palette")

	// ErrFinished is returned when guessing on a finished game.
	ErrFinished = errors.New("game finished")
)

// ConfigError describes an invalid rules option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

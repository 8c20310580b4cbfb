package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation reports a state the game logic should never reach, e.g. the
	// random walk not finding any free cell.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInputRejected is returned for user input that arrives in the wrong state (stale
	// clicks on buttons being removed, clicks while cards are turning back, ...).
	// It is only logged, never shown to the player.
	ErrInputRejected = errors.New("input rejected")

	// ErrConfiguration reports broken content or tuning values.
	ErrConfiguration = errors.New("configuration error")
)

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputRejected, fmt.Sprintf(format, args...))
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

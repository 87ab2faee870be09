package game

import (
	"errors"
	"fmt"

	"github.com/Roryrai/MTGplaytester/internal/game/mana"
)

// ErrGameOver is returned for commands issued after a player has won.
var ErrGameOver = errors.New("game finished")

// FormatError reports a card whose mana cost does not follow the cost grammar.
type FormatError struct {
	Name string
	Cost string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("mana cost for %s is formatted incorrectly: %q", e.Name, e.Cost)
}

func (e *FormatError) Unwrap() error { return mana.ErrInvalidCost }

// ZoneError reports a move that would break a zone rule. The game state is
// unchanged when it is returned.
type ZoneError struct {
	Reason string
}

func (e *ZoneError) Error() string { return e.Reason }

// ActionError reports an action the card cannot perform in its current
// state, such as transforming a card with no back face.
type ActionError struct {
	Reason string
}

func (e *ActionError) Error() string { return e.Reason }

// NotFoundError reports a card lookup that matched nothing.
type NotFoundError struct {
	Search string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("failed to find %q", e.Search)
}

// SyntaxError reports malformed command arguments.
type SyntaxError struct {
	Command string
}

func (e *SyntaxError) Error() string {
	return "invalid syntax for " + e.Command
}

func zoneErrorf(format string, args ...any) error {
	return &ZoneError{Reason: fmt.Sprintf(format, args...)}
}

func actionErrorf(format string, args ...any) error {
	return &ActionError{Reason: fmt.Sprintf(format, args...)}
}

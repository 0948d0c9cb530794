package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when the chosen cell is empty, off the
	// board, or holds a piece of the side not to move.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrIllegalMove is returned when a destination is not reachable from the source.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned for any mutation after a verdict until Reset.
	ErrGameOver = errors.New("game over")
)

// MoveError carries the cells involved in a rejected operation.
// It unwraps to one of the sentinel errors above.
type MoveError struct {
	Op     string // "select" or "move"
	From   Cell
	To     *Cell
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.From)
	if e.To != nil {
		msg += " -> " + e.To.String()
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func selectionError(from Cell, reason string) error {
	return &MoveError{Op: "select", From: from, Reason: reason, Err: ErrInvalidSelection}
}

func moveError(from, to Cell, reason string, err error) error {
	return &MoveError{Op: "move", From: from, To: &to, Reason: reason, Err: err}
}

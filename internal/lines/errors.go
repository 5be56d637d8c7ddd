package lines

import "errors"

var (
	// ErrInvalidConfiguration is returned for bad dimensions, kind counts or rules.
	ErrInvalidConfiguration = errors.New("lines: invalid configuration")

	// ErrOutOfBounds is returned by accessors for coordinates outside the grid.
	ErrOutOfBounds = errors.New("lines: coordinate out of bounds")

	// ErrInvalidKind is returned when a position holds a kind outside [0, Kinds-1].
	ErrInvalidKind = errors.New("lines: invalid color kind")

	// ErrBoardFull is raised internally when a spawn finds no empty cell.
	// It ends the round instead of failing the call.
	ErrBoardFull = errors.New("lines: board full")
)

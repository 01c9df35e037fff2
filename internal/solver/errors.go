package solver

import "errors"

// ErrInvalidInput is wrapped and returned when stock dimensions, a demand's
// dimensions or quantity, or the kerf are out of range.
var ErrInvalidInput = errors.New("invalid input")

// ErrInfeasible is wrapped and returned when a demanded piece cannot fit an
// empty panel, even after applying the rotation permission.
var ErrInfeasible = errors.New("infeasible piece")

// Package matrix: sentinel error set. All algorithms return these sentinels
// and callers match them via errors.Is; no algorithm panics on a
// user-triggered error condition.

package matrix

import "errors"

var (
	// ErrBadShape is returned when requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when a zero pivot is encountered during LU
	// decomposition or inversion; this package does not pivot.
	ErrSingular = errors.New("matrix: singular matrix")
)

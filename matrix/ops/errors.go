// SPDX-License-Identifier: MIT
// Package ops: sentinel error set.

package ops

import "errors"

var (
	// ErrIntegerOverflow is returned when an intermediate entry of an exact
	// integer elimination exceeds MaxEntry.
	ErrIntegerOverflow = errors.New("ops: integer entry exceeds safe bound")

	// ErrNotPositiveDefinite is returned by Cholesky for a non-SPD input.
	ErrNotPositiveDefinite = errors.New("ops: matrix is not positive definite")

	// ErrNoSolution is returned when a linear system has no (integral or
	// modulo-1) solution.
	ErrNoSolution = errors.New("ops: system has no solution")
)

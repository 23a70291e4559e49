// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions MUST return these sentinels (optionally wrapped with
// fmt.Errorf("ctx: %w", ErrX)) and tests MUST check them via errors.Is.

package matrix

import "errors"

var (
	// ErrSingular is returned when an inverse is requested for a matrix whose
	// determinant is (numerically) zero.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotUnimodular is returned when an integer inverse is requested for a
	// matrix whose determinant is not ±1.
	ErrNotUnimodular = errors.New("matrix: integer matrix is not unimodular")

	// ErrBadShape is returned when an IDense is created with non-positive
	// dimensions or operands do not conform.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates an index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

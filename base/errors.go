// SPDX-License-Identifier: MIT
// Package base: sentinel error set.

package base

import "errors"

var (
	// ErrDegenerateLattice is returned for a lattice with |det| below
	// DegenerateVolume.
	ErrDegenerateLattice = errors.New("base: degenerate lattice")

	// ErrInput signals a malformed cell: no atoms, mismatched array lengths,
	// or non-finite coordinates.
	ErrInput = errors.New("base: invalid input cell")

	// ErrNotUnimodular is returned when a unimodular transformation is built
	// from a matrix whose determinant is not 1.
	ErrNotUnimodular = errors.New("base: transformation is not unimodular")

	// ErrNonPositiveTransformation is returned when a Transformation is built
	// from a matrix whose determinant is not positive.
	ErrNonPositiveTransformation = errors.New("base: transformation determinant must be positive")
)

// Eps is the internal tolerance for exact-in-principle float quantities
// (rounded integers, rational translations).
const Eps = 1e-8

// DegenerateVolume is the smallest accepted |det| of a lattice basis.
const DegenerateVolume = 1e-8

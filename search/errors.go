// SPDX-License-Identifier: MIT

package search

import "errors"

var (
	// ErrNoPrimitiveCell is returned when the translations found do not
	// generate a lattice of the expected index. A finite non-empty cell is
	// always its own primitive supercell, so this signals an internal
	// inconsistency.
	ErrNoPrimitiveCell = errors.New("search: no primitive cell")

	// ErrTooSmallTolerance is returned when the tolerance misses translations
	// or operations that the structure must have.
	ErrTooSmallTolerance = errors.New("search: tolerance too small")

	// ErrTooLargeTolerance is returned when the tolerance admits operations
	// that do not form a group.
	ErrTooLargeTolerance = errors.New("search: tolerance too large")
)

// SPDX-License-Identifier: MIT

package moyo

import (
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix/ops"
	"github.com/katalvlaran/moyo/reduce"
	"github.com/katalvlaran/moyo/search"
)

// Failure kinds of the entry points, matched with errors.Is. They are the
// sentinels of the subpackages that raise them.
var (
	// ErrInput reports a malformed cell.
	ErrInput = base.ErrInput
	// ErrDegenerateLattice reports a (near) singular basis.
	ErrDegenerateLattice = base.ErrDegenerateLattice
	// ErrReduction reports a lattice reduction that did not converge.
	ErrReduction = reduce.ErrReduction
	// ErrIntegerOverflow reports integer normal-form entries out of range.
	ErrIntegerOverflow = ops.ErrIntegerOverflow
	// ErrNoPrimitiveCell should not be seen; it marks a broken invariant of
	// the primitive cell search.
	ErrNoPrimitiveCell = search.ErrNoPrimitiveCell
	// ErrNoMatchingType reports operations that form no tabulated group.
	ErrNoMatchingType = identify.ErrNoMatchingType
)

// SPDX-License-Identifier: MIT

package symmetrize

import "errors"

var (
	// ErrStandardization is returned when the operations of a cell cannot be
	// carried onto the tabulated operations of its Hall setting.
	ErrStandardization = errors.New("symmetrize: cannot standardize")

	// ErrWyckoffAssignment is returned when a site lies on none of the
	// Wyckoff positions of its multiplicity.
	ErrWyckoffAssignment = errors.New("symmetrize: no Wyckoff position")
)

// SPDX-License-Identifier: MIT
// Package reduce: sentinel error set.

package reduce

import "errors"

// ErrReduction is returned when a reduction exceeds its iteration cap or
// produces a basis that fails the reducedness check.
var ErrReduction = errors.New("reduce: lattice reduction did not converge")

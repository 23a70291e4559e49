// SPDX-License-Identifier: MIT

// Package symmetrize builds standardized cells from an identified space
// group.
//
// NewStandardizedCell moves a primitive cell into the primitive basis of
// the tabulated Hall setting, snaps positions onto the exact operations of
// the setting, expands the conventional cell, symmetrizes the metric and
// rotates the result into upper-triangular form. Among the settings related
// by the normalizer of the group (alternative origins and axis choices) the
// one with the smallest Wyckoff letters is kept.
//
// NewStandardizedMagneticCell does the same for magnetic cells and also
// averages the moments over the magnetic operations.
//
// The building blocks SymmetrizePositions, SymmetrizeLattice,
// AssignWyckoffs and PearsonSymbol are exported for callers that hold
// operations from elsewhere.
package symmetrize

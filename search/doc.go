// SPDX-License-Identifier: MIT

// Package search finds the primitive cell and the symmetry operations of a
// crystal structure within a length tolerance (symprec), an angle tolerance
// and, for magnetic structures, a moment tolerance (magSymprec).
//
// Pipeline:
//   - NewPrimitiveCell detects pure translations that map the structure onto
//     itself and reduces the cell to a Minkowski-reduced primitive cell.
//   - BravaisGroup enumerates the rotations preserving the lattice metric.
//   - NewPrimitiveSymmetrySearch completes each lattice rotation with a
//     translation matching every site, using a PeriodicIndex (an R-tree over
//     the 27 periodic images of the sites) for nearest-site lookups.
//   - NewMagneticSymmetrySearch attaches time-reversal flags from the
//     moments.
//
// The search functions return ErrTooSmallTolerance or ErrTooLargeTolerance
// when the operations found are inconsistent at the given tolerance.
// IterativeSymmetrySearch retries with rescaled tolerances a bounded number
// of times and reports the tolerances finally used.
package search

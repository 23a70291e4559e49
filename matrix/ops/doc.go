// SPDX-License-Identifier: MIT

// Package ops provides the decompositions and exact integer algebra used by
// lattice reduction, symmetry identification and standardization.
//
// Floating point:
//   - QR: Householder reflections on a 3×3 matrix.
//   - Cholesky: lower factor of a symmetric positive-definite metric.
//
// Exact integers (on matrix.IDense, bounded by MaxEntry):
//   - NewHNF: column Hermite normal form H = A·R.
//   - NewSNF: Smith normal form D = L·A·R.
//   - IntegerKernel, SolveMod1, Sylvester3 built on the SNF.
package ops

// SPDX-License-Identifier: MIT

// Package matrix provides the fixed-size linear algebra used by the
// crystallographic packages: 3-vectors and 3×3 matrices over float64 and int,
// plus a small row-major integer matrix (IDense) for stacked systems.
//
// All 3×3 types are values (arrays), so they are comparable with == and can be
// used as map keys. Matrices are row-major: m[i][j] is row i, column j.
// A lattice basis stores its basis vectors as COLUMNS; Columns/FromColumns
// convert between the two views.
//
// Numeric policy:
//   - Float comparisons always take an explicit tolerance.
//   - Wrap maps fractional coordinates into [0,1); WrapSigned into [-1/2,1/2].
//   - Integer products are exact; overflow control for long elimination chains
//     lives in matrix/ops.
//
// The package has no dependencies beyond the standard library math package.
package matrix

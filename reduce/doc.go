// SPDX-License-Identifier: MIT

// Package reduce implements lattice basis reduction for 3-vector bases.
//
// Each reducer takes a basis whose COLUMNS are the lattice vectors and
// returns a new basis together with the integer matrix T relating them:
//
//	reduced = basis · T,  det(T) = 1
//
// Reducers never mutate their input. A negative-determinant T is fixed by
// negating all three vectors, so handedness is preserved.
//
//   - Niggli: the eight-step Křivý–Gruber scheme on the Gram matrix.
//   - Delaunay: superbase reflection until all six products are ≤ 0.
//   - Minkowski: greedy shortest-vector reduction (Nguyen–Stehlé) for rank 2 or 3.
//
// Every iterative loop is capped; exceeding the cap returns ErrReduction.
package reduce

// SPDX-License-Identifier: MIT

// Package group holds the finite-group machinery shared by identification
// and standardization: closure by breadth-first traversal, rotation types,
// closure checks, origin-shift matching and integral normalizers.
//
// Operations are affine maps (R, t) in fractional coordinates; translations
// are compared modulo lattice vectors. Every comparison takes an explicit
// tolerance.
//
// Traverse walks the Cayley graph of the generators in breadth-first order,
// keeping one representative per rotation (per rotation and time-reversal
// flag for magnetic operations), so the result is a set of coset
// representatives of the translation subgroup.
package group

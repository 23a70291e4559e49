// SPDX-License-Identifier: MIT

// Package base defines the crystal data model: Lattice, Cell, MagneticCell,
// symmetry operations, affine transformations between settings, site
// permutations and orbits.
//
// Conventions:
//   - A Lattice stores its basis vectors as the COLUMNS of a 3×3 matrix.
//   - Positions are fractional and wrapped into [0,1) at construction.
//   - An Operation (W, w) maps x ↦ W·x + w in fractional coordinates.
//   - A Transformation (P, p) relates an old basis to a new one by
//     new = old·P; fractional points map by x' = P⁻¹(x − p) and operations
//     by (P⁻¹WP, P⁻¹(w + Wp − p)).
//
// All types are immutable by convention: transforming a Cell returns a new
// Cell; nothing in this package mutates its receiver.
package base

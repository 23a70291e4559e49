// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// maxPointGroupOrder is the order of m-3m, the largest lattice point group.
const maxPointGroupOrder = 48

// BravaisGroup returns the rotations W (integer, det ±1) with WᵀGW ≈ G for
// the metric G of a Minkowski-reduced lattice, i.e. the lattice point group
// in fractional coordinates. Lengths are compared within symprec; angles
// through angleTolerance (see AngleTolerance).
//
// Each column of W is a lattice vector as long as the corresponding basis
// vector. For a Minkowski-reduced basis such vectors have coefficients in
// [-1, 1], so the candidates come from a 26-vector box.
//
// Fails with ErrTooLargeTolerance when the accepted rotations are not a
// group or its order does not divide 48.
func BravaisGroup(lattice base.Lattice, symprec float64, angleTolerance base.AngleTolerance) ([]matrix.IMat3, error) {
	basis := lattice.Vectors()
	var candidates [3][]matrix.IVec3
	for nx := -1; nx <= 1; nx++ {
		for ny := -1; ny <= 1; ny++ {
			for nz := -1; nz <= 1; nz++ {
				c := matrix.IVec3{nx, ny, nz}
				if c.IsZero() {
					continue
				}
				norm := lattice.Cartesian(c.ToFloat()).Norm()
				for i, b := range basis {
					if math.Abs(norm-b.Norm()) < symprec {
						candidates[i] = append(candidates[i], c)
					}
				}
			}
		}
	}

	angleMatches := func(i, j int, ci, cj matrix.IVec3) bool {
		return sameAngle(basis[i], basis[j], lattice.Cartesian(ci.ToFloat()), lattice.Cartesian(cj.ToFloat()), symprec, angleTolerance)
	}
	var rotations []matrix.IMat3
	for _, c0 := range candidates[0] {
		for _, c1 := range candidates[1] {
			if !angleMatches(0, 1, c0, c1) {
				continue
			}
			for _, c2 := range candidates[2] {
				w := matrix.IFromColumns(c0, c1, c2)
				if d := w.Det(); d != 1 && d != -1 {
					continue
				}
				if !angleMatches(1, 2, c1, c2) || !angleMatches(2, 0, c2, c0) {
					continue
				}
				rotations = append(rotations, w)
			}
		}
	}

	if len(rotations) == 0 || maxPointGroupOrder%len(rotations) != 0 {
		return nil, fmt.Errorf("BravaisGroup: %d rotations: %w", len(rotations), ErrTooLargeTolerance)
	}
	closed, err := group.TraverseRotations(rotations)
	if err != nil || len(closed) != len(rotations) {
		return nil, fmt.Errorf("BravaisGroup: %d rotations are not closed: %w", len(rotations), ErrTooLargeTolerance)
	}

	// identity first
	if i := slices.Index(rotations, matrix.IIdentity()); i > 0 {
		rotations[0], rotations[i] = rotations[i], rotations[0]
	}

	return rotations, nil
}

// sameAngle compares the angle between (bi, bj) with the angle between
// (vi, vj). With an explicit tolerance the angle difference is compared
// directly. By default the difference dθ is scaled to a length,
// sin²(dθ)·(|bi|+|vi|)(|bj|+|vj|)/4 < symprec², so that long vectors
// tolerate smaller angular deviations.
func sameAngle(bi, bj, vi, vj matrix.Vec3, symprec float64, angleTolerance base.AngleTolerance) bool {
	li, lj, mi, mj := bi.Norm(), bj.Norm(), vi.Norm(), vj.Norm()
	cos1 := bi.Dot(bj) / (li * lj)
	cos2 := vi.Dot(vj) / (mi * mj)
	sin1 := math.Sqrt(math.Max(0, 1-cos1*cos1))
	sin2 := math.Sqrt(math.Max(0, 1-cos2*cos2))
	cosDiff := cos1*cos2 + sin1*sin2

	if angle, ok := angleTolerance.Value(); ok {
		return math.Abs(math.Acos(math.Max(-1, math.Min(1, cosDiff)))) < angle
	}
	sin2Diff := 1 - cosDiff*cosDiff

	return sin2Diff*(li+mi)*(lj+mj)/4 < symprec*symprec
}

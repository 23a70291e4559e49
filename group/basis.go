// SPDX-License-Identifier: MIT

package group

import (
	"iter"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// TransMatBases yields, for every choice of pivot rotations in rotations
// whose types match the generators' types, an integer basis of
//
//	{P : pivot_k·P = P·generator_k for all k}.
//
// Any unimodular P in such a span conjugates the generated group onto the
// group generated by generators. Empty solution spaces are skipped.
func TransMatBases(rotations, generators []matrix.IMat3) (iter.Seq[[]matrix.IMat3], error) {
	types, err := RotationTypes(rotations)
	if err != nil {
		return nil, err
	}
	genTypes, err := RotationTypes(generators)
	if err != nil {
		return nil, err
	}
	candidates := make([][]int, len(generators))
	for k, gt := range genTypes {
		for i, t := range types {
			if t == gt {
				candidates[k] = append(candidates[k], i)
			}
		}
	}

	return func(yield func([]matrix.IMat3) bool) {
		for pivot := range cartesianProduct(candidates) {
			as := make([]matrix.IMat3, len(pivot))
			for k, i := range pivot {
				as[k] = rotations[i]
			}
			basis, err := ops.Sylvester3(as, generators)
			if err != nil || len(basis) == 0 {
				continue
			}
			if !yield(basis) {
				return
			}
		}
	}, nil
}

// UnimodularCombinations yields det = 1 integer combinations of basis, first
// with coefficients in [-1,1], then those in [-2,2] using at least one ±2.
func UnimodularCombinations(basis []matrix.IMat3) iter.Seq[matrix.IMat3] {
	return func(yield func(matrix.IMat3) bool) {
		for _, bound := range []int{1, 2} {
			for comb := range coefficientBox(len(basis), bound) {
				if bound == 2 && !hasMagnitude(comb, 2) {
					continue
				}
				p := combine(basis, comb)
				if p.Det() != 1 {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// combine returns Σ comb_i·basis_i.
func combine(basis []matrix.IMat3, comb []int) matrix.IMat3 {
	var p matrix.IMat3
	for i, b := range basis {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				p[r][c] += comb[i] * b[r][c]
			}
		}
	}

	return p
}

func hasMagnitude(comb []int, m int) bool {
	for _, c := range comb {
		if c == m || c == -m {
			return true
		}
	}

	return false
}

// coefficientBox yields every vector in [-bound, bound]^n, odometer order.
func coefficientBox(n, bound int) iter.Seq[[]int] {
	ranges := make([][]int, n)
	for i := range ranges {
		for v := -bound; v <= bound; v++ {
			ranges[i] = append(ranges[i], v)
		}
	}

	return cartesianProduct(ranges)
}

// cartesianProduct yields every choice of one element per slice. The yielded
// slice is reused between iterations.
func cartesianProduct(sets [][]int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for _, s := range sets {
			if len(s) == 0 {
				return
			}
		}
		idx := make([]int, len(sets))
		cur := make([]int, len(sets))
		for {
			for i, j := range idx {
				cur[i] = sets[i][j]
			}
			if !yield(cur) {
				return
			}
			// advance the last position first
			k := len(sets) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(sets[k]) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				return
			}
		}
	}
}

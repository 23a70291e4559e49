// SPDX-License-Identifier: MIT

package group

import (
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// IntegralNormalizer returns unimodular transformations normalizing the
// space group with primitive operations prim, one per conjugation pattern of
// the generators' rotations, i.e. up to the centralizer of the point group.
// The quotient is a finite permutation group, so the result is finite.
//
// Coefficients of each Sylvester basis are searched in [-2, 2], enough for
// Delaunay-reduced primitive bases.
func IntegralNormalizer(prim, generators base.Operations, eps float64) ([]base.UnimodularTransformation, error) {
	bases, err := TransMatBases(base.ProjectRotations(prim), base.ProjectRotations(generators))
	if err != nil {
		return nil, err
	}
	var out []base.UnimodularTransformation
	for basis := range bases {
		for comb := range coefficientBox(len(basis), 2) {
			p := combine(basis, comb)
			switch p.Det() {
			case -1:
				p = p.Neg()
			case 1:
			default:
				continue
			}
			if shift, ok := MatchOriginShift(prim, p, generators, eps); ok {
				out = append(out, base.MustUnimodular(p, shift))
			}
			break
		}
	}

	return out, nil
}

// FullNormalizer is IntegralNormalizer without the reduction modulo the
// centralizer: every det = ±1 combination with coefficients in [-1, 1] whose
// origin shift can be matched is returned, sign-fixed to det = 1.
func FullNormalizer(prim, generators base.Operations, eps float64) ([]base.UnimodularTransformation, error) {
	bases, err := TransMatBases(base.ProjectRotations(prim), base.ProjectRotations(generators))
	if err != nil {
		return nil, err
	}
	seen := make(map[matrix.IMat3]bool)
	var out []base.UnimodularTransformation
	for basis := range bases {
		for comb := range coefficientBox(len(basis), 1) {
			p := combine(basis, comb)
			switch p.Det() {
			case -1:
				p = p.Neg()
			case 1:
			default:
				continue
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			if shift, ok := MatchOriginShift(prim, p, generators, eps); ok {
				out = append(out, base.MustUnimodular(p, shift))
			}
		}
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// PrimitiveSymmetrySearch holds the symmetry operations of a primitive cell,
// one per rotation, and the site permutation each of them induces.
type PrimitiveSymmetrySearch struct {
	Operations   base.Operations
	Permutations []base.Permutation
}

// NewPrimitiveSymmetrySearch finds the space-group operations of prim, which
// must be primitive and Minkowski reduced (as returned by NewPrimitiveCell).
//
// Steps:
//  1. Enumerate the lattice rotations with BravaisGroup.
//  2. For each rotation R try the translations pos[dst] − R·pos[src] over the
//     pivot sites, match every site within 2·symprec and keep the first
//     translation whose refined residual is below symprec.
//  3. Require the kept operations to form a group whose products agree
//     within 2·symprec (Cartesian).
//
// Returns ErrTooSmallTolerance when no operation survives and
// ErrTooLargeTolerance when the survivors are not a group.
func NewPrimitiveSymmetrySearch(prim base.Cell, symprec float64, angleTolerance base.AngleTolerance) (*PrimitiveSymmetrySearch, error) {
	rotations, err := BravaisGroup(prim.Lattice, symprec, angleTolerance)
	if err != nil {
		return nil, fmt.Errorf("NewPrimitiveSymmetrySearch: %w", err)
	}

	var (
		rough  = 2 * symprec
		idx    = NewPeriodicIndex(prim)
		pivots = pivotSites(prim.Numbers)
		src    = prim.Positions[pivots[0]]
		out    = &PrimitiveSymmetrySearch{}
	)
	for _, r := range rotations {
		for _, dst := range pivots {
			guess := prim.Positions[dst].Sub(r.MulFVec(src))
			perm, ok := solveCorrespondence(idx, prim, r, guess, rough)
			if !ok {
				continue
			}
			t, distance := symmetrizeTranslation(prim, perm, r, guess)
			if distance < symprec {
				out.Operations = append(out.Operations, base.NewOperation(r, t))
				out.Permutations = append(out.Permutations, perm)

				break
			}
		}
	}
	if len(out.Operations) == 0 {
		return nil, fmt.Errorf("NewPrimitiveSymmetrySearch: no operation: %w", ErrTooSmallTolerance)
	}

	closed, err := group.Traverse(out.Operations)
	if err != nil || len(closed) != len(out.Operations) {
		return nil, fmt.Errorf("NewPrimitiveSymmetrySearch: %d operations are not closed: %w", len(out.Operations), ErrTooLargeTolerance)
	}
	if !closedWithin(out.Operations,
		func(o base.Operation) matrix.IMat3 { return o.Rotation },
		func(o base.Operation) matrix.Vec3 { return o.Translation },
		base.Operation.Mul, prim.Lattice, rough) {
		return nil, fmt.Errorf("NewPrimitiveSymmetrySearch: products deviate beyond %g: %w", rough, ErrTooLargeTolerance)
	}

	return out, nil
}

// OperationsInCell expresses operations of prim.Cell in the basis of the
// cell prim was built from and multiplies them by its pure translations,
// identity translation first. Operations whose rotation does not preserve
// the input lattice are dropped.
func OperationsInCell(prim *PrimitiveCell, ops base.Operations) base.Operations {
	inCell := inputTransformation(prim.Linear).TransformOperations(ops)

	out := make(base.Operations, 0, len(prim.Translations)*len(inCell))
	for _, tr := range prim.Translations {
		for _, op := range inCell {
			out = append(out, base.NewOperation(op.Rotation, op.Translation.Add(tr).Wrap()))
		}
	}

	return out
}

// inputTransformation returns the transformation taking a primitive cell to
// the input cell: prim basis = input basis · linear, so the input basis is
// prim basis · linear⁻¹ with linear⁻¹ integral.
func inputTransformation(linear matrix.Mat3) base.Transformation {
	inv, err := linear.Inverse()
	if err != nil {
		// linear comes from NewPrimitiveCell and is never singular
		panic(err)
	}

	return base.MustTransformation(inv.Round(), matrix.Vec3{})
}

// closedWithin checks that the product of any two elements has a partner
// with the same key whose translation agrees within eps (Cartesian, modulo
// lattice vectors).
func closedWithin[E any, K comparable](elems []E, key func(E) K, translation func(E) matrix.Vec3, mul func(E, E) E, lattice base.Lattice, eps float64) bool {
	byKey := lo.GroupBy(elems, key)
	contains := func(target E) bool {
		return lo.SomeBy(byKey[key(target)], func(e E) bool {
			diff := translation(e).Sub(translation(target)).WrapSigned()
			return lattice.Cartesian(diff).Norm() < eps
		})
	}
	for _, a := range elems {
		for _, b := range elems {
			if !contains(mul(a, b)) {
				return false
			}
		}
	}

	return true
}

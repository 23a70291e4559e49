// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// PrimitiveMagneticCell is PrimitiveCell for a magnetic cell: only pure
// translations that also preserve every moment are kept, so the result may
// be a supercell of the nonmagnetic primitive cell.
type PrimitiveMagneticCell[M base.Moment[M]] struct {
	MagneticCell base.MagneticCell[M]
	// Linear relates the bases: primitive basis = input basis · Linear.
	Linear       matrix.Mat3
	SiteMapping  []int
	Translations []matrix.Vec3
}

// NewPrimitiveMagneticCell finds the pure translations of the structure
// within symprec, keeps those that map every moment onto an equal moment
// within magSymprec and builds the primitive magnetic cell from them.
// Moments of merged sites are averaged.
func NewPrimitiveMagneticCell[M base.Moment[M]](mc base.MagneticCell[M], symprec, magSymprec float64) (*PrimitiveMagneticCell[M], error) {
	rc, err := newReducedCell(mc.Cell, symprec)
	if err != nil {
		return nil, fmt.Errorf("NewPrimitiveMagneticCell: %w", err)
	}
	n := mc.NumAtoms()
	all := rc.pureTranslations(symprec)
	if len(all) == 0 || n%len(all) != 0 {
		return nil, fmt.Errorf("NewPrimitiveMagneticCell: %d translations for %d sites: %w", len(all), n, ErrTooSmallTolerance)
	}
	kept := lo.Filter(all, func(p pureTranslation, _ int) bool {
		return lo.EveryBy(lo.Range(n), func(i int) bool {
			return mc.Moments[p.perm.Apply(i)].IsClose(mc.Moments[i], magSymprec)
		})
	})
	if len(kept) == 0 || len(all)%len(kept) != 0 {
		return nil, fmt.Errorf("NewPrimitiveMagneticCell: %d of %d translations keep the moments: %w", len(kept), len(all), ErrTooSmallTolerance)
	}

	prim, err := rc.primitive(kept)
	if err != nil {
		return nil, fmt.Errorf("NewPrimitiveMagneticCell: %w", err)
	}
	members := make([][]M, prim.Cell.NumAtoms())
	for i, k := range prim.SiteMapping {
		members[k] = append(members[k], mc.Moments[i])
	}
	var zero M
	moments := lo.Map(members, func(ms []M, _ int) M { return zero.Average(ms) })

	return &PrimitiveMagneticCell[M]{
		MagneticCell: base.MagneticCell[M]{Cell: prim.Cell, Moments: moments},
		Linear:       prim.Linear,
		SiteMapping:  prim.SiteMapping,
		Translations: prim.Translations,
	}, nil
}

// MagneticSymmetrySearch holds the magnetic operations of a primitive
// magnetic cell and the site permutation each of them induces.
type MagneticSymmetrySearch struct {
	MagneticOperations base.MagneticOperations
	Permutations       []base.Permutation
}

// NewMagneticSymmetrySearch finds the magnetic space-group operations of
// prim, which must come from NewPrimitiveMagneticCell.
//
// The space-group operations of the underlying nonmagnetic structure are
// found first and expressed in the basis of prim. Each one that maps the
// positions onto themselves is then tried without and with time reversal;
// a variant is kept when every transformed moment matches the moment of the
// image site within magSymprec. A structure without moments keeps both.
func NewMagneticSymmetrySearch[M base.Moment[M]](prim base.MagneticCell[M], symprec float64, angleTolerance base.AngleTolerance, magSymprec float64, action base.RotationMomentAction) (*MagneticSymmetrySearch, error) {
	nonmagnetic, err := NewPrimitiveCell(prim.Cell, symprec)
	if err != nil {
		return nil, fmt.Errorf("NewMagneticSymmetrySearch: %w", err)
	}
	ss, err := NewPrimitiveSymmetrySearch(nonmagnetic.Cell, symprec, angleTolerance)
	if err != nil {
		return nil, fmt.Errorf("NewMagneticSymmetrySearch: %w", err)
	}

	var (
		cell = prim.Cell
		idx  = NewPeriodicIndex(cell)
		out  = &MagneticSymmetrySearch{}
	)
	for _, op := range OperationsInCell(nonmagnetic, ss.Operations) {
		perm, ok := solveCorrespondence(idx, cell, op.Rotation, op.Translation, 2*symprec)
		if !ok {
			continue
		}
		t, distance := symmetrizeTranslation(cell, perm, op.Rotation, op.Translation)
		if distance >= symprec {
			continue
		}
		cart := base.NewOperation(op.Rotation, t).CartesianRotation(cell.Lattice)
		for _, tr := range []bool{false, true} {
			matches := lo.EveryBy(lo.Range(cell.NumAtoms()), func(i int) bool {
				moved := base.ActMagneticOperation(prim.Moments[i], cart, tr, action)
				return moved.IsClose(prim.Moments[perm.Apply(i)], magSymprec)
			})
			if matches {
				out.MagneticOperations = append(out.MagneticOperations, base.NewMagneticOperation(op.Rotation, t, tr))
				out.Permutations = append(out.Permutations, perm)
			}
		}
	}
	if len(out.MagneticOperations) == 0 {
		return nil, fmt.Errorf("NewMagneticSymmetrySearch: no operation: %w", ErrTooSmallTolerance)
	}

	closed, err := group.TraverseMagnetic(out.MagneticOperations)
	if err != nil || len(closed) != len(out.MagneticOperations) {
		return nil, fmt.Errorf("NewMagneticSymmetrySearch: %d operations are not closed: %w", len(out.MagneticOperations), ErrTooLargeTolerance)
	}
	if !closedWithin(out.MagneticOperations,
		func(m base.MagneticOperation) magneticKey { return magneticKey{m.Rotation, m.TimeReversal} },
		func(m base.MagneticOperation) matrix.Vec3 { return m.Translation },
		base.MagneticOperation.Mul, cell.Lattice, 2*symprec) {
		return nil, fmt.Errorf("NewMagneticSymmetrySearch: products deviate beyond %g: %w", 2*symprec, ErrTooLargeTolerance)
	}

	return out, nil
}

type magneticKey struct {
	rotation     matrix.IMat3
	timeReversal bool
}

// MagneticOperationsInCell is OperationsInCell for a primitive magnetic
// cell.
func MagneticOperationsInCell[M base.Moment[M]](prim *PrimitiveMagneticCell[M], mops base.MagneticOperations) base.MagneticOperations {
	inCell := inputTransformation(prim.Linear).TransformMagneticOperations(mops)

	out := make(base.MagneticOperations, 0, len(prim.Translations)*len(inCell))
	for _, tr := range prim.Translations {
		for _, m := range inCell {
			out = append(out, base.NewMagneticOperation(m.Rotation, m.Translation.Add(tr).Wrap(), m.TimeReversal))
		}
	}

	return out
}

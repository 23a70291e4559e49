// SPDX-License-Identifier: MIT

package symmetrize

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
)

// StandardizedMagneticCell is a StandardizedCell carrying moments. The
// Hall setting is the one the magnetic type is tabulated under.
type StandardizedMagneticCell[M base.Moment[M]] struct {
	StandardizedCell

	UNINumber int
	// PrimMagCell and MagCell are PrimCell and Cell with the symmetrized
	// moments, expressed in the rotated frame.
	PrimMagCell base.MagneticCell[M]
	MagCell     base.MagneticCell[M]
}

// NewStandardizedMagneticCell standardizes prim, a primitive magnetic cell
// whose magnetic operations mops induce the site permutations perms and
// were identified as msg.
//
// The transformation of msg is kept as is: the normalizer of the reference
// space group need not preserve the magnetic operations, so no alternative
// setting is searched. Moments are averaged over mops in the input frame
// and then rotated with the cell.
func NewStandardizedMagneticCell[M base.Moment[M]](prim base.MagneticCell[M], mops base.MagneticOperations, perms []base.Permutation, msg *identify.MagneticSpaceGroup, symprec float64, action base.RotationMomentAction) (*StandardizedMagneticCell[M], error) {
	if len(mops) != len(perms) {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %d operations vs %d permutations: %w", len(mops), len(perms), base.ErrInput)
	}
	sg, err := msg.ReferenceSpaceGroup()
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %w", err)
	}
	ops, opPerms := referenceOperations(mops, perms, msg.ConstructType)

	s, err := newStandardizer(sg.HallNumber)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %w", err)
	}
	st, err := s.bestSetting(prim.Cell, ops, opPerms, []base.UnimodularTransformation{msg.Transformation}, symprec)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %w", err)
	}
	std, err := s.finish(st)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %w", err)
	}

	moments, err := SymmetrizeMoments(prim, mops, perms, action)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedMagneticCell: %w", err)
	}
	moments = lo.Map(moments, func(m M, _ int) M { return m.ActRotation(std.RotationMatrix, action) })

	return &StandardizedMagneticCell[M]{
		StandardizedCell: *std,
		UNINumber:        msg.UNINumber,
		PrimMagCell:      base.MagneticCell[M]{Cell: std.PrimCell, Moments: moments},
		MagCell: base.MagneticCell[M]{
			Cell:    std.Cell,
			Moments: lo.Map(std.SiteMapping, func(i int, _ int) M { return moments[i] }),
		},
	}, nil
}

// referenceOperations keeps the operations of the reference space group:
// every operation with time reversal dropped for Types I and III, the
// operations without time reversal for Types II and IV.
func referenceOperations(mops base.MagneticOperations, perms []base.Permutation, ct data.ConstructType) (base.Operations, []base.Permutation) {
	var (
		ops      base.Operations
		opsPerms []base.Permutation
	)
	for i, m := range mops {
		if m.TimeReversal && (ct == data.Type2 || ct == data.Type4) {
			continue
		}
		ops = append(ops, m.Operation)
		opsPerms = append(opsPerms, perms[i])
	}

	return ops, opsPerms
}

// SymmetrizeMoments averages the moments of mc over mops: site i gets the
// mean of the images of m_j under the operations with perm(j) = i.
func SymmetrizeMoments[M base.Moment[M]](mc base.MagneticCell[M], mops base.MagneticOperations, perms []base.Permutation, action base.RotationMomentAction) ([]M, error) {
	if len(mops) == 0 || len(mops) != len(perms) {
		return nil, fmt.Errorf("SymmetrizeMoments: %d operations vs %d permutations: %w", len(mops), len(perms), base.ErrInput)
	}
	n := mc.NumAtoms()
	images := make([][]M, n)
	for k, m := range mops {
		if perms[k].Size() != n {
			return nil, fmt.Errorf("SymmetrizeMoments: permutation %d over %d sites: %w", k, perms[k].Size(), base.ErrInput)
		}
		cartesian := m.CartesianRotation(mc.Cell.Lattice)
		for j, moment := range mc.Moments {
			i := perms[k].Apply(j)
			images[i] = append(images[i], base.ActMagneticOperation(moment, cartesian, m.TimeReversal, action))
		}
	}

	return lo.Map(images, func(ms []M, i int) M { return mc.Moments[i].Average(ms) }), nil
}

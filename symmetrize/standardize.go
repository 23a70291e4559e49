// SPDX-License-Identifier: MIT

package symmetrize

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/reduce"
)

// StandardizedCell is a primitive cell moved into a tabulated Hall setting.
type StandardizedCell struct {
	HallNumber int

	// PrimCell is the primitive standardized cell. Its sites are in the order
	// of the input primitive cell.
	PrimCell base.Cell
	// PrimTransformation takes the input primitive cell to PrimCell, up to
	// RotationMatrix.
	PrimTransformation base.UnimodularTransformation
	// PrimOperations are the tabulated primitive operations of HallNumber
	// and PrimPermutations the site permutation each induces on PrimCell.
	PrimOperations   base.Operations
	PrimPermutations []base.Permutation

	// Cell is the conventional standardized cell.
	Cell base.Cell
	// Transformation takes the input primitive cell to Cell, up to
	// RotationMatrix.
	Transformation base.Transformation
	// SiteMapping sends every site of Cell to its site of PrimCell.
	SiteMapping []int

	// RotationMatrix is the rigid rotation applied after the change of basis:
	// the basis of Cell is RotationMatrix·B·P for the input basis B, up to
	// the symmetrization of the metric.
	RotationMatrix matrix.Mat3

	// Wyckoffs holds the Wyckoff position of every site of PrimCell.
	Wyckoffs []data.WyckoffPosition
}

// NewStandardizedCell standardizes prim, a primitive cell whose space group
// operations ops induce the site permutations perms and were identified as
// sg. eps compares fractional translations; symprec bounds the Cartesian
// distance of a site to its Wyckoff position.
//
// Steps:
//  1. Start from sg.Transformation, or from the Niggli basis with a matched
//     origin for triclinic groups.
//  2. For each setting related by the normalizer, snap the positions onto
//     the tabulated operations and assign Wyckoff positions; keep the
//     setting whose letters, read in site order, are smallest.
//  3. Expand the conventional cell, symmetrize its metric and rotate both
//     cells into upper-triangular form.
func NewStandardizedCell(prim base.Cell, ops base.Operations, perms []base.Permutation, sg *identify.SpaceGroup, symprec, eps float64) (*StandardizedCell, error) {
	if len(ops) != len(perms) {
		return nil, fmt.Errorf("NewStandardizedCell: %d operations vs %d permutations: %w", len(ops), len(perms), base.ErrInput)
	}
	s, err := newStandardizer(sg.HallNumber)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedCell: %w", err)
	}
	start, err := s.initialTransformation(prim.Lattice, ops, sg.Transformation, eps)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedCell: %w", err)
	}
	candidates, err := settingCandidates(start, sg.HallNumber, s.triclinic)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedCell: %w", err)
	}
	best, err := s.bestSetting(prim, ops, perms, candidates, symprec)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedCell: %w", err)
	}

	out, err := s.finish(best)
	if err != nil {
		return nil, fmt.Errorf("NewStandardizedCell: %w", err)
	}

	return out, nil
}

// standardizer holds the tabulated data of the target Hall setting.
type standardizer struct {
	hallNumber int
	centering  data.Centering
	triclinic  bool
	primOps    base.Operations
	generators base.Operations
	convRots   []matrix.IMat3
	wyckoff    *wyckoffTable
}

func newStandardizer(hallNumber int) (*standardizer, error) {
	entry, err := data.HallSymbolEntryOf(hallNumber)
	if err != nil {
		return nil, err
	}
	arith, err := data.ArithmeticCrystalClassOf(entry.ArithmeticNumber)
	if err != nil {
		return nil, err
	}
	hs, err := data.HallSymbolFromNumber(hallNumber)
	if err != nil {
		return nil, err
	}
	primOps, err := hs.PrimitiveTraverse()
	if err != nil {
		return nil, err
	}
	convOps, err := hs.Traverse()
	if err != nil {
		return nil, err
	}
	w, err := newWyckoffTable(hallNumber)
	if err != nil {
		return nil, err
	}

	return &standardizer{
		hallNumber: hallNumber,
		centering:  entry.Centering,
		triclinic:  arith.LatticeSystem() == data.LatticeTriclinic,
		primOps:    primOps,
		generators: hs.PrimitiveGenerators(),
		convRots:   convOps.Rotations(),
		wyckoff:    w,
	}, nil
}

// initialTransformation replaces the linear part by the Niggli basis for
// triclinic groups, whose tabulated setting fixes no axes.
func (s *standardizer) initialTransformation(lattice base.Lattice, ops base.Operations, t base.UnimodularTransformation, eps float64) (base.UnimodularTransformation, error) {
	if !s.triclinic {
		return t, nil
	}
	_, niggli, err := reduce.Niggli(lattice.Basis)
	if err != nil {
		return base.UnimodularTransformation{}, err
	}
	if niggli.Det() < 0 {
		niggli = niggli.Neg()
	}
	shift, ok := group.MatchOriginShift(ops, niggli, s.generators, eps)
	if !ok {
		return base.UnimodularTransformation{}, fmt.Errorf("no origin for the Niggli basis: %w", ErrStandardization)
	}

	return base.NewUnimodularTransformation(niggli, shift)
}

// setting is the primitive standardized cell in one candidate setting.
type setting struct {
	transformation base.UnimodularTransformation
	prim           base.Cell
	perms          []base.Permutation
	conv           base.Cell
	mapping        []int
	wyckoffs       []int // per primitive site
}

// trySetting moves prim by t, snaps the positions onto the tabulated
// operations and labels the sites.
func (s *standardizer) trySetting(prim base.Cell, ops base.Operations, perms []base.Permutation, t base.UnimodularTransformation, symprec float64) (*setting, error) {
	byRotation := make(map[matrix.IMat3]base.Permutation, len(ops))
	for i, op := range t.TransformOperations(ops) {
		byRotation[op.Rotation] = perms[i]
	}
	stdPerms := make([]base.Permutation, len(s.primOps))
	for i, op := range s.primOps {
		p, ok := byRotation[op.Rotation]
		if !ok {
			return nil, fmt.Errorf("rotation %v missing in Hall setting %d: %w", op.Rotation, s.hallNumber, ErrStandardization)
		}
		stdPerms[i] = p
	}

	moved := t.TransformCell(prim)
	positions, err := SymmetrizePositions(moved, s.primOps, stdPerms)
	if err != nil {
		return nil, err
	}
	moved = moved.WithPositions(positions)

	toConv, err := base.TransformationFromLinear(s.centering.Linear())
	if err != nil {
		return nil, err
	}
	conv, mapping, err := toConv.TransformCell(moved)
	if err != nil {
		return nil, err
	}
	primOrbits := base.OrbitsFromPermutations(moved.NumAtoms(), stdPerms)
	convOrbits := lo.Map(mapping, func(i int, _ int) int { return primOrbits[i] })
	convWyckoffs, err := s.wyckoff.assign(conv, convOrbits, symprec)
	if err != nil {
		return nil, err
	}
	wyckoffs := make([]int, moved.NumAtoms())
	for i, src := range mapping {
		wyckoffs[src] = convWyckoffs[i]
	}

	return &setting{transformation: t, prim: moved, perms: stdPerms, conv: conv, mapping: mapping, wyckoffs: wyckoffs}, nil
}

// bestSetting tries the candidates in order and keeps the one whose Wyckoff
// indices, read in site order, are smallest. A failure of the first
// candidate is returned as is.
func (s *standardizer) bestSetting(prim base.Cell, ops base.Operations, perms []base.Permutation, candidates []base.UnimodularTransformation, symprec float64) (*setting, error) {
	var best *setting
	for i, t := range candidates {
		st, err := s.trySetting(prim, ops, perms, t, symprec)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			continue
		}
		if best == nil || slices.Compare(st.wyckoffs, best.wyckoffs) < 0 {
			best = st
		}
	}
	if best == nil {
		return nil, fmt.Errorf("Hall setting %d: %w", s.hallNumber, ErrStandardization)
	}

	return best, nil
}

// finish symmetrizes the metric of the chosen setting and rotates both
// cells.
func (s *standardizer) finish(st *setting) (*StandardizedCell, error) {
	lattice, rotation, err := SymmetrizeLattice(st.conv.Lattice, s.convRots)
	if err != nil {
		return nil, err
	}
	toConv, err := base.TransformationFromLinear(s.centering.Linear())
	if err != nil {
		return nil, err
	}
	conv := st.conv
	conv.Lattice = lattice
	prim := st.prim
	prim.Lattice = toConv.InverseTransformLattice(lattice)

	return &StandardizedCell{
		HallNumber:         s.hallNumber,
		PrimCell:           prim,
		PrimTransformation: st.transformation,
		PrimOperations:     s.primOps,
		PrimPermutations:   st.perms,
		Cell:               conv,
		Transformation:     st.transformation.Transformation().Compose(toConv),
		SiteMapping:        st.mapping,
		RotationMatrix:     rotation,
		Wyckoffs: lo.Map(st.wyckoffs, func(i int, _ int) data.WyckoffPosition {
			return s.wyckoff.positions[i]
		}),
	}, nil
}

// SymmetrizePositions moves every site to the average of its images: site i
// becomes the mean of R·x_j + t over the operations (R, t) with perm(j) = i,
// each image taken at the lattice translate nearest to x_i.
func SymmetrizePositions(cell base.Cell, ops base.Operations, perms []base.Permutation) ([]matrix.Vec3, error) {
	if len(ops) == 0 || len(ops) != len(perms) {
		return nil, fmt.Errorf("SymmetrizePositions: %d operations vs %d permutations: %w", len(ops), len(perms), base.ErrInput)
	}
	n := cell.NumAtoms()
	out := make([]matrix.Vec3, n)
	sums := make([]matrix.Vec3, n)
	for k, op := range ops {
		if perms[k].Size() != n {
			return nil, fmt.Errorf("SymmetrizePositions: permutation %d over %d sites: %w", k, perms[k].Size(), base.ErrInput)
		}
		for j, x := range cell.Positions {
			i := perms[k].Apply(j)
			sums[i] = sums[i].Add(op.Apply(x).Sub(cell.Positions[i]).WrapSigned())
		}
	}
	scale := 1 / float64(len(ops))
	for i, x := range cell.Positions {
		out[i] = x.Add(sums[i].Scale(scale)).Wrap()
	}

	return out, nil
}

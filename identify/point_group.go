// SPDX-License-Identifier: MIT

package identify

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// PointGroup is the arithmetic crystal class of a group of primitive
// rotations.
type PointGroup struct {
	GeometricClass   data.GeometricCrystalClass
	ArithmeticNumber int
	// PrimTransMat P (det 1) takes the input primitive basis to the
	// primitive basis of the class representative: P⁻¹·R·P runs over the
	// representative's rotations.
	PrimTransMat matrix.IMat3
}

// rotationTypeCounts keys the 32 geometric classes by how many rotations of
// each type they contain, indexed by group.RotationType.
var rotationTypeCounts = map[[10]int]data.GeometricCrystalClass{
	{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}: data.C1,
	{0, 0, 0, 0, 1, 1, 0, 0, 0, 0}: data.Ci,
	{0, 0, 0, 0, 0, 1, 1, 0, 0, 0}: data.C2,
	{0, 0, 0, 1, 0, 1, 0, 0, 0, 0}: data.C1h,
	{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}: data.C2h,
	{0, 0, 0, 0, 0, 1, 3, 0, 0, 0}: data.D2,
	{0, 0, 0, 2, 0, 1, 1, 0, 0, 0}: data.C2v,
	{0, 0, 0, 3, 1, 1, 3, 0, 0, 0}: data.D2h,
	{0, 0, 0, 0, 0, 1, 1, 0, 2, 0}: data.C4,
	{0, 2, 0, 0, 0, 1, 1, 0, 0, 0}: data.S4,
	{0, 2, 0, 1, 1, 1, 1, 0, 2, 0}: data.C4h,
	{0, 0, 0, 0, 0, 1, 5, 0, 2, 0}: data.D4,
	{0, 0, 0, 4, 0, 1, 1, 0, 2, 0}: data.C4v,
	{0, 2, 0, 2, 0, 1, 3, 0, 0, 0}: data.D2d,
	{0, 2, 0, 5, 1, 1, 5, 0, 2, 0}: data.D4h,
	{0, 0, 0, 0, 0, 1, 0, 2, 0, 0}: data.C3,
	{0, 0, 2, 0, 1, 1, 0, 2, 0, 0}: data.C3i,
	{0, 0, 0, 0, 0, 1, 3, 2, 0, 0}: data.D3,
	{0, 0, 0, 3, 0, 1, 0, 2, 0, 0}: data.C3v,
	{0, 0, 2, 3, 1, 1, 3, 2, 0, 0}: data.D3d,
	{0, 0, 0, 0, 0, 1, 1, 2, 0, 2}: data.C6,
	{2, 0, 0, 1, 0, 1, 0, 2, 0, 0}: data.C3h,
	{2, 0, 2, 1, 1, 1, 1, 2, 0, 2}: data.C6h,
	{0, 0, 0, 0, 0, 1, 7, 2, 0, 2}: data.D6,
	{0, 0, 0, 6, 0, 1, 1, 2, 0, 2}: data.C6v,
	{2, 0, 0, 4, 0, 1, 3, 2, 0, 0}: data.D3h,
	{2, 0, 2, 7, 1, 1, 7, 2, 0, 2}: data.D6h,
	{0, 0, 0, 0, 0, 1, 3, 8, 0, 0}: data.T,
	{0, 0, 8, 3, 1, 1, 3, 8, 0, 0}: data.Th,
	{0, 0, 0, 0, 0, 1, 9, 8, 6, 0}: data.O,
	{0, 6, 0, 6, 0, 1, 3, 8, 0, 0}: data.Td,
	{0, 6, 8, 9, 1, 1, 9, 8, 6, 0}: data.Oh,
}

// GeometricCrystalClassOf identifies the point group of a full set of
// rotations from its rotation-type histogram.
func GeometricCrystalClassOf(rotations []matrix.IMat3) (data.GeometricCrystalClass, error) {
	types, err := group.RotationTypes(rotations)
	if err != nil {
		return 0, fmt.Errorf("GeometricCrystalClassOf: %v: %w", err, ErrNoMatchingType)
	}
	g, ok := rotationTypeCounts[group.CountRotationTypes(types)]
	if !ok {
		return 0, fmt.Errorf("GeometricCrystalClassOf: %d rotations: %w", len(rotations), ErrNoMatchingType)
	}

	return g, nil
}

// NewPointGroup identifies the arithmetic crystal class of the group formed
// by primRotations, given in a primitive basis.
//
// For every candidate class of the same geometric class, the matrices P
// with R_k·P = P·g_k for a choice of rotations R_k matching the
// representative generators g_k span a lattice; the first unimodular P in
// it proves the class. Cubic groups are absolutely irreducible, so the span
// is one-dimensional and |det P| is the centering order of the class.
func NewPointGroup(primRotations []matrix.IMat3) (*PointGroup, error) {
	g, err := GeometricCrystalClassOf(primRotations)
	if err != nil {
		return nil, fmt.Errorf("NewPointGroup: %w", err)
	}
	switch g {
	case data.C1:
		return &PointGroup{GeometricClass: g, ArithmeticNumber: 1, PrimTransMat: matrix.IIdentity()}, nil
	case data.Ci:
		return &PointGroup{GeometricClass: g, ArithmeticNumber: 2, PrimTransMat: matrix.IIdentity()}, nil
	}

	candidates := lo.Filter(data.ArithmeticCrystalClasses(), func(a data.ArithmeticCrystalClass, _ int) bool {
		return a.GeometricClass == g
	})
	if g.CrystalSystem() == data.Cubic {
		return matchCubic(primRotations, g, candidates)
	}

	for _, a := range candidates {
		rep, err := data.PointGroupRepresentativeOf(a.Number)
		if err != nil {
			return nil, fmt.Errorf("NewPointGroup: %w", err)
		}
		bases, err := group.TransMatBases(primRotations, rep.PrimitiveGenerators())
		if err != nil {
			return nil, fmt.Errorf("NewPointGroup: %v: %w", err, ErrNoMatchingType)
		}
		for basis := range bases {
			for p := range group.UnimodularCombinations(basis) {
				return &PointGroup{GeometricClass: g, ArithmeticNumber: a.Number, PrimTransMat: p}, nil
			}
		}
	}

	return nil, fmt.Errorf("NewPointGroup: no arithmetic class of %s: %w", g, ErrNoMatchingType)
}

func matchCubic(primRotations []matrix.IMat3, g data.GeometricCrystalClass, candidates []data.ArithmeticCrystalClass) (*PointGroup, error) {
	reps := make([]data.PointGroupRepresentative, len(candidates))
	for i, a := range candidates {
		rep, err := data.PointGroupRepresentativeOf(a.Number)
		if err != nil {
			return nil, fmt.Errorf("NewPointGroup: %w", err)
		}
		reps[i] = rep
	}
	primitive, ok := lo.Find(reps, func(r data.PointGroupRepresentative) bool {
		return r.Centering == data.CenteringP
	})
	if !ok {
		return nil, fmt.Errorf("NewPointGroup: no P class of %s: %w", g, ErrNoMatchingType)
	}

	bases, err := group.TransMatBases(primRotations, primitive.PrimitiveGenerators())
	if err != nil {
		return nil, fmt.Errorf("NewPointGroup: %v: %w", err, ErrNoMatchingType)
	}
	for basis := range bases {
		// conv takes the input basis to a P-cubic conventional basis
		conv := basis[0]
		d := conv.Det()
		switch {
		case d < 0:
			conv, d = conv.Neg(), -d
		case d == 0:
			continue
		}
		for i, rep := range reps {
			if rep.Centering.Order() != d {
				continue
			}
			p := conv.ToFloat().Mul(rep.Centering.Inverse()).Round()
			if p.Det() != 1 {
				return nil, fmt.Errorf("NewPointGroup: det %d for class %s: %w", p.Det(), candidates[i].Symbol, ErrNoMatchingType)
			}

			return &PointGroup{GeometricClass: g, ArithmeticNumber: candidates[i].Number, PrimTransMat: p}, nil
		}
	}

	return nil, fmt.Errorf("NewPointGroup: no arithmetic class of %s: %w", g, ErrNoMatchingType)
}

// PointGroupFromLattice is NewPointGroup run in the Minkowski-reduced basis
// of lattice; PrimTransMat still starts from the basis of lattice.
func PointGroupFromLattice(lattice base.Lattice, primRotations []matrix.IMat3) (*PointGroup, error) {
	_, t, err := lattice.MinkowskiReduce()
	if err != nil {
		return nil, fmt.Errorf("PointGroupFromLattice: %w", err)
	}
	toReduced := base.MustUnimodular(t, matrix.Vec3{})
	reduced := lo.Map(primRotations, func(r matrix.IMat3, _ int) matrix.IMat3 {
		return toReduced.TransformOperation(base.NewOperation(r, matrix.Vec3{})).Rotation
	})
	pg, err := NewPointGroup(reduced)
	if err != nil {
		return nil, fmt.Errorf("PointGroupFromLattice: %w", err)
	}
	pg.PrimTransMat = t.Mul(pg.PrimTransMat)

	return pg, nil
}

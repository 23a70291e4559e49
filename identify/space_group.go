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

// SpaceGroup is an identified space-group type in a Hall setting.
type SpaceGroup struct {
	Number     int
	HallNumber int
	// Transformation takes the input primitive operations to the primitive
	// operations of HallNumber.
	Transformation base.UnimodularTransformation
}

// NewSpaceGroup identifies the space-group type of primOps, operations
// modulo a primitive lattice. eps compares fractional translations.
//
// Steps:
//  1. NewPointGroup gives the arithmetic class and a basis P onto its
//     representative.
//  2. For each Hall number of setting with that arithmetic class, try P
//     composed with the correction matrices of the class and solve for an
//     origin shift matching the tabulated primitive generators.
func NewSpaceGroup(primOps base.Operations, setting data.Setting, eps float64) (*SpaceGroup, error) {
	pg, err := NewPointGroup(base.ProjectRotations(primOps))
	if err != nil {
		return nil, fmt.Errorf("NewSpaceGroup: %w", err)
	}
	hallNumbers, err := setting.HallNumbers()
	if err != nil {
		return nil, fmt.Errorf("NewSpaceGroup: %w", err)
	}

	for _, h := range hallNumbers {
		entry, err := data.HallSymbolEntryOf(h)
		if err != nil {
			return nil, fmt.Errorf("NewSpaceGroup: %w", err)
		}
		if entry.ArithmeticNumber != pg.ArithmeticNumber {
			continue
		}
		hs, err := data.HallSymbolFromNumber(h)
		if err != nil {
			return nil, fmt.Errorf("NewSpaceGroup: %w", err)
		}
		gens := hs.PrimitiveGenerators()
		corrections, err := correctionMatrices(entry.ArithmeticNumber)
		if err != nil {
			return nil, fmt.Errorf("NewSpaceGroup: %w", err)
		}
		for _, corr := range corrections {
			p := pg.PrimTransMat.Mul(corr)
			if shift, ok := group.MatchOriginShift(primOps, p, gens, eps); ok {
				return &SpaceGroup{Number: entry.Number, HallNumber: h, Transformation: base.MustUnimodular(p, shift)}, nil
			}
		}
	}

	return nil, fmt.Errorf("NewSpaceGroup: arithmetic class %d in %s setting: %w", pg.ArithmeticNumber, setting, ErrNoMatchingType)
}

// SpaceGroupFromLattice is NewSpaceGroup run in the Minkowski-reduced basis
// of lattice. The returned transformation starts from the basis of lattice.
func SpaceGroupFromLattice(lattice base.Lattice, primOps base.Operations, setting data.Setting, eps float64) (*SpaceGroup, error) {
	_, t, err := lattice.MinkowskiReduce()
	if err != nil {
		return nil, fmt.Errorf("SpaceGroupFromLattice: %w", err)
	}
	toReduced := base.MustUnimodular(t, matrix.Vec3{})
	sg, err := NewSpaceGroup(toReduced.TransformOperations(primOps), setting, eps)
	if err != nil {
		return nil, fmt.Errorf("SpaceGroupFromLattice: %w", err)
	}
	sg.Transformation = toReduced.Compose(sg.Transformation)

	return sg, nil
}

// SpaceGroupFromHallNumberAndTransformation builds a SpaceGroup for callers
// that already know the setting and the transformation onto it.
func SpaceGroupFromHallNumberAndTransformation(hallNumber int, t base.UnimodularTransformation) (*SpaceGroup, error) {
	entry, err := data.HallSymbolEntryOf(hallNumber)
	if err != nil {
		return nil, fmt.Errorf("SpaceGroupFromHallNumberAndTransformation: %w", err)
	}

	return &SpaceGroup{Number: entry.Number, HallNumber: hallNumber, Transformation: t}, nil
}

// Conventional-basis changes tried on top of the point-group basis. The
// point group alone cannot tell the monoclinic unique axis from the glide
// direction, nor the orthorhombic axes from each other.
var (
	monoclinicCorrections = []matrix.IMat3{
		matrix.IIdentity(),
		// b2 to b1
		{{0, 0, -1}, {0, 1, 0}, {1, 0, -1}},
		// b3 to b1
		{{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	}
	orthorhombicCorrections = []matrix.IMat3{
		// abc
		matrix.IIdentity(),
		// ba-c
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		// cab
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		// -cba
		{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
		// bca
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		// a-cb
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	}
	thCorrections = []matrix.IMat3{
		matrix.IIdentity(),
		{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
	}
)

// correctionMatrices returns the corrections of an arithmetic class in its
// primitive basis, C·Q·C⁻¹ for the centering matrix C, keeping those that
// stay unimodular.
func correctionMatrices(arithmeticNumber int) ([]matrix.IMat3, error) {
	a, err := data.ArithmeticCrystalClassOf(arithmeticNumber)
	if err != nil {
		return nil, err
	}
	var convs []matrix.IMat3
	switch a.GeometricClass {
	case data.C2, data.C1h, data.C2h:
		convs = monoclinicCorrections
	case data.D2, data.C2v, data.D2h:
		convs = orthorhombicCorrections
	case data.Th:
		convs = thCorrections
	default:
		return []matrix.IMat3{matrix.IIdentity()}, nil
	}

	rep, err := data.PointGroupRepresentativeOf(arithmeticNumber)
	if err != nil {
		return nil, err
	}
	lin, inv := rep.Centering.Linear().ToFloat(), rep.Centering.Inverse()
	corrections := lo.Map(convs, func(q matrix.IMat3, _ int) matrix.IMat3 {
		return lin.Mul(q.ToFloat()).Mul(inv).Round()
	})

	return lo.Filter(corrections, func(c matrix.IMat3, _ int) bool { return c.Det() == 1 }), nil
}

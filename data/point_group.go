// SPDX-License-Identifier: MIT

package data

import (
	"fmt"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// PointGroupRepresentative is a conventional generating set of an
// arithmetic crystal class together with its lattice centering.
type PointGroupRepresentative struct {
	Generators []matrix.IMat3
	Centering  Centering
}

// PointGroupRepresentativeOf returns the representative of an arithmetic
// class, taken from its symmorphic space group.
func PointGroupRepresentativeOf(arithmeticNumber int) (PointGroupRepresentative, error) {
	a, err := ArithmeticCrystalClassOf(arithmeticNumber)
	if err != nil {
		return PointGroupRepresentative{}, err
	}

	return representativeFromHall(a.hallNumber)
}

// GeometricRepresentativeOf returns the primitive-lattice representative of
// a geometric class.
func GeometricRepresentativeOf(g GeometricCrystalClass) (PointGroupRepresentative, error) {
	if !g.valid() {
		return PointGroupRepresentative{}, fmt.Errorf("GeometricRepresentativeOf(%d): %w", int(g), ErrOutOfRange)
	}
	for _, a := range arithmeticClasses {
		if a.GeometricClass == g {
			return representativeFromHall(a.hallNumber)
		}
	}

	return PointGroupRepresentative{}, fmt.Errorf("GeometricRepresentativeOf(%s): %w", g, ErrOutOfRange)
}

func representativeFromHall(hallNumber int) (PointGroupRepresentative, error) {
	hs, err := HallSymbolFromNumber(hallNumber)
	if err != nil {
		return PointGroupRepresentative{}, err
	}

	return PointGroupRepresentative{
		Generators: base.ProjectRotations(hs.Generators),
		Centering:  hs.Centering,
	}, nil
}

// PrimitiveGenerators conjugates the generators into the primitive basis of
// the centred lattice: C·g·C⁻¹ with C = Centering.Linear().
func (r PointGroupRepresentative) PrimitiveGenerators() []matrix.IMat3 {
	lin := r.Centering.Linear().ToFloat()
	inv := r.Centering.Inverse()
	out := make([]matrix.IMat3, len(r.Generators))
	for i, g := range r.Generators {
		out[i] = lin.Mul(g.ToFloat()).Mul(inv).Round()
	}

	return out
}

// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"sync"
)

// SpaceGroupType is one of the 230 space-group types with its
// classification.
type SpaceGroupType struct {
	Number             int                   `json:"number"`
	HMShort            string                `json:"hm_short"`
	StandardHallNumber int                   `json:"hall_number"`
	HallNumbers        []int                 `json:"hall_numbers"`
	ArithmeticNumber   int                   `json:"arithmetic_number"`
	ArithmeticSymbol   string                `json:"arithmetic_symbol"`
	GeometricClass     GeometricCrystalClass `json:"-"`
	CrystalSystem      CrystalSystem         `json:"-"`
	CrystalFamily      CrystalFamily         `json:"-"`
	LatticeSystem      LatticeSystem         `json:"-"`
	BravaisClass       BravaisClass          `json:"-"`
}

var spaceGroupTypes = sync.OnceValue(func() []SpaceGroupType {
	out := make([]SpaceGroupType, NumSpaceGroupTypes)
	std := standardHallNumbers()
	for n := 1; n <= NumSpaceGroupTypes; n++ {
		a := arithmeticClasses[arithmeticNumbers[n]-1]
		cs := a.GeometricClass.CrystalSystem()
		out[n-1] = SpaceGroupType{
			Number:             n,
			HMShort:            hallTable()[std[n]-1].HMShort,
			StandardHallNumber: std[n],
			HallNumbers:        hallNumbersOf(n),
			ArithmeticNumber:   a.Number,
			ArithmeticSymbol:   a.Symbol,
			GeometricClass:     a.GeometricClass,
			CrystalSystem:      cs,
			CrystalFamily:      cs.CrystalFamily(),
			LatticeSystem:      a.LatticeSystem(),
			BravaisClass:       a.BravaisClass,
		}
	}

	return out
})

// SpaceGroupTypeOf returns the type numbered 1..230.
func SpaceGroupTypeOf(number int) (SpaceGroupType, error) {
	if number < 1 || number > NumSpaceGroupTypes {
		return SpaceGroupType{}, fmt.Errorf("SpaceGroupTypeOf(%d): %w", number, ErrOutOfRange)
	}
	t := spaceGroupTypes()[number-1]
	t.HallNumbers = append([]int(nil), t.HallNumbers...)

	return t, nil
}

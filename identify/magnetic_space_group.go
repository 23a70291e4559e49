// SPDX-License-Identifier: MIT

package identify

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// MagneticSpaceGroup is an identified magnetic space-group type.
type MagneticSpaceGroup struct {
	UNINumber     int
	ConstructType data.ConstructType
	// Transformation takes the input primitive magnetic operations to the
	// primitive operations of the tabulated magnetic Hall symbol.
	Transformation base.UnimodularTransformation
}

// MaximalSpaceSubgroup returns the operations without time reversal (XSG).
func MaximalSpaceSubgroup(mops base.MagneticOperations) base.Operations {
	return lo.FilterMap(mops, func(m base.MagneticOperation, _ int) (base.Operation, bool) {
		return m.Operation, !m.TimeReversal
	})
}

// FamilySpaceGroup returns the operations with time reversal dropped (FSG),
// keeping the first of every pair that then coincides modulo the lattice.
// grey reports whether such a pair exists, i.e. whether 1' is an
// operation. For Type IV groups the result holds anti-translations as pure
// translations, so rotations repeat.
func FamilySpaceGroup(mops base.MagneticOperations, eps float64) (fsg base.Operations, grey bool) {
	seen := make(map[matrix.IMat3]matrix.Vec3, len(mops))
	for _, m := range mops {
		if t, ok := seen[m.Rotation]; ok && isLatticeVector(m.Translation.Sub(t), eps) {
			grey = true
			continue
		}
		fsg = append(fsg, m.Operation)
		seen[m.Rotation] = m.Translation
	}

	return fsg, grey
}

// ConstructTypeOf classifies a full set of primitive magnetic operations.
func ConstructTypeOf(mops base.MagneticOperations, eps float64) (data.ConstructType, error) {
	ct, _, err := referenceSpaceGroup(mops, eps)

	return ct, err
}

// referenceSpaceGroup returns the construct type and the space group the
// type is tabulated under: the XSG for Type IV, the FSG otherwise.
func referenceSpaceGroup(mops base.MagneticOperations, eps float64) (data.ConstructType, base.Operations, error) {
	xsg := MaximalSpaceSubgroup(mops)
	fsg, grey := FamilySpaceGroup(mops, eps)
	if len(xsg) == 0 || len(mops)%len(xsg) != 0 || len(mops)%len(fsg) != 0 {
		return 0, nil, fmt.Errorf("ConstructTypeOf: incomplete operations |MSG|=%d |XSG|=%d: %w", len(mops), len(xsg), ErrNoMatchingType)
	}

	switch index := len(mops) / len(xsg); {
	case index == 1 && !grey:
		return data.Type1, fsg, nil
	case index == 2 && grey:
		return data.Type2, fsg, nil
	case index == 2 && lo.ContainsBy(mops, isAntiTranslation):
		return data.Type4, xsg, nil
	case index == 2:
		return data.Type3, fsg, nil
	default:
		return 0, nil, fmt.Errorf("ConstructTypeOf: |MSG/XSG|=%d grey=%t: %w", index, grey, ErrNoMatchingType)
	}
}

// NewMagneticSpaceGroup identifies the magnetic space-group type of mops,
// magnetic operations modulo a primitive lattice.
//
// The reference space group is identified in the standard setting first;
// Types I and II are then fixed by it. For Type III the transformation is
// composed with the integral normalizer of the tabulated family group until
// the primed operations agree; for Type IV a normalizer element carrying
// the anti-translation onto the tabulated one is searched.
func NewMagneticSpaceGroup(mops base.MagneticOperations, eps float64) (*MagneticSpaceGroup, error) {
	ct, ref, err := referenceSpaceGroup(mops, eps)
	if err != nil {
		return nil, fmt.Errorf("NewMagneticSpaceGroup: %w", err)
	}
	sg, err := NewSpaceGroup(ref, data.Standard, eps)
	if err != nil {
		return nil, fmt.Errorf("NewMagneticSpaceGroup: reference group: %w", err)
	}
	db := data.Load()
	first, last, err := db.UNIRange(sg.Number)
	if err != nil {
		return nil, fmt.Errorf("NewMagneticSpaceGroup: %w", err)
	}

	for uni := first; uni < last; uni++ {
		typ, err := db.MagneticSpaceGroupTypeOf(uni)
		if err != nil {
			return nil, fmt.Errorf("NewMagneticSpaceGroup: %w", err)
		}
		if typ.ConstructType != ct {
			continue
		}
		found := &MagneticSpaceGroup{UNINumber: uni, ConstructType: ct, Transformation: sg.Transformation}
		if ct == data.Type1 || ct == data.Type2 {
			return found, nil
		}

		mhs, err := data.ParseMagneticHallSymbol(typ.MagneticHallSymbol)
		if err != nil {
			return nil, fmt.Errorf("NewMagneticSpaceGroup: UNI %d: %w", uni, err)
		}
		dbMops, err := mhs.PrimitiveTraverse()
		if err != nil {
			return nil, fmt.Errorf("NewMagneticSpaceGroup: UNI %d: %w", uni, err)
		}
		var candidates []base.UnimodularTransformation
		if ct == data.Type3 {
			if candidates, err = db.IntegralNormalizer(typ.HallNumber); err != nil {
				return nil, fmt.Errorf("NewMagneticSpaceGroup: %w", err)
			}
		} else if corr, ok, err := type4Conjugator(sg.Transformation, mops, dbMops, typ.HallNumber, eps); err != nil {
			return nil, fmt.Errorf("NewMagneticSpaceGroup: %w", err)
		} else if ok {
			candidates = []base.UnimodularTransformation{corr}
		}
		for _, corr := range candidates {
			t := sg.Transformation.Compose(corr)
			if sameMagneticOperations(t.TransformMagneticOperations(mops), dbMops, eps) {
				found.Transformation = t

				return found, nil
			}
		}
	}

	return nil, fmt.Errorf("NewMagneticSpaceGroup: type %s over No. %d: %w", ct, sg.Number, ErrNoMatchingType)
}

// ReferenceSpaceGroup returns the space group the type is tabulated under,
// with the same transformation.
func (m *MagneticSpaceGroup) ReferenceSpaceGroup() (*SpaceGroup, error) {
	typ, err := data.MagneticSpaceGroupTypeOf(m.UNINumber)
	if err != nil {
		return nil, err
	}

	return SpaceGroupFromHallNumberAndTransformation(typ.HallNumber, m.Transformation)
}

// type4Conjugator looks for (P, p) normalizing the tabulated XSG with
// (P, p)⁻¹(E, c_src)(P, p) = (E, c_dst), i.e. c_src ≡ P·c_dst, where c_src is
// the input anti-translation after std and c_dst the tabulated one.
func type4Conjugator(std base.UnimodularTransformation, mops, dbMops base.MagneticOperations, hallNumber int, eps float64) (base.UnimodularTransformation, bool, error) {
	src, ok := lo.Find(mops, isAntiTranslation)
	if !ok {
		return base.UnimodularTransformation{}, false, nil
	}
	dst, ok := lo.Find(dbMops, isAntiTranslation)
	if !ok {
		return base.UnimodularTransformation{}, false, nil
	}
	cSrc := std.TransformOperation(src.Operation).Translation

	hs, err := data.HallSymbolFromNumber(hallNumber)
	if err != nil {
		return base.UnimodularTransformation{}, false, err
	}
	ops, err := hs.PrimitiveTraverse()
	if err != nil {
		return base.UnimodularTransformation{}, false, err
	}
	gens := lo.Filter(hs.PrimitiveGenerators(), func(g base.Operation, _ int) bool { return !g.Rotation.IsIdentity() })
	if len(gens) == 0 {
		gens = base.Operations{base.IdentityOperation()}
	}

	bases, err := group.TransMatBases(ops.Rotations(), gens.Rotations())
	if err != nil {
		return base.UnimodularTransformation{}, false, err
	}
	for basis := range bases {
		for p := range group.UnimodularCombinations(basis) {
			if !isLatticeVector(p.MulFVec(dst.Translation).Sub(cSrc), eps) {
				continue
			}
			if shift, ok := group.MatchOriginShift(ops, p, gens, eps); ok {
				return base.MustUnimodular(p, shift), true, nil
			}
		}
	}

	return base.UnimodularTransformation{}, false, nil
}

func isAntiTranslation(m base.MagneticOperation) bool {
	return m.TimeReversal && m.Rotation.IsIdentity()
}

// sameMagneticOperations compares two full sets of magnetic operations
// modulo lattice translations.
func sameMagneticOperations(a, b base.MagneticOperations, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	type key struct {
		rotation     matrix.IMat3
		timeReversal bool
	}
	translations := lo.SliceToMap(a, func(m base.MagneticOperation) (key, matrix.Vec3) {
		return key{m.Rotation, m.TimeReversal}, m.Translation
	})

	return lo.EveryBy(b, func(m base.MagneticOperation) bool {
		t, ok := translations[key{m.Rotation, m.TimeReversal}]
		return ok && isLatticeVector(m.Translation.Sub(t), eps)
	})
}

func isLatticeVector(v matrix.Vec3, eps float64) bool {
	for _, x := range v {
		if math.Abs(x-math.Round(x)) >= eps {
			return false
		}
	}

	return true
}

// SPDX-License-Identifier: MIT

package symmetrize

import (
	"fmt"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// originShifts returns the translations s modulo 1 with (R−I)·s integral
// for every generator, i.e. the discrete alternative origins of the group.
// Directions left free by every rotation (polar axes) are pinned to 0.
func originShifts(generators base.Operations) ([]matrix.Vec3, error) {
	if len(generators) == 0 {
		return []matrix.Vec3{{}}, nil
	}
	a, err := matrix.NewIDense(3*len(generators), 3)
	if err != nil {
		return nil, err
	}
	for k, g := range generators {
		m := g.Rotation.Sub(matrix.IIdentity())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a.Put(3*k+i, j, m[i][j])
			}
		}
	}
	snf, err := ops.NewSNF(a)
	if err != nil {
		return nil, fmt.Errorf("originShifts: %w", err)
	}

	var d [3]int
	for i := range d {
		if d[i] = snf.Diag(i); d[i] == 0 {
			d[i] = 1
		}
	}
	out := make([]matrix.Vec3, 0, d[0]*d[1]*d[2])
	for k0 := 0; k0 < d[0]; k0++ {
		for k1 := 0; k1 < d[1]; k1++ {
			for k2 := 0; k2 < d[2]; k2++ {
				y := matrix.Vec3{float64(k0) / float64(d[0]), float64(k1) / float64(d[1]), float64(k2) / float64(d[2])}
				var s matrix.Vec3
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						s[i] += float64(snf.R.Get(i, j)) * y[j]
					}
				}
				out = append(out, s.Wrap())
			}
		}
	}

	return out, nil
}

// settingCandidates returns the transformations onto the primitive basis of
// hallNumber that differ from t by an element of the affine normalizer of
// the tabulated group, t itself first. Triclinic groups only get the
// alternative origins.
func settingCandidates(t base.UnimodularTransformation, hallNumber int, triclinic bool) ([]base.UnimodularTransformation, error) {
	hs, err := data.HallSymbolFromNumber(hallNumber)
	if err != nil {
		return nil, err
	}
	shifts, err := originShifts(hs.PrimitiveGenerators())
	if err != nil {
		return nil, err
	}
	normalizer := []base.UnimodularTransformation{base.IdentityUnimodular()}
	if !triclinic {
		integral, err := data.Load().IntegralNormalizer(hallNumber)
		if err != nil {
			return nil, err
		}
		for _, n := range integral {
			if !n.Linear.IsIdentity() {
				normalizer = append(normalizer, n)
			}
		}
	}

	out := make([]base.UnimodularTransformation, 0, len(normalizer)*len(shifts))
	for _, n := range normalizer {
		for _, s := range shifts {
			out = append(out, t.Compose(n).Compose(base.MustUnimodular(matrix.IIdentity(), s)))
		}
	}

	return out, nil
}

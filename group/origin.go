// SPDX-License-Identifier: MIT

package group

import (
	"math"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// MatchOriginShift looks for an origin shift o such that the unimodular
// transformation (p, o) maps prim onto a set containing every generator,
// translations compared modulo lattice vectors.
//
// After the change of basis by P each operation (W, w') must satisfy
// w' + (W - I)·s ≡ w_gen (mod 1) with s in the new basis, a linear system
// solved through the Smith normal form. The returned shift is p·s wrapped
// into [0,1).
func MatchOriginShift(prim base.Operations, p matrix.IMat3, generators base.Operations, eps float64) (matrix.Vec3, bool) {
	t, err := base.NewUnimodularTransformation(p, matrix.Vec3{})
	if err != nil {
		return matrix.Vec3{}, false
	}
	translations := make(map[matrix.IMat3]matrix.Vec3, len(prim))
	for _, op := range t.TransformOperations(prim) {
		translations[op.Rotation] = op.Translation
	}

	if len(generators) == 0 {
		return matrix.Vec3{}, true
	}
	a, err := matrix.NewIDense(3*len(generators), 3)
	if err != nil {
		return matrix.Vec3{}, false
	}
	b := make([]float64, 3*len(generators))
	for k, g := range generators {
		target, ok := translations[g.Rotation]
		if !ok {
			return matrix.Vec3{}, false
		}
		ak := g.Rotation.Sub(matrix.IIdentity())
		bk := g.Translation.Sub(target)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a.Put(3*k+i, j, ak[i][j])
			}
			b[3*k+i] = bk[i]
		}
	}

	x, err := ops.SolveMod1(a, b, eps)
	if err != nil {
		return matrix.Vec3{}, false
	}
	s := matrix.Vec3{x[0], x[1], x[2]}

	// guard against tolerance leakage through the Smith transforms
	for k, g := range generators {
		ak := g.Rotation.Sub(matrix.IIdentity())
		r := ak.MulFVec(s)
		for i := 0; i < 3; i++ {
			d := r[i] - b[3*k+i]
			if math.Abs(d-math.Round(d)) > eps {
				return matrix.Vec3{}, false
			}
		}
	}

	return p.MulFVec(s).Wrap(), true
}

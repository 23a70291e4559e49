// SPDX-License-Identifier: MIT

package reduce

import (
	"fmt"

	"github.com/katalvlaran/moyo/matrix"
)

// niggliParams are the six Gram parameters A, B, C, ξ, η, ζ with the
// tolerant signs of the three off-diagonal ones.
type niggliParams struct {
	a, b, c         float64
	xi, eta, zeta   float64
	sXi, sEta, sZet int
}

func newNiggliParams(basis matrix.Mat3, eps float64) niggliParams {
	g := basis.Metric()
	p := niggliParams{
		a: g[0][0], b: g[1][1], c: g[2][2],
		xi: 2 * g[1][2], eta: 2 * g[2][0], zeta: 2 * g[0][1],
	}
	p.sXi, p.sEta, p.sZet = sign(p.xi, eps), sign(p.eta, eps), sign(p.zeta, eps)

	return p
}

// Niggli reduces basis to its Niggli cell.
// Steps (Křivý & Gruber, with tolerances of Grosse-Kunstleve et al.):
//
//	N1 sort A ≤ B; N2 sort B ≤ C (restart); N3/N4 normalize signs of ξ, η, ζ;
//	N5–N7 reduce |ξ| ≤ B, |η| ≤ A, |ζ| ≤ A (restart);
//	N8 reduce ξ+η+ζ+A+B ≥ 0 (restart).
//
// A transformation that reappears at step 1 ends the loop (numerical cycle).
// Returns ErrReduction when the number of restarts exceeds the cap.
func Niggli(basis matrix.Mat3, opts ...Option) (matrix.Mat3, matrix.IMat3, error) {
	o := gatherOptions(opts)
	var (
		reduced = basis
		t       = matrix.IIdentity()
		seen    = map[matrix.IMat3]struct{}{}
		step    = 1
		rounds  = 0
		branch  bool
	)
	for step <= 8 {
		p := newNiggliParams(reduced, o.Epsilon)
		switch step {
		case 1:
			branch = niggliStep1(p, &t, o.Epsilon)
		case 2:
			branch = niggliStep2(p, &t, o.Epsilon)
		case 3:
			branch = niggliStep3(p, &t)
		case 4:
			branch = niggliStep4(p, &t)
		case 5:
			branch = niggliStep5(p, &t, o.Epsilon)
		case 6:
			branch = niggliStep6(p, &t, o.Epsilon)
		case 7:
			branch = niggliStep7(p, &t, o.Epsilon)
		case 8:
			branch = niggliStep8(p, &t, o.Epsilon)
		}
		reduced = basis.Mul(t.ToFloat())

		if branch && (step == 2 || step >= 5) {
			step = 1
		} else {
			step++
		}
		if step == 1 {
			if _, ok := seen[t]; ok {
				break
			}
			seen[t] = struct{}{}
			rounds++
			if rounds > o.MaxIterations {
				return matrix.Mat3{}, matrix.IMat3{}, fmt.Errorf("Niggli: %d rounds: %w", rounds, ErrReduction)
			}
		}
	}

	if t.Det() < 0 {
		reduced = reduced.Scale(-1)
		t = t.Neg()
	}

	return reduced, t, nil
}

// IsNiggliReduced checks the full set of Niggli conditions within eps.
func IsNiggliReduced(basis matrix.Mat3, eps float64) bool {
	p := newNiggliParams(basis, eps)
	if p.b-p.a < -eps || p.c-p.b < -eps {
		return false
	}
	if p.a-abs(p.eta) < -eps || p.b-abs(p.xi) < -eps {
		return false
	}

	if p.sXi*p.sEta*p.sZet > 0 {
		// type I: all positive
		if !(p.xi > eps && p.eta > eps && p.zeta > eps) {
			return false
		}
		if abs(p.a-p.b) < eps && p.eta-p.xi < -eps {
			return false
		}
		if abs(p.b-p.c) < eps && p.zeta-p.eta < -eps {
			return false
		}
		if abs(p.b-abs(p.xi)) < eps && 2*p.eta-p.zeta < -eps {
			return false
		}
		if abs(p.a-abs(p.eta)) < eps && 2*p.xi-p.zeta < -eps {
			return false
		}
		if abs(p.a-abs(p.zeta)) < eps && 2*p.xi-p.eta < -eps {
			return false
		}

		return true
	}

	// type II: all non-positive
	if p.xi > eps || p.eta > eps || p.zeta > eps {
		return false
	}
	if abs(p.a-p.b) < eps && abs(p.eta)-abs(p.xi) < -eps {
		return false
	}
	if abs(p.b-p.c) < eps && abs(p.zeta)-abs(p.eta) < -eps {
		return false
	}
	if abs(p.b-abs(p.xi)) < eps && abs(p.zeta) >= eps {
		return false
	}
	if abs(p.a-abs(p.eta)) < eps && abs(p.zeta) >= eps {
		return false
	}
	if abs(p.a-abs(p.zeta)) < eps && abs(p.eta) >= eps {
		return false
	}
	if abs(p.xi+p.eta+p.zeta-p.a-p.b) < eps && abs(p.eta)+abs(p.zeta)-p.a < -eps {
		return false
	}

	return true
}

func niggliStep1(p niggliParams, t *matrix.IMat3, eps float64) bool {
	if p.a-p.b > eps || (abs(p.a-p.b) < eps && abs(p.xi) > abs(p.eta)) {
		*t = t.Mul(matrix.IMat3{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}})
		return true
	}

	return false
}

func niggliStep2(p niggliParams, t *matrix.IMat3, eps float64) bool {
	if p.b-p.c > eps || (abs(p.b-p.c) < eps && abs(p.eta) > abs(p.zeta)) {
		*t = t.Mul(matrix.IMat3{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}})
		return true
	}

	return false
}

func niggliStep3(p niggliParams, t *matrix.IMat3) bool {
	if p.sXi*p.sEta*p.sZet <= 0 {
		return false
	}
	*t = t.Mul(matrix.IMat3{
		{signOrOne(p.sXi), 0, 0},
		{0, signOrOne(p.sEta), 0},
		{0, 0, signOrOne(p.sZet)},
	})

	return true
}

func niggliStep4(p niggliParams, t *matrix.IMat3) bool {
	if p.sXi == -1 && p.sEta == -1 && p.sZet == -1 {
		return false
	}
	if p.sXi*p.sEta*p.sZet > 0 {
		return false
	}
	i, j, k, zero := 1, 1, 1, -1
	switch p.sXi {
	case 1:
		i = -1
	case 0:
		zero = 0
	}
	switch p.sEta {
	case 1:
		j = -1
	case 0:
		zero = 1
	}
	switch p.sZet {
	case 1:
		k = -1
	case 0:
		zero = 2
	}
	if i*j*k == -1 {
		switch zero {
		case 0:
			i = -1
		case 1:
			j = -1
		case 2:
			k = -1
		}
	}
	*t = t.Mul(matrix.IMat3{{i, 0, 0}, {0, j, 0}, {0, 0, k}})

	return true
}

func niggliStep5(p niggliParams, t *matrix.IMat3, eps float64) bool {
	if abs(p.xi)-p.b > eps ||
		(abs(p.xi-p.b) < eps && p.zeta-2*p.eta > eps) ||
		(abs(p.xi+p.b) < eps && -p.zeta > eps) {
		*t = t.Mul(matrix.IMat3{{1, 0, 0}, {0, 1, -p.sXi}, {0, 0, 1}})
		return true
	}

	return false
}

func niggliStep6(p niggliParams, t *matrix.IMat3, eps float64) bool {
	if abs(p.eta)-p.a > eps ||
		(abs(p.eta-p.a) < eps && p.zeta-2*p.xi > eps) ||
		(abs(p.eta+p.a) < eps && -p.zeta > eps) {
		*t = t.Mul(matrix.IMat3{{1, 0, -p.sEta}, {0, 1, 0}, {0, 0, 1}})
		return true
	}

	return false
}

func niggliStep7(p niggliParams, t *matrix.IMat3, eps float64) bool {
	if abs(p.zeta)-p.a > eps ||
		(abs(p.zeta-p.a) < eps && p.eta-2*p.xi > eps) ||
		(abs(p.zeta+p.a) < eps && -p.eta > eps) {
		*t = t.Mul(matrix.IMat3{{1, -p.sZet, 0}, {0, 1, 0}, {0, 0, 1}})
		return true
	}

	return false
}

func niggliStep8(p niggliParams, t *matrix.IMat3, eps float64) bool {
	s := p.xi + p.eta + p.zeta + p.a + p.b
	if s < -eps || (abs(s) < eps && 2*(p.a+p.eta)+p.zeta > eps) {
		*t = t.Mul(matrix.IMat3{{1, 0, 1}, {0, 1, 1}, {0, 0, 1}})
		return true
	}

	return false
}

func sign(x, eps float64) int {
	switch {
	case x > eps:
		return 1
	case x < -eps:
		return -1
	}

	return 0
}

func signOrOne(s int) int {
	if s == -1 {
		return -1
	}

	return 1
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

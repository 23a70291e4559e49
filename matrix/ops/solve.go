// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/matrix"
)

// IntegerKernel returns an integer basis of {x ∈ Zⁿ : A·x = 0}.
// The basis vectors are the trailing columns of R in D = L·A·R.
func IntegerKernel(a *matrix.IDense) ([][]int, error) {
	snf, err := NewSNF(a)
	if err != nil {
		return nil, fmt.Errorf("IntegerKernel: %w", err)
	}
	rank := snf.Rank()
	out := make([][]int, 0, a.Cols()-rank)
	for j := rank; j < a.Cols(); j++ {
		out = append(out, snf.R.Col(j))
	}

	return out, nil
}

// SolveMod1 finds a real x with A·x ≡ b (mod 1), i.e. A·x - b ∈ Zᵐ.
// With D = L·A·R the system becomes D·y ≡ L·b, y = R⁻¹x, which decouples:
// rows with d_i ≠ 0 fix y_i = (Lb)_i / d_i, rows with d_i = 0 require
// (Lb)_i to be an integer within eps. Returns ErrNoSolution otherwise.
func SolveMod1(a *matrix.IDense, b []float64, eps float64) ([]float64, error) {
	if len(b) != a.Rows() {
		return nil, fmt.Errorf("SolveMod1: len(b)=%d rows=%d: %w", len(b), a.Rows(), matrix.ErrBadShape)
	}
	snf, err := NewSNF(a)
	if err != nil {
		return nil, fmt.Errorf("SolveMod1: %w", err)
	}
	m, n := a.Rows(), a.Cols()
	lb := make([]float64, m)
	for i := 0; i < m; i++ {
		for k := 0; k < m; k++ {
			lb[i] += float64(snf.L.Get(i, k)) * b[k]
		}
	}
	y := make([]float64, n)
	for i := 0; i < m; i++ {
		d := snf.Diag(i)
		if d == 0 {
			if math.Abs(lb[i]-math.Round(lb[i])) > eps {
				return nil, fmt.Errorf("SolveMod1: residual %g at row %d: %w", lb[i]-math.Round(lb[i]), i, ErrNoSolution)
			}
			continue
		}
		y[i] = lb[i] / float64(d)
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			x[i] += float64(snf.R.Get(i, k)) * y[k]
		}
	}

	return x, nil
}

// Sylvester3 returns an integer basis of {P ∈ Z^{3×3} : A_k·P = P·B_k ∀k}.
// An empty result means only P = 0 solves the system.
func Sylvester3(as, bs []matrix.IMat3) ([]matrix.IMat3, error) {
	if len(as) != len(bs) || len(as) == 0 {
		return nil, fmt.Errorf("Sylvester3: %d vs %d: %w", len(as), len(bs), matrix.ErrBadShape)
	}
	coeffs, err := matrix.NewIDense(9*len(as), 9)
	if err != nil {
		return nil, fmt.Errorf("Sylvester3: %w", err)
	}
	// unknown p_ij sits at column 3i+j
	var k, i, j, l int
	for k = range as {
		for i = 0; i < 3; i++ {
			for j = 0; j < 3; j++ {
				row := 9*k + 3*i + j
				for l = 0; l < 3; l++ {
					coeffs.Put(row, 3*l+j, coeffs.Get(row, 3*l+j)+as[k][i][l])
					coeffs.Put(row, 3*i+l, coeffs.Get(row, 3*i+l)-bs[k][l][j])
				}
			}
		}
	}
	kernel, err := IntegerKernel(coeffs)
	if err != nil {
		return nil, fmt.Errorf("Sylvester3: %w", err)
	}
	out := make([]matrix.IMat3, 0, len(kernel))
	for _, v := range kernel {
		var p matrix.IMat3
		for i = 0; i < 3; i++ {
			for j = 0; j < 3; j++ {
				p[i][j] = v[3*i+j]
			}
		}
		out = append(out, p)
	}

	return out, nil
}

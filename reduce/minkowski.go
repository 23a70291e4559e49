// SPDX-License-Identifier: MIT

package reduce

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/matrix"
)

// Minkowski returns a Minkowski-reduced basis of the lattice (greedy
// algorithm of Nguyen & Stehlé, exact up to dimension 4).
func Minkowski(basis matrix.Mat3, opts ...Option) (matrix.Mat3, matrix.IMat3, error) {
	o := gatherOptions(opts)
	reduced, t := basis, matrix.IIdentity()
	if err := minkowskiGreedy(&reduced, &t, 3, o); err != nil {
		return matrix.Mat3{}, matrix.IMat3{}, err
	}
	if t.Det() < 0 {
		reduced = reduced.Scale(-1)
		t = t.Neg()
	}

	return reduced, t, nil
}

// Minkowski2 reduces only the first two columns (a 2D sublattice); the third
// column is left untouched. The returned transformation has determinant 1 on
// the 2×2 block.
func Minkowski2(basis matrix.Mat3, opts ...Option) (matrix.Mat3, matrix.IMat3, error) {
	o := gatherOptions(opts)
	reduced, t := basis, matrix.IIdentity()
	if err := minkowskiGreedy(&reduced, &t, 2, o); err != nil {
		return matrix.Mat3{}, matrix.IMat3{}, err
	}
	if t.Det() < 0 {
		// flip the second vector to keep the in-plane orientation
		for r := 0; r < 3; r++ {
			reduced[r][1] = -reduced[r][1]
			t[r][1] = -t[r][1]
		}
	}

	return reduced, t, nil
}

// minkowskiGreedy reduces the first rank columns in place.
// Stage 1: bubble-sort columns by length.
// Stage 2: recursively reduce the first rank-1 columns.
// Stage 3: subtract the closest vector of their span from the last column,
// searching the Voronoi-relevant box {-1,0,1}^(rank-1) around the rounded
// Gram–Schmidt coefficients.
// Stage 4: stop once the last column is no shorter than its predecessor.
func minkowskiGreedy(basis *matrix.Mat3, t *matrix.IMat3, rank int, o Options) error {
	if rank == 1 {
		return nil
	}
	seen := map[matrix.IMat3]struct{}{}
	for iter := 0; ; iter++ {
		if iter > o.MaxIterations {
			return fmt.Errorf("Minkowski: %d passes: %w", iter, ErrReduction)
		}
		// Stage 1
		for i := 0; i < rank; i++ {
			for j := 0; j < rank-1-i; j++ {
				if basis.Col(j).Norm() > basis.Col(j+1).Norm()+o.Epsilon {
					swapCols(basis, t, j, j+1)
				}
			}
		}
		// Stage 2
		if err := minkowskiGreedy(basis, t, rank-1, o); err != nil {
			return err
		}
		// Stage 3
		last := basis.Col(rank - 1)
		coeffs := gramSchmidtCoefficients(*basis, rank)
		var (
			best      = math.Inf(1)
			bestCoeff [2]int
			bestVec   matrix.Vec3
		)
		for _, off := range voronoiBox(rank - 1) {
			var c [2]int
			var v matrix.Vec3
			for i := 0; i < rank-1; i++ {
				c[i] = int(math.Round(coeffs[i])) + off[i]
				v = v.Add(basis.Col(i).Scale(float64(c[i])))
			}
			if d := v.Sub(last).Norm(); d < best {
				best, bestCoeff, bestVec = d, c, v
			}
		}
		for r := 0; r < 3; r++ {
			basis[r][rank-1] -= bestVec[r]
		}
		add := matrix.IIdentity()
		for i := 0; i < rank-1; i++ {
			add[i][rank-1] = -bestCoeff[i]
		}
		*t = t.Mul(add)

		// Stage 4
		if basis.Col(rank-1).Norm()+o.Epsilon > basis.Col(rank-2).Norm() {
			return nil
		}
		if _, ok := seen[*t]; ok {
			return nil
		}
		seen[*t] = struct{}{}
	}
}

// gramSchmidtCoefficients solves H·g = u with H_ij = bi·bj/|bi|² and
// u_i = bi·b_last/|bi|² for the first rank-1 columns.
func gramSchmidtCoefficients(basis matrix.Mat3, rank int) [2]float64 {
	b0, b1, last := basis.Col(0), basis.Col(1), basis.Col(rank-1)
	if rank == 2 {
		return [2]float64{b0.Dot(last) / b0.Dot(b0)}
	}
	n0, n1 := b0.Dot(b0), b1.Dot(b1)
	h00, h01 := 1.0, b0.Dot(b1)/n0
	h10, h11 := b1.Dot(b0)/n1, 1.0
	u0, u1 := b0.Dot(last)/n0, b1.Dot(last)/n1
	det := h00*h11 - h01*h10

	return [2]float64{(u0*h11 - h01*u1) / det, (h00*u1 - h10*u0) / det}
}

func voronoiBox(dim int) [][2]int {
	if dim == 1 {
		return [][2]int{{-1, 0}, {0, 0}, {1, 0}}
	}
	out := make([][2]int, 0, 9)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			out = append(out, [2]int{i, j})
		}
	}

	return out
}

func swapCols(basis *matrix.Mat3, t *matrix.IMat3, i, j int) {
	for r := 0; r < 3; r++ {
		basis[r][i], basis[r][j] = basis[r][j], basis[r][i]
		t[r][i], t[r][j] = t[r][j], t[r][i]
	}
}

// IsMinkowskiReduced checks the Minkowski conditions of a 3D basis against
// the Voronoi-relevant combinations.
func IsMinkowskiReduced(basis matrix.Mat3, eps float64) bool {
	n0, n1, n2 := basis.Col(0).Norm(), basis.Col(1).Norm(), basis.Col(2).Norm()
	if n0 > n1+eps || n1 > n2+eps {
		return false
	}
	for _, c := range []matrix.Vec3{{1, -1, 0}, {1, 1, 0}} {
		if basis.MulVec(c).Norm()+eps < n1 {
			return false
		}
	}
	for _, c := range []matrix.Vec3{
		{1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	} {
		if basis.MulVec(c).Norm()+eps < n2 {
			return false
		}
	}

	return true
}

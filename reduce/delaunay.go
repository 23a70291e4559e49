// SPDX-License-Identifier: MIT

package reduce

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/moyo/matrix"
)

// delaunayCandidates are the seven shortest-vector candidates of a reduced
// superbase {b1, b2, b3, b4 = -(b1+b2+b3)}.
var delaunayCandidates = [7]matrix.IVec3{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{-1, -1, -1},
	{1, 1, 0}, {0, 1, 1}, {1, 0, 1},
}

// Delaunay reduces basis by Selling reflections of its superbase.
// Steps:
//  1. Build the superbase b1..b4 with b4 = -(b1+b2+b3).
//  2. While some pair has bi·bj > eps: add bi to the two other vectors of
//     the basis and negate bi (restart).
//  3. Pick the three shortest linearly independent vectors among the seven
//     candidates.
//
// Returns ErrReduction when the number of reflections exceeds the cap.
func Delaunay(basis matrix.Mat3, opts ...Option) (matrix.Mat3, matrix.IMat3, error) {
	o := gatherOptions(opts)
	var (
		reduced = basis
		t       = matrix.IIdentity()
		seen    = map[matrix.IMat3]struct{}{}
		iter    int
	)
	for {
		sb := superbase(reduced)
		update := false
	search:
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 4; j++ {
				if sb[i].Dot(sb[j]) <= o.Epsilon {
					continue
				}
				step := matrix.IIdentity()
				for k := 0; k < 3; k++ {
					if k != i && k != j {
						step[i][k] = 1 // column k += column i
					}
				}
				for r := 0; r < 3; r++ {
					step[r][i] = -step[r][i]
				}
				t = t.Mul(step)
				reduced = basis.Mul(t.ToFloat())
				update = true
				break search
			}
		}
		if !update {
			break
		}
		if _, ok := seen[t]; ok {
			break
		}
		seen[t] = struct{}{}
		iter++
		if iter > o.MaxIterations {
			return matrix.Mat3{}, matrix.IMat3{}, fmt.Errorf("Delaunay: %d reflections: %w", iter, ErrReduction)
		}
	}

	// shortest three independent candidates
	norms := make([]float64, len(delaunayCandidates))
	order := make([]int, len(delaunayCandidates))
	for i, c := range delaunayCandidates {
		norms[i] = reduced.MulVec(c.ToFloat()).Norm()
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return norms[order[a]] < norms[order[b]] })
	shortest, ok := firstIndependentTriple(order)
	if !ok {
		return matrix.Mat3{}, matrix.IMat3{}, fmt.Errorf("Delaunay: no independent triple: %w", ErrReduction)
	}
	t = t.Mul(shortest)
	reduced = basis.Mul(t.ToFloat())

	if t.Det() < 0 {
		reduced = reduced.Scale(-1)
		t = t.Neg()
	}

	return reduced, t, nil
}

func superbase(basis matrix.Mat3) [4]matrix.Vec3 {
	cols := basis.Columns()

	return [4]matrix.Vec3{cols[0], cols[1], cols[2], cols[0].Add(cols[1]).Add(cols[2]).Neg()}
}

// firstIndependentTriple scans candidate triples in length order and
// returns the first unimodular one as columns of an IMat3.
func firstIndependentTriple(order []int) (matrix.IMat3, bool) {
	n := len(order)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				m := matrix.IFromColumns(
					delaunayCandidates[order[i]],
					delaunayCandidates[order[j]],
					delaunayCandidates[order[k]],
				)
				if d := m.Det(); d == 1 || d == -1 {
					return m, true
				}
			}
		}
	}

	return matrix.IMat3{}, false
}

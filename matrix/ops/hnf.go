// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/moyo/matrix"
)

// MaxEntry bounds every intermediate entry of the integer eliminations.
// Lattices whose cell ratios push entries past it are rejected with
// ErrIntegerOverflow instead of wrapping silently.
const MaxEntry = 1 << 40

// HNF holds a column-style Hermite normal form H = A·R with R unimodular.
// H is lower-triangular in the leading rows with positive pivots and
// off-pivot entries of each pivot row reduced into [0, pivot).
type HNF struct {
	H *matrix.IDense
	R *matrix.IDense
}

// NewHNF computes the column Hermite normal form of a (m×n).
// Steps:
//  1. For each row s pick the non-zero entry of smallest magnitude in
//     columns s..n-1 and move it to column s.
//  2. Make the pivot positive.
//  3. Reduce every other column of row s by an Euclidean quotient.
//  4. Repeat until row s has no further updates.
//
// Complexity: O(m·n²·log(max|a|)).
func NewHNF(a *matrix.IDense) (*HNF, error) {
	var (
		m, n = a.Rows(), a.Cols()
		h    = a.Clone()
		r    = matrix.IIdentityN(n)
		s, j int
	)
	for s = 0; s < m && s < n; s++ {
		for {
			// Stage 1: pivot with smallest magnitude
			pivot := -1
			for j = s; j < n; j++ {
				if h.Get(s, j) == 0 {
					continue
				}
				if pivot < 0 || absInt(h.Get(s, j)) < absInt(h.Get(s, pivot)) {
					pivot = j
				}
			}
			if pivot < 0 {
				break // row already zero beyond s
			}
			h.SwapCols(s, pivot)
			r.SwapCols(s, pivot)

			// Stage 2: positive pivot
			if h.Get(s, s) < 0 {
				h.NegCol(s)
				r.NegCol(s)
			}

			// Stage 3: reduce the rest of row s
			update := false
			for j = 0; j < n; j++ {
				if j == s {
					continue
				}
				k := floorDiv(h.Get(s, j), h.Get(s, s))
				if k != 0 {
					update = true
					h.AddCol(j, s, -k)
					r.AddCol(j, s, -k)
				}
			}
			if err := checkBound("HNF", h, r); err != nil {
				return nil, err
			}
			if !update {
				break
			}
		}
	}

	return &HNF{H: h, R: r}, nil
}

// checkBound enforces MaxEntry on the working matrices.
func checkBound(op string, ms ...*matrix.IDense) error {
	for _, x := range ms {
		if v := x.MaxAbs(); v > MaxEntry {
			return fmt.Errorf("%s: entry %d: %w", op, v, ErrIntegerOverflow)
		}
	}

	return nil
}

// floorDiv returns ⌊a/b⌋ for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}

	return q
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/katalvlaran/moyo/matrix"
)

// SNF holds a Smith normal form D = L·A·R with L, R unimodular.
// D is diagonal with non-negative entries d_0 | d_1 | ... and the non-zero
// entries come first, so Rank() counts leading non-zero diagonal entries.
type SNF struct {
	D *matrix.IDense
	L *matrix.IDense
	R *matrix.IDense
}

// NewSNF computes the Smith normal form of a (m×n).
// Steps:
//  1. Move the smallest non-zero entry of the trailing block to (s,s).
//  2. Eliminate column s below and row s to the right by floor quotients.
//  3. Repeat until both are clear, then enforce d_s | every trailing entry
//     by folding an offending row into row s.
//  4. Make d_s positive.
//
// Complexity: polynomial in the entry size; bounded by MaxEntry.
func NewSNF(a *matrix.IDense) (*SNF, error) {
	var (
		m, n = a.Rows(), a.Cols()
		d    = a.Clone()
		l    = matrix.IIdentityN(m)
		r    = matrix.IIdentityN(n)
		i, j int
	)
	for s := 0; s < m && s < n; s++ {
		for {
			// Stage 1: smallest pivot of the trailing block
			pi, pj := -1, -1
			for i = s; i < m; i++ {
				for j = s; j < n; j++ {
					v := d.Get(i, j)
					if v == 0 {
						continue
					}
					if pi < 0 || absInt(v) < absInt(d.Get(pi, pj)) {
						pi, pj = i, j
					}
				}
			}
			if pi < 0 {
				return &SNF{D: d, L: l, R: r}, nil // trailing block is zero
			}
			d.SwapRows(s, pi)
			l.SwapRows(s, pi)
			d.SwapCols(s, pj)
			r.SwapCols(s, pj)

			// Stage 2: eliminate
			done := true
			p := d.Get(s, s)
			for i = s + 1; i < m; i++ {
				if q := floorDivSigned(d.Get(i, s), p); q != 0 {
					d.AddRow(i, s, -q)
					l.AddRow(i, s, -q)
				}
				if d.Get(i, s) != 0 {
					done = false
				}
			}
			for j = s + 1; j < n; j++ {
				if q := floorDivSigned(d.Get(s, j), p); q != 0 {
					d.AddCol(j, s, -q)
					r.AddCol(j, s, -q)
				}
				if d.Get(s, j) != 0 {
					done = false
				}
			}
			if err := checkBound("SNF", d, l, r); err != nil {
				return nil, err
			}
			if !done {
				continue
			}

			// Stage 3: divisibility chain
			bad := -1
			for i = s + 1; i < m && bad < 0; i++ {
				for j = s + 1; j < n; j++ {
					if d.Get(i, j)%p != 0 {
						bad = i
						break
					}
				}
			}
			if bad >= 0 {
				d.AddRow(s, bad, 1)
				l.AddRow(s, bad, 1)
				continue
			}

			// Stage 4: positive diagonal
			if p < 0 {
				d.NegRow(s)
				l.NegRow(s)
			}
			break
		}
	}

	return &SNF{D: d, L: l, R: r}, nil
}

// Rank returns the number of non-zero diagonal entries.
func (s *SNF) Rank() int {
	k := 0
	for i := 0; i < s.D.Rows() && i < s.D.Cols(); i++ {
		if s.D.Get(i, i) != 0 {
			k++
		}
	}

	return k
}

// Diag returns the i-th diagonal entry, or 0 outside the square part.
func (s *SNF) Diag(i int) int {
	if i >= s.D.Rows() || i >= s.D.Cols() {
		return 0
	}

	return s.D.Get(i, i)
}

// floorDivSigned returns ⌊a/b⌋ for any non-zero b.
func floorDivSigned(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

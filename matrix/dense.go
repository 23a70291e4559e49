// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with IDense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("IDense.%s(%d,%d): %w", method, row, col, err)
}

// IDense is a row-major integer matrix of arbitrary shape.
// It carries the stacked linear systems of the integer normal forms
// (m×3 rotation stacks, m×9 Sylvester systems).
type IDense struct {
	r, c int   // number of rows and columns
	data []int // flat backing storage, length == r*c
}

// NewIDense creates an r×c zero matrix.
// Complexity: O(r*c) time and memory.
func NewIDense(rows, cols int) (*IDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewIDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &IDense{r: rows, c: cols, data: make([]int, rows*cols)}, nil
}

// NewIDenseFromRows copies a rectangular [][]int into a new IDense.
func NewIDenseFromRows(rows [][]int) (*IDense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewIDenseFromRows: %w", ErrBadShape)
	}
	m, err := NewIDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("NewIDenseFromRows: ragged row %d: %w", i, ErrBadShape)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// IIdentityN returns the n×n integer identity.
func IIdentityN(n int) *IDense {
	m := &IDense{r: n, c: n, data: make([]int, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// Rows returns the number of rows.
func (m *IDense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *IDense) Cols() int { return m.c }

// At returns the element at (row, col).
func (m *IDense) At(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
func (m *IDense) Set(row, col, v int) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return denseErrorf("Set", row, col, ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Get is the unchecked accessor used by elimination kernels after shape
// validation. It panics on out-of-range indices like a slice would.
func (m *IDense) Get(row, col int) int { return m.data[row*m.c+col] }

// Put is the unchecked counterpart of Get.
func (m *IDense) Put(row, col, v int) { m.data[row*m.c+col] = v }

// Clone returns a deep copy.
func (m *IDense) Clone() *IDense {
	data := make([]int, len(m.data))
	copy(data, m.data)

	return &IDense{r: m.r, c: m.c, data: data}
}

// Mul returns m·n or ErrBadShape.
// Complexity: O(r·k·c).
func (m *IDense) Mul(n *IDense) (*IDense, error) {
	if m.c != n.r {
		return nil, fmt.Errorf("IDense.Mul: %dx%d · %dx%d: %w", m.r, m.c, n.r, n.c, ErrBadShape)
	}
	out := &IDense{r: m.r, c: n.c, data: make([]int, m.r*n.c)}
	var i, j, k int
	for i = 0; i < m.r; i++ {
		for k = 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue
			}
			for j = 0; j < n.c; j++ {
				out.data[i*n.c+j] += a * n.data[k*n.c+j]
			}
		}
	}

	return out, nil
}

// SwapRows exchanges rows i and j in place.
func (m *IDense) SwapRows(i, j int) {
	if i == j {
		return
	}
	for k := 0; k < m.c; k++ {
		m.data[i*m.c+k], m.data[j*m.c+k] = m.data[j*m.c+k], m.data[i*m.c+k]
	}
}

// SwapCols exchanges columns i and j in place.
func (m *IDense) SwapCols(i, j int) {
	if i == j {
		return
	}
	for k := 0; k < m.r; k++ {
		m.data[k*m.c+i], m.data[k*m.c+j] = m.data[k*m.c+j], m.data[k*m.c+i]
	}
}

// AddRow performs row[dst] += f·row[src].
func (m *IDense) AddRow(dst, src, f int) {
	for k := 0; k < m.c; k++ {
		m.data[dst*m.c+k] += f * m.data[src*m.c+k]
	}
}

// AddCol performs col[dst] += f·col[src].
func (m *IDense) AddCol(dst, src, f int) {
	for k := 0; k < m.r; k++ {
		m.data[k*m.c+dst] += f * m.data[k*m.c+src]
	}
}

// NegRow negates row i.
func (m *IDense) NegRow(i int) {
	for k := 0; k < m.c; k++ {
		m.data[i*m.c+k] = -m.data[i*m.c+k]
	}
}

// NegCol negates column j.
func (m *IDense) NegCol(j int) {
	for k := 0; k < m.r; k++ {
		m.data[k*m.c+j] = -m.data[k*m.c+j]
	}
}

// Col returns a copy of column j.
func (m *IDense) Col(j int) []int {
	out := make([]int, m.r)
	for k := 0; k < m.r; k++ {
		out[k] = m.data[k*m.c+j]
	}

	return out
}

// Row returns a copy of row i.
func (m *IDense) Row(i int) []int {
	out := make([]int, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out
}

// MaxAbs returns the largest absolute entry.
func (m *IDense) MaxAbs() int {
	var out int
	for _, v := range m.data {
		out = max(out, absInt(v))
	}

	return out
}

// ToIMat3 converts a 3×3 IDense into an IMat3.
func (m *IDense) ToIMat3() (IMat3, error) {
	if m.r != 3 || m.c != 3 {
		return IMat3{}, fmt.Errorf("IDense.ToIMat3: %dx%d: %w", m.r, m.c, ErrBadShape)
	}
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m.data[i*3+j]
		}
	}

	return out, nil
}

// Dense copies an IMat3 into a 3×3 IDense.
func (m IMat3) Dense() *IDense {
	d := &IDense{r: 3, c: 3, data: make([]int, 9)}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.data[i*3+j] = m[i][j]
		}
	}

	return d
}

// String implements fmt.Stringer for debugging.
func (m *IDense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

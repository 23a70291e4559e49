// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Mat3 is a real row-major 3×3 matrix.
type Mat3 [3][3]float64

// IMat3 is an integer row-major 3×3 matrix (rotation parts, unimodular
// changes of basis, supercell matrices).
type IMat3 [3][3]int

// singularFloor is the determinant magnitude below which Inverse gives up.
const singularFloor = 1e-12

// Identity returns the 3×3 real identity.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// IIdentity returns the 3×3 integer identity.
func IIdentity() IMat3 {
	return IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// FromColumns builds a matrix whose columns are a, b, c.
func FromColumns(a, b, c Vec3) Mat3 {
	return Mat3{
		{a[0], b[0], c[0]},
		{a[1], b[1], c[1]},
		{a[2], b[2], c[2]},
	}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Columns returns the three columns.
func (m Mat3) Columns() [3]Vec3 {
	return [3]Vec3{m.Col(0), m.Col(1), m.Col(2)}
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3(m[i])
}

// Mul returns m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	var i, j, k int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			for k = 0; k < 3; k++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}

	return out
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Add returns m + n.
func (m Mat3) Add(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}

	return out
}

// Sub returns m - n.
func (m Mat3) Sub(n Mat3) Mat3 {
	return m.Add(n.Scale(-1))
}

// Scale returns s·m.
func (m Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}

	return out
}

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}

	return out
}

// Det returns the determinant (cofactor expansion along row 0).
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Trace returns the sum of diagonal entries.
func (m Mat3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// adjugate returns the classical adjoint, so that m·adj(m) = det(m)·I.
func (m Mat3) adjugate() Mat3 {
	return Mat3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
}

// Inverse returns m⁻¹ or ErrSingular when |det(m)| is below the singular floor.
// Complexity: O(1).
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Det()
	if math.Abs(det) < singularFloor {
		return Mat3{}, fmt.Errorf("Inverse: det=%g: %w", det, ErrSingular)
	}

	return m.adjugate().Scale(1 / det), nil
}

// Round rounds each entry to the nearest integer.
func (m Mat3) Round() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = int(math.Round(m[i][j]))
		}
	}

	return out
}

// IsIntegral reports whether every entry is within eps of an integer.
func (m Mat3) IsIntegral(eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-math.Round(m[i][j])) > eps {
				return false
			}
		}
	}

	return true
}

// MaxAbs returns the largest absolute entry.
func (m Mat3) MaxAbs() float64 {
	var out float64
	for i := 0; i < 3; i++ {
		out = math.Max(out, Vec3(m[i]).MaxAbs())
	}

	return out
}

// AlmostEqual reports whether every entry differs by at most eps.
func (m Mat3) AlmostEqual(n Mat3, eps float64) bool {
	return m.Sub(n).MaxAbs() <= eps
}

// Metric returns the Gram matrix mᵀ·m of a column basis.
func (m Mat3) Metric() Mat3 {
	return m.Transpose().Mul(m)
}

// Col returns column j.
func (m IMat3) Col(j int) IVec3 {
	return IVec3{m[0][j], m[1][j], m[2][j]}
}

// IFromColumns builds an integer matrix whose columns are a, b, c.
func IFromColumns(a, b, c IVec3) IMat3 {
	return IMat3{
		{a[0], b[0], c[0]},
		{a[1], b[1], c[1]},
		{a[2], b[2], c[2]},
	}
}

// Mul returns m·n.
func (m IMat3) Mul(n IMat3) IMat3 {
	var out IMat3
	var i, j, k int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			for k = 0; k < 3; k++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}

	return out
}

// MulVec returns m·v.
func (m IMat3) MulVec(v IVec3) IVec3 {
	return IVec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MulFVec returns m·v for a real vector.
func (m IMat3) MulFVec(v Vec3) Vec3 {
	return m.ToFloat().MulVec(v)
}

// Add returns m + n.
func (m IMat3) Add(n IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}

	return out
}

// Sub returns m - n.
func (m IMat3) Sub(n IMat3) IMat3 {
	return m.Add(n.Neg())
}

// Neg returns -m.
func (m IMat3) Neg() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = -m[i][j]
		}
	}

	return out
}

// Transpose returns mᵀ.
func (m IMat3) Transpose() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}

	return out
}

// Det returns the exact determinant.
func (m IMat3) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Trace returns the sum of diagonal entries.
func (m IMat3) Trace() int {
	return m[0][0] + m[1][1] + m[2][2]
}

// Adjugate returns the integer classical adjoint: m·adj(m) = det(m)·I.
func (m IMat3) Adjugate() IMat3 {
	return IMat3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
}

// Inverse returns the integer inverse of a unimodular matrix (det = ±1),
// or ErrNotUnimodular.
func (m IMat3) Inverse() (IMat3, error) {
	switch m.Det() {
	case 1:
		return m.Adjugate(), nil
	case -1:
		return m.Adjugate().Neg(), nil
	}

	return IMat3{}, fmt.Errorf("Inverse: det=%d: %w", m.Det(), ErrNotUnimodular)
}

// FInverse returns the real inverse of an integer matrix.
func (m IMat3) FInverse() (Mat3, error) {
	return m.ToFloat().Inverse()
}

// ToFloat converts m to a real matrix.
func (m IMat3) ToFloat() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(m[i][j])
		}
	}

	return out
}

// IsIdentity reports whether m == I.
func (m IMat3) IsIdentity() bool {
	return m == IIdentity()
}

// MaxAbs returns the largest absolute entry.
func (m IMat3) MaxAbs() int {
	var out int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out = max(out, absInt(m[i][j]))
		}
	}

	return out
}

// Less orders integer matrices lexicographically in row-major order.
func (m IMat3) Less(n IMat3) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != n[i][j] {
				return m[i][j] < n[i][j]
			}
		}
	}

	return false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// SPDX-License-Identifier: MIT

package matrix

import "math"

// Vec3 is a real 3-vector (Cartesian or fractional coordinates).
type Vec3 [3]float64

// IVec3 is an integer 3-vector (lattice translation, Miller direction).
type IVec3 [3]int

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the Euclidean inner product.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// MaxAbs returns the infinity norm.
func (v Vec3) MaxAbs() float64 {
	return math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
}

// Round rounds each component to the nearest integer.
func (v Vec3) Round() IVec3 {
	return IVec3{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}

// Wrap maps each component into [0, 1).
// Values within roundoff below 1 are folded to 0 so that 0.9999999999 and
// 1e-12 land in the same representative.
func (v Vec3) Wrap() Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		x := v[i] - math.Floor(v[i])
		if x >= 1-wrapEps {
			x = 0
		}
		out[i] = x
	}

	return out
}

// WrapSigned maps each component into [-1/2, 1/2] by subtracting the nearest
// integer. Used for distances modulo lattice translations.
func (v Vec3) WrapSigned() Vec3 {
	return Vec3{
		v[0] - math.Round(v[0]),
		v[1] - math.Round(v[1]),
		v[2] - math.Round(v[2]),
	}
}

// AlmostEqual reports whether |v-w|∞ ≤ eps.
func (v Vec3) AlmostEqual(w Vec3, eps float64) bool {
	return v.Sub(w).MaxAbs() <= eps
}

// wrapEps is the fold-to-zero guard of Wrap.
const wrapEps = 1e-12

// Add returns v + w.
func (v IVec3) Add(w IVec3) IVec3 {
	return IVec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v IVec3) Sub(w IVec3) IVec3 {
	return IVec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Neg returns -v.
func (v IVec3) Neg() IVec3 {
	return IVec3{-v[0], -v[1], -v[2]}
}

// Dot returns the integer inner product.
func (v IVec3) Dot(w IVec3) int {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// IsZero reports whether all components are zero.
func (v IVec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// ToFloat converts v to a Vec3.
func (v IVec3) ToFloat() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

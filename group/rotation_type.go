// SPDX-License-Identifier: MIT

package group

import (
	"fmt"

	"github.com/katalvlaran/moyo/matrix"
)

// RotationType classifies a crystallographic rotation by (det, trace).
type RotationType int

// The ten crystallographic rotation types. The order matches the columns of
// the geometric-class lookup table: rotoinversions -6..-1, then rotations
// 1..6.
const (
	RotoInversion6 RotationType = iota // -6
	RotoInversion4                     // -4
	RotoInversion3                     // -3
	RotoInversion2                     // -2 = m
	RotoInversion1                     // -1
	Rotation1
	Rotation2
	Rotation3
	Rotation4
	Rotation6
)

var rotationTypeNames = [...]string{"-6", "-4", "-3", "m", "-1", "1", "2", "3", "4", "6"}

// String returns the Hermann–Mauguin symbol of the type.
func (r RotationType) String() string {
	if r < 0 || int(r) >= len(rotationTypeNames) {
		return fmt.Sprintf("RotationType(%d)", int(r))
	}

	return rotationTypeNames[r]
}

// Order returns n with Rⁿ = I.
func (r RotationType) Order() int {
	switch r {
	case Rotation1:
		return 1
	case Rotation2, RotoInversion1, RotoInversion2:
		return 2
	case Rotation3:
		return 3
	case Rotation4, RotoInversion4:
		return 4
	default: // Rotation6, RotoInversion3, RotoInversion6
		return 6
	}
}

// IsProper reports det = +1.
func (r RotationType) IsProper() bool {
	return r >= Rotation1
}

// RotationTypeOf classifies r; it fails with ErrUnknownRotation for
// non-crystallographic (det, trace) pairs.
func RotationTypeOf(r matrix.IMat3) (RotationType, error) {
	det, tr := r.Det(), r.Trace()
	switch det {
	case 1:
		switch tr {
		case 3:
			return Rotation1, nil
		case -1:
			return Rotation2, nil
		case 0:
			return Rotation3, nil
		case 1:
			return Rotation4, nil
		case 2:
			return Rotation6, nil
		}
	case -1:
		switch tr {
		case -3:
			return RotoInversion1, nil
		case 1:
			return RotoInversion2, nil
		case 0:
			return RotoInversion3, nil
		case -1:
			return RotoInversion4, nil
		case -2:
			return RotoInversion6, nil
		}
	}

	return 0, fmt.Errorf("RotationTypeOf: det=%d trace=%d: %w", det, tr, ErrUnknownRotation)
}

// RotationTypes classifies every rotation.
func RotationTypes(rotations []matrix.IMat3) ([]RotationType, error) {
	out := make([]RotationType, len(rotations))
	for i, r := range rotations {
		t, err := RotationTypeOf(r)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}

	return out, nil
}

// CountRotationTypes histograms the types, indexed by RotationType.
func CountRotationTypes(types []RotationType) [10]int {
	var out [10]int
	for _, t := range types {
		out[t]++
	}

	return out
}

// RotationAxis returns the primitive integer direction fixed by the proper
// part ±R (for rotation types other than 1 and -1), sign-normalized so the
// first non-zero component is positive.
func RotationAxis(r matrix.IMat3) (matrix.IVec3, bool) {
	proper := r
	if r.Det() < 0 {
		proper = r.Neg()
	}
	m := proper.Sub(matrix.IIdentity())
	// the axis is any non-zero row cross product of R - I
	var axis matrix.IVec3
	rows := [3]matrix.IVec3{{m[0][0], m[0][1], m[0][2]}, {m[1][0], m[1][1], m[1][2]}, {m[2][0], m[2][1], m[2][2]}}
	found := false
	for i := 0; i < 3 && !found; i++ {
		for j := i + 1; j < 3; j++ {
			c := cross(rows[i], rows[j])
			if !c.IsZero() {
				axis, found = c, true
				break
			}
		}
	}
	if !found {
		return matrix.IVec3{}, false
	}
	g := gcd(gcd(absInt(axis[0]), absInt(axis[1])), absInt(axis[2]))
	for i := range axis {
		axis[i] /= g
	}
	for _, v := range axis {
		if v != 0 {
			if v < 0 {
				axis = axis.Neg()
			}
			break
		}
	}

	return axis, true
}

func cross(a, b matrix.IVec3) matrix.IVec3 {
	return matrix.IVec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

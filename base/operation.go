// SPDX-License-Identifier: MIT

package base

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/matrix"
)

// Operation is an affine symmetry operation x ↦ R·x + t in fractional
// coordinates.
type Operation struct {
	Rotation    matrix.IMat3 `json:"rotation"`
	Translation matrix.Vec3  `json:"translation"`
}

// NewOperation pairs a rotation with a translation.
func NewOperation(rotation matrix.IMat3, translation matrix.Vec3) Operation {
	return Operation{Rotation: rotation, Translation: translation}
}

// IdentityOperation returns (I, 0).
func IdentityOperation() Operation {
	return Operation{Rotation: matrix.IIdentity()}
}

// Mul composes o∘other: (R1·R2, R1·t2 + t1).
func (o Operation) Mul(other Operation) Operation {
	return Operation{
		Rotation:    o.Rotation.Mul(other.Rotation),
		Translation: o.Rotation.MulFVec(other.Translation).Add(o.Translation),
	}
}

// Inverse returns (R⁻¹, -R⁻¹·t).
func (o Operation) Inverse() Operation {
	inv := rotationInverse(o.Rotation)

	return Operation{Rotation: inv, Translation: inv.MulFVec(o.Translation).Neg()}
}

// Apply maps a fractional position (no wrapping).
func (o Operation) Apply(pos matrix.Vec3) matrix.Vec3 {
	return o.Rotation.MulFVec(pos).Add(o.Translation)
}

// CartesianRotation returns B·R·B⁻¹ for the lattice basis B.
func (o Operation) CartesianRotation(lattice Lattice) matrix.Mat3 {
	inv, err := lattice.Basis.Inverse()
	if err != nil {
		panic(err)
	}

	return lattice.Basis.Mul(o.Rotation.ToFloat()).Mul(inv)
}

// EqualModLattice reports equal rotations and translations equal modulo
// lattice vectors, within eps per component.
func (o Operation) EqualModLattice(other Operation, eps float64) bool {
	return o.Rotation == other.Rotation &&
		o.Translation.Sub(other.Translation).WrapSigned().MaxAbs() < eps
}

// String renders the operation in xyz notation, e.g. "+x,+2x-y+0.25,+z-0.75".
func (o Operation) String() string {
	symbols := [3]string{"x", "y", "z"}
	rows := make([]string, 3)
	for i := 0; i < 3; i++ {
		var sb strings.Builder
		for j := 0; j < 3; j++ {
			c := o.Rotation[i][j]
			if c == 0 {
				continue
			}
			if c > 0 {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('-')
			}
			if c != 1 && c != -1 {
				sb.WriteString(strconv.Itoa(absInt(c)))
			}
			sb.WriteString(symbols[j])
		}
		if t := o.Translation[i]; t != 0 {
			if t > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		}
		rows[i] = sb.String()
	}

	return strings.Join(rows, ",")
}

// MagneticOperation is an Operation with a time-reversal flag.
type MagneticOperation struct {
	Operation
	TimeReversal bool `json:"time_reversal"`
}

// NewMagneticOperation builds a magnetic operation.
func NewMagneticOperation(rotation matrix.IMat3, translation matrix.Vec3, timeReversal bool) MagneticOperation {
	return MagneticOperation{Operation: NewOperation(rotation, translation), TimeReversal: timeReversal}
}

// IdentityMagneticOperation returns (I, 0) without time reversal.
func IdentityMagneticOperation() MagneticOperation {
	return MagneticOperation{Operation: IdentityOperation()}
}

// Mul composes two magnetic operations; time reversals combine by XOR.
func (m MagneticOperation) Mul(other MagneticOperation) MagneticOperation {
	return MagneticOperation{
		Operation:    m.Operation.Mul(other.Operation),
		TimeReversal: m.TimeReversal != other.TimeReversal,
	}
}

// Inverse keeps the time-reversal flag.
func (m MagneticOperation) Inverse() MagneticOperation {
	return MagneticOperation{Operation: m.Operation.Inverse(), TimeReversal: m.TimeReversal}
}

// String appends a prime for time reversal.
func (m MagneticOperation) String() string {
	if m.TimeReversal {
		return m.Operation.String() + "'"
	}

	return m.Operation.String()
}

// Operations is an ordered operation set.
type Operations []Operation

// MagneticOperations is an ordered magnetic operation set.
type MagneticOperations []MagneticOperation

// Rotations returns the rotation parts in order (duplicates kept).
func (ops Operations) Rotations() []matrix.IMat3 {
	return lo.Map(ops, func(o Operation, _ int) matrix.IMat3 { return o.Rotation })
}

// Translations returns the translation parts in order.
func (ops Operations) Translations() []matrix.Vec3 {
	return lo.Map(ops, func(o Operation, _ int) matrix.Vec3 { return o.Translation })
}

// Operations drops the time-reversal flags.
func (mops MagneticOperations) Operations() Operations {
	return lo.Map(mops, func(m MagneticOperation, _ int) Operation { return m.Operation })
}

// TimeReversals returns the flags in order.
func (mops MagneticOperations) TimeReversals() []bool {
	return lo.Map(mops, func(m MagneticOperation, _ int) bool { return m.TimeReversal })
}

// ProjectRotations returns the distinct rotation parts, first occurrence
// order.
func ProjectRotations(ops Operations) []matrix.IMat3 {
	return lo.Uniq(ops.Rotations())
}

// rotationInverse inverts a det ±1 integer matrix exactly.
func rotationInverse(r matrix.IMat3) matrix.IMat3 {
	adj := r.Adjugate()
	if r.Det() < 0 {
		return adj.Neg()
	}

	return adj
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

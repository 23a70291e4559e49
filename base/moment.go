// SPDX-License-Identifier: MIT

package base

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/matrix"
)

// RotationMomentAction selects how a rotation acts on a magnetic moment.
type RotationMomentAction int

const (
	// Polar moments transform like vectors: m ↦ R·m.
	Polar RotationMomentAction = iota
	// Axial moments transform like pseudovectors: m ↦ det(R)·R·m.
	Axial
)

// String returns "polar" or "axial".
func (a RotationMomentAction) String() string {
	if a == Axial {
		return "axial"
	}

	return "polar"
}

// Moment is a per-site magnetic moment.
// The type parameter M is the concrete moment type so that results stay typed.
type Moment[M any] interface {
	// ActRotation applies a Cartesian rotation under the given action.
	ActRotation(cartesian matrix.Mat3, action RotationMomentAction) M
	// ActTimeReversal negates the moment when tr is set.
	ActTimeReversal(tr bool) M
	// IsClose compares two moments within magSymprec.
	IsClose(other M, magSymprec float64) bool
	// Average returns the mean of the given moments (receiver unused).
	Average(ms []M) M
}

// Collinear is a scalar moment along a fixed spin axis.
type Collinear float64

// ActRotation leaves a polar collinear moment unchanged; an axial one picks
// up det(R).
func (m Collinear) ActRotation(cartesian matrix.Mat3, action RotationMomentAction) Collinear {
	if action == Axial {
		return Collinear(math.Round(cartesian.Det()) * float64(m))
	}

	return m
}

// ActTimeReversal negates when tr is set.
func (m Collinear) ActTimeReversal(tr bool) Collinear {
	if tr {
		return -m
	}

	return m
}

// IsClose reports |m - o| < magSymprec.
func (m Collinear) IsClose(o Collinear, magSymprec float64) bool {
	return math.Abs(float64(m-o)) < magSymprec
}

// Average returns the arithmetic mean.
func (Collinear) Average(ms []Collinear) Collinear {
	var sum Collinear
	for _, x := range ms {
		sum += x
	}

	return sum / Collinear(len(ms))
}

// NonCollinear is a Cartesian 3-vector moment.
type NonCollinear matrix.Vec3

// ActRotation applies R (polar) or det(R)·R (axial).
func (m NonCollinear) ActRotation(cartesian matrix.Mat3, action RotationMomentAction) NonCollinear {
	v := cartesian.MulVec(matrix.Vec3(m))
	if action == Axial {
		v = v.Scale(math.Round(cartesian.Det()))
	}

	return NonCollinear(v)
}

// ActTimeReversal negates when tr is set.
func (m NonCollinear) ActTimeReversal(tr bool) NonCollinear {
	if tr {
		return NonCollinear(matrix.Vec3(m).Neg())
	}

	return m
}

// IsClose reports ‖m - o‖ < magSymprec.
func (m NonCollinear) IsClose(o NonCollinear, magSymprec float64) bool {
	return matrix.Vec3(m).Sub(matrix.Vec3(o)).Norm() < magSymprec
}

// Average returns the component-wise mean.
func (NonCollinear) Average(ms []NonCollinear) NonCollinear {
	var sum matrix.Vec3
	for _, x := range ms {
		sum = sum.Add(matrix.Vec3(x))
	}

	return NonCollinear(sum.Scale(1 / float64(len(ms))))
}

// ActMagneticOperation rotates then applies time reversal.
func ActMagneticOperation[M Moment[M]](m M, cartesian matrix.Mat3, tr bool, action RotationMomentAction) M {
	return m.ActRotation(cartesian, action).ActTimeReversal(tr)
}

// MagneticCell is a Cell with one magnetic moment per site.
type MagneticCell[M Moment[M]] struct {
	Cell    Cell `json:"cell"`
	Moments []M  `json:"magnetic_moments"`
}

// NewMagneticCell validates that there is one moment per site.
func NewMagneticCell[M Moment[M]](cell Cell, moments []M) (MagneticCell[M], error) {
	if len(moments) != cell.NumAtoms() {
		return MagneticCell[M]{}, fmt.Errorf("NewMagneticCell: %d moments for %d sites: %w", len(moments), cell.NumAtoms(), ErrInput)
	}

	return MagneticCell[M]{Cell: cell, Moments: append([]M(nil), moments...)}, nil
}

// NumAtoms returns the number of sites.
func (mc MagneticCell[M]) NumAtoms() int {
	return mc.Cell.NumAtoms()
}

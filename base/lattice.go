// SPDX-License-Identifier: MIT

package base

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/reduce"
)

// Lattice is a 3D lattice; Basis holds the basis vectors as columns.
type Lattice struct {
	Basis matrix.Mat3
}

// NewLattice validates basis (columns are the lattice vectors).
func NewLattice(basis matrix.Mat3) (Lattice, error) {
	if d := basis.Det(); math.IsNaN(d) || math.Abs(d) < DegenerateVolume {
		return Lattice{}, fmt.Errorf("NewLattice: det=%g: %w", d, ErrDegenerateLattice)
	}

	return Lattice{Basis: basis}, nil
}

// NewLatticeFromRows builds a lattice whose ROWS are the basis vectors,
// the layout most structure files use.
func NewLatticeFromRows(rows matrix.Mat3) (Lattice, error) {
	return NewLattice(rows.Transpose())
}

// Vectors returns the three basis vectors.
func (l Lattice) Vectors() [3]matrix.Vec3 {
	return l.Basis.Columns()
}

// Volume returns |det(basis)|.
func (l Lattice) Volume() float64 {
	return math.Abs(l.Basis.Det())
}

// IsRightHanded reports det(basis) > 0.
func (l Lattice) IsRightHanded() bool {
	return l.Basis.Det() > 0
}

// Metric returns the Gram matrix BᵀB.
func (l Lattice) Metric() matrix.Mat3 {
	return l.Basis.Metric()
}

// Cartesian maps fractional coordinates to Cartesian ones.
func (l Lattice) Cartesian(frac matrix.Vec3) matrix.Vec3 {
	return l.Basis.MulVec(frac)
}

// Fractional maps Cartesian coordinates to fractional ones.
func (l Lattice) Fractional(cart matrix.Vec3) matrix.Vec3 {
	inv, err := l.Basis.Inverse()
	if err != nil {
		// a Lattice is never singular after NewLattice
		panic(err)
	}

	return inv.MulVec(cart)
}

// MinNorm returns the length of the shortest basis vector.
func (l Lattice) MinNorm() float64 {
	v := l.Vectors()

	return math.Min(v[0].Norm(), math.Min(v[1].Norm(), v[2].Norm()))
}

// Transform returns the lattice with basis B·P.
func (l Lattice) Transform(p matrix.Mat3) Lattice {
	return Lattice{Basis: l.Basis.Mul(p)}
}

// Rotate returns the lattice rigidly rotated by r (Cartesian): basis r·B.
func (l Lattice) Rotate(r matrix.Mat3) Lattice {
	return Lattice{Basis: r.Mul(l.Basis)}
}

// NiggliReduce returns the Niggli-reduced lattice and T with new = old·T.
// Fails with reduce.ErrReduction when the result is not Niggli reduced.
func (l Lattice) NiggliReduce() (Lattice, matrix.IMat3, error) {
	basis, t, err := reduce.Niggli(l.Basis)
	if err != nil {
		return Lattice{}, matrix.IMat3{}, err
	}
	if !reduce.IsNiggliReduced(basis, reduce.DefaultEpsilon) {
		return Lattice{}, matrix.IMat3{}, fmt.Errorf("NiggliReduce: %w", reduce.ErrReduction)
	}

	return Lattice{Basis: basis}, t, nil
}

// MinkowskiReduce returns the Minkowski-reduced lattice and T.
func (l Lattice) MinkowskiReduce() (Lattice, matrix.IMat3, error) {
	basis, t, err := reduce.Minkowski(l.Basis)
	if err != nil {
		return Lattice{}, matrix.IMat3{}, err
	}
	if !reduce.IsMinkowskiReduced(basis, reduce.DefaultEpsilon) {
		return Lattice{}, matrix.IMat3{}, fmt.Errorf("MinkowskiReduce: %w", reduce.ErrReduction)
	}

	return Lattice{Basis: basis}, t, nil
}

// DelaunayReduce returns the Delaunay-reduced lattice and T.
func (l Lattice) DelaunayReduce() (Lattice, matrix.IMat3, error) {
	basis, t, err := reduce.Delaunay(l.Basis)
	if err != nil {
		return Lattice{}, matrix.IMat3{}, err
	}

	return Lattice{Basis: basis}, t, nil
}

type latticeJSON struct {
	Basis [3]matrix.Vec3 `json:"basis"`
}

// MarshalJSON writes the basis as a list of three vectors.
func (l Lattice) MarshalJSON() ([]byte, error) {
	return json.Marshal(latticeJSON{Basis: l.Vectors()})
}

// UnmarshalJSON reads the layout written by MarshalJSON.
func (l *Lattice) UnmarshalJSON(data []byte) error {
	var raw latticeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Basis = matrix.FromColumns(raw.Basis[0], raw.Basis[1], raw.Basis[2])

	return nil
}

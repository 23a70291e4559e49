// SPDX-License-Identifier: MIT

package base

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// UnimodularTransformation is a change of basis and origin (P, p) with
// det(P) = 1: new basis = old basis·P and x' = P⁻¹(x - p).
type UnimodularTransformation struct {
	Linear      matrix.IMat3
	OriginShift matrix.Vec3
	linearInv   matrix.IMat3
}

// NewUnimodularTransformation fails with ErrNotUnimodular unless det = 1.
func NewUnimodularTransformation(linear matrix.IMat3, originShift matrix.Vec3) (UnimodularTransformation, error) {
	if d := linear.Det(); d != 1 {
		return UnimodularTransformation{}, fmt.Errorf("NewUnimodularTransformation: det=%d: %w", d, ErrNotUnimodular)
	}

	return UnimodularTransformation{Linear: linear, OriginShift: originShift, linearInv: linear.Adjugate()}, nil
}

// MustUnimodular is NewUnimodularTransformation for matrices known to be
// unimodular; it panics otherwise.
func MustUnimodular(linear matrix.IMat3, originShift matrix.Vec3) UnimodularTransformation {
	t, err := NewUnimodularTransformation(linear, originShift)
	if err != nil {
		panic(err)
	}

	return t
}

// IdentityUnimodular returns (I, 0).
func IdentityUnimodular() UnimodularTransformation {
	return MustUnimodular(matrix.IIdentity(), matrix.Vec3{})
}

// LinearInverse returns P⁻¹.
func (u UnimodularTransformation) LinearInverse() matrix.IMat3 {
	return u.linearInv
}

// Inverse returns (P⁻¹, -P⁻¹p).
func (u UnimodularTransformation) Inverse() UnimodularTransformation {
	return UnimodularTransformation{
		Linear:      u.linearInv,
		OriginShift: u.linearInv.MulFVec(u.OriginShift).Neg(),
		linearInv:   u.Linear,
	}
}

// Compose returns the transformation applying u first and next second:
// (P1·P2, p1 + P1·p2).
func (u UnimodularTransformation) Compose(next UnimodularTransformation) UnimodularTransformation {
	return UnimodularTransformation{
		Linear:      u.Linear.Mul(next.Linear),
		OriginShift: u.OriginShift.Add(u.Linear.MulFVec(next.OriginShift)),
		linearInv:   next.linearInv.Mul(u.linearInv),
	}
}

// Transformation widens u to a general Transformation.
func (u UnimodularTransformation) Transformation() Transformation {
	return Transformation{Linear: u.Linear, OriginShift: u.OriginShift, Size: 1, linearInv: u.linearInv.ToFloat()}
}

// TransformLattice returns the lattice with basis B·P.
func (u UnimodularTransformation) TransformLattice(l Lattice) Lattice {
	return l.Transform(u.Linear.ToFloat())
}

// TransformOperation conjugates (W, w) ↦ (P⁻¹WP, P⁻¹(w + Wp - p)).
func (u UnimodularTransformation) TransformOperation(op Operation) Operation {
	return Operation{
		Rotation:    u.linearInv.Mul(op.Rotation).Mul(u.Linear),
		Translation: u.linearInv.MulFVec(op.Rotation.MulFVec(u.OriginShift).Add(op.Translation).Sub(u.OriginShift)),
	}
}

// TransformOperations conjugates every operation.
func (u UnimodularTransformation) TransformOperations(in Operations) Operations {
	return lo.Map(in, func(op Operation, _ int) Operation { return u.TransformOperation(op) })
}

// TransformMagneticOperations conjugates the spatial parts; flags are kept.
func (u UnimodularTransformation) TransformMagneticOperations(in MagneticOperations) MagneticOperations {
	return lo.Map(in, func(m MagneticOperation, _ int) MagneticOperation {
		return MagneticOperation{Operation: u.TransformOperation(m.Operation), TimeReversal: m.TimeReversal}
	})
}

// TransformCell moves the cell into the new basis; the site order is kept.
func (u UnimodularTransformation) TransformCell(c Cell) Cell {
	pos := lo.Map(c.Positions, func(x matrix.Vec3, _ int) matrix.Vec3 {
		return u.linearInv.MulFVec(x.Sub(u.OriginShift))
	})

	return newCellUnchecked(u.TransformLattice(c.Lattice), pos, c.Numbers)
}

// Transformation is a change of basis and origin (P, p) with det(P) > 0.
// Size = det(P) is the number of old cells per new cell.
type Transformation struct {
	Linear      matrix.IMat3
	OriginShift matrix.Vec3
	Size        int
	linearInv   matrix.Mat3
}

// NewTransformation fails with ErrNonPositiveTransformation when det(P) ≤ 0.
func NewTransformation(linear matrix.IMat3, originShift matrix.Vec3) (Transformation, error) {
	d := linear.Det()
	if d <= 0 {
		return Transformation{}, fmt.Errorf("NewTransformation: det=%d: %w", d, ErrNonPositiveTransformation)
	}
	inv, err := linear.FInverse()
	if err != nil {
		return Transformation{}, fmt.Errorf("NewTransformation: %w", err)
	}

	return Transformation{Linear: linear, OriginShift: originShift, Size: d, linearInv: inv}, nil
}

// MustTransformation panics when NewTransformation fails.
func MustTransformation(linear matrix.IMat3, originShift matrix.Vec3) Transformation {
	t, err := NewTransformation(linear, originShift)
	if err != nil {
		panic(err)
	}

	return t
}

// TransformationFromLinear is a pure change of basis.
func TransformationFromLinear(linear matrix.IMat3) (Transformation, error) {
	return NewTransformation(linear, matrix.Vec3{})
}

// LinearInverse returns P⁻¹ (rational in general).
func (t Transformation) LinearInverse() matrix.Mat3 {
	return t.linearInv
}

// Compose returns the transformation applying t first and next second.
func (t Transformation) Compose(next Transformation) Transformation {
	return Transformation{
		Linear:      t.Linear.Mul(next.Linear),
		OriginShift: t.OriginShift.Add(t.Linear.MulFVec(next.OriginShift)),
		Size:        t.Size * next.Size,
		linearInv:   next.linearInv.Mul(t.linearInv),
	}
}

// TransformLattice returns the lattice with basis B·P.
func (t Transformation) TransformLattice(l Lattice) Lattice {
	return l.Transform(t.Linear.ToFloat())
}

// InverseTransformLattice returns the lattice with basis B·P⁻¹.
func (t Transformation) InverseTransformLattice(l Lattice) Lattice {
	return l.Transform(t.linearInv)
}

// TransformOperations conjugates (W, w) by (P, p). Operations whose rotation
// is not integral in the new basis are dropped, so the result may be smaller
// than the input.
func (t Transformation) TransformOperations(in Operations) Operations {
	return conjugateOperations(in, t.Linear.ToFloat(), t.linearInv, t.OriginShift)
}

// InverseTransformOperations conjugates by (P, p)⁻¹, dropping operations
// that become non-integral.
func (t Transformation) InverseTransformOperations(in Operations) Operations {
	return conjugateOperations(in, t.linearInv, t.Linear.ToFloat(), t.Linear.MulFVec(t.OriginShift).Neg())
}

// TransformMagneticOperations is TransformOperations keeping flags.
func (t Transformation) TransformMagneticOperations(in MagneticOperations) MagneticOperations {
	return conjugateMagneticOperations(in, t.Linear.ToFloat(), t.linearInv, t.OriginShift)
}

// InverseTransformMagneticOperations is InverseTransformOperations keeping
// flags.
func (t Transformation) InverseTransformMagneticOperations(in MagneticOperations) MagneticOperations {
	return conjugateMagneticOperations(in, t.linearInv, t.Linear.ToFloat(), t.Linear.MulFVec(t.OriginShift).Neg())
}

// TransformCell builds the cell in the new basis. With Size > 1 every site
// is replicated over the Size lattice points of the new cell. The second
// result maps each new site to its source site.
//
// With the Smith form D = L·P·R, two integer translations n, n' are
// equivalent in the new lattice iff L·n ≡ L·n' (mod D), so the distinct
// points are L⁻¹·f for 0 ≤ f_i < D_ii.
func (t Transformation) TransformCell(c Cell) (Cell, []int, error) {
	points, err := t.latticePoints()
	if err != nil {
		return Cell{}, nil, err
	}
	n := c.NumAtoms() * len(points)
	var (
		positions = make([]matrix.Vec3, 0, n)
		numbers   = make([]int, 0, n)
		mapping   = make([]int, 0, n)
	)
	for i, pos := range c.Positions {
		for _, lp := range points {
			positions = append(positions, t.linearInv.MulVec(pos.Sub(t.OriginShift).Add(lp)))
			numbers = append(numbers, c.Numbers[i])
			mapping = append(mapping, i)
		}
	}

	return newCellUnchecked(t.TransformLattice(c.Lattice), positions, numbers), mapping, nil
}

// latticePoints enumerates coset representatives of Z³ / P·Z³.
func (t Transformation) latticePoints() ([]matrix.Vec3, error) {
	snf, err := ops.NewSNF(t.Linear.Dense())
	if err != nil {
		return nil, fmt.Errorf("TransformCell: %w", err)
	}
	l, err := snf.L.ToIMat3()
	if err != nil {
		return nil, err
	}
	linv, err := l.Inverse()
	if err != nil {
		return nil, fmt.Errorf("TransformCell: %w", err)
	}
	var out []matrix.Vec3
	for f0 := 0; f0 < snf.Diag(0); f0++ {
		for f1 := 0; f1 < snf.Diag(1); f1++ {
			for f2 := 0; f2 < snf.Diag(2); f2++ {
				out = append(out, linv.MulVec(matrix.IVec3{f0, f1, f2}).ToFloat())
			}
		}
	}

	return out, nil
}

// TransformMagneticCell replicates sites and moments alike.
func TransformMagneticCell[M Moment[M]](t Transformation, mc MagneticCell[M]) (MagneticCell[M], []int, error) {
	cell, mapping, err := t.TransformCell(mc.Cell)
	if err != nil {
		return MagneticCell[M]{}, nil, err
	}
	moments := lo.Map(mapping, func(i int, _ int) M { return mc.Moments[i] })

	return MagneticCell[M]{Cell: cell, Moments: moments}, mapping, nil
}

func conjugateOperations(in Operations, linear, linearInv matrix.Mat3, shift matrix.Vec3) Operations {
	out := make(Operations, 0, len(in))
	for _, op := range in {
		if c, ok := conjugate(op, linear, linearInv, shift); ok {
			out = append(out, c)
		}
	}

	return out
}

func conjugateMagneticOperations(in MagneticOperations, linear, linearInv matrix.Mat3, shift matrix.Vec3) MagneticOperations {
	out := make(MagneticOperations, 0, len(in))
	for _, m := range in {
		if c, ok := conjugate(m.Operation, linear, linearInv, shift); ok {
			out = append(out, MagneticOperation{Operation: c, TimeReversal: m.TimeReversal})
		}
	}

	return out
}

// conjugate returns (P⁻¹WP, P⁻¹(Wp + w - p)); ok is false when P⁻¹WP is not
// an integer matrix.
func conjugate(op Operation, linear, linearInv matrix.Mat3, shift matrix.Vec3) (Operation, bool) {
	w := op.Rotation.ToFloat()
	rot := linearInv.Mul(w).Mul(linear).Round()
	if linear.Mul(rot.ToFloat()).Mul(linearInv).Round() != op.Rotation {
		return Operation{}, false
	}
	tr := linearInv.MulVec(w.MulVec(shift).Add(op.Translation).Sub(shift))

	return Operation{Rotation: rot, Translation: tr}, true
}

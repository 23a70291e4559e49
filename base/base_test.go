package base_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

func cubic(t *testing.T, a float64) base.Lattice {
	t.Helper()
	l, err := base.NewLattice(matrix.Identity().Scale(a))
	require.NoError(t, err)

	return l
}

func TestNewLattice_Degenerate(t *testing.T) {
	_, err := base.NewLattice(matrix.FromColumns(
		matrix.Vec3{1, 0, 0}, matrix.Vec3{2, 0, 0}, matrix.Vec3{0, 0, 1},
	))
	require.ErrorIs(t, err, base.ErrDegenerateLattice)
}

func TestNewCell_Validation(t *testing.T) {
	l := cubic(t, 1)
	cases := []struct {
		name      string
		positions []matrix.Vec3
		numbers   []int
	}{
		{"empty", nil, nil},
		{"mismatch", []matrix.Vec3{{0, 0, 0}}, []int{1, 2}},
		{"nan", []matrix.Vec3{{math.NaN(), 0, 0}}, []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := base.NewCell(l, tc.positions, tc.numbers)
			require.ErrorIs(t, err, base.ErrInput)
		})
	}

	cell, err := base.NewCell(l, []matrix.Vec3{{1.25, -0.25, 0.5}}, []int{3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.75, 0.5}, cell.Positions[0][:], 1e-12)
}

func TestOperation_MulInverse(t *testing.T) {
	op := base.NewOperation(matrix.IMat3{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, matrix.Vec3{0, 0, 1.0 / 3})
	id := op.Mul(op.Inverse())
	assert.True(t, id.EqualModLattice(base.IdentityOperation(), 1e-12))

	cube := op.Mul(op).Mul(op)
	assert.Equal(t, matrix.IIdentity(), cube.Rotation)
	assert.InDelta(t, 1.0, cube.Translation[2], 1e-12)
	assert.True(t, cube.EqualModLattice(base.IdentityOperation(), 1e-12))
}

func TestOperation_String(t *testing.T) {
	op := base.NewOperation(matrix.IMat3{{1, 0, 0}, {2, -1, 0}, {0, 0, 1}}, matrix.Vec3{0, 0.25, -0.75})
	assert.Equal(t, "+x,+2x-y+0.25,+z-0.75", op.String())

	mop := base.NewMagneticOperation(matrix.IMat3{{1, 0, 0}, {1, -1, 0}, {0, 0, 1}}, matrix.Vec3{0, 0.25, -0.75}, true)
	assert.Equal(t, "+x,+x-y+0.25,+z-0.75'", mop.String())
}

func TestOperation_CartesianRotation(t *testing.T) {
	l, err := base.NewLatticeFromRows(matrix.Mat3{
		{1, 0, 0},
		{-0.5, math.Sqrt(3) / 2, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	op := base.NewOperation(matrix.IMat3{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, matrix.Vec3{})
	want := matrix.Mat3{
		{-0.5, -math.Sqrt(3) / 2, 0},
		{math.Sqrt(3) / 2, -0.5, 0},
		{0, 0, 1},
	}
	assert.True(t, op.CartesianRotation(l).AlmostEqual(want, 1e-12))
}

func TestProjectRotations_Unique(t *testing.T) {
	ops := base.Operations{
		base.IdentityOperation(),
		base.NewOperation(matrix.IIdentity(), matrix.Vec3{0.5, 0.5, 0.5}),
		base.NewOperation(matrix.IIdentity().Neg(), matrix.Vec3{}),
	}
	assert.Len(t, base.ProjectRotations(ops), 2)
}

func TestMagneticOperation_TimeReversalXor(t *testing.T) {
	a := base.NewMagneticOperation(matrix.IIdentity(), matrix.Vec3{}, true)
	assert.False(t, a.Mul(a).TimeReversal)
	assert.True(t, a.Mul(base.IdentityMagneticOperation()).TimeReversal)
}

func TestPermutation(t *testing.T) {
	p := base.NewPermutation([]int{1, 2, 0})
	assert.Equal(t, 1, p.Apply(0))
	assert.Equal(t, []int{2, 0, 1}, p.Inverse().Mapping)
	assert.True(t, p.Mul(p.Inverse()).Equal(base.IdentityPermutation(3)))
}

func TestOrbitsFromPermutations(t *testing.T) {
	perms := []base.Permutation{
		base.NewPermutation([]int{0, 3, 2, 1, 4}),
		base.NewPermutation([]int{2, 1, 0, 3, 4}),
	}
	assert.Equal(t, []int{0, 1, 0, 1, 4}, base.OrbitsFromPermutations(5, perms))
	assert.Equal(t, []int{0, 1, 0, 1}, base.OrbitsFromMapping([]int{7, 3, 7, 3}))
}

func TestUnimodularTransformation(t *testing.T) {
	_, err := base.NewUnimodularTransformation(matrix.IMat3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, matrix.Vec3{})
	require.ErrorIs(t, err, base.ErrNotUnimodular)

	u := base.MustUnimodular(matrix.IMat3{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}, matrix.Vec3{0.1, 0, 0})
	back := u.Compose(u.Inverse())
	assert.True(t, back.Linear.IsIdentity())
	assert.InDeltaSlice(t, []float64{0, 0, 0}, back.OriginShift[:], 1e-12)

	l := cubic(t, 2)
	cell, err := base.NewCell(l, []matrix.Vec3{{0.3, 0.2, 0.1}}, []int{1})
	require.NoError(t, err)
	moved := u.TransformCell(cell)
	// Cartesian position is preserved up to the origin shift.
	before := cell.Lattice.Cartesian(cell.Positions[0].Sub(u.OriginShift))
	after := moved.Lattice.Cartesian(moved.Positions[0])
	diff := moved.Lattice.Fractional(after.Sub(before))
	assert.InDelta(t, 0, diff.WrapSigned().MaxAbs(), 1e-12)
}

func TestTransformation_Supercell(t *testing.T) {
	_, err := base.NewTransformation(matrix.IIdentity().Neg(), matrix.Vec3{})
	require.ErrorIs(t, err, base.ErrNonPositiveTransformation)

	l := cubic(t, 1)
	cell, err := base.NewCell(l, []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 2})
	require.NoError(t, err)

	tr := base.MustTransformation(matrix.IMat3{{1, 1, 0}, {-1, 1, 0}, {0, 0, 2}}, matrix.Vec3{})
	assert.Equal(t, 4, tr.Size)
	super, mapping, err := tr.TransformCell(cell)
	require.NoError(t, err)
	assert.Equal(t, 8, super.NumAtoms())
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, mapping)
	assert.InDelta(t, 4.0, super.Lattice.Volume(), 1e-12)

	// every replicated site is distinct
	for i := 0; i < super.NumAtoms(); i++ {
		for j := i + 1; j < super.NumAtoms(); j++ {
			d := super.Positions[i].Sub(super.Positions[j]).WrapSigned().MaxAbs()
			assert.Greater(t, d, 1e-6, "sites %d and %d coincide", i, j)
		}
	}
}

func TestTransformation_DropsIncompatibleOperations(t *testing.T) {
	tr := base.MustTransformation(matrix.IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 2}}, matrix.Vec3{})
	threefold := base.Operations{base.NewOperation(matrix.IMat3{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, matrix.Vec3{})}
	assert.Empty(t, tr.TransformOperations(threefold))

	fourfold := base.Operations{base.NewOperation(matrix.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, matrix.Vec3{0, 0, 0.5})}
	got := tr.TransformOperations(fourfold)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.25, got[0].Translation[2], 1e-12)
	back := tr.InverseTransformOperations(got)
	require.Len(t, back, 1)
	assert.True(t, back[0].EqualModLattice(fourfold[0], 1e-12))
}

func TestMoments(t *testing.T) {
	c4 := matrix.Mat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	inv := matrix.Identity().Scale(-1)

	m := base.NonCollinear{1, 0, 0}
	assert.Equal(t, base.NonCollinear{0, 1, 0}, m.ActRotation(c4, base.Polar))
	assert.Equal(t, base.NonCollinear{1, 0, 0}, m.ActRotation(inv, base.Axial))
	assert.Equal(t, base.NonCollinear{-1, 0, 0}, m.ActRotation(inv, base.Polar))
	assert.Equal(t, base.NonCollinear{-1, 0, 0}, base.ActMagneticOperation(m, matrix.Identity(), true, base.Axial))

	c := base.Collinear(2)
	assert.Equal(t, base.Collinear(2), c.ActRotation(inv, base.Polar))
	assert.Equal(t, base.Collinear(-2), c.ActRotation(inv, base.Axial))
	assert.True(t, c.IsClose(2.05, 0.1))
	assert.Equal(t, base.Collinear(1), c.Average([]base.Collinear{0, 2}))
}

func TestAngleTolerance_JSON(t *testing.T) {
	for _, at := range []base.AngleTolerance{base.DefaultAngle(), base.Radian(0.1)} {
		raw, err := json.Marshal(at)
		require.NoError(t, err)
		var back base.AngleTolerance
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, at, back)
	}
}

func TestCell_JSONRoundTrip(t *testing.T) {
	l, err := base.NewLatticeFromRows(matrix.Mat3{{3.17, 0, 0}, {-1.585, 2.745, 0}, {0, 0, 5.14}})
	require.NoError(t, err)
	cell, err := base.NewCell(l, []matrix.Vec3{{1.0 / 3, 2.0 / 3, 0.25}}, []int{30})
	require.NoError(t, err)

	raw, err := json.Marshal(cell)
	require.NoError(t, err)
	var back base.Cell
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cell, back)
}

package symmetrize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/search"
	"github.com/katalvlaran/moyo/symmetrize"
)

func TestNewStandardizedMagneticCell(t *testing.T) {
	// bcc antiferromagnet with slightly unequal moments
	cell := newCell(t, matrix.Identity().Scale(2.87), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{26, 26})
	mc, err := base.NewMagneticCell(cell, []base.Collinear{1.01, -0.99})
	require.NoError(t, err)
	const magSymprec = 0.05

	prim, err := search.NewPrimitiveMagneticCell(mc, symprec, magSymprec)
	require.NoError(t, err)
	ms, err := search.NewMagneticSymmetrySearch(prim.MagneticCell, symprec, base.DefaultAngle(), magSymprec, base.Polar)
	require.NoError(t, err)
	eps := symprec / math.Cbrt(prim.MagneticCell.Cell.Lattice.Volume())
	msg, err := identify.NewMagneticSpaceGroup(ms.MagneticOperations, eps)
	require.NoError(t, err)
	assert.Equal(t, data.Type4, msg.ConstructType)

	std, err := symmetrize.NewStandardizedMagneticCell(prim.MagneticCell, ms.MagneticOperations, ms.Permutations, msg, symprec, base.Polar)
	require.NoError(t, err)
	assert.Equal(t, msg.UNINumber, std.UNINumber)
	assert.Equal(t, 2, std.PrimMagCell.NumAtoms())
	assert.Equal(t, std.Cell.NumAtoms(), std.MagCell.NumAtoms())

	moments := std.PrimMagCell.Moments
	assert.InDelta(t, 1, math.Abs(float64(moments[0])), 1e-12)
	assert.InDelta(t, 0, float64(moments[0]+moments[1]), 1e-12)
}

func TestSymmetrizeMoments(t *testing.T) {
	cell := newCell(t, matrix.Identity(), []matrix.Vec3{{0, 0, 0}}, []int{1})
	mc, err := base.NewMagneticCell(cell, []base.NonCollinear{{0.01, 0, 1}})
	require.NoError(t, err)

	// 4-fold rotation about z
	four := base.NewMagneticOperation(matrix.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, matrix.Vec3{}, false)
	var mops base.MagneticOperations
	op := base.IdentityMagneticOperation()
	for i := 0; i < 4; i++ {
		mops = append(mops, op)
		op = base.MagneticOperation{Operation: four.Operation.Mul(op.Operation)}
	}
	perms := []base.Permutation{
		base.IdentityPermutation(1), base.IdentityPermutation(1),
		base.IdentityPermutation(1), base.IdentityPermutation(1),
	}

	got, err := symmetrize.SymmetrizeMoments(mc, mops, perms, base.Axial)
	require.NoError(t, err)
	assert.True(t, matrix.Vec3(got[0]).AlmostEqual(matrix.Vec3{0, 0, 1}, 1e-12), "%v", got[0])

	_, err = symmetrize.SymmetrizeMoments(mc, mops, perms[:1], base.Axial)
	require.ErrorIs(t, err, base.ErrInput)
}

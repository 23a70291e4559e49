package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

var (
	fourZ     = matrix.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	threeXYZ  = matrix.IMat3{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}
	inversion = matrix.IIdentity().Neg()
)

func TestTraverse_Order(t *testing.T) {
	gens := base.Operations{
		base.NewOperation(fourZ, matrix.Vec3{0, 0, 0.25}),
		base.NewOperation(inversion, matrix.Vec3{}),
	}
	ops, err := group.Traverse(gens)
	require.NoError(t, err)
	assert.Len(t, ops, 8)
	assert.Equal(t, base.IdentityOperation(), ops[0])
	for _, op := range ops {
		for _, x := range op.Translation {
			assert.GreaterOrEqual(t, x, 0.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestTraverse_Options(t *testing.T) {
	gens := base.Operations{base.NewOperation(fourZ, matrix.Vec3{})}

	_, err := group.Traverse(gens, group.WithMaxOrder(2))
	require.ErrorIs(t, err, group.ErrOrderExceeded)

	_, err = group.Traverse(gens, group.WithMaxOrder(0))
	require.ErrorIs(t, err, group.ErrOptionViolation)

	_, err = group.Traverse(gens, group.WithDenominator(-3))
	require.ErrorIs(t, err, group.ErrOptionViolation)

	visits := 0
	_, err = group.Traverse(gens, group.WithOnVisit(func(int) error { visits++; return nil }))
	require.NoError(t, err)
	assert.Equal(t, 4, visits)
}

func TestTraverse_Denominator(t *testing.T) {
	gens := base.Operations{base.NewOperation(threeXYZ, matrix.Vec3{1.0/3 + 1e-9, 0, 0})}
	ops, err := group.Traverse(gens, group.WithDenominator(12))
	require.NoError(t, err)
	require.Len(t, ops, 3)
	for _, op := range ops {
		for _, x := range op.Translation {
			assert.InDelta(t, 0, x*12-float64(int(x*12+0.5)), 1e-12)
		}
	}
}

func TestTraverseMagnetic(t *testing.T) {
	grey := base.MagneticOperations{
		base.NewMagneticOperation(matrix.IIdentity(), matrix.Vec3{}, true),
		base.NewMagneticOperation(fourZ, matrix.Vec3{}, false),
	}
	mops, err := group.TraverseMagnetic(grey)
	require.NoError(t, err)
	assert.Len(t, mops, 8)
	assert.True(t, group.CheckMagneticClosure(mops, 1e-8))

	primed := base.MagneticOperations{base.NewMagneticOperation(fourZ, matrix.Vec3{}, true)}
	mops, err = group.TraverseMagnetic(primed)
	require.NoError(t, err)
	assert.Len(t, mops, 4)
}

func TestRotationTypeOf(t *testing.T) {
	cases := []struct {
		r    matrix.IMat3
		want group.RotationType
	}{
		{matrix.IIdentity(), group.Rotation1},
		{inversion, group.RotoInversion1},
		{fourZ, group.Rotation4},
		{fourZ.Neg(), group.RotoInversion4},
		{threeXYZ, group.Rotation3},
		{matrix.IMat3{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, group.Rotation6},
		{matrix.IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, group.RotoInversion2},
	}
	for _, tc := range cases {
		t.Run(tc.want.String(), func(t *testing.T) {
			got, err := group.RotationTypeOf(tc.r)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := group.RotationTypeOf(matrix.IMat3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	require.ErrorIs(t, err, group.ErrUnknownRotation)

	assert.Equal(t, 6, group.Rotation6.Order())
	assert.Equal(t, 6, group.RotoInversion3.Order())
	assert.False(t, group.RotoInversion2.IsProper())
}

func TestRotationAxis(t *testing.T) {
	axis, ok := group.RotationAxis(fourZ)
	require.True(t, ok)
	assert.Equal(t, matrix.IVec3{0, 0, 1}, axis)

	axis, ok = group.RotationAxis(threeXYZ)
	require.True(t, ok)
	assert.Equal(t, matrix.IVec3{1, 1, 1}, axis)

	axis, ok = group.RotationAxis(matrix.IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}})
	require.True(t, ok)
	assert.Equal(t, matrix.IVec3{0, 0, 1}, axis)

	_, ok = group.RotationAxis(inversion)
	assert.False(t, ok)
}

func TestCheckClosure(t *testing.T) {
	ops, err := group.Traverse(base.Operations{
		base.NewOperation(fourZ, matrix.Vec3{0, 0, 0.25}),
	})
	require.NoError(t, err)
	assert.True(t, group.CheckClosure(ops, 1e-8))
	assert.False(t, group.CheckClosure(ops[:3], 1e-8))
}

func TestMatchOriginShift(t *testing.T) {
	prim := base.Operations{
		base.IdentityOperation(),
		base.NewOperation(inversion, matrix.Vec3{0.5, 0, 0}),
	}
	gens := base.Operations{base.NewOperation(inversion, matrix.Vec3{})}
	shift, ok := group.MatchOriginShift(prim, matrix.IIdentity(), gens, 1e-8)
	require.True(t, ok)

	u := base.MustUnimodular(matrix.IIdentity(), shift)
	assert.True(t, u.TransformOperation(prim[1]).EqualModLattice(gens[0], 1e-8))

	// a generator whose rotation is absent cannot be matched
	_, ok = group.MatchOriginShift(prim, matrix.IIdentity(), base.Operations{base.NewOperation(fourZ, matrix.Vec3{})}, 1e-8)
	assert.False(t, ok)
}

func TestTransMatBases_ConjugatesGroup(t *testing.T) {
	rotations, err := group.TraverseRotations([]matrix.IMat3{fourZ, inversion})
	require.NoError(t, err)
	set := map[matrix.IMat3]bool{}
	for _, r := range rotations {
		set[r] = true
	}

	bases, err := group.TransMatBases(rotations, []matrix.IMat3{fourZ, inversion})
	require.NoError(t, err)
	found := 0
	for basis := range bases {
		for p := range group.UnimodularCombinations(basis) {
			pinv, err := p.Inverse()
			require.NoError(t, err)
			for _, r := range rotations {
				assert.True(t, set[pinv.Mul(r).Mul(p)])
			}
			found++

			break
		}
	}
	assert.Positive(t, found)
}

func TestIntegralNormalizer(t *testing.T) {
	gens := base.Operations{base.NewOperation(fourZ, matrix.Vec3{})}
	prim, err := group.Traverse(gens)
	require.NoError(t, err)

	normalizer, err := group.IntegralNormalizer(prim, gens, 1e-8)
	require.NoError(t, err)
	require.NotEmpty(t, normalizer)
	for _, u := range normalizer {
		assert.Equal(t, 1, u.Linear.Det())
		moved := u.TransformOperations(prim)
		assert.ElementsMatch(t, prim.Rotations(), moved.Rotations())
	}
}

func TestFullNormalizer(t *testing.T) {
	gens := base.Operations{base.NewOperation(fourZ, matrix.Vec3{})}
	prim, err := group.Traverse(gens)
	require.NoError(t, err)

	full, err := group.FullNormalizer(prim, gens, 1e-8)
	require.NoError(t, err)
	require.NotEmpty(t, full)
	seen := map[matrix.IMat3]bool{}
	for _, u := range full {
		assert.False(t, seen[u.Linear], "duplicate linear part")
		seen[u.Linear] = true
		assert.Equal(t, 1, u.Linear.Det())
		assert.ElementsMatch(t, prim.Rotations(), u.TransformOperations(prim).Rotations())
	}
}

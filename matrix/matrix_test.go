package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat3_InverseRoundTrip(t *testing.T) {
	m := matrix.Mat3{{2, 1, 0}, {0, 3, 1}, {1, 0, 4}}
	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.True(t, m.Mul(inv).AlmostEqual(matrix.Identity(), 1e-12))
	assert.InDelta(t, 25.0, m.Det(), 1e-12)
}

func TestMat3_InverseSingular(t *testing.T) {
	m := matrix.Mat3{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}
	_, err := m.Inverse()
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestMat3_Columns(t *testing.T) {
	a, b, c := matrix.Vec3{1, 2, 3}, matrix.Vec3{4, 5, 6}, matrix.Vec3{7, 8, 10}
	m := matrix.FromColumns(a, b, c)
	cols := m.Columns()
	assert.Equal(t, a, cols[0])
	assert.Equal(t, b, cols[1])
	assert.Equal(t, c, cols[2])
	assert.Equal(t, matrix.Vec3{1, 4, 7}, m.Row(0))
}

func TestIMat3_Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.IMat3
		err  error
	}{
		{"identity", matrix.IIdentity(), nil},
		{"shear", matrix.IMat3{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}, nil},
		{"improper", matrix.IMat3{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}, nil},
		{"det2", matrix.IMat3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, matrix.ErrNotUnimodular},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := tc.m.Inverse()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.m.Mul(inv).IsIdentity())
		})
	}
}

func TestVec3_Wrap(t *testing.T) {
	v := matrix.Vec3{-0.25, 1.5, 1 - 1e-14}.Wrap()
	assert.InDelta(t, 0.75, v[0], 1e-15)
	assert.InDelta(t, 0.5, v[1], 1e-15)
	assert.Equal(t, 0.0, v[2])

	s := matrix.Vec3{0.9, -0.7, 0.2}.WrapSigned()
	assert.InDelta(t, -0.1, s[0], 1e-15)
	assert.InDelta(t, 0.3, s[1], 1e-15)
	assert.InDelta(t, 0.2, s[2], 1e-15)
}

func TestVec3_Cross(t *testing.T) {
	x, y := matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}
	assert.Equal(t, matrix.Vec3{0, 0, 1}, x.Cross(y))
	assert.InDelta(t, math.Sqrt(2), x.Add(y).Norm(), 1e-15)
}

func TestIDense_MulAndElementary(t *testing.T) {
	a, err := matrix.NewIDenseFromRows([][]int{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	id := matrix.IIdentityN(2)
	p, err := a.Mul(id)
	require.NoError(t, err)
	assert.Equal(t, a.Row(2), p.Row(2))

	_, err = id.Mul(a)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	a.AddRow(0, 1, -3)
	assert.Equal(t, []int{-8, -10}, a.Row(0))
	a.SwapCols(0, 1)
	assert.Equal(t, []int{-10, 4, 6}, a.Col(0))

	_, err = a.At(5, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestNewIDense_BadShape(t *testing.T) {
	_, err := matrix.NewIDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewIDenseFromRows([][]int{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

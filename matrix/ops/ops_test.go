package ops_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDense(t *testing.T, rows [][]int) *matrix.IDense {
	t.Helper()
	m, err := matrix.NewIDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestQR_Reconstructs(t *testing.T) {
	m := matrix.Mat3{{2, -1, 0}, {1, 3, 2}, {0, 1, 4}}
	q, r := ops.QR(m)
	assert.True(t, q.Mul(r).AlmostEqual(m, 1e-12))
	assert.True(t, q.Transpose().Mul(q).AlmostEqual(matrix.Identity(), 1e-12))
	assert.InDelta(t, 0.0, r[1][0], 1e-12)
	assert.InDelta(t, 0.0, r[2][0], 1e-12)
	assert.InDelta(t, 0.0, r[2][1], 1e-12)
}

func TestCholesky(t *testing.T) {
	g := matrix.Mat3{{4, 2, 0}, {2, 5, 1}, {0, 1, 3}}
	l, err := ops.Cholesky(g)
	require.NoError(t, err)
	assert.True(t, l.Mul(l.Transpose()).AlmostEqual(g, 1e-12))

	_, err = ops.Cholesky(matrix.Mat3{{1, 2, 0}, {2, 1, 0}, {0, 0, 1}})
	require.ErrorIs(t, err, ops.ErrNotPositiveDefinite)
}

func TestHNF(t *testing.T) {
	tests := []struct {
		name string
		in   [][]int
		want [][]int
	}{
		{"3x3", [][]int{{-1, 0, 0}, {1, 2, 2}, {0, -1, -2}}, [][]int{{1, 0, 0}, {1, 2, 0}, {0, 0, 1}}},
		{"2x2", [][]int{{20, -6}, {-2, 1}}, [][]int{{2, 0}, {1, 4}}},
		{"3x4", [][]int{{2, 3, 6, 2}, {5, 6, 1, 6}, {8, 3, 1, 1}}, [][]int{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := mustDense(t, tc.in)
			h, err := ops.NewHNF(a)
			require.NoError(t, err)
			for i := range tc.want {
				assert.Equal(t, tc.want[i], h.H.Row(i))
			}
			ar, err := a.Mul(h.R)
			require.NoError(t, err)
			for i := range tc.want {
				assert.Equal(t, h.H.Row(i), ar.Row(i))
			}
		})
	}
}

func TestSNF_DivisibilityAndProduct(t *testing.T) {
	a := mustDense(t, [][]int{{2, 4, 4}, {-6, 6, 12}, {10, -4, -16}})
	s, err := ops.NewSNF(a)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Diag(0))
	assert.Equal(t, 6, s.Diag(1))
	assert.Equal(t, 12, s.Diag(2))
	assert.Equal(t, 3, s.Rank())

	la, err := s.L.Mul(a)
	require.NoError(t, err)
	lar, err := la.Mul(s.R)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, s.D.Row(i), lar.Row(i))
	}
}

func TestIntegerKernel(t *testing.T) {
	a := mustDense(t, [][]int{{1, 1, 0}, {0, 0, 1}})
	k, err := ops.IntegerKernel(a)
	require.NoError(t, err)
	require.Len(t, k, 1)
	v := k[0]
	assert.Equal(t, 0, v[0]+v[1])
	assert.Equal(t, 0, v[2])
	assert.Equal(t, 1, int(math.Abs(float64(v[0]))))
}

func TestSolveMod1(t *testing.T) {
	// 2x ≡ 1/2 (mod 1) → x = 1/4
	x, err := ops.SolveMod1(mustDense(t, [][]int{{2}}), []float64{0.5}, 1e-8)
	require.NoError(t, err)
	v := 2*x[0] - 0.5
	assert.InDelta(t, math.Round(v), v, 1e-12)

	// rows (1,0),(1,0) with different right-hand sides modulo 1 are inconsistent
	_, err = ops.SolveMod1(mustDense(t, [][]int{{1, 0}, {1, 0}}), []float64{0.25, 0.5}, 1e-8)
	require.ErrorIs(t, err, ops.ErrNoSolution)
}

func TestSylvester3_Commutant(t *testing.T) {
	// matrices commuting with a 4-fold rotation about z
	r4 := matrix.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	basis, err := ops.Sylvester3([]matrix.IMat3{r4}, []matrix.IMat3{r4})
	require.NoError(t, err)
	assert.Len(t, basis, 3)
	for _, p := range basis {
		assert.Equal(t, r4.Mul(p), p.Mul(r4))
	}
}

func TestSNF_Overflow(t *testing.T) {
	big := ops.MaxEntry * 4
	_, err := ops.NewSNF(mustDense(t, [][]int{{big, big + 1}, {big - 1, big}}))
	require.ErrorIs(t, err, ops.ErrIntegerOverflow)
}

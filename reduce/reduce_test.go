package reduce_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/reduce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reducer is the common signature of the three reducers.
type reducer func(matrix.Mat3, ...reduce.Option) (matrix.Mat3, matrix.IMat3, error)

func randomBasis(rng *rand.Rand) matrix.Mat3 {
	for {
		var m matrix.Mat3
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m[i][j] = float64(rng.Intn(17) - 8)
			}
		}
		if d := m.Det(); d > 0.5 || d < -0.5 {
			return m
		}
	}
}

func TestReducers_PreserveLattice(t *testing.T) {
	reducers := map[string]reducer{
		"niggli":    reduce.Niggli,
		"delaunay":  reduce.Delaunay,
		"minkowski": reduce.Minkowski,
	}
	for name, fn := range reducers {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			for n := 0; n < 128; n++ {
				basis := randomBasis(rng)
				reduced, tm, err := fn(basis)
				require.NoError(t, err)
				assert.Equal(t, 1, tm.Det())
				assert.True(t, basis.Mul(tm.ToFloat()).AlmostEqual(reduced, 1e-8))
				assert.InDelta(t, basis.Det(), reduced.Det(), 1e-6)
			}
		})
	}
}

func TestNiggli_ReducedAndIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 64; n++ {
		reduced, _, err := reduce.Niggli(randomBasis(rng))
		require.NoError(t, err)
		assert.True(t, reduce.IsNiggliReduced(reduced, reduce.DefaultEpsilon))

		again, tm, err := reduce.Niggli(reduced)
		require.NoError(t, err)
		assert.True(t, tm.IsIdentity(), "second pass moved %v", tm)
		assert.True(t, again.AlmostEqual(reduced, 1e-12))
	}
}

func TestNiggli_IterationCap(t *testing.T) {
	skewed := matrix.FromColumns(
		matrix.Vec3{1, 0, 0},
		matrix.Vec3{40, 1, 0},
		matrix.Vec3{0, 30, 1},
	)
	_, _, err := reduce.Niggli(skewed, reduce.WithMaxIterations(1))
	require.ErrorIs(t, err, reduce.ErrReduction)

	_, _, err = reduce.Niggli(skewed)
	require.NoError(t, err)
}

func TestMinkowski_Small(t *testing.T) {
	basis := matrix.FromColumns(
		matrix.Vec3{0, 1, 0},
		matrix.Vec3{1, 1, 0},
		matrix.Vec3{1, 1, 1},
	)
	assert.False(t, reduce.IsMinkowskiReduced(basis, 1e-8))
	reduced, _, err := reduce.Minkowski(basis)
	require.NoError(t, err)
	assert.True(t, reduce.IsMinkowskiReduced(reduced, 1e-8))
	for j := 0; j < 3; j++ {
		assert.InDelta(t, 1.0, reduced.Col(j).Norm(), 1e-12)
	}
}

func TestMinkowski2_KeepsThirdColumn(t *testing.T) {
	basis := matrix.FromColumns(
		matrix.Vec3{1, 0, 0},
		matrix.Vec3{7, 1, 0},
		matrix.Vec3{3, 2, 5},
	)
	reduced, tm, err := reduce.Minkowski2(basis)
	require.NoError(t, err)
	assert.Equal(t, basis.Col(2), reduced.Col(2))
	assert.Equal(t, 1, tm.Det())
	assert.InDelta(t, 1.0, reduced.Col(0).Norm(), 1e-12)
	assert.InDelta(t, 1.0, reduced.Col(1).Norm(), 1e-12)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { reduce.WithEpsilon(-1) })
	assert.Panics(t, func() { reduce.WithMaxIterations(0) })
}

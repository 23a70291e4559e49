package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/search"
)

const symprec = 1e-4

func newCell(t *testing.T, basis matrix.Mat3, positions []matrix.Vec3, numbers []int) base.Cell {
	t.Helper()
	l, err := base.NewLattice(basis)
	require.NoError(t, err)
	c, err := base.NewCell(l, positions, numbers)
	require.NoError(t, err)

	return c
}

func simpleCubic(t *testing.T) base.Cell {
	return newCell(t, matrix.Identity(), []matrix.Vec3{{0, 0, 0}}, []int{1})
}

func bcc(t *testing.T) base.Cell {
	return newCell(t, matrix.Identity(), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 1})
}

func fcc(t *testing.T) base.Cell {
	return newCell(t, matrix.Identity(),
		[]matrix.Vec3{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		[]int{1, 1, 1, 1})
}

func hcp(t *testing.T) base.Cell {
	const a, c = 3.17, 5.14
	basis := matrix.FromColumns(
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, c},
	)

	return newCell(t, basis, []matrix.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}}, []int{1, 1})
}

func TestPeriodicIndex_Nearest(t *testing.T) {
	cell := newCell(t, matrix.Identity().Scale(2), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 2})
	idx := search.NewPeriodicIndex(cell)

	nb, ok := idx.Nearest(matrix.Vec3{0.99, 0, 0}, 0.1)
	require.True(t, ok)
	assert.Equal(t, 0, nb.Site)
	assert.Equal(t, matrix.IVec3{1, 0, 0}, nb.Offset)
	assert.InDelta(t, 0.02, nb.Distance, 1e-12)

	nb, ok = idx.Nearest(matrix.Vec3{-0.49, 1.5, 0.5}, 0.1)
	require.True(t, ok)
	assert.Equal(t, 1, nb.Site)
	assert.Equal(t, matrix.IVec3{}, nb.Offset)

	_, ok = idx.Nearest(matrix.Vec3{0.25, 0.25, 0.25}, 0.1)
	assert.False(t, ok)
}

func TestNewPrimitiveCell(t *testing.T) {
	cases := []struct {
		name         string
		cell         base.Cell
		translations int
		sites        int
		volume       float64
	}{
		{"sc", simpleCubic(t), 1, 1, 1},
		{"bcc", bcc(t), 2, 1, 0.5},
		{"fcc", fcc(t), 4, 1, 0.25},
		{"hcp", hcp(t), 1, 2, hcp(t).Lattice.Volume()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prim, err := search.NewPrimitiveCell(tc.cell, symprec)
			require.NoError(t, err)
			assert.Len(t, prim.Translations, tc.translations)
			assert.Equal(t, tc.sites, prim.Cell.NumAtoms())
			assert.InDelta(t, tc.volume, prim.Cell.Lattice.Volume(), 1e-9)
			assert.InDelta(t, 1/float64(tc.translations), prim.Linear.Det(), 1e-9)
			assert.Len(t, prim.SiteMapping, tc.cell.NumAtoms())

			// the primitive basis is the input basis times Linear
			want := tc.cell.Lattice.Basis.Mul(prim.Linear)
			assert.True(t, want.AlmostEqual(prim.Cell.Lattice.Basis, 1e-9))
		})
	}
}

func TestNewPrimitiveCell_FCCMapping(t *testing.T) {
	prim, err := search.NewPrimitiveCell(fcc(t), symprec)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, prim.SiteMapping)
	for _, tr := range prim.Translations {
		for _, x := range tr {
			assert.InDelta(t, 0, math.Abs(x*2-math.Round(x*2)), 1e-9)
		}
	}
}

func TestNewPrimitiveCell_TooLargeTolerance(t *testing.T) {
	_, err := search.NewPrimitiveCell(simpleCubic(t), 0.3)
	require.ErrorIs(t, err, search.ErrTooLargeTolerance)
}

func TestNewPrimitiveCell_DisplacedChain(t *testing.T) {
	// the third site is 0.03 off the 3-fold chain
	cell := newCell(t, matrix.Identity().Scale(3),
		[]matrix.Vec3{{0, 0, 0}, {1.0 / 3, 0, 0}, {2.0 / 3, 0.01, 0}},
		[]int{1, 1, 1})
	prim, err := search.NewPrimitiveCell(cell, symprec)
	require.NoError(t, err)
	assert.Len(t, prim.Translations, 1)
	assert.Equal(t, 3, prim.Cell.NumAtoms())

	prim, err = search.NewPrimitiveCell(cell, 0.04)
	require.NoError(t, err)
	assert.Len(t, prim.Translations, 3)
	assert.Equal(t, 1, prim.Cell.NumAtoms())
	assert.InDelta(t, 9, prim.Cell.Lattice.Volume(), 1e-9)
}

func TestBravaisGroup(t *testing.T) {
	tetragonal, err := base.NewLattice(matrix.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.5}})
	require.NoError(t, err)
	triclinic, err := base.NewLattice(matrix.FromColumns(
		matrix.Vec3{1, 0, 0}, matrix.Vec3{0.1, 1.2, 0}, matrix.Vec3{0.2, 0.3, 1.4},
	))
	require.NoError(t, err)

	cases := []struct {
		name    string
		lattice base.Lattice
		order   int
	}{
		{"cubic", simpleCubic(t).Lattice, 48},
		{"hexagonal", hcp(t).Lattice, 24},
		{"tetragonal", tetragonal, 16},
		{"triclinic", triclinic, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rotations, err := search.BravaisGroup(tc.lattice, symprec, base.DefaultAngle())
			require.NoError(t, err)
			assert.Len(t, rotations, tc.order)
			g := tc.lattice.Metric()
			for _, r := range rotations {
				rf := r.ToFloat()
				assert.True(t, rf.Transpose().Mul(g).Mul(rf).AlmostEqual(g, 1e-9))
			}
		})
	}
}

func TestBravaisGroup_ExplicitAngle(t *testing.T) {
	// a 0.5° shear is invisible at 2° and visible at 0.1°
	shear := math.Tan(0.5 * math.Pi / 180)
	l, err := base.NewLattice(matrix.FromColumns(
		matrix.Vec3{1, 0, 0}, matrix.Vec3{shear, 1, 0}, matrix.Vec3{0, 0, 1},
	))
	require.NoError(t, err)

	loose, err := search.BravaisGroup(l, 0.05, base.Radian(2*math.Pi/180))
	require.NoError(t, err)
	tight, err := search.BravaisGroup(l, 0.05, base.Radian(0.1*math.Pi/180))
	require.NoError(t, err)
	assert.Greater(t, len(loose), len(tight))
}

func TestNewPrimitiveSymmetrySearch(t *testing.T) {
	cases := []struct {
		name  string
		cell  base.Cell
		order int
		total int
	}{
		{"sc", simpleCubic(t), 48, 48},
		{"bcc", bcc(t), 48, 96},
		{"fcc", fcc(t), 48, 192},
		{"hcp", hcp(t), 24, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prim, err := search.NewPrimitiveCell(tc.cell, symprec)
			require.NoError(t, err)
			ss, err := search.NewPrimitiveSymmetrySearch(prim.Cell, symprec, base.DefaultAngle())
			require.NoError(t, err)
			require.Len(t, ss.Operations, tc.order)
			require.Len(t, ss.Permutations, tc.order)

			for k, op := range ss.Operations {
				for i, pos := range prim.Cell.Positions {
					moved := op.Apply(pos)
					target := prim.Cell.Positions[ss.Permutations[k].Apply(i)]
					assert.Less(t, moved.Sub(target).WrapSigned().MaxAbs(), 1e-6)
				}
			}

			ops := search.OperationsInCell(prim, ss.Operations)
			assert.Len(t, ops, tc.total)
			assert.Equal(t, base.IdentityOperation(), ops[0])
		})
	}
}

func TestNewPrimitiveSymmetrySearch_HCPSwapsSites(t *testing.T) {
	prim, err := search.NewPrimitiveCell(hcp(t), symprec)
	require.NoError(t, err)
	ss, err := search.NewPrimitiveSymmetrySearch(prim.Cell, symprec, base.DefaultAngle())
	require.NoError(t, err)

	swaps := 0
	for _, p := range ss.Permutations {
		if p.Apply(0) == 1 {
			swaps++
		}
	}
	assert.Equal(t, 12, swaps)
}

func TestIterativeSymmetrySearch(t *testing.T) {
	res, err := search.IterativeSymmetrySearch(simpleCubic(t), symprec, base.DefaultAngle(), nil)
	require.NoError(t, err)
	assert.Equal(t, symprec, res.Symprec)
	assert.Len(t, res.Search.Operations, 48)

	// 0.3 is too large for a unit cube; one halving fixes it
	res, err = search.IterativeSymmetrySearch(simpleCubic(t), 0.3, base.Radian(0.1), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, res.Symprec, 1e-12)
	angle, ok := res.AngleTolerance.Value()
	require.True(t, ok)
	assert.InDelta(t, 0.05, angle, 1e-12)
	assert.Len(t, res.Search.Operations, 48)
}

func TestIterativeSymmetrySearch_MonotoneInTolerance(t *testing.T) {
	// 1% strain along z
	cell := newCell(t, matrix.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.01}}, []matrix.Vec3{{0, 0, 0}}, []int{1})
	prev := math.MaxInt
	for _, eps := range []float64{2e-2, 1e-4, 1e-6} {
		res, err := search.IterativeSymmetrySearch(cell, eps, base.DefaultAngle(), nil)
		require.NoError(t, err)
		n := len(res.Search.Operations)
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
	assert.Equal(t, 16, prev)
}

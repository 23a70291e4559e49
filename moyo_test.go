package moyo_test

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/moyo"
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/matrix"
)

func newCell(t testing.TB, basis matrix.Mat3, positions []matrix.Vec3, numbers []int) base.Cell {
	t.Helper()
	l, err := base.NewLattice(basis)
	require.NoError(t, err)
	c, err := base.NewCell(l, positions, numbers)
	require.NoError(t, err)

	return c
}

func simpleCubic(t testing.TB) base.Cell {
	return newCell(t, matrix.Identity(), []matrix.Vec3{{0, 0, 0}}, []int{1})
}

func bcc(t testing.TB) base.Cell {
	return newCell(t, matrix.Identity(), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 1})
}

func hcp(t testing.TB) base.Cell {
	const a, c = 3.17, 5.14
	basis := matrix.FromColumns(
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, c},
	)

	return newCell(t, basis, []matrix.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}}, []int{1, 1})
}

func rocksalt(t testing.TB) base.Cell {
	return newCell(t, matrix.Identity().Scale(5.64),
		[]matrix.Vec3{
			{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0},
			{0.5, 0, 0}, {0.5, 0.5, 0.5}, {0, 0, 0.5}, {0, 0.5, 0},
		},
		[]int{11, 11, 11, 11, 17, 17, 17, 17})
}

func rutile(t testing.TB) base.Cell {
	const a, c, x = 4.603, 2.969, 0.3046

	return newCell(t, matrix.Mat3{{a, 0, 0}, {0, a, 0}, {0, 0, c}},
		[]matrix.Vec3{
			{0, 0, 0}, {0.5, 0.5, 0.5},
			{x, x, 0}, {-x, -x, 0}, {-x + 0.5, x + 0.5, 0.5}, {x + 0.5, -x + 0.5, 0.5},
		},
		[]int{22, 22, 8, 8, 8, 8})
}

// Cu3Au, L1₂
func cu3au(t testing.TB) base.Cell {
	return newCell(t, matrix.Identity().Scale(3.75),
		[]matrix.Vec3{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		[]int{79, 29, 29, 29})
}

// corundum in the hexagonal setting of R-3c
func corundum(t testing.TB) base.Cell {
	const a, c = 4.80502783, 13.11625361
	basis := matrix.FromColumns(
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, c},
	)
	positions := []matrix.Vec3{
		// Al 12c
		{0.33333333, 0.66666667, 0.81457067},
		{0.66666667, 0.33333333, 0.68542933},
		{0.00000000, 0.00000000, 0.64790400},
		{0.33333333, 0.66666667, 0.51876267},
		{0.00000000, 0.00000000, 0.14790400},
		{0.33333333, 0.66666667, 0.01876267},
		{0.66666667, 0.33333333, 0.98123733},
		{0.00000000, 0.00000000, 0.85209600},
		{0.66666667, 0.33333333, 0.48123733},
		{0.00000000, 0.00000000, 0.35209600},
		{0.33333333, 0.66666667, 0.31457067},
		{0.66666667, 0.33333333, 0.18542933},
		// O 18e
		{0.36052117, 0.33333333, 0.58333333},
		{0.69385450, 0.69385450, 0.75000000},
		{0.97281217, 0.63947883, 0.58333333},
		{0.66666667, 0.02718783, 0.58333333},
		{0.00000000, 0.30614550, 0.75000000},
		{0.30614550, 0.00000000, 0.75000000},
		{0.02718783, 0.66666667, 0.91666667},
		{0.36052117, 0.02718783, 0.08333333},
		{0.63947883, 0.97281217, 0.91666667},
		{0.33333333, 0.36052117, 0.91666667},
		{0.66666667, 0.63947883, 0.08333333},
		{0.97281217, 0.33333333, 0.08333333},
		{0.69385450, 0.00000000, 0.25000000},
		{0.02718783, 0.36052117, 0.41666667},
		{0.30614550, 0.30614550, 0.25000000},
		{0.00000000, 0.69385450, 0.25000000},
		{0.33333333, 0.97281217, 0.41666667},
		{0.63947883, 0.66666667, 0.41666667},
	}
	numbers := make([]int, len(positions))
	for i := range numbers {
		numbers[i] = 13
		if i >= 12 {
			numbers[i] = 8
		}
	}

	return newCell(t, basis, positions, numbers)
}

// Sc in P6₁22, every atom on 6a
func scandiumP6122(t testing.TB) base.Cell {
	const a, c, x = 3.234, 16.386, 0.4702
	basis := matrix.FromColumns(
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, c},
	)

	return newCell(t, basis,
		[]matrix.Vec3{
			{x, 0, 0}, {0, x, 1.0 / 3}, {-x, -x, 2.0 / 3},
			{-x, 0, 0.5}, {0, -x, 5.0 / 6}, {x, x, 1.0 / 6},
		},
		[]int{21, 21, 21, 21, 21, 21})
}

// distorted rhombohedral Sc, one atom in a skewed primitive cell
func scandiumTrigonal(t testing.TB) base.Cell {
	basis := matrix.Mat3{
		{-0.882444, 0.564392, -3.041088},
		{-1.66822, -2.81974, -0.089223},
		{-1.521212, 2.804144, -0.808507},
	}

	return newCell(t, basis, []matrix.Vec3{{0.999917, 3.3e-05, 1.7e-05}}, []int{21})
}

func TestAnalyze(t *testing.T) {
	cases := []struct {
		name    string
		cell    func(testing.TB) base.Cell
		number  int
		hall    int
		numOps  int
		orbits  []int
		letters []string
		pearson string
	}{
		{"simple cubic", simpleCubic, 221, 517, 48, []int{0}, []string{"a"}, "cP1"},
		{"bcc", bcc, 229, 529, 96, []int{0, 0}, []string{"a", "a"}, "cI2"},
		{"hcp", hcp, 194, 488, 24, []int{0, 0}, []string{"c", "c"}, "hP2"},
		{"rocksalt", rocksalt, 225, 523, 192, []int{0, 0, 0, 0, 4, 4, 4, 4}, []string{"a", "a", "a", "a", "b", "b", "b", "b"}, "cF8"},
		{"rutile", rutile, 136, 419, 16, []int{0, 0, 2, 2, 2, 2}, []string{"a", "a", "f", "f", "f", "f"}, "tP6"},
		{"Cu3Au", cu3au, 221, 517, 48, []int{0, 1, 1, 1}, []string{"a", "c", "c", "c"}, "cP4"},
		{"Sc P6122", scandiumP6122, 178, 472, 12, []int{0, 0, 0, 0, 0, 0}, []string{"a", "a", "a", "a", "a", "a"}, "hP6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := moyo.Analyze(tc.cell(t))
			require.NoError(t, err)
			assert.Equal(t, tc.number, ds.Number)
			assert.Equal(t, tc.hall, ds.HallNumber)
			assert.Len(t, ds.Operations, tc.numOps)
			assert.Equal(t, tc.orbits, ds.Orbits)
			assert.Equal(t, tc.letters, ds.Wyckoffs)
			assert.Equal(t, tc.pearson, ds.PearsonSymbol)
			assert.Equal(t, moyo.DefaultSymprec, ds.Symprec)
			assert.True(t, ds.AngleTolerance.IsDefault())
			assert.Len(t, ds.MappingStdPrim, ds.StdCell.NumAtoms())
		})
	}
}

func TestAnalyze_Corundum(t *testing.T) {
	ds, err := moyo.Analyze(corundum(t), moyo.WithSymprec(1e-4))
	require.NoError(t, err)
	assert.Equal(t, 167, ds.Number)
	assert.Equal(t, 460, ds.HallNumber) // hexagonal axes
	assert.Len(t, ds.Operations, 36)

	orbits := make([]int, 30)
	letters := make([]string, 30)
	for i := range orbits {
		if i >= 12 {
			orbits[i], letters[i] = 12, "e"
		} else {
			letters[i] = "c"
		}
	}
	assert.Equal(t, orbits, ds.Orbits)
	assert.Equal(t, letters, ds.Wyckoffs)
	assert.Equal(t, "hR10", ds.PearsonSymbol)
}

func TestAnalyze_DistortedTrigonal(t *testing.T) {
	ds, err := moyo.Analyze(scandiumTrigonal(t), moyo.WithSymprec(1e-1))
	require.NoError(t, err)
	assert.Equal(t, 166, ds.Number)
	assert.Equal(t, 458, ds.HallNumber)
	assert.Len(t, ds.Operations, 12)
	assert.Equal(t, []int{0}, ds.Orbits)
	assert.Contains(t, []string{"a", "b"}, ds.Wyckoffs[0])
}

// Cr3Si (A15): Cr on 6c of Pm-3n
func TestAnalyze_A15SiteSymmetry(t *testing.T) {
	cell := newCell(t, matrix.Identity().Scale(4.56),
		[]matrix.Vec3{
			{0, 0, 0}, {0.5, 0.5, 0.5},
			{0.25, 0, 0.5}, {0.75, 0, 0.5}, {0.5, 0.25, 0}, {0.5, 0.75, 0}, {0, 0.5, 0.25}, {0, 0.5, 0.75},
		},
		[]int{14, 14, 24, 24, 24, 24, 24, 24})
	ds, err := moyo.Analyze(cell)
	require.NoError(t, err)
	assert.Equal(t, 223, ds.Number)
	assert.Equal(t, []string{"a", "a"}, ds.Wyckoffs[:2])
	// the origin shift by ½,½,½ swaps 6c and 6d
	assert.Contains(t, []string{"c", "d"}, ds.Wyckoffs[2])
	for i := 2; i < 8; i++ {
		assert.Equal(t, ds.Wyckoffs[2], ds.Wyckoffs[i])
		assert.Equal(t, "-42.m", ds.SiteSymmetrySymbols[i])
	}
	assert.Equal(t, "m-3.", ds.SiteSymmetrySymbols[0])
}

// Operations whose rotation does not map the 2×1×1 cell onto itself are
// not reported for it.
func TestAnalyze_SupercellOperations(t *testing.T) {
	cell := newCell(t, matrix.Mat3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, []matrix.Vec3{{0, 0, 0}, {0.5, 0, 0}}, []int{1, 1})
	ds, err := moyo.Analyze(cell)
	require.NoError(t, err)
	assert.Equal(t, 221, ds.Number)
	assert.Len(t, ds.Operations, 32)
	assert.Equal(t, []int{0, 0}, ds.Orbits)
}

func TestAnalyze_HCPSiteSymmetry(t *testing.T) {
	ds, err := moyo.Analyze(hcp(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"-6m2", "-6m2"}, ds.SiteSymmetrySymbols)

	// the input cell is already primitive and hexagonal
	assert.InDelta(t, 1, math.Abs(ds.StdLinear.Det()), 1e-10)
	assert.InDelta(t, 1, ds.StdRotationMatrix.Det(), 1e-10)
	assert.Equal(t, 2, ds.PrimStdCell.NumAtoms())
}

func TestAnalyze_GroupProperties(t *testing.T) {
	for name, cell := range map[string]func(testing.TB) base.Cell{"bcc": bcc, "hcp": hcp, "rocksalt": rocksalt} {
		t.Run(name, func(t *testing.T) {
			ds, err := moyo.Analyze(cell(t))
			require.NoError(t, err)
			ops := ds.Operations

			contains := func(op base.Operation) bool {
				for _, o := range ops {
					if o.EqualModLattice(op, 1e-6) {
						return true
					}
				}

				return false
			}
			assert.True(t, contains(base.IdentityOperation()), "identity")
			for _, a := range ops {
				for _, b := range ops {
					require.True(t, contains(a.Mul(b)), "%v · %v", a, b)
				}
			}
		})
	}
}

func TestAnalyze_StandardCellRoundTrip(t *testing.T) {
	ds, err := moyo.Analyze(rocksalt(t))
	require.NoError(t, err)

	again, err := moyo.Analyze(ds.StdCell)
	require.NoError(t, err)
	assert.Equal(t, ds.HallNumber, again.HallNumber)
	assert.Equal(t, ds.Wyckoffs, again.Wyckoffs)
	assert.True(t, again.StdCell.Lattice.Basis.AlmostEqual(ds.StdCell.Lattice.Basis, 1e-8))

	// the change of basis is a symmetry of the cubic cell
	assert.True(t, again.StdLinear.IsIntegral(1e-8), "%v", again.StdLinear)
	assert.InDelta(t, 1, math.Abs(again.StdLinear.Det()), 1e-8)
}

func TestAnalyze_ToleranceMonotone(t *testing.T) {
	// 1% strain along z
	cell := newCell(t, matrix.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.01}}, []matrix.Vec3{{0, 0, 0}}, []int{1})
	prev := math.MaxInt
	for _, symprec := range []float64{2e-2, 1e-4, 1e-6} {
		ds, err := moyo.Analyze(cell, moyo.WithSymprec(symprec))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(ds.Operations), prev)
		prev = len(ds.Operations)
	}
	assert.Equal(t, 16, prev)
}

func TestAnalyze_Setting(t *testing.T) {
	// Im-3m has a single Hall setting; P1 cannot describe a cubic group
	ds, err := moyo.Analyze(bcc(t), moyo.WithSetting(data.Spglib))
	require.NoError(t, err)
	assert.Equal(t, 529, ds.HallNumber)

	_, err = moyo.Analyze(bcc(t), moyo.WithSetting(data.HallNumberSetting(1)))
	require.ErrorIs(t, err, moyo.ErrNoMatchingType)
	assert.True(t, strings.HasPrefix(err.Error(), "moyo: identify"), err.Error())
}

func TestAnalyze_Logger(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := moyo.Analyze(hcp(t), moyo.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hall_number=488")
}

func TestAnalyzeMagnetic(t *testing.T) {
	// bcc antiferromagnet
	cell := newCell(t, matrix.Identity().Scale(2.87), []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{26, 26})
	mc, err := base.NewMagneticCell(cell, []base.Collinear{1.01, -0.99})
	require.NoError(t, err)

	ds, err := moyo.AnalyzeMagnetic(mc, moyo.WithMagSymprec(0.05), moyo.WithRotationMomentAction(base.Polar))
	require.NoError(t, err)
	typ, err := moyo.MagneticSpaceGroupType(ds.UNINumber)
	require.NoError(t, err)
	assert.Equal(t, data.Type4, typ.ConstructType)
	assert.Len(t, ds.MagneticOperations, 96)
	// the two sites are related by {1'|½,½,½}
	assert.Equal(t, []int{0, 0}, ds.Orbits)
	assert.Equal(t, 0.05, ds.MagSymprec)

	moments := ds.PrimStdMagCell.Moments
	require.Len(t, moments, 2)
	assert.InDelta(t, 1, math.Abs(float64(moments[0])), 1e-12)
	assert.InDelta(t, 0, float64(moments[0]+moments[1]), 1e-12)
	assert.Len(t, ds.StdMagCell.Moments, ds.StdMagCell.NumAtoms())
}

func TestAnalyzeMagnetic_Rutile(t *testing.T) {
	cases := []struct {
		name    string
		moments []base.Collinear
		uni     int
		ct      data.ConstructType
	}{
		{"ferromagnetic", []base.Collinear{0.7, 0.7, 0, 0, 0, 0}, 1155, data.Type1},
		{"non-magnetic", []base.Collinear{0, 0, 0, 0, 0, 0}, 1156, data.Type2},
		{"antiferromagnetic", []base.Collinear{0.7, -0.7, 0, 0, 0, 0}, 1158, data.Type3},
	}
	cell := newCell(t, matrix.Identity(),
		[]matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}, {0.3, 0.3, 0}, {0.7, 0.7, 0}, {0.2, 0.8, 0.5}, {0.8, 0.2, 0.5}},
		[]int{0, 0, 1, 1, 1, 1})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mc, err := base.NewMagneticCell(cell, tc.moments)
			require.NoError(t, err)
			ds, err := moyo.AnalyzeMagnetic(mc, moyo.WithSymprec(1e-4), moyo.WithRotationMomentAction(base.Polar))
			require.NoError(t, err)
			assert.Equal(t, tc.uni, ds.UNINumber)
			typ, err := moyo.MagneticSpaceGroupType(ds.UNINumber)
			require.NoError(t, err)
			assert.Equal(t, tc.ct, typ.ConstructType)

			again, err := moyo.AnalyzeMagnetic(ds.StdMagCell, moyo.WithSymprec(1e-4), moyo.WithRotationMomentAction(base.Polar))
			require.NoError(t, err)
			assert.Equal(t, ds.UNINumber, again.UNINumber)
		})
	}

	mc, err := base.NewMagneticCell(cell, cases[2].moments)
	require.NoError(t, err)
	ds, err := moyo.AnalyzeMagnetic(mc, moyo.WithSymprec(1e-4), moyo.WithRotationMomentAction(base.Polar))
	require.NoError(t, err)
	typ, err := moyo.MagneticSpaceGroupType(ds.UNINumber)
	require.NoError(t, err)
	assert.Equal(t, "136.498", typ.BNSNumber)
	assert.Len(t, ds.MagneticOperations, 16)
	assert.Equal(t, []int{0, 0, 2, 2, 2, 2}, ds.Orbits)
	assert.Equal(t, 6, ds.StdMagCell.NumAtoms())
	assert.Equal(t, 6, ds.PrimStdMagCell.NumAtoms())
}

// Rutile doubled along c with the Ti moments reversed between halves.
func TestAnalyzeMagnetic_RutileAntiTranslation(t *testing.T) {
	positions := []matrix.Vec3{
		{0, 0, 0}, {0.5, 0.5, 0.25},
		{0.3, 0.3, 0}, {0.7, 0.7, 0}, {0.2, 0.8, 0.25}, {0.8, 0.2, 0.25},
		{0, 0, 0.5}, {0.5, 0.5, 0.75},
		{0.3, 0.3, 0.5}, {0.7, 0.7, 0.5}, {0.2, 0.8, 0.75}, {0.8, 0.2, 0.75},
	}
	cell := newCell(t, matrix.Mat3{{5, 0, 0}, {0, 5, 0}, {0, 0, 6}}, positions,
		[]int{0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1})
	mc, err := base.NewMagneticCell(cell, []base.Collinear{0.3, 0.3, 0, 0, 0, 0, -0.3, -0.3, 0, 0, 0, 0})
	require.NoError(t, err)

	ds, err := moyo.AnalyzeMagnetic(mc, moyo.WithSymprec(1e-4), moyo.WithRotationMomentAction(base.Polar))
	require.NoError(t, err)
	assert.Equal(t, 932, ds.UNINumber)
	typ, err := moyo.MagneticSpaceGroupType(ds.UNINumber)
	require.NoError(t, err)
	assert.Equal(t, data.Type4, typ.ConstructType)
}

func TestAnalyzeMagnetic_Ferromagnet(t *testing.T) {
	mc, err := base.NewMagneticCell(simpleCubic(t), []base.NonCollinear{{0, 0, 1}})
	require.NoError(t, err)

	ds, err := moyo.AnalyzeMagnetic(mc)
	require.NoError(t, err)
	typ, err := moyo.MagneticSpaceGroupType(ds.UNINumber)
	require.NoError(t, err)
	assert.Equal(t, data.Type3, typ.ConstructType)
	assert.Equal(t, 123, typ.Number) // P4/mmm
	assert.Equal(t, moyo.DefaultSymprec, ds.MagSymprec)
}

func TestAnalyzeAll(t *testing.T) {
	cells := []base.Cell{simpleCubic(t), bcc(t), hcp(t), rocksalt(t)}
	out, err := moyo.AnalyzeAll(context.Background(), cells, moyo.WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, out, len(cells))
	numbers := make([]int, len(out))
	for i, ds := range out {
		numbers[i] = ds.Number
	}
	assert.Equal(t, []int{221, 229, 194, 225}, numbers)

	_, err = moyo.AnalyzeAll(context.Background(), cells, moyo.WithSetting(data.HallNumberSetting(1)), moyo.WithConcurrency(1))
	require.ErrorIs(t, err, moyo.ErrNoMatchingType)
	assert.Contains(t, err.Error(), "cell 0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = moyo.AnalyzeAll(ctx, cells)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { moyo.WithSymprec(0) })
	assert.Panics(t, func() { moyo.WithSymprec(math.NaN()) })
	assert.Panics(t, func() { moyo.WithMagSymprec(-1) })
	assert.Panics(t, func() { moyo.WithLogger(nil) })
	assert.Panics(t, func() { moyo.WithMetrics(nil) })
	assert.Panics(t, func() { moyo.WithConcurrency(0) })
	assert.NotPanics(t, func() { moyo.WithAngleTolerance(base.Radian(0.1)) })
}

func TestDefaultOptions(t *testing.T) {
	o := moyo.DefaultOptions()
	assert.Equal(t, moyo.DefaultSymprec, o.Symprec)
	assert.True(t, o.AngleTolerance.IsDefault())
	assert.Equal(t, data.Standard, o.Setting)
	assert.Equal(t, base.Axial, o.Action)
	assert.NotNil(t, o.Logger)
	assert.Nil(t, o.Metrics)
	assert.Positive(t, o.Concurrency)
}

func TestAnalyze_InvalidCell(t *testing.T) {
	_, err := moyo.Analyze(base.Cell{Lattice: base.Lattice{Basis: matrix.Identity()}})
	require.ErrorIs(t, err, moyo.ErrInput)
}

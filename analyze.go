// SPDX-License-Identifier: MIT

package moyo

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/search"
	"github.com/katalvlaran/moyo/symmetrize"
)

// Analyze finds the space group of cell and standardizes it.
//
// Steps:
//  1. Find the primitive cell and its operations, loosening or tightening
//     the tolerances after tolerance errors (search.IterativeSymmetrySearch).
//  2. Identify the space-group type in the requested setting.
//  3. Standardize the primitive cell and label the Wyckoff positions.
//
// The tolerances finally used are reported in the dataset.
func Analyze(cell base.Cell, opts ...Option) (*Dataset, error) {
	o := gatherOptions(opts)
	start := time.Now()
	ds, err := analyze(cell, o)
	o.Metrics.observe(kindCrystal, start, len(lo.FromPtr(ds).Operations), err)

	return ds, err
}

func analyze(cell base.Cell, o Options) (*Dataset, error) {
	if _, err := base.NewCell(cell.Lattice, cell.Positions, cell.Numbers); err != nil {
		return nil, errors.Wrap(err, "moyo: input cell")
	}
	res, err := search.IterativeSymmetrySearch(cell, o.Symprec, o.AngleTolerance, o.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "moyo: symmetry search")
	}
	prim := res.PrimitiveCell
	ss := res.Search

	eps := translationEpsilon(res.Symprec, prim.Cell.Lattice)
	sg, err := identify.NewSpaceGroup(ss.Operations, o.Setting, eps)
	if err != nil {
		return nil, errors.Wrapf(err, "moyo: identify %d operations", len(ss.Operations))
	}
	logSpaceGroup(o.Logger, sg)

	std, err := symmetrize.NewStandardizedCell(prim.Cell, ss.Operations, ss.Permutations, sg, res.Symprec, eps)
	if err != nil {
		return nil, errors.Wrapf(err, "moyo: standardize No. %d (Hall %d)", sg.Number, sg.HallNumber)
	}
	typ, err := data.SpaceGroupTypeOf(sg.Number)
	if err != nil {
		return nil, errors.Wrap(err, "moyo: space-group type")
	}
	entry, err := data.HallSymbolEntryOf(std.HallNumber)
	if err != nil {
		return nil, errors.Wrap(err, "moyo: Hall symbol entry")
	}

	wyckoffs := lo.Map(prim.SiteMapping, func(p int, _ int) data.WyckoffPosition { return std.Wyckoffs[p] })

	return &Dataset{
		Number:              sg.Number,
		HallNumber:          std.HallNumber,
		Operations:          search.OperationsInCell(prim, ss.Operations),
		Orbits:              inputOrbits(prim.SiteMapping, len(prim.Cell.Positions), ss.Permutations),
		Wyckoffs:            lo.Map(wyckoffs, func(w data.WyckoffPosition, _ int) string { return w.Letter }),
		SiteSymmetrySymbols: lo.Map(wyckoffs, func(w data.WyckoffPosition, _ int) string { return w.SiteSymmetry }),
		StdCell:             std.Cell,
		StdLinear:           prim.Linear.Mul(std.Transformation.Linear.ToFloat()),
		StdOriginShift:      prim.Linear.MulVec(std.Transformation.OriginShift),
		StdRotationMatrix:   std.RotationMatrix,
		PrimStdCell:         std.PrimCell,
		PrimStdLinear:       prim.Linear.Mul(std.PrimTransformation.Linear.ToFloat()),
		PrimStdOriginShift:  prim.Linear.MulVec(std.PrimTransformation.OriginShift),
		MappingStdPrim:      std.SiteMapping,
		Symprec:             res.Symprec,
		AngleTolerance:      res.AngleTolerance,
		PearsonSymbol:       symmetrize.PearsonSymbol(typ.CrystalFamily, entry.Centering, std.Cell.NumAtoms()),
	}, nil
}

// AnalyzeMagnetic finds the magnetic space group of mc and standardizes it.
// Moments are symmetrized and rotated together with the cell.
func AnalyzeMagnetic[M base.Moment[M]](mc base.MagneticCell[M], opts ...Option) (*MagneticDataset[M], error) {
	o := gatherOptions(opts)
	start := time.Now()
	ds, err := analyzeMagnetic(mc, o)
	o.Metrics.observe(kindMagnetic, start, len(lo.FromPtr(ds).MagneticOperations), err)

	return ds, err
}

func analyzeMagnetic[M base.Moment[M]](mc base.MagneticCell[M], o Options) (*MagneticDataset[M], error) {
	cell, err := base.NewCell(mc.Cell.Lattice, mc.Cell.Positions, mc.Cell.Numbers)
	if err == nil {
		_, err = base.NewMagneticCell(cell, mc.Moments)
	}
	if err != nil {
		return nil, errors.Wrap(err, "moyo: input magnetic cell")
	}
	res, err := search.IterativeMagneticSymmetrySearch(mc, o.Symprec, o.AngleTolerance, o.MagSymprec, o.Action, o.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "moyo: magnetic symmetry search")
	}
	prim := res.PrimitiveCell
	ss := res.Search

	eps := translationEpsilon(res.Symprec, prim.MagneticCell.Cell.Lattice)
	msg, err := identify.NewMagneticSpaceGroup(ss.MagneticOperations, eps)
	if err != nil {
		return nil, errors.Wrapf(err, "moyo: identify %d magnetic operations", len(ss.MagneticOperations))
	}
	o.Logger.Debug("magnetic space group",
		slog.Int("uni", msg.UNINumber),
		slog.String("type", msg.ConstructType.String()))

	std, err := symmetrize.NewStandardizedMagneticCell(prim.MagneticCell, ss.MagneticOperations, ss.Permutations, msg, res.Symprec, o.Action)
	if err != nil {
		return nil, errors.Wrapf(err, "moyo: standardize UNI %d", msg.UNINumber)
	}

	return &MagneticDataset[M]{
		UNINumber:          msg.UNINumber,
		MagneticOperations: search.MagneticOperationsInCell(prim, ss.MagneticOperations),
		Orbits:             inputOrbits(prim.SiteMapping, prim.MagneticCell.NumAtoms(), ss.Permutations),
		StdMagCell:         std.MagCell,
		StdLinear:          prim.Linear.Mul(std.Transformation.Linear.ToFloat()),
		StdOriginShift:     prim.Linear.MulVec(std.Transformation.OriginShift),
		StdRotationMatrix:  std.RotationMatrix,
		PrimStdMagCell:     std.PrimMagCell,
		PrimStdLinear:      prim.Linear.Mul(std.PrimTransformation.Linear.ToFloat()),
		PrimStdOriginShift: prim.Linear.MulVec(std.PrimTransformation.OriginShift),
		MappingStdPrim:     std.SiteMapping,
		Symprec:            res.Symprec,
		AngleTolerance:     res.AngleTolerance,
		MagSymprec:         res.MagSymprec,
	}, nil
}

// AnalyzeAll runs Analyze on every cell with at most Options.Concurrency
// cells in flight. Results keep the order of cells. The first failure
// cancels the cells not yet started and is returned with the index of its
// cell.
func AnalyzeAll(ctx context.Context, cells []base.Cell, opts ...Option) ([]*Dataset, error) {
	o := gatherOptions(opts)
	out := make([]*Dataset, len(cells))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for i, cell := range cells {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			ds, err := analyze(cell, o)
			o.Metrics.observe(kindCrystal, start, len(lo.FromPtr(ds).Operations), err)
			if err != nil {
				return errors.WithMessagef(err, "cell %d", i)
			}
			out[i] = ds

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// translationEpsilon turns symprec into a tolerance on fractional
// translations of a cell with the given lattice.
func translationEpsilon(symprec float64, lattice base.Lattice) float64 {
	return symprec / math.Cbrt(lattice.Volume())
}

// inputOrbits labels every input site with the lowest input index of its
// orbit, given the orbits of the primitive sites under perms.
func inputOrbits(siteMapping []int, numPrim int, perms []base.Permutation) []int {
	primOrbits := base.OrbitsFromPermutations(numPrim, perms)

	return base.OrbitsFromMapping(lo.Map(siteMapping, func(p int, _ int) int { return primOrbits[p] }))
}

func logSpaceGroup(logger *slog.Logger, sg *identify.SpaceGroup) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{slog.Int("number", sg.Number), slog.Int("hall_number", sg.HallNumber)}
	if typ, err := data.SpaceGroupTypeOf(sg.Number); err == nil {
		attrs = append(attrs,
			slog.String("geometric_class", typ.GeometricClass.String()),
			slog.String("arithmetic_class", typ.ArithmeticSymbol))
	}
	logger.Debug("space group", attrs...)
}

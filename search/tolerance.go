// SPDX-License-Identifier: MIT

package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/moyo/base"
)

const (
	// MaxTrials bounds the attempts of the iterative searches.
	MaxTrials = 16

	// InitialStride is the first factor by which tolerances are rescaled.
	InitialStride = 2.0
)

// toleranceHandler rescales (symprec, angle, magSymprec) after a tolerance
// error: up after ErrTooSmallTolerance, down after ErrTooLargeTolerance.
// Each change of direction replaces the stride by its square root, halving
// the step in log scale.
type toleranceHandler struct {
	symprec    float64
	angle      base.AngleTolerance
	magSymprec float64
	stride     float64
	prev       error
	logger     *slog.Logger
}

func newToleranceHandler(symprec float64, angle base.AngleTolerance, magSymprec float64, logger *slog.Logger) *toleranceHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &toleranceHandler{symprec: symprec, angle: angle, magSymprec: magSymprec, stride: InitialStride, logger: logger}
}

// update rescales after err and reports whether a retry makes sense.
func (h *toleranceHandler) update(trial int, err error) bool {
	var kind error
	switch {
	case errors.Is(err, ErrTooSmallTolerance):
		kind = ErrTooSmallTolerance
	case errors.Is(err, ErrTooLargeTolerance):
		kind = ErrTooLargeTolerance
	default:
		return false
	}
	if h.prev != nil && h.prev != kind {
		h.stride = math.Sqrt(h.stride)
	}
	h.prev = kind

	factor := h.stride
	if kind == ErrTooLargeTolerance {
		factor = 1 / h.stride
	}
	h.symprec *= factor
	h.magSymprec *= factor
	h.angle = h.angle.Scale(factor)
	h.logger.Debug("retrying symmetry search",
		slog.Int("trial", trial),
		slog.String("cause", kind.Error()),
		slog.Float64("symprec", h.symprec),
		slog.Float64("stride", h.stride))

	return true
}

// IterativeResult is the outcome of IterativeSymmetrySearch with the
// tolerances that produced it.
type IterativeResult struct {
	PrimitiveCell  *PrimitiveCell
	Search         *PrimitiveSymmetrySearch
	Symprec        float64
	AngleTolerance base.AngleTolerance
}

// IterativeSymmetrySearch runs NewPrimitiveCell and
// NewPrimitiveSymmetrySearch, rescaling the tolerances after a tolerance
// error, for at most MaxTrials attempts. Other errors are returned at once.
// A nil logger discards retry logs.
func IterativeSymmetrySearch(cell base.Cell, symprec float64, angleTolerance base.AngleTolerance, logger *slog.Logger) (*IterativeResult, error) {
	h := newToleranceHandler(symprec, angleTolerance, 0, logger)
	var err error
	for trial := 0; trial < MaxTrials; trial++ {
		var (
			prim *PrimitiveCell
			ss   *PrimitiveSymmetrySearch
		)
		if prim, err = NewPrimitiveCell(cell, h.symprec); err == nil {
			if ss, err = NewPrimitiveSymmetrySearch(prim.Cell, h.symprec, h.angle); err == nil {
				return &IterativeResult{PrimitiveCell: prim, Search: ss, Symprec: h.symprec, AngleTolerance: h.angle}, nil
			}
		}
		if !h.update(trial, err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("IterativeSymmetrySearch: %d trials: %w", MaxTrials, err)
}

// IterativeMagneticResult is the outcome of IterativeMagneticSymmetrySearch.
type IterativeMagneticResult[M base.Moment[M]] struct {
	PrimitiveCell  *PrimitiveMagneticCell[M]
	Search         *MagneticSymmetrySearch
	Symprec        float64
	AngleTolerance base.AngleTolerance
	MagSymprec     float64
}

// IterativeMagneticSymmetrySearch is IterativeSymmetrySearch for magnetic
// cells; magSymprec is rescaled together with symprec.
func IterativeMagneticSymmetrySearch[M base.Moment[M]](mc base.MagneticCell[M], symprec float64, angleTolerance base.AngleTolerance, magSymprec float64, action base.RotationMomentAction, logger *slog.Logger) (*IterativeMagneticResult[M], error) {
	h := newToleranceHandler(symprec, angleTolerance, magSymprec, logger)
	var err error
	for trial := 0; trial < MaxTrials; trial++ {
		var (
			prim *PrimitiveMagneticCell[M]
			ss   *MagneticSymmetrySearch
		)
		if prim, err = NewPrimitiveMagneticCell(mc, h.symprec, h.magSymprec); err == nil {
			if ss, err = NewMagneticSymmetrySearch(prim.MagneticCell, h.symprec, h.angle, h.magSymprec, action); err == nil {
				return &IterativeMagneticResult[M]{
					PrimitiveCell:  prim,
					Search:         ss,
					Symprec:        h.symprec,
					AngleTolerance: h.angle,
					MagSymprec:     h.magSymprec,
				}, nil
			}
		}
		if !h.update(trial, err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("IterativeMagneticSymmetrySearch: %d trials: %w", MaxTrials, err)
}

// SPDX-License-Identifier: MIT

package symmetrize

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// AssignWyckoffs labels every site of conv, a cell in the conventional basis
// of hallNumber. orbits[i] is any label shared exactly by the sites
// equivalent to site i; the multiplicity of a site is the size of its
// orbit in conv.
func AssignWyckoffs(conv base.Cell, orbits []int, hallNumber int, symprec float64) ([]data.WyckoffPosition, error) {
	w, err := newWyckoffTable(hallNumber)
	if err != nil {
		return nil, fmt.Errorf("AssignWyckoffs: %w", err)
	}
	indices, err := w.assign(conv, orbits, symprec)
	if err != nil {
		return nil, fmt.Errorf("AssignWyckoffs: %w", err)
	}

	return lo.Map(indices, func(i int, _ int) data.WyckoffPosition { return w.positions[i] }), nil
}

// wyckoffTable holds the Wyckoff positions of a Hall setting with its
// conventional operations.
type wyckoffTable struct {
	hallNumber int
	positions  []data.WyckoffPosition
	operations base.Operations
	solvers    []*ops.SNF
}

func newWyckoffTable(hallNumber int) (*wyckoffTable, error) {
	positions, err := data.Load().WyckoffPositions(hallNumber)
	if err != nil {
		return nil, err
	}
	hs, err := data.HallSymbolFromNumber(hallNumber)
	if err != nil {
		return nil, err
	}
	conventional, err := hs.ConventionalOperations()
	if err != nil {
		return nil, err
	}
	solvers := make([]*ops.SNF, len(positions))
	for i, wp := range positions {
		if solvers[i], err = ops.NewSNF(wp.Space.Linear.Dense()); err != nil {
			return nil, err
		}
	}

	return &wyckoffTable{hallNumber: hallNumber, positions: positions, operations: conventional, solvers: solvers}, nil
}

// assign returns, per site, the index of its Wyckoff position. Only the
// first site of every orbit is matched; the others inherit its label.
func (w *wyckoffTable) assign(conv base.Cell, orbits []int, symprec float64) ([]int, error) {
	multiplicity := lo.CountValues(orbits)
	byOrbit := make(map[int]int, len(multiplicity))
	out := make([]int, conv.NumAtoms())
	for i, o := range orbits {
		if idx, ok := byOrbit[o]; ok {
			out[i] = idx
			continue
		}
		idx, ok := w.match(conv.Lattice, conv.Positions[i], multiplicity[o], symprec)
		if !ok {
			return nil, fmt.Errorf("site %d with multiplicity %d in Hall setting %d: %w", i, multiplicity[o], w.hallNumber, ErrWyckoffAssignment)
		}
		byOrbit[o] = idx
		out[i] = idx
	}

	return out, nil
}

// match tries the positions of the given multiplicity in letter order,
// moving pos by every conventional operation onto the representative
// subspace.
func (w *wyckoffTable) match(lattice base.Lattice, pos matrix.Vec3, multiplicity int, symprec float64) (int, bool) {
	for i, wp := range w.positions {
		if wp.Multiplicity != multiplicity {
			continue
		}
		for _, op := range w.operations {
			if w.onSpace(i, lattice, op.Apply(pos), symprec) {
				return i, true
			}
		}
	}

	return 0, false
}

// onSpace reports whether x lies within symprec (Cartesian) of the affine
// subspace of position i, modulo lattice vectors.
func (w *wyckoffTable) onSpace(i int, lattice base.Lattice, x matrix.Vec3, symprec float64) bool {
	space := w.positions[i].Space
	snf := w.solvers[i]
	b := x.Sub(space.Origin)

	// D·y ≡ L·b (mod 1) with x = R·y; rows with d = 0 keep y = 0 and carry
	// the residual
	var lb, y matrix.Vec3
	for r := 0; r < 3; r++ {
		for k := 0; k < 3; k++ {
			lb[r] += float64(snf.L.Get(r, k)) * b[k]
		}
		if d := snf.Diag(r); d != 0 {
			y[r] = lb[r] / float64(d)
		}
	}
	var params matrix.Vec3
	for r := 0; r < 3; r++ {
		for k := 0; k < 3; k++ {
			params[r] += float64(snf.R.Get(r, k)) * y[k]
		}
	}
	residual := space.Linear.MulFVec(params).Add(space.Origin).Sub(x).WrapSigned()

	return lattice.Cartesian(residual).Norm() < symprec
}

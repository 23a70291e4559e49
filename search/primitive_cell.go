// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// PrimitiveCell is a Minkowski-reduced primitive cell of an input cell.
type PrimitiveCell struct {
	// Cell is the primitive cell.
	Cell base.Cell
	// Linear relates the bases: primitive basis = input basis · Linear.
	// Its inverse is integral with determinant len(Translations).
	Linear matrix.Mat3
	// SiteMapping sends every input site to its primitive site.
	SiteMapping []int
	// Translations are the pure translations of the input cell, in input
	// fractional coordinates, the zero translation included.
	Translations []matrix.Vec3
}

// pureTranslation is a translation together with the site permutation it
// induces.
type pureTranslation struct {
	translation matrix.Vec3
	perm        base.Permutation
}

// reducedCell is an input cell moved to its Minkowski-reduced basis.
type reducedCell struct {
	cell  base.Cell
	trans matrix.IMat3 // reduced basis = input basis · trans
	index *PeriodicIndex
}

func newReducedCell(cell base.Cell, symprec float64) (reducedCell, error) {
	_, trans, err := cell.Lattice.MinkowskiReduce()
	if err != nil {
		return reducedCell{}, err
	}
	reduced := base.MustUnimodular(trans, matrix.Vec3{}).TransformCell(cell)
	// the 27 images cover the rough search sphere only below this bound
	if 2*symprec > reduced.Lattice.MinNorm()/2 {
		return reducedCell{}, fmt.Errorf("symprec %g vs shortest vector %g: %w", symprec, reduced.Lattice.MinNorm(), ErrTooLargeTolerance)
	}

	return reducedCell{cell: reduced, trans: trans, index: NewPeriodicIndex(reduced)}, nil
}

// pureTranslations collects every translation pos[dst] − pos[src] over the
// pivot sites that maps the structure onto itself within symprec.
func (rc reducedCell) pureTranslations(symprec float64) []pureTranslation {
	pivots := pivotSites(rc.cell.Numbers)
	src := rc.cell.Positions[pivots[0]]
	identity := matrix.IIdentity()

	var out []pureTranslation
	for _, dst := range pivots {
		rough := rc.cell.Positions[dst].Sub(src)
		perm, ok := solveCorrespondence(rc.index, rc.cell, identity, rough, 2*symprec)
		if !ok {
			continue
		}
		t, distance := symmetrizeTranslation(rc.cell, perm, identity, rough)
		if distance < symprec {
			out = append(out, pureTranslation{translation: t, perm: perm})
		}
	}

	return out
}

// NewPrimitiveCell finds the pure translations of cell within symprec and
// builds the primitive cell they define.
//
// Steps:
//  1. Minkowski-reduce the input lattice.
//  2. Collect pure translations through the pivot sites.
//  3. Their number must divide the number of sites.
//  4. Build the sublattice spanned by Z³ and the translations (HNF).
//  5. Average every orbit of sites into one primitive site.
//  6. Minkowski-reduce the primitive cell.
func NewPrimitiveCell(cell base.Cell, symprec float64) (*PrimitiveCell, error) {
	rc, err := newReducedCell(cell, symprec)
	if err != nil {
		return nil, fmt.Errorf("NewPrimitiveCell: %w", err)
	}
	translations := rc.pureTranslations(symprec)
	if len(translations) == 0 || cell.NumAtoms()%len(translations) != 0 {
		return nil, fmt.Errorf("NewPrimitiveCell: %d translations for %d sites: %w", len(translations), cell.NumAtoms(), ErrTooSmallTolerance)
	}

	prim, err := rc.primitive(translations)
	if err != nil {
		return nil, fmt.Errorf("NewPrimitiveCell: %w", err)
	}

	return prim, nil
}

// primitive builds the PrimitiveCell spanned by the given translations.
func (rc reducedCell) primitive(translations []pureTranslation) (*PrimitiveCell, error) {
	size := len(translations)
	toPrim, err := sublatticeTransformation(lo.Map(translations, func(p pureTranslation, _ int) matrix.Vec3 { return p.translation }))
	if err != nil {
		return nil, err
	}

	// each orbit is averaged over the translations connecting its members
	orbits := base.OrbitsFromPermutations(rc.cell.NumAtoms(), lo.Map(translations, func(p pureTranslation, _ int) base.Permutation { return p.perm }))
	var (
		positions []matrix.Vec3
		numbers   []int
		label     = make(map[int]int)
		mapping   = make([]int, len(orbits))
	)
	for i, rep := range orbits {
		if i != rep {
			mapping[i] = label[rep]
			continue
		}
		origin := rc.cell.Positions[i]
		var sum matrix.Vec3
		for _, p := range translations {
			sum = sum.Add(rc.cell.Positions[p.perm.Apply(i)].Sub(p.translation).Sub(origin).WrapSigned())
		}
		avg := origin.Add(sum.Scale(1 / float64(size)))
		label[i] = len(positions)
		mapping[i] = len(positions)
		positions = append(positions, toPrim.MulVec(avg))
		numbers = append(numbers, rc.cell.Numbers[i])
	}
	if len(positions)*size != rc.cell.NumAtoms() {
		return nil, fmt.Errorf("%d orbits of %d sites under %d translations: %w", len(positions), rc.cell.NumAtoms(), size, ErrNoPrimitiveCell)
	}

	primInv, err := toPrim.Inverse()
	if err != nil {
		return nil, err
	}
	primLattice, err := base.NewLattice(rc.cell.Lattice.Basis.Mul(primInv))
	if err != nil {
		return nil, err
	}
	primCell, err := base.NewCell(primLattice, positions, numbers)
	if err != nil {
		return nil, err
	}
	_, reduceTrans, err := primLattice.MinkowskiReduce()
	if err != nil {
		return nil, err
	}
	primCell = base.MustUnimodular(reduceTrans, matrix.Vec3{}).TransformCell(primCell)

	trans := rc.trans.ToFloat()

	return &PrimitiveCell{
		Cell:         primCell,
		Linear:       trans.Mul(primInv).Mul(reduceTrans.ToFloat()),
		SiteMapping:  mapping,
		Translations: lo.Map(translations, func(p pureTranslation, _ int) matrix.Vec3 { return trans.MulVec(p.translation).Wrap() }),
	}, nil
}

// sublatticeTransformation returns M with x_prim = M·x for the lattice
// spanned by Z³ and the translations: the column HNF of
// [size·I | size·t_1 ... size·t_k] has the primitive basis, scaled by size,
// in its leading columns. det(M) must equal the number of translations.
func sublatticeTransformation(translations []matrix.Vec3) (matrix.Mat3, error) {
	size := len(translations)
	a, err := matrix.NewIDense(3, 3+size)
	if err != nil {
		return matrix.Mat3{}, err
	}
	for i := 0; i < 3; i++ {
		a.Put(i, i, size)
	}
	for k, t := range translations {
		scaled := t.Scale(float64(size)).Round()
		for i := 0; i < 3; i++ {
			a.Put(i, 3+k, scaled[i])
		}
	}
	hnf, err := ops.NewHNF(a)
	if err != nil {
		return matrix.Mat3{}, err
	}

	var basis matrix.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			basis[i][j] = float64(hnf.H.Get(i, j)) / float64(size)
		}
	}
	inv, err := basis.Inverse()
	if err != nil {
		return matrix.Mat3{}, fmt.Errorf("degenerate sublattice: %w", ErrNoPrimitiveCell)
	}
	m := inv.Round()
	if d := m.Det(); d != size {
		return matrix.Mat3{}, fmt.Errorf("sublattice index %d, want %d: %w", d, size, ErrNoPrimitiveCell)
	}
	if !m.ToFloat().AlmostEqual(inv, 1e-6) {
		return matrix.Mat3{}, fmt.Errorf("translations are not commensurate: %w", ErrTooLargeTolerance)
	}

	return m.ToFloat(), nil
}

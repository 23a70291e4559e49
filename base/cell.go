// SPDX-License-Identifier: MIT

package base

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/matrix"
)

// Cell is a crystal structure: a lattice, fractional positions in [0,1)³ and
// one species label per site.
type Cell struct {
	Lattice   Lattice       `json:"lattice"`
	Positions []matrix.Vec3 `json:"positions"`
	Numbers   []int         `json:"numbers"`
}

// NewCell validates lengths and finiteness and wraps positions into [0,1).
// The slices are copied.
func NewCell(lattice Lattice, positions []matrix.Vec3, numbers []int) (Cell, error) {
	if len(positions) == 0 {
		return Cell{}, fmt.Errorf("NewCell: no atoms: %w", ErrInput)
	}
	if len(positions) != len(numbers) {
		return Cell{}, fmt.Errorf("NewCell: %d positions vs %d numbers: %w", len(positions), len(numbers), ErrInput)
	}
	for i, p := range positions {
		for _, x := range p {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return Cell{}, fmt.Errorf("NewCell: site %d not finite: %w", i, ErrInput)
			}
		}
	}
	if _, err := NewLattice(lattice.Basis); err != nil {
		return Cell{}, fmt.Errorf("NewCell: %w", err)
	}

	return Cell{
		Lattice:   lattice,
		Positions: lo.Map(positions, func(p matrix.Vec3, _ int) matrix.Vec3 { return p.Wrap() }),
		Numbers:   append([]int(nil), numbers...),
	}, nil
}

// newCellUnchecked is the internal constructor for cells derived from an
// already validated cell.
func newCellUnchecked(lattice Lattice, positions []matrix.Vec3, numbers []int) Cell {
	return Cell{
		Lattice:   lattice,
		Positions: lo.Map(positions, func(p matrix.Vec3, _ int) matrix.Vec3 { return p.Wrap() }),
		Numbers:   numbers,
	}
}

// NumAtoms returns the number of sites.
func (c Cell) NumAtoms() int {
	return len(c.Positions)
}

// Rotate rigidly rotates the lattice; fractional positions are unchanged.
func (c Cell) Rotate(r matrix.Mat3) Cell {
	return Cell{Lattice: c.Lattice.Rotate(r), Positions: c.Positions, Numbers: c.Numbers}
}

// WithPositions returns a copy of c with replaced positions (wrapped).
func (c Cell) WithPositions(positions []matrix.Vec3) Cell {
	return newCellUnchecked(c.Lattice, positions, c.Numbers)
}

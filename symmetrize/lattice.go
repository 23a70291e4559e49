// SPDX-License-Identifier: MIT

package symmetrize

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/matrix/ops"
)

// SymmetrizeLattice averages the metric of lattice over rotations (given in
// the basis of lattice) and returns the lattice with that metric in
// upper-triangular form: a along x, b in the xy plane.
//
// The second result is the rotation Q with Q·B ≈ B', B the input basis and
// B' the returned one. For a left-handed input Q is improper.
func SymmetrizeLattice(lattice base.Lattice, rotations []matrix.IMat3) (base.Lattice, matrix.Mat3, error) {
	if len(rotations) == 0 {
		return base.Lattice{}, matrix.Mat3{}, fmt.Errorf("SymmetrizeLattice: no rotations: %w", base.ErrInput)
	}
	g := lattice.Metric()
	var avg matrix.Mat3
	for _, r := range rotations {
		rf := r.ToFloat()
		avg = avg.Add(rf.Transpose().Mul(g).Mul(rf))
	}
	avg = avg.Scale(1 / float64(len(rotations)))

	l, err := ops.Cholesky(avg)
	if err != nil {
		return base.Lattice{}, matrix.Mat3{}, fmt.Errorf("SymmetrizeLattice: %w", err)
	}
	tri := l.Transpose()
	sym, err := base.NewLattice(tri)
	if err != nil {
		return base.Lattice{}, matrix.Mat3{}, fmt.Errorf("SymmetrizeLattice: %w", err)
	}

	inv, err := lattice.Basis.Inverse()
	if err != nil {
		return base.Lattice{}, matrix.Mat3{}, fmt.Errorf("SymmetrizeLattice: %w", err)
	}
	q, r := ops.QR(tri.Mul(inv))
	// positive diagonal of R
	for j := 0; j < 3; j++ {
		if r[j][j] < 0 {
			for i := 0; i < 3; i++ {
				q[i][j] = -q[i][j]
			}
		}
	}

	return sym, q, nil
}

// PearsonSymbol returns the Pearson symbol, e.g. "cF8" or "hP2": the crystal
// family letter, the lattice letter (S for A, B and C centerings) and the
// number of atoms. For rhombohedral lattices numAtoms counts the hexagonal
// triple cell and the symbol uses the primitive rhombohedral count.
func PearsonSymbol(family data.CrystalFamily, centering data.Centering, numAtoms int) string {
	letter := centering.Letter()
	switch centering {
	case data.CenteringA, data.CenteringB, data.CenteringC:
		letter = "S"
	case data.CenteringR:
		numAtoms /= centering.Order()
	}

	return family.Letter() + letter + strconv.Itoa(numAtoms)
}

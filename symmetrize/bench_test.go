package symmetrize_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/search"
	"github.com/katalvlaran/moyo/symmetrize"
)

func BenchmarkNewStandardizedCell_Rutile(b *testing.B) {
	const u = 0.3053
	lattice, err := base.NewLattice(matrix.Mat3{{4.594, 0, 0}, {0, 4.594, 0}, {0, 0, 2.959}})
	if err != nil {
		b.Fatal(err)
	}
	cell, err := base.NewCell(lattice,
		[]matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}, {u, u, 0}, {-u, -u, 0}, {0.5 + u, 0.5 - u, 0.5}, {0.5 - u, 0.5 + u, 0.5}},
		[]int{22, 22, 8, 8, 8, 8})
	if err != nil {
		b.Fatal(err)
	}
	prim, err := search.NewPrimitiveCell(cell, symprec)
	if err != nil {
		b.Fatal(err)
	}
	ss, err := search.NewPrimitiveSymmetrySearch(prim.Cell, symprec, base.DefaultAngle())
	if err != nil {
		b.Fatal(err)
	}
	eps := symprec / math.Cbrt(prim.Cell.Lattice.Volume())
	sg, err := identify.NewSpaceGroup(ss.Operations, data.Standard, eps)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := symmetrize.NewStandardizedCell(prim.Cell, ss.Operations, ss.Permutations, sg, symprec, eps); err != nil {
			b.Fatal(err)
		}
	}
}

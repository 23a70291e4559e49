package symmetrize_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/identify"
	"github.com/katalvlaran/moyo/matrix"
	"github.com/katalvlaran/moyo/search"
	"github.com/katalvlaran/moyo/symmetrize"
)

// ExampleNewStandardizedCell standardizes hcp Mg given in a rotated
// hexagonal basis.
func ExampleNewStandardizedCell() {
	const a, c = 3.21, 5.21
	lattice, _ := base.NewLattice(matrix.FromColumns(
		matrix.Vec3{a * math.Sqrt(3) / 2, -a / 2, 0},
		matrix.Vec3{0, a, 0},
		matrix.Vec3{0, 0, c},
	))
	cell, _ := base.NewCell(lattice, []matrix.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}}, []int{12, 12})

	prim, _ := search.NewPrimitiveCell(cell, 1e-4)
	ss, _ := search.NewPrimitiveSymmetrySearch(prim.Cell, 1e-4, base.DefaultAngle())
	eps := 1e-4 / math.Cbrt(prim.Cell.Lattice.Volume())
	sg, _ := identify.NewSpaceGroup(ss.Operations, data.Standard, eps)
	std, err := symmetrize.NewStandardizedCell(prim.Cell, ss.Operations, ss.Permutations, sg, 1e-4, eps)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sg.Number, std.HallNumber, std.Wyckoffs[0].Letter, std.Wyckoffs[0].SiteSymmetry)
	fmt.Println(symmetrize.PearsonSymbol(data.FamilyHexagonal, data.CenteringP, std.Cell.NumAtoms()))
	// Output:
	// 194 488 c -6m2
	// hP2
}

package moyo_test

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/moyo"
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
	"github.com/katalvlaran/moyo/matrix"
)

// ExampleAnalyze classifies hexagonal close-packed Mg.
func ExampleAnalyze() {
	const a, c = 3.21, 5.21
	lattice, _ := base.NewLattice(matrix.FromColumns(
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, c},
	))
	cell, _ := base.NewCell(lattice, []matrix.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}}, []int{12, 12})

	ds, err := moyo.Analyze(cell, moyo.WithSymprec(1e-4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ds.Number, ds.HallNumber, len(ds.Operations))
	fmt.Println(ds.Orbits, ds.Wyckoffs, ds.SiteSymmetrySymbols)
	fmt.Println(ds.PearsonSymbol)
	// Output:
	// 194 488 24
	// [0 0] [c c] [-6m2 -6m2]
	// hP2
}

// ExampleAnalyzeAll runs a small batch on two workers.
func ExampleAnalyzeAll() {
	lattice, _ := base.NewLattice(matrix.Identity())
	sc, _ := base.NewCell(lattice, []matrix.Vec3{{0, 0, 0}}, []int{1})
	bcc, _ := base.NewCell(lattice, []matrix.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 1})

	out, err := moyo.AnalyzeAll(context.Background(), []base.Cell{sc, bcc}, moyo.WithConcurrency(2))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, ds := range out {
		fmt.Println(ds.Number, len(ds.Operations))
	}
	// Output:
	// 221 48
	// 229 96
}

// ExampleOperationsFromNumber lists the tabulated operations of P2/m.
func ExampleOperationsFromNumber() {
	ops, err := moyo.OperationsFromNumber(10, data.Standard)
	if err != nil {
		fmt.Println(err)
		return
	}
	improper := 0
	for _, op := range ops {
		if op.Rotation.Det() < 0 {
			improper++
		}
	}
	fmt.Println(len(ops), improper)
	// Output:
	// 4 2
}

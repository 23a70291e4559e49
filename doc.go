// SPDX-License-Identifier: MIT

// Package moyo detects the symmetry of crystal structures and moves them
// into standard settings.
//
// Given a periodic cell (lattice, fractional positions, species) moyo finds
// the primitive cell and its space-group operations within a length
// tolerance, identifies the space-group type among the 230 types and 530
// Hall settings, and builds the standardized conventional and primitive
// cells with Wyckoff letters and site-symmetry symbols. Cells carrying
// collinear or non-collinear magnetic moments are classified into the 1,651
// magnetic space-group types.
//
// Entry points:
//
//	Analyze / AnalyzeMagnetic — full analysis of one cell
//	AnalyzeAll                — bounded concurrent batch, input order kept
//	Identify*                 — classification of precomputed operations
//	HallSymbolEntry, SpaceGroupType, MagneticSpaceGroupType,
//	OperationsFromNumber      — lookups in the embedded tables
//
// Subpackages:
//
//	matrix/, matrix/ops — fixed-size and dense integer linear algebra, HNF/SNF
//	reduce/             — Niggli, Minkowski and Delaunay reduction
//	base/               — cells, operations, transformations, moments
//	group/              — group closure and origin-shift solving
//	data/               — Hall symbols, Wyckoff positions, magnetic types
//	search/             — primitive cell and symmetry operation search
//	identify/           — point, space and magnetic space group types
//	symmetrize/         — standardization and Wyckoff assignment
//
// Tolerances are explicit: symprec in lattice length units, an optional
// angle tolerance in radians and magSymprec in moment units. The values
// actually used after the automatic tolerance adjustment are reported in
// every dataset.
//
// Quick example:
//
//	lattice, _ := base.NewLattice(matrix.Identity())
//	cell, _ := base.NewCell(lattice, []matrix.Vec3{{0, 0, 0}}, []int{1})
//	ds, err := moyo.Analyze(cell, moyo.WithSymprec(1e-5))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ds.Number) // 221
//
// All functions are safe for concurrent use; the embedded tables are
// built once and never mutated.
package moyo

// SPDX-License-Identifier: MIT

package search

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

const (
	// rtree fan-out; small trees, so the values matter little
	rtreeMinChildren = 4
	rtreeMaxChildren = 16

	// half-width of the box stored for a point image
	imageBoxHalfWidth = 1e-12
)

// Neighbor is the result of a PeriodicIndex lookup: the site whose image
// pos[Site] + Offset lies Distance (Cartesian) away from the query.
type Neighbor struct {
	Site     int
	Offset   matrix.IVec3
	Distance float64
}

// image is one periodic copy of a site; the R-tree holds pointers into the
// index's arena.
type image struct {
	site   int
	offset matrix.IVec3
	cart   matrix.Vec3
}

// Bounds implements rtreego.Spatial.
func (im *image) Bounds() rtreego.Rect {
	return rtreego.Point{im.cart[0], im.cart[1], im.cart[2]}.ToRect(imageBoxHalfWidth)
}

// PeriodicIndex answers nearest-site queries for a cell under periodic
// boundary conditions. Every site is replicated into the 27 cells with
// offsets in {-1,0,1}³, which covers every query within half the shortest
// lattice vector when the lattice is Minkowski reduced.
type PeriodicIndex struct {
	lattice base.Lattice
	images  []image
	tree    *rtreego.Rtree
}

// NewPeriodicIndex builds the index over the wrapped positions of cell.
//
// Complexity: O(27·n·log n).
func NewPeriodicIndex(cell base.Cell) *PeriodicIndex {
	idx := &PeriodicIndex{
		lattice: cell.Lattice,
		images:  make([]image, 0, 27*cell.NumAtoms()),
	}
	for site, pos := range cell.Positions {
		wrapped := pos.Wrap()
		// offsets ordered (z, y, x) outermost first
		for nz := -1; nz <= 1; nz++ {
			for ny := -1; ny <= 1; ny++ {
				for nx := -1; nx <= 1; nx++ {
					offset := matrix.IVec3{nx, ny, nz}
					idx.images = append(idx.images, image{
						site:   site,
						offset: offset,
						cart:   cell.Lattice.Cartesian(wrapped.Add(offset.ToFloat())),
					})
				}
			}
		}
	}
	objs := make([]rtreego.Spatial, len(idx.images))
	for i := range idx.images {
		objs[i] = &idx.images[i]
	}
	idx.tree = rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, objs...)

	return idx
}

// Nearest returns the site image closest to the fractional position pos,
// provided it lies strictly within radius (Cartesian). The query is wrapped
// into [0,1) first; the returned offset refers to the wrapped query.
func (idx *PeriodicIndex) Nearest(pos matrix.Vec3, radius float64) (Neighbor, bool) {
	query := idx.lattice.Cartesian(pos.Wrap())
	box := rtreego.Point{query[0], query[1], query[2]}.ToRect(radius)

	best := Neighbor{Site: -1, Distance: math.Inf(1)}
	for _, obj := range idx.tree.SearchIntersect(box) {
		im := obj.(*image)
		d := im.cart.Sub(query).Norm()
		if d < radius && d < best.Distance {
			best = Neighbor{Site: im.site, Offset: im.offset, Distance: d}
		}
	}

	return best, best.Site >= 0
}

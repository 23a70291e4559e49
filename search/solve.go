// SPDX-License-Identifier: MIT

package search

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// pivotSites returns the indices of the rarest species (smallest label on a
// tie). Any symmetry operation maps the first of them onto one of them.
func pivotSites(numbers []int) []int {
	counts := lo.CountValues(numbers)
	species := lo.Keys(counts)
	slices.Sort(species)
	pivot := lo.MinBy(species, func(a, b int) bool { return counts[a] < counts[b] })

	return lo.Filter(lo.Range(len(numbers)), func(i, _ int) bool { return numbers[i] == pivot })
}

// solveCorrespondence maps every site i onto the site nearest to
// R·pos[i] + t within radius. It fails when a site has no partner, when the
// species differ, or when two sites claim the same partner.
func solveCorrespondence(idx *PeriodicIndex, cell base.Cell, rotation matrix.IMat3, translation matrix.Vec3, radius float64) (base.Permutation, bool) {
	n := cell.NumAtoms()
	mapping := make([]int, n)
	visited := make([]bool, n)
	for i, pos := range cell.Positions {
		nb, ok := idx.Nearest(rotation.MulFVec(pos).Add(translation), radius)
		if !ok || visited[nb.Site] || cell.Numbers[nb.Site] != cell.Numbers[i] {
			return base.Permutation{}, false
		}
		visited[nb.Site] = true
		mapping[i] = nb.Site
	}

	return base.NewPermutation(mapping), true
}

// symmetrizeTranslation refines a rough translation t of (R, t) given the
// site permutation it induces: the displacements pos[perm(i)] − R·pos[i] − t
// are taken modulo 1 into (-1/2, 1/2] and averaged. The second result is the
// largest Cartesian residual after refinement.
func symmetrizeTranslation(cell base.Cell, perm base.Permutation, rotation matrix.IMat3, rough matrix.Vec3) (matrix.Vec3, float64) {
	residual := func(i int, t matrix.Vec3) matrix.Vec3 {
		return cell.Positions[perm.Apply(i)].Sub(rotation.MulFVec(cell.Positions[i])).Sub(t).WrapSigned()
	}

	var sum matrix.Vec3
	for i := range cell.Positions {
		sum = sum.Add(residual(i, rough))
	}
	refined := rough.Add(sum.Scale(1 / float64(cell.NumAtoms())))

	distance := 0.0
	for i := range cell.Positions {
		distance = math.Max(distance, cell.Lattice.Cartesian(residual(i, refined)).Norm())
	}

	return refined.Wrap(), distance
}

// SPDX-License-Identifier: MIT

package base

// disjointSet is a union-find over 0..n-1 with path compression and union by
// rank.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find walks to the root, pointing each visited node at its grandparent.
func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union attaches the lower-rank root under the higher-rank one.
func (ds *disjointSet) union(u, v int) {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return
	}
	if ds.rank[ru] < ds.rank[rv] {
		ds.parent[ru] = rv
	} else {
		ds.parent[rv] = ru
		if ds.rank[ru] == ds.rank[rv] {
			ds.rank[ru]++
		}
	}
}

// representatives labels every element with the lowest index of its set.
func (ds *disjointSet) representatives() []int {
	n := len(ds.parent)
	lowest := make(map[int]int, n)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		root := ds.find(i)
		if _, ok := lowest[root]; !ok {
			lowest[root] = i
		}
		out[i] = lowest[root]
	}

	return out
}

// OrbitsFromPermutations groups n sites connected by any of the permutations.
// Element i of the result is the lowest site index of i's orbit.
//
// Complexity: O(n·|perms|·α(n)).
func OrbitsFromPermutations(n int, perms []Permutation) []int {
	ds := newDisjointSet(n)
	for _, p := range perms {
		for i, j := range p.Mapping {
			ds.union(i, j)
		}
	}

	return ds.representatives()
}

// OrbitsFromMapping groups sites sharing the same image under mapping (for
// example a site mapping onto a primitive cell). Labels are the lowest index
// of each group.
func OrbitsFromMapping(mapping []int) []int {
	first := make(map[int]int, len(mapping))
	out := make([]int, len(mapping))
	for i, m := range mapping {
		if _, ok := first[m]; !ok {
			first[m] = i
		}
		out[i] = first[m]
	}

	return out
}

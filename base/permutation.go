// SPDX-License-Identifier: MIT

package base

// Permutation maps site i to site Mapping[i].
type Permutation struct {
	Mapping []int
}

// NewPermutation wraps mapping (not copied).
func NewPermutation(mapping []int) Permutation {
	return Permutation{Mapping: mapping}
}

// IdentityPermutation returns the identity on n sites.
func IdentityPermutation(n int) Permutation {
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}

	return Permutation{Mapping: mapping}
}

// Size returns the number of sites.
func (p Permutation) Size() int {
	return len(p.Mapping)
}

// Apply returns the image of i.
func (p Permutation) Apply(i int) int {
	return p.Mapping[i]
}

// Inverse returns p⁻¹.
func (p Permutation) Inverse() Permutation {
	inv := make([]int, len(p.Mapping))
	for i, j := range p.Mapping {
		inv[j] = i
	}

	return Permutation{Mapping: inv}
}

// Mul returns p∘q, i ↦ p(q(i)).
func (p Permutation) Mul(q Permutation) Permutation {
	mapping := make([]int, len(p.Mapping))
	for i := range mapping {
		mapping[i] = p.Mapping[q.Mapping[i]]
	}

	return Permutation{Mapping: mapping}
}

// Equal compares mappings.
func (p Permutation) Equal(q Permutation) bool {
	if len(p.Mapping) != len(q.Mapping) {
		return false
	}
	for i, v := range p.Mapping {
		if q.Mapping[i] != v {
			return false
		}
	}

	return true
}

// SPDX-License-Identifier: MIT

package group

import (
	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/matrix"
)

// CheckClosure reports whether ops, taken modulo lattice translations, is
// closed under composition and contains the identity. Translations are
// compared per component within eps.
//
// Complexity: O(n² · k) where k is the number of operations sharing a
// rotation.
func CheckClosure(ops base.Operations, eps float64) bool {
	byRotation := make(map[matrix.IMat3][]matrix.Vec3, len(ops))
	for _, op := range ops {
		byRotation[op.Rotation] = append(byRotation[op.Rotation], op.Translation)
	}
	contains := func(op base.Operation) bool {
		for _, t := range byRotation[op.Rotation] {
			if t.Sub(op.Translation).WrapSigned().MaxAbs() < eps {
				return true
			}
		}

		return false
	}
	if !contains(base.IdentityOperation()) {
		return false
	}
	for _, a := range ops {
		for _, b := range ops {
			if !contains(a.Mul(b)) {
				return false
			}
		}
	}

	return true
}

// CheckMagneticClosure is CheckClosure for magnetic operations; time
// reversal must compose by XOR as well.
func CheckMagneticClosure(mops base.MagneticOperations, eps float64) bool {
	byKey := make(map[magneticKey][]matrix.Vec3, len(mops))
	for _, m := range mops {
		k := magneticKey{rotation: m.Rotation, timeReversal: m.TimeReversal}
		byKey[k] = append(byKey[k], m.Translation)
	}
	contains := func(m base.MagneticOperation) bool {
		for _, t := range byKey[magneticKey{rotation: m.Rotation, timeReversal: m.TimeReversal}] {
			if t.Sub(m.Translation).WrapSigned().MaxAbs() < eps {
				return true
			}
		}

		return false
	}
	if !contains(base.IdentityMagneticOperation()) {
		return false
	}
	for _, a := range mops {
		for _, b := range mops {
			if !contains(a.Mul(b)) {
				return false
			}
		}
	}

	return true
}

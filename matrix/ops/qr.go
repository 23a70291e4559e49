// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/moyo/matrix"
)

// NormZero is the additive identity for norm accumulations.
const NormZero = 0.0

// QR returns Q and R for the decomposition m = Q×R using Householder
// reflections. Q is orthogonal and R is upper-triangular; the signs of R's
// diagonal are whatever the reflections produce (callers that need a
// positive diagonal flip columns of Q themselves).
// Complexity: O(1) for the fixed 3×3 shape.
func QR(m matrix.Mat3) (matrix.Mat3, matrix.Mat3) {
	// Stage 1: Prepare working matrices and Householder vector
	var (
		a  = m                 // working copy, becomes R
		qt = matrix.Identity() // accumulates H_k···H_1 = Qᵀ
		v  matrix.Vec3         // Householder vector
	)

	// Stage 2: Execute Householder reflections
	var (
		k, i, j    int
		sum, alpha float64
		norm, beta float64
		tau        float64
	)
	for k = 0; k < 3; k++ {
		// 2.1: norm of a[k:3][k]
		norm = NormZero
		for i = k; i < 3; i++ {
			norm += a[i][k] * a[i][k]
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue // zero column
		}
		// 2.2: alpha = -sign(a[k][k]) * norm
		alpha = -math.Copysign(norm, a[k][k])
		// 2.3: v = a[k:3][k] - alpha·e_k
		v = matrix.Vec3{}
		for i = k; i < 3; i++ {
			v[i] = a[i][k]
		}
		v[k] -= alpha
		beta = NormZero
		for i = k; i < 3; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			continue // column already reduced
		}
		tau = 2.0 / beta

		// 2.4: apply reflection to a
		for j = k; j < 3; j++ {
			sum = NormZero
			for i = k; i < 3; i++ {
				sum += v[i] * a[i][j]
			}
			for i = k; i < 3; i++ {
				a[i][j] -= tau * v[i] * sum
			}
		}
		// 2.5: apply reflection to the accumulator
		for j = 0; j < 3; j++ {
			sum = NormZero
			for i = k; i < 3; i++ {
				sum += v[i] * qt[i][j]
			}
			for i = k; i < 3; i++ {
				qt[i][j] -= tau * v[i] * sum
			}
		}
	}

	// Stage 3: Finalize; reflections are symmetric so Q = (H_k···H_1)ᵀ
	return qt.Transpose(), a
}

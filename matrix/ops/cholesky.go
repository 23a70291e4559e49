// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/moyo/matrix"
)

// Cholesky returns the lower-triangular L with m = L·Lᵀ for a symmetric
// positive-definite m, or ErrNotPositiveDefinite.
// Only the lower triangle of m is read.
// Complexity: O(1) for the fixed 3×3 shape.
func Cholesky(m matrix.Mat3) (matrix.Mat3, error) {
	var (
		l       matrix.Mat3
		i, j, k int
		sum     float64
	)
	for j = 0; j < 3; j++ {
		// diagonal entry
		sum = m[j][j]
		for k = 0; k < j; k++ {
			sum -= l[j][k] * l[j][k]
		}
		if sum <= NormZero {
			return matrix.Mat3{}, fmt.Errorf("Cholesky: pivot %d=%g: %w", j, sum, ErrNotPositiveDefinite)
		}
		l[j][j] = math.Sqrt(sum)
		// column below the diagonal
		for i = j + 1; i < 3; i++ {
			sum = m[i][j]
			for k = 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			l[i][j] = sum / l[j][j]
		}
	}

	return l, nil
}

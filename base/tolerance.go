// SPDX-License-Identifier: MIT

package base

import (
	"encoding/json"
	"math"
)

// AngleTolerance is either an explicit angle in radians or the default
// heuristic, which compares lattice metrics with symprec alone.
type AngleTolerance struct {
	radian float64
	set    bool
}

// DefaultAngle selects the metric-only heuristic.
func DefaultAngle() AngleTolerance {
	return AngleTolerance{}
}

// Radian returns an explicit angle tolerance; negative or NaN values fall
// back to the default.
func Radian(x float64) AngleTolerance {
	if math.IsNaN(x) || x < 0 {
		return AngleTolerance{}
	}

	return AngleTolerance{radian: x, set: true}
}

// Value returns the angle and whether it is explicit.
func (a AngleTolerance) Value() (float64, bool) {
	return a.radian, a.set
}

// IsDefault reports the heuristic mode.
func (a AngleTolerance) IsDefault() bool {
	return !a.set
}

// Scale multiplies an explicit angle; the default stays default.
func (a AngleTolerance) Scale(f float64) AngleTolerance {
	if !a.set {
		return a
	}

	return AngleTolerance{radian: a.radian * f, set: true}
}

// MarshalJSON writes the angle, or null for the default.
func (a AngleTolerance) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}

	return json.Marshal(a.radian)
}

// UnmarshalJSON reads a number or null.
func (a *AngleTolerance) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*a = DefaultAngle()
	} else {
		*a = Radian(*v)
	}

	return nil
}

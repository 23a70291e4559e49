// SPDX-License-Identifier: MIT

package data

import (
	"fmt"

	"github.com/katalvlaran/moyo/matrix"
)

// Centering is the lattice-centering type of a conventional cell.
type Centering int

const (
	CenteringP Centering = iota // primitive
	CenteringA                  // A-face centred
	CenteringB                  // B-face centred
	CenteringC                  // C-face centred
	CenteringI                  // body centred
	CenteringR                  // rhombohedral, obverse
	CenteringF                  // all-face centred
)

var centeringLetters = [...]string{"P", "A", "B", "C", "I", "R", "F"}

// CenteringFromLetter parses one of P, A, B, C, I, R, F.
func CenteringFromLetter(letter byte) (Centering, error) {
	for i, l := range centeringLetters {
		if l[0] == letter {
			return Centering(i), nil
		}
	}

	return CenteringP, fmt.Errorf("CenteringFromLetter %q: %w", letter, ErrHallSymbolParse)
}

// String returns the lattice letter.
func (c Centering) String() string {
	if c < CenteringP || c > CenteringF {
		return fmt.Sprintf("Centering(%d)", int(c))
	}

	return centeringLetters[c]
}

// Letter is String as used in Pearson symbols.
func (c Centering) Letter() string { return c.String() }

// Order is the number of lattice points per conventional cell.
func (c Centering) Order() int {
	switch c {
	case CenteringA, CenteringB, CenteringC, CenteringI:
		return 2
	case CenteringR:
		return 3
	case CenteringF:
		return 4
	default:
		return 1
	}
}

// Linear maps the conventional basis to a primitive one: primitive basis =
// conventional basis · Linear⁻¹, so Transformation(Linear) takes a primitive
// cell to the conventional one.
func (c Centering) Linear() matrix.IMat3 {
	switch c {
	case CenteringA:
		return matrix.IMat3{{1, 0, 0}, {0, 1, 1}, {0, -1, 1}}
	case CenteringB:
		return matrix.IMat3{{1, 0, -1}, {0, 1, 0}, {1, 0, 1}}
	case CenteringC:
		return matrix.IMat3{{1, -1, 0}, {1, 1, 0}, {0, 0, 1}}
	case CenteringR:
		return matrix.IMat3{{1, 0, 1}, {-1, 1, 1}, {0, -1, 1}}
	case CenteringI:
		return matrix.IMat3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	case CenteringF:
		return matrix.IMat3{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	default:
		return matrix.IIdentity()
	}
}

// Inverse is Linear⁻¹; its columns are the primitive vectors in conventional
// coordinates.
func (c Centering) Inverse() matrix.Mat3 {
	inv, err := c.Linear().FInverse()
	if err != nil {
		// every Linear above has det = Order
		panic(err)
	}

	return inv
}

// LatticePoints lists the lattice points of the conventional cell, the
// origin first.
func (c Centering) LatticePoints() []matrix.Vec3 {
	const h, t1, t2 = 0.5, 1.0 / 3, 2.0 / 3
	pts := []matrix.Vec3{{0, 0, 0}}
	switch c {
	case CenteringA:
		pts = append(pts, matrix.Vec3{0, h, h})
	case CenteringB:
		pts = append(pts, matrix.Vec3{h, 0, h})
	case CenteringC:
		pts = append(pts, matrix.Vec3{h, h, 0})
	case CenteringI:
		pts = append(pts, matrix.Vec3{h, h, h})
	case CenteringR:
		pts = append(pts, matrix.Vec3{t2, t1, t1}, matrix.Vec3{t1, t2, t2})
	case CenteringF:
		pts = append(pts, matrix.Vec3{0, h, h}, matrix.Vec3{h, 0, h}, matrix.Vec3{h, h, 0})
	}

	return pts
}

// MarshalText encodes the lattice letter.
func (c Centering) MarshalText() ([]byte, error) {
	if c < CenteringP || c > CenteringF {
		return nil, fmt.Errorf("Centering(%d).MarshalText: %w", int(c), ErrOutOfRange)
	}

	return []byte(c.String()), nil
}

// UnmarshalText decodes a lattice letter.
func (c *Centering) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("Centering.UnmarshalText %q: %w", text, ErrHallSymbolParse)
	}
	v, err := CenteringFromLetter(text[0])
	if err != nil {
		return err
	}
	*c = v

	return nil
}

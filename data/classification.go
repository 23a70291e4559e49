// SPDX-License-Identifier: MIT

package data

import "fmt"

// GeometricCrystalClass is one of the 32 crystallographic point groups,
// named in Schoenflies notation.
type GeometricCrystalClass int

const (
	C1 GeometricCrystalClass = iota
	Ci
	C2
	C1h
	C2h
	D2
	C2v
	D2h
	C4
	S4
	C4h
	D4
	C4v
	D2d
	D4h
	C3
	C3i
	D3
	C3v
	D3d
	C6
	C3h
	C6h
	D6
	C6v
	D3h
	D6h
	T
	Th
	O
	Td
	Oh
)

// NumGeometricCrystalClasses is the number of crystallographic point groups.
const NumGeometricCrystalClasses = 32

var geometricClassInfo = [NumGeometricCrystalClasses]struct {
	symbol string
	order  int
}{
	{"1", 1}, {"-1", 2}, {"2", 2}, {"m", 2}, {"2/m", 4},
	{"222", 4}, {"mm2", 4}, {"mmm", 8},
	{"4", 4}, {"-4", 4}, {"4/m", 8}, {"422", 8}, {"4mm", 8}, {"-42m", 8}, {"4/mmm", 16},
	{"3", 3}, {"-3", 6}, {"32", 6}, {"3m", 6}, {"-3m", 12},
	{"6", 6}, {"-6", 6}, {"6/m", 12}, {"622", 12}, {"6mm", 12}, {"-6m2", 12}, {"6/mmm", 24},
	{"23", 12}, {"m-3", 24}, {"432", 24}, {"-43m", 24}, {"m-3m", 48},
}

// GeometricCrystalClasses lists the 32 classes in table order.
func GeometricCrystalClasses() []GeometricCrystalClass {
	out := make([]GeometricCrystalClass, NumGeometricCrystalClasses)
	for i := range out {
		out[i] = GeometricCrystalClass(i)
	}

	return out
}

func (g GeometricCrystalClass) valid() bool { return g >= C1 && g <= Oh }

// String returns the Hermann–Mauguin symbol, e.g. "-6m2".
func (g GeometricCrystalClass) String() string {
	if !g.valid() {
		return fmt.Sprintf("GeometricCrystalClass(%d)", int(g))
	}

	return geometricClassInfo[g].symbol
}

// Order is the number of rotations in the point group.
func (g GeometricCrystalClass) Order() int {
	if !g.valid() {
		return 0
	}

	return geometricClassInfo[g].order
}

// CrystalSystem of the class.
func (g GeometricCrystalClass) CrystalSystem() CrystalSystem {
	switch {
	case g <= Ci:
		return Triclinic
	case g <= C2h:
		return Monoclinic
	case g <= D2h:
		return Orthorhombic
	case g <= D4h:
		return Tetragonal
	case g <= D3d:
		return Trigonal
	case g <= D6h:
		return Hexagonal
	default:
		return Cubic
	}
}

// CrystalSystem groups geometric classes by their holohedry.
type CrystalSystem int

const (
	Triclinic CrystalSystem = iota
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

var crystalSystemNames = [...]string{"triclinic", "monoclinic", "orthorhombic", "tetragonal", "trigonal", "hexagonal", "cubic"}

func (s CrystalSystem) String() string {
	if s < Triclinic || s > Cubic {
		return fmt.Sprintf("CrystalSystem(%d)", int(s))
	}

	return crystalSystemNames[s]
}

// CrystalFamily merges the trigonal and hexagonal systems.
func (s CrystalSystem) CrystalFamily() CrystalFamily {
	switch s {
	case Triclinic:
		return FamilyTriclinic
	case Monoclinic:
		return FamilyMonoclinic
	case Orthorhombic:
		return FamilyOrthorhombic
	case Tetragonal:
		return FamilyTetragonal
	case Trigonal, Hexagonal:
		return FamilyHexagonal
	default:
		return FamilyCubic
	}
}

// CrystalFamily is the coarsest lattice-based classification.
type CrystalFamily int

const (
	FamilyTriclinic CrystalFamily = iota
	FamilyMonoclinic
	FamilyOrthorhombic
	FamilyTetragonal
	FamilyHexagonal
	FamilyCubic
)

var crystalFamilyLetters = [...]string{"a", "m", "o", "t", "h", "c"}

// Letter is the lowercase family letter of Pearson and Bravais symbols.
func (f CrystalFamily) Letter() string {
	if f < FamilyTriclinic || f > FamilyCubic {
		return "?"
	}

	return crystalFamilyLetters[f]
}

func (f CrystalFamily) String() string {
	switch f {
	case FamilyTriclinic:
		return "triclinic"
	case FamilyMonoclinic:
		return "monoclinic"
	case FamilyOrthorhombic:
		return "orthorhombic"
	case FamilyTetragonal:
		return "tetragonal"
	case FamilyHexagonal:
		return "hexagonal"
	case FamilyCubic:
		return "cubic"
	}

	return fmt.Sprintf("CrystalFamily(%d)", int(f))
}

// BravaisClass is one of the 14 Bravais lattice types.
type BravaisClass int

const (
	AP BravaisClass = iota
	MP
	MC
	OP
	OS
	OF
	OI
	TP
	TI
	HR
	HP
	CP
	CF
	CI
)

var bravaisSymbols = [...]string{"aP", "mP", "mC", "oP", "oS", "oF", "oI", "tP", "tI", "hR", "hP", "cP", "cF", "cI"}

func (b BravaisClass) String() string {
	if b < AP || b > CI {
		return fmt.Sprintf("BravaisClass(%d)", int(b))
	}

	return bravaisSymbols[b]
}

// LatticeSystem of the Bravais class.
func (b BravaisClass) LatticeSystem() LatticeSystem {
	switch b {
	case AP:
		return LatticeTriclinic
	case MP, MC:
		return LatticeMonoclinic
	case OP, OS, OF, OI:
		return LatticeOrthorhombic
	case TP, TI:
		return LatticeTetragonal
	case HR:
		return LatticeRhombohedral
	case HP:
		return LatticeHexagonal
	default:
		return LatticeCubic
	}
}

// LatticeSystem classifies lattices by their point symmetry.
type LatticeSystem int

const (
	LatticeTriclinic LatticeSystem = iota
	LatticeMonoclinic
	LatticeOrthorhombic
	LatticeTetragonal
	LatticeRhombohedral
	LatticeHexagonal
	LatticeCubic
)

var latticeSystemNames = [...]string{"triclinic", "monoclinic", "orthorhombic", "tetragonal", "rhombohedral", "hexagonal", "cubic"}

func (l LatticeSystem) String() string {
	if l < LatticeTriclinic || l > LatticeCubic {
		return fmt.Sprintf("LatticeSystem(%d)", int(l))
	}

	return latticeSystemNames[l]
}

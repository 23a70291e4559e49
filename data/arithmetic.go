// SPDX-License-Identifier: MIT

package data

import "fmt"

// ArithmeticCrystalClass pairs a geometric class with a Bravais class; the
// 73 classes partition the 230 space-group types.
type ArithmeticCrystalClass struct {
	Number         int
	Symbol         string
	GeometricClass GeometricCrystalClass
	BravaisClass   BravaisClass
	// hallNumber is the symmorphic setting whose generators represent the
	// class.
	hallNumber int
}

// NumArithmeticCrystalClasses is the size of the arithmetic table.
const NumArithmeticCrystalClasses = 73

// LatticeSystem of the class's Bravais lattice.
func (a ArithmeticCrystalClass) LatticeSystem() LatticeSystem { return a.BravaisClass.LatticeSystem() }

// ArithmeticCrystalClassOf returns the class numbered 1..73.
func ArithmeticCrystalClassOf(number int) (ArithmeticCrystalClass, error) {
	if number < 1 || number > NumArithmeticCrystalClasses {
		return ArithmeticCrystalClass{}, fmt.Errorf("ArithmeticCrystalClassOf(%d): %w", number, ErrOutOfRange)
	}

	return arithmeticClasses[number-1], nil
}

// ArithmeticCrystalClasses returns a copy of the table in number order.
func ArithmeticCrystalClasses() []ArithmeticCrystalClass {
	out := make([]ArithmeticCrystalClass, len(arithmeticClasses))
	copy(out, arithmeticClasses[:])

	return out
}

var arithmeticClasses = [NumArithmeticCrystalClasses]ArithmeticCrystalClass{
	{1, "1P", C1, AP, 1},
	{2, "-1P", Ci, AP, 2},
	{3, "2P", C2, MP, 3},
	{4, "2C", C2, MC, 9},
	{5, "mP", C1h, MP, 18},
	{6, "mC", C1h, MC, 30},
	{7, "2/mP", C2h, MP, 57},
	{8, "2/mC", C2h, MC, 63},
	{9, "222P", D2, OP, 108},
	{10, "222C", D2, OS, 119},
	{11, "222F", D2, OF, 122},
	{12, "222I", D2, OI, 123},
	{13, "mm2P", C2v, OP, 125},
	{14, "mm2C", C2v, OS, 173},
	{15, "2mmC", C2v, OS, 185},
	{16, "mm2F", C2v, OF, 209},
	{17, "mm2I", C2v, OI, 215},
	{18, "mmmP", D2h, OP, 227},
	{19, "mmmC", D2h, OS, 310},
	{20, "mmmF", D2h, OF, 334},
	{21, "mmmI", D2h, OI, 337},
	{22, "4P", C4, TP, 349},
	{23, "4I", C4, TI, 353},
	{24, "-4P", S4, TP, 355},
	{25, "-4I", S4, TI, 356},
	{26, "4/mP", C4h, TP, 357},
	{27, "4/mI", C4h, TI, 363},
	{28, "422P", D4, TP, 366},
	{29, "422I", D4, TI, 374},
	{30, "4mmP", C4v, TP, 376},
	{31, "4mmI", C4v, TI, 384},
	{32, "-42mP", D2d, TP, 388},
	{33, "-4m2P", D2d, TP, 392},
	{34, "-4m2I", D2d, TI, 396},
	{35, "-42mI", D2d, TI, 398},
	{36, "4/mmmP", D4h, TP, 400},
	{37, "4/mmmI", D4h, TI, 424},
	{38, "3P", C3, HP, 430},
	{39, "3R", C3, HR, 433},
	{40, "-3P", C3i, HP, 435},
	{41, "-3R", C3i, HR, 436},
	{42, "312P", D3, HP, 438},
	{43, "321P", D3, HP, 439},
	{44, "32R", D3, HR, 444},
	{45, "3m1P", C3v, HP, 446},
	{46, "31mP", C3v, HP, 447},
	{47, "3mR", C3v, HR, 450},
	{48, "-31mP", D3d, HP, 454},
	{49, "-3m1P", D3d, HP, 456},
	{50, "-3mR", D3d, HR, 458},
	{51, "6P", C6, HP, 462},
	{52, "-6P", C3h, HP, 468},
	{53, "6/mP", C6h, HP, 469},
	{54, "622P", D6, HP, 471},
	{55, "6mmP", C6v, HP, 477},
	{56, "-62mP", D3h, HP, 483},
	{57, "-6m2P", D3h, HP, 481},
	{58, "6/mmmP", D6h, HP, 485},
	{59, "23P", T, CP, 489},
	{60, "23F", T, CF, 490},
	{61, "23I", T, CI, 491},
	{62, "m-3P", Th, CP, 494},
	{63, "m-3F", Th, CF, 497},
	{64, "m-3I", Th, CI, 500},
	{65, "432P", O, CP, 503},
	{66, "432F", O, CF, 505},
	{67, "432I", O, CI, 507},
	{68, "-43mP", Td, CP, 511},
	{69, "-43mF", Td, CF, 512},
	{70, "-43mI", Td, CI, 513},
	{71, "m-3mP", Oh, CP, 517},
	{72, "m-3mF", Oh, CF, 523},
	{73, "m-3mI", Oh, CI, 529},
}

// arithmeticNumbers maps a space-group number (index) to its arithmetic
// class number.
var arithmeticNumbers = [231]int{
	0,
	1, 2, 3, 3, 4, 5, 5, 6, 6, 7, 7, 8, 7, 7, 8,
	9, 9, 9, 9, 10, 10, 11, 12, 12, 13, 13, 13, 13, 13, 13,
	13, 13, 13, 13, 14, 14, 14, 15, 15, 15, 15, 16, 16, 17, 17,
	17, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18, 18,
	18, 18, 19, 19, 19, 19, 19, 19, 20, 20, 21, 21, 21, 21, 22,
	22, 22, 22, 23, 23, 24, 25, 26, 26, 26, 26, 27, 27, 28, 28,
	28, 28, 28, 28, 28, 28, 29, 29, 30, 30, 30, 30, 30, 30, 30,
	30, 31, 31, 31, 31, 32, 32, 32, 32, 33, 33, 33, 33, 34, 34,
	35, 35, 36, 36, 36, 36, 36, 36, 36, 36, 36, 36, 36, 36, 36,
	36, 36, 36, 37, 37, 37, 37, 38, 38, 38, 39, 40, 41, 42, 43,
	42, 43, 42, 43, 44, 45, 46, 45, 46, 47, 47, 48, 48, 49, 49,
	50, 50, 51, 51, 51, 51, 51, 51, 52, 53, 53, 54, 54, 54, 54,
	54, 54, 55, 55, 55, 55, 57, 57, 56, 56, 58, 58, 58, 58, 59,
	60, 61, 59, 61, 62, 62, 63, 63, 64, 62, 64, 65, 65, 66, 66,
	67, 65, 65, 67, 68, 69, 70, 68, 69, 70, 71, 71, 71, 71, 72,
	72, 72, 72, 73, 73,
}

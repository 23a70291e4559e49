// SPDX-License-Identifier: MIT

package data

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// NumMagneticSpaceGroupTypes is the number of magnetic space-group types.
const NumMagneticSpaceGroupTypes = 1651

// ConstructType is the construction type of a magnetic space group.
type ConstructType int

const (
	// Type1 has no time-reversal operation.
	Type1 ConstructType = iota + 1
	// Type2 is the grey group G + 1'G.
	Type2
	// Type3 is black-white: D + (G-D)1' with D a halving subgroup keeping
	// every translation.
	Type3
	// Type4 is black-white with an anti-translation: D + {1'|t}D.
	Type4
)

func (c ConstructType) String() string {
	switch c {
	case Type1:
		return "I"
	case Type2:
		return "II"
	case Type3:
		return "III"
	case Type4:
		return "IV"
	default:
		return fmt.Sprintf("ConstructType(%d)", int(c))
	}
}

// MagneticSpaceGroupType is one of the 1,651 magnetic space-group types.
// Number is the type of the maximal space subgroup for Type 4 and of the
// family space group otherwise; HallNumber is its standard setting.
type MagneticSpaceGroupType struct {
	UNINumber          int           `json:"uni_number"`
	BNSNumber          string        `json:"bns_number"`
	Number             int           `json:"number"`
	HallNumber         int           `json:"hall_number"`
	ConstructType      ConstructType `json:"construct_type"`
	MagneticHallSymbol string        `json:"magnetic_hall_symbol"`
}

// deriveMagneticTypes lists the magnetic types over one space-group type in
// the order Type 1, Type 2, Type 3, Type 4. UNI and BNS numbers are left
// for the caller.
//
// Steps:
//  1. Type 3: enumerate homomorphisms φ of the point group onto Z₂ from
//     their values on the generators; kernels conjugate under the integral
//     normalizer give the same type.
//  2. Type 4: enumerate half lattice vectors t invariant modulo the lattice
//     under every rotation; vectors related by the affine normalizer give
//     the same type.
func (db *Database) deriveMagneticTypes(number int) ([]MagneticSpaceGroupType, error) {
	hall, err := StandardHallNumber(number)
	if err != nil {
		return nil, err
	}
	hs, err := HallSymbolFromNumber(hall)
	if err != nil {
		return nil, err
	}
	prim, err := hs.PrimitiveTraverse()
	if err != nil {
		return nil, err
	}
	norm, err := db.normalizers(hall)
	if err != nil {
		return nil, err
	}

	mk := func(ct ConstructType, symbol string) MagneticSpaceGroupType {
		return MagneticSpaceGroupType{Number: number, HallNumber: hall, ConstructType: ct, MagneticHallSymbol: symbol}
	}
	out := []MagneticSpaceGroupType{
		mk(Type1, hs.Symbol),
		mk(Type2, appendHallToken(hs.Symbol, "1'")),
	}

	// Type 3
	rotations := prim.Rotations()
	index := make(map[matrix.IMat3]int, len(rotations))
	for i, r := range rotations {
		index[r] = i
	}
	primGens := hs.PrimitiveGenerators()
	var pointGens []matrix.IMat3
	for _, g := range primGens {
		if !g.Rotation.IsIdentity() {
			pointGens = append(pointGens, g.Rotation)
		}
	}
	kernels := halvingKernels(rotations, index, pointGens)
	entry, err := HallSymbolEntryOf(hall)
	if err != nil {
		return nil, err
	}
	arith := arithmeticClasses[entry.ArithmeticNumber-1]
	conv, err := hs.Traverse()
	if err != nil {
		return nil, err
	}
	// Traverse and PrimitiveTraverse share one order, so carrier indices
	// address the primitive kernels directly.
	carriers := primeCarriers(arith.GeometricClass, conv.Rotations(), symmetryDirections(arith.LatticeSystem(), hs.Centering))
	ranked, err := rankKernelOrbits(arith.GeometricClass, carriers, kernelOrbits(kernels, rotations, index, norm.integral))
	if err != nil {
		return nil, fmt.Errorf("space group %d: %w", number, err)
	}
	for _, k := range ranked {
		anti := make([]bool, len(primGens))
		for i, g := range primGens {
			anti[i] = k&(1<<index[g.Rotation]) == 0
		}
		out = append(out, mk(Type3, primeHallSymbol(hs.Symbol, anti)))
	}

	// Type 4
	cinv := hs.Centering.Inverse()
	labels, labelHalves := antiTranslationLabelVectors(hs.Centering)
	for _, h := range antiTranslationRepresentatives(rotations, slices.Concat(norm.integral, norm.full), labels) {
		t := cinv.MulVec(h.ToFloat().Scale(0.5)).Wrap()
		if i := slices.Index(labels, h); i >= 0 {
			t = labelHalves[i].ToFloat().Scale(0.5)
		}
		out = append(out, mk(Type4, appendHallToken(hs.Symbol, antiTranslationToken(t))))
	}

	return out, nil
}

// halvingKernels returns the kernels of the homomorphisms onto Z₂ as bit
// sets over rotation indices, in binary-count order of the generator
// values.
func halvingKernels(rotations []matrix.IMat3, index map[matrix.IMat3]int, gens []matrix.IMat3) []uint64 {
	identity := index[matrix.IIdentity()]
	var out []uint64
	seen := make(map[uint64]bool)
	for v := 1; v < 1<<len(gens); v++ {
		phi := make([]int8, len(rotations))
		for i := range phi {
			phi[i] = -1
		}
		phi[identity] = 0
		queue := []int{identity}
		ok := true
		for len(queue) > 0 && ok {
			r := queue[0]
			queue = queue[1:]
			for k, g := range gens {
				j, found := index[rotations[r].Mul(g)]
				if !found {
					ok = false
					break
				}
				val := phi[r] ^ int8((v>>k)&1)
				switch phi[j] {
				case -1:
					phi[j] = val
					queue = append(queue, j)
				case val:
				default:
					ok = false
				}
				if !ok {
					break
				}
			}
		}
		var kernel uint64
		for i, p := range phi {
			if p < 0 {
				ok = false
			}
			if p == 0 {
				kernel |= 1 << i
			}
		}
		if ok && !seen[kernel] {
			seen[kernel] = true
			out = append(out, kernel)
		}
	}

	return out
}

// kernelOrbits splits kernels into orbits under conjugation by the
// normalizer. Each orbit starts with the first kernel found in it.
func kernelOrbits(kernels []uint64, rotations []matrix.IMat3, index map[matrix.IMat3]int, normalizer []base.UnimodularTransformation) [][]uint64 {
	conjugate := func(k uint64, u base.UnimodularTransformation) uint64 {
		pinv := u.LinearInverse()
		var out uint64
		for i, r := range rotations {
			if k&(1<<i) != 0 {
				out |= 1 << index[pinv.Mul(r).Mul(u.Linear)]
			}
		}

		return out
	}
	assigned := make(map[uint64]bool)
	var orbits [][]uint64
	for _, k := range kernels {
		if assigned[k] {
			continue
		}
		assigned[k] = true
		orbit := []uint64{k}
		stack := []uint64{k}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, u := range normalizer {
				next := conjugate(cur, u)
				if !assigned[next] {
					assigned[next] = true
					orbit = append(orbit, next)
					stack = append(stack, next)
				}
			}
		}
		orbits = append(orbits, orbit)
	}

	return orbits
}

// primeCarriers picks the rotations whose primes spell a Type 3 symbol, one
// per written element of the Hermann-Mauguin symbol of the standard setting.
// A principal axis written N/m carries two elements. The result indexes
// rotations.
func primeCarriers(geo GeometricCrystalClass, rotations []matrix.IMat3, dirs [][]matrix.IVec3) []int {
	if geo == Ci {
		for i, r := range rotations {
			if r == matrix.IIdentity().Neg() {
				return []int{i}
			}
		}

		return nil
	}

	system := geo.CrystalSystem()
	var out []int
	var kinds []group.RotationType
	push := func(t group.RotationType, i int) {
		out = append(out, i)
		kinds = append(kinds, t)
	}
	for p, set := range dirs {
		found := make(map[group.RotationType]int)
		for _, d := range set {
			d = primitiveVector(d)
			for i, r := range rotations {
				axis, ok := group.RotationAxis(r)
				if !ok || primitiveVector(axis) != d {
					continue
				}
				t, err := group.RotationTypeOf(r)
				if err != nil {
					continue
				}
				if _, seen := found[t]; !seen {
					found[t] = i
				}
			}
			if len(found) > 0 {
				break
			}
		}
		if len(found) == 0 {
			continue
		}

		mirror, hasMirror := found[group.RotoInversion2]
		proper, rotoinversion := group.RotationType(-1), group.RotationType(-1)
		for t := range found {
			switch t {
			case group.Rotation2, group.Rotation3, group.Rotation4, group.Rotation6:
				if proper < 0 || t.Order() > proper.Order() {
					proper = t
				}
			case group.RotoInversion3, group.RotoInversion4, group.RotoInversion6:
				// -3 and -6 share an axis only under 6/m, which takes the N/m branch
				if rotoinversion < 0 || t.Order() > rotoinversion.Order() || (t.Order() == rotoinversion.Order() && t < rotoinversion) {
					rotoinversion = t
				}
			}
		}

		switch {
		case system == Monoclinic:
			if proper >= 0 {
				push(proper, found[proper])
			}
			if hasMirror {
				push(group.RotoInversion2, mirror)
			}
		case system == Orthorhombic:
			if hasMirror {
				push(group.RotoInversion2, mirror)
			} else {
				push(proper, found[proper])
			}
		case p == 0 && system != Cubic:
			switch {
			case proper >= 0 && proper.Order()%2 == 0 && hasMirror:
				push(proper, found[proper])
				push(group.RotoInversion2, mirror)
			case rotoinversion >= 0 && (proper < 0 || rotoinversion.Order() >= proper.Order()):
				push(rotoinversion, found[rotoinversion])
			case proper >= 0:
				push(proper, found[proper])
			default:
				push(group.RotoInversion2, mirror)
			}
		default:
			switch {
			case hasMirror:
				push(group.RotoInversion2, mirror)
			case rotoinversion >= 0:
				push(rotoinversion, found[rotoinversion])
			default:
				push(proper, found[proper])
			}
		}
	}

	// -42m and -6m2 order their secondary positions as written
	if len(out) == 3 && ((geo == D2d && kinds[1] == group.RotoInversion2) || (geo == D3h && kinds[1] == group.Rotation2)) {
		out[1], out[2] = out[2], out[1]
	}

	return out
}

// primedPattern lists, as digits, the carriers outside kernel k.
func primedPattern(k uint64, carriers []int) string {
	var b strings.Builder
	for j, i := range carriers {
		if k&(1<<i) == 0 {
			b.WriteByte(byte('0' + j))
		}
	}

	return b.String()
}

// primedPatternOrder lists the Type 3 magnetic point groups of each
// geometric class in table order. Patterns grouped together are
// orientations of one magnetic point group, listed in table order too.
var primedPatternOrder = map[GeometricCrystalClass][][]string{
	Ci: {{"0"}}, C2: {{"0"}}, C1h: {{"0"}}, C4: {{"0"}}, S4: {{"0"}}, C3i: {{"0"}}, C6: {{"0"}}, C3h: {{"0"}},
	C2h: {{"0"}, {"1"}, {"01"}},
	C4h: {{"0"}, {"1"}, {"01"}},
	C6h: {{"0"}, {"1"}, {"01"}},
	D3d: {{"0"}, {"1"}, {"01"}},
	D2:  {{"01", "12", "02"}},
	C2v: {{"02", "12"}, {"01"}},
	D2h: {{"0", "1", "2"}, {"01", "12", "02"}, {"012"}},
	D4:  {{"01", "02"}, {"12"}},
	C4v: {{"01", "02"}, {"12"}},
	D6:  {{"01", "02"}, {"12"}},
	C6v: {{"01", "02"}, {"12"}},
	D2d: {{"01"}, {"02"}, {"12"}},
	D3h: {{"01"}, {"02"}, {"12"}},
	D4h: {{"1"}, {"02", "03"}, {"012", "013"}, {"23"}, {"123"}},
	D6h: {{"1"}, {"02", "03"}, {"012", "013"}, {"23"}, {"123"}},
	D3:  {{"1"}},
	C3v: {{"1"}},
	Th:  {{"01"}},
	O:   {{"02"}},
	Td:  {{"02"}},
	Oh:  {{"01"}, {"2"}, {"012"}},
}

type primeKey struct{ group, orientation int }

func comparePrimeKeys(a, b primeKey) int {
	return cmp.Or(cmp.Compare(a.group, b.group), cmp.Compare(a.orientation, b.orientation))
}

// rankKernelOrbits orders the orbits by their magnetic point group, then
// orientation, and returns the best-ranked kernel of each.
func rankKernelOrbits(geo GeometricCrystalClass, carriers []int, orbits [][]uint64) ([]uint64, error) {
	type ranked struct {
		key    primeKey
		kernel uint64
	}
	keyOf := func(pattern string) (primeKey, bool) {
		for g, variants := range primedPatternOrder[geo] {
			if o := slices.Index(variants, pattern); o >= 0 {
				return primeKey{g, o}, true
			}
		}

		return primeKey{}, false
	}

	out := make([]ranked, 0, len(orbits))
	for _, orbit := range orbits {
		var best ranked
		for i, k := range orbit {
			pattern := primedPattern(k, carriers)
			key, ok := keyOf(pattern)
			if !ok {
				return nil, fmt.Errorf("%s: primes on %q: %w", geo, pattern, ErrDerivation)
			}
			if i == 0 || comparePrimeKeys(key, best.key) < 0 {
				best = ranked{key, k}
			}
		}
		out = append(out, best)
	}
	slices.SortFunc(out, func(a, b ranked) int { return comparePrimeKeys(a.key, b.key) })

	kernels := make([]uint64, len(out))
	for i, r := range out {
		if i > 0 && r.key == out[i-1].key {
			return nil, fmt.Errorf("%s: two orbits share primes %v: %w", geo, r.key, ErrDerivation)
		}
		kernels[i] = r.kernel
	}

	return kernels, nil
}

// antiTranslationLabels are the BNS subscripts of each lattice in table
// order; F and R have a single Type 4 class.
var antiTranslationLabels = map[Centering]string{
	CenteringP: "abcABCI",
	CenteringC: "caA",
	CenteringA: "abB",
	CenteringB: "bcC",
	CenteringI: "cab",
}

// antiTranslationLabelVectors returns the labels of c as 2t, in primitive
// coordinates modulo 2 and in conventional coordinates.
func antiTranslationLabelVectors(c Centering) (prim, conv []matrix.IVec3) {
	halves := map[rune]matrix.IVec3{
		'a': {1, 0, 0}, 'b': {0, 1, 0}, 'c': {0, 0, 1},
		'A': {0, 1, 1}, 'B': {1, 0, 1}, 'C': {1, 1, 0}, 'I': {1, 1, 1},
	}
	lin := c.Linear()
	for _, l := range antiTranslationLabels[c] {
		prim = append(prim, mod2(lin.MulVec(halves[l])))
		conv = append(conv, halves[l])
	}

	return prim, conv
}

func mod2(v matrix.IVec3) matrix.IVec3 {
	for i := range v {
		v[i] = ((v[i] % 2) + 2) % 2
	}

	return v
}

// antiTranslationRepresentatives returns 2t for the half lattice vectors t
// with R·t ≡ t (mod 1) for every rotation, one per orbit under the
// normalizer. Orbits follow the earliest of labels they contain and are
// represented by that label; unlabelled orbits keep discovery order.
func antiTranslationRepresentatives(rotations []matrix.IMat3, normalizer []base.UnimodularTransformation, labels []matrix.IVec3) []matrix.IVec3 {
	var candidates []matrix.IVec3
	for i0 := 0; i0 < 2; i0++ {
		for i1 := 0; i1 < 2; i1++ {
			for i2 := 0; i2 < 2; i2++ {
				h := matrix.IVec3{i0, i1, i2}
				if h.IsZero() {
					continue
				}
				invariant := true
				for _, r := range rotations {
					if !mod2(r.MulVec(h).Sub(h)).IsZero() {
						invariant = false
						break
					}
				}
				if invariant {
					candidates = append(candidates, h)
				}
			}
		}
	}

	type orbit struct {
		rank int
		rep  matrix.IVec3
	}
	assigned := make(map[matrix.IVec3]bool)
	var orbits []orbit
	for _, h := range candidates {
		if assigned[h] {
			continue
		}
		assigned[h] = true
		members := map[matrix.IVec3]bool{h: true}
		stack := []matrix.IVec3{h}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, u := range normalizer {
				next := mod2(u.Linear.MulVec(cur))
				if !assigned[next] {
					assigned[next] = true
					members[next] = true
					stack = append(stack, next)
				}
			}
		}
		o := orbit{rank: len(labels) + len(orbits), rep: h}
		for i, l := range labels {
			if members[l] {
				o = orbit{rank: i, rep: l}
				break
			}
		}
		orbits = append(orbits, o)
	}
	slices.SortStableFunc(orbits, func(a, b orbit) int { return cmp.Compare(a.rank, b.rank) })

	reps := make([]matrix.IVec3, len(orbits))
	for i, o := range orbits {
		reps[i] = o.rep
	}

	return reps
}

// splitHallSymbol separates the lattice token, the operation tokens and the
// origin shift.
func splitHallSymbol(symbol string) (lattice string, ops []string, origin string) {
	tokens := strings.Fields(symbol)
	lattice = tokens[0]
	for i, tok := range tokens[1:] {
		if strings.HasPrefix(tok, "(") {
			origin = strings.Join(tokens[1+i:], " ")
			break
		}
		ops = append(ops, tok)
	}

	return lattice, ops, origin
}

func joinHallSymbol(lattice string, ops []string, origin string) string {
	parts := append([]string{lattice}, ops...)
	if origin != "" {
		parts = append(parts, origin)
	}

	return strings.Join(parts, " ")
}

// appendHallToken adds an operation token before the origin shift.
func appendHallToken(symbol, token string) string {
	lattice, ops, origin := splitHallSymbol(symbol)

	return joinHallSymbol(lattice, append(ops, token), origin)
}

// primeHallSymbol marks generators with time reversal. anti is indexed like
// HallSymbol.Generators: the origin inversion first when the lattice token
// carries "-", then one entry per operation token. A primed origin
// inversion is written as a trailing "-1'".
func primeHallSymbol(symbol string, anti []bool) string {
	lattice, ops, origin := splitHallSymbol(symbol)
	offset := 0
	primedInversion := false
	if strings.HasPrefix(lattice, "-") {
		offset = 1
		if anti[0] {
			primedInversion = true
			lattice = lattice[1:]
		}
	}
	out := make([]string, 0, len(ops)+1)
	for i, tok := range ops {
		if anti[offset+i] {
			tok += "'"
		}
		out = append(out, tok)
	}
	if primedInversion {
		out = append(out, "-1'")
	}

	return joinHallSymbol(lattice, out, origin)
}

// antiTranslationToken writes "1<T>'" for a translation in quarters of the
// conventional cell: 1/2 as a, b or c and 1/4 as u, v or w.
func antiTranslationToken(t matrix.Vec3) string {
	const halves, quarters = "abc", "uvw"
	var b strings.Builder
	b.WriteString("1")
	for i, x := range t {
		switch int(math.Round(x*4)) % 4 {
		case 1:
			b.WriteByte(quarters[i])
		case 2:
			b.WriteByte(halves[i])
		case 3:
			b.WriteByte(halves[i])
			b.WriteByte(quarters[i])
		}
	}
	b.WriteString("'")

	return b.String()
}

// bnsFamilyStart are the first space-group numbers of each crystal family;
// the BNS serial number restarts there.
var bnsFamilyStart = []int{1, 3, 16, 75, 143, 195}

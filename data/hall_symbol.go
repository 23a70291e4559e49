// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// Hall symbols (ITB A1.4.2.3) in extended Backus–Naur form:
//
//	<Hall symbol> := <L> <N>+ <V>?
//	<L>           := "-"? [PABCIRF]
//	<N>           := "-"? ("1"|"2"|"3"|"4"|"6") <A>? <T>* "'"?
//	<A>           := [xyz] | "^" | "=" | '"' | "*"
//	<T>           := [abcnuvwd] | [1-6]
//	<V>           := "(" int int int ")"
//
// "^" and "=" stand for the single and double prime axis marks; '"' is
// accepted for "=". The trailing "'" (time reversal) is only legal in
// magnetic Hall symbols. <V> is an origin shift in twelfths.
const translationDenominator = 12

// HallSymbol is a parsed Hall symbol.
type HallSymbol struct {
	Symbol    string
	Centering Centering
	// CenteringTranslations are the non-zero lattice points of the
	// conventional cell.
	CenteringTranslations []matrix.Vec3
	// Generators of the space group modulo the conventional lattice.
	Generators base.Operations
}

// ParseHallSymbol parses a plain Hall symbol such as "-P 6c 2c".
func ParseHallSymbol(symbol string) (*HallSymbol, error) {
	p, err := parseHall(symbol)
	if err != nil {
		return nil, err
	}
	gens := make(base.Operations, 0, len(p.ops)+1)
	for _, op := range p.generators() {
		if op.timeReversal {
			return nil, fmt.Errorf("ParseHallSymbol %q: time reversal in a space-group symbol: %w", symbol, ErrHallSymbolParse)
		}
		gens = append(gens, base.NewOperation(op.rotation, op.translation))
	}

	return &HallSymbol{
		Symbol:                symbol,
		Centering:             p.centering,
		CenteringTranslations: p.centering.LatticePoints()[1:],
		Generators:            gens,
	}, nil
}

// HallSymbolFromNumber parses the symbol of Hall setting 1..530.
func HallSymbolFromNumber(hallNumber int) (*HallSymbol, error) {
	e, err := HallSymbolEntryOf(hallNumber)
	if err != nil {
		return nil, err
	}

	return ParseHallSymbol(e.HallSymbol)
}

// Traverse returns the operations modulo the conventional lattice, one per
// rotation, identity first. The order is fixed for a given symbol.
func (h *HallSymbol) Traverse() (base.Operations, error) {
	return group.Traverse(h.Generators, group.WithDenominator(translationDenominator))
}

// ConventionalOperations is Traverse combined with every centering
// translation: the coset representatives first, then one block per
// centering vector.
func (h *HallSymbol) ConventionalOperations() (base.Operations, error) {
	ops, err := h.Traverse()
	if err != nil {
		return nil, err
	}
	out := make(base.Operations, 0, len(ops)*h.Centering.Order())
	out = append(out, ops...)
	for _, c := range h.CenteringTranslations {
		for _, op := range ops {
			out = append(out, base.NewOperation(op.Rotation, op.Translation.Add(c).Wrap()))
		}
	}

	return out, nil
}

// PrimitiveTraverse returns the operations in the primitive basis of the
// centred lattice.
func (h *HallSymbol) PrimitiveTraverse() (base.Operations, error) {
	ops, err := h.Traverse()
	if err != nil {
		return nil, err
	}

	return h.toPrimitive().InverseTransformOperations(ops), nil
}

// PrimitiveGenerators returns Generators in the primitive basis.
func (h *HallSymbol) PrimitiveGenerators() base.Operations {
	return h.toPrimitive().InverseTransformOperations(h.Generators)
}

func (h *HallSymbol) toPrimitive() base.Transformation {
	return centeringTransformation(h.Centering)
}

func centeringTransformation(c Centering) base.Transformation {
	t, err := base.TransformationFromLinear(c.Linear())
	if err != nil {
		// every centering matrix has a positive determinant
		panic(err)
	}

	return t
}

// MagneticHallSymbol is a parsed magnetic Hall symbol.
type MagneticHallSymbol struct {
	Symbol                string
	Centering             Centering
	CenteringTranslations []matrix.Vec3
	// Generators may include an anti-translation (1', t).
	Generators base.MagneticOperations
}

// ParseMagneticHallSymbol parses a magnetic Hall symbol such as
// "P 6c 2c' -1'".
func ParseMagneticHallSymbol(symbol string) (*MagneticHallSymbol, error) {
	p, err := parseHall(symbol)
	if err != nil {
		return nil, err
	}
	gens := make(base.MagneticOperations, 0, len(p.ops)+1)
	for _, op := range p.generators() {
		gens = append(gens, base.NewMagneticOperation(op.rotation, op.translation, op.timeReversal))
	}

	return &MagneticHallSymbol{
		Symbol:                symbol,
		Centering:             p.centering,
		CenteringTranslations: p.centering.LatticePoints()[1:],
		Generators:            gens,
	}, nil
}

// Traverse returns the magnetic operations modulo the conventional lattice,
// one per (rotation, time reversal) pair.
func (m *MagneticHallSymbol) Traverse() (base.MagneticOperations, error) {
	return group.TraverseMagnetic(m.Generators, group.WithDenominator(translationDenominator))
}

// PrimitiveTraverse returns the magnetic operations in the primitive basis.
func (m *MagneticHallSymbol) PrimitiveTraverse() (base.MagneticOperations, error) {
	mops, err := m.Traverse()
	if err != nil {
		return nil, err
	}

	return centeringTransformation(m.Centering).InverseTransformMagneticOperations(mops), nil
}

// PrimitiveGenerators returns Generators in the primitive basis.
func (m *MagneticHallSymbol) PrimitiveGenerators() base.MagneticOperations {
	return centeringTransformation(m.Centering).InverseTransformMagneticOperations(m.Generators)
}

type rawOperation struct {
	rotation     matrix.IMat3
	translation  matrix.Vec3
	timeReversal bool
}

type parsedHall struct {
	inversionAtOrigin bool
	centering         Centering
	ops               []rawOperation
	originShift       matrix.Vec3
}

// generators applies the origin shift v: (R, τ) becomes (R, τ + v - Rv).
func (p parsedHall) generators() []rawOperation {
	out := make([]rawOperation, 0, len(p.ops)+1)
	if p.inversionAtOrigin {
		out = append(out, rawOperation{
			rotation:    matrix.IIdentity().Neg(),
			translation: p.originShift.Scale(2).Wrap(),
		})
	}
	for _, op := range p.ops {
		t := op.translation.Add(p.originShift).Sub(op.rotation.MulFVec(p.originShift))
		out = append(out, rawOperation{rotation: op.rotation, translation: t.Wrap(), timeReversal: op.timeReversal})
	}

	return out
}

func parseHall(symbol string) (parsedHall, error) {
	var p parsedHall
	tokens := strings.Fields(symbol)
	if len(tokens) < 2 {
		return p, fmt.Errorf("parseHall %q: need a lattice and at least one operation: %w", symbol, ErrHallSymbolParse)
	}

	lat := tokens[0]
	if strings.HasPrefix(lat, "-") {
		p.inversionAtOrigin = true
		lat = lat[1:]
	}
	if len(lat) != 1 {
		return p, fmt.Errorf("parseHall %q: lattice token %q: %w", symbol, tokens[0], ErrHallSymbolParse)
	}
	c, err := CenteringFromLetter(lat[0])
	if err != nil {
		return p, fmt.Errorf("parseHall %q: %w", symbol, err)
	}
	p.centering = c

	var prevNFold, prevAxis string
	for cursor := 1; cursor < len(tokens); cursor++ {
		if strings.HasPrefix(tokens[cursor], "(") {
			if p.originShift, err = parseOriginShift(tokens[cursor:]); err != nil {
				return p, fmt.Errorf("parseHall %q: %w", symbol, err)
			}

			break
		}
		op, nfold, axis, err := parseOperation(tokens[cursor], cursor-1, prevNFold, prevAxis)
		if err != nil {
			return p, fmt.Errorf("parseHall %q: %w", symbol, err)
		}
		p.ops = append(p.ops, op)
		prevNFold, prevAxis = nfold, axis
	}
	if len(p.ops) == 0 {
		return p, fmt.Errorf("parseHall %q: no operations: %w", symbol, ErrHallSymbolParse)
	}

	return p, nil
}

func parseOriginShift(tokens []string) (matrix.Vec3, error) {
	inner := strings.Trim(strings.Join(tokens, " "), "() ")
	fields := strings.Fields(inner)
	if len(fields) != 3 {
		return matrix.Vec3{}, fmt.Errorf("origin shift %q: %w", strings.Join(tokens, " "), ErrHallSymbolParse)
	}
	var v matrix.Vec3
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return matrix.Vec3{}, fmt.Errorf("origin shift component %q: %w", f, ErrHallSymbolParse)
		}
		v[i] = float64(n) / translationDenominator
	}

	return v, nil
}

// parseOperation reads one <N> token. count is its position among the
// operation tokens; the default axis depends on it and on the previous
// token's fold and axis (ITB A1.4.2.3.1).
func parseOperation(token string, count int, prevNFold, prevAxis string) (rawOperation, string, string, error) {
	var op rawOperation
	bad := func(msg string) (rawOperation, string, string, error) {
		return op, "", "", fmt.Errorf("operation %q: %s: %w", token, msg, ErrHallSymbolParse)
	}
	pos := 0
	improper := false
	if pos < len(token) && token[pos] == '-' {
		improper = true
		pos++
	}
	if pos >= len(token) || !strings.ContainsRune("12346", rune(token[pos])) {
		return bad("missing fold")
	}
	nfold := string(token[pos])
	pos++

	axis := ""
	if pos < len(token) {
		switch token[pos] {
		case '^':
			axis = "p"
			pos++
		case '=', '"':
			axis = "pp"
			pos++
		}
	}
	if pos < len(token) && strings.ContainsRune("xyz*", rune(token[pos])) {
		axis += string(token[pos])
		pos++
	}
	if (axis == "p" || axis == "pp") && (prevAxis == "x" || prevAxis == "y" || prevAxis == "z") {
		axis += prevAxis
	}
	if nfold == "1" {
		axis += "z"
	}
	if axis == "" || axis == "p" || axis == "pp" {
		switch {
		case count == 0:
			axis += "z"
		case count == 1 && (prevNFold == "2" || prevNFold == "4"):
			axis += "x"
		case count == 1 && (prevNFold == "3" || prevNFold == "6"):
			axis += "pz"
		case count == 2 && nfold == "3":
			axis += "*"
		default:
			return bad("no default axis")
		}
	}

	rot, ok := hallRotations[nfold+axis]
	if !ok {
		return bad("unknown axis " + nfold + axis)
	}
	if improper {
		rot = rot.Neg()
	}
	op.rotation = rot

	n, _ := strconv.Atoi(nfold)
	for ; pos < len(token); pos++ {
		ch := token[pos]
		switch {
		case ch >= '1' && ch <= '6':
			// screw components run along c for every tabulated symbol
			op.translation = matrix.Vec3{0, 0, float64(ch-'0') / float64(n)}
		case strings.IndexByte("abcnuvwd", ch) >= 0:
			op.translation = op.translation.Add(hallTranslations[ch])
		case ch == '\'':
			op.timeReversal = true
		default:
			return bad(fmt.Sprintf("unexpected %q", ch))
		}
	}
	return op, nfold, axis, nil
}

var hallTranslations = map[byte]matrix.Vec3{
	'a': {0.5, 0, 0},
	'b': {0, 0.5, 0},
	'c': {0, 0, 0.5},
	'n': {0.5, 0.5, 0.5},
	'u': {0.25, 0, 0},
	'v': {0, 0.25, 0},
	'w': {0, 0, 0.25},
	'd': {0.25, 0.25, 0.25},
}

// hallRotations are the proper rotations of ITB Tables A1.4.2.4–6.
var hallRotations = map[string]matrix.IMat3{
	"1x":   matrix.IIdentity(),
	"1y":   matrix.IIdentity(),
	"1z":   matrix.IIdentity(),
	"2x":   {{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	"2y":   {{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	"2z":   {{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	"3x":   {{1, 0, 0}, {0, 0, -1}, {0, 1, -1}},
	"3y":   {{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	"3z":   {{0, -1, 0}, {1, -1, 0}, {0, 0, 1}},
	"4x":   {{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	"4y":   {{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	"4z":   {{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	"6x":   {{1, 0, 0}, {0, 1, -1}, {0, 1, 0}},
	"6y":   {{0, 0, 1}, {0, 1, 0}, {-1, 0, 1}},
	"6z":   {{1, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	"2px":  {{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
	"2ppx": {{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	"2py":  {{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}},
	"2ppy": {{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
	"2pz":  {{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}},
	"2ppz": {{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	"3*":   {{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
}

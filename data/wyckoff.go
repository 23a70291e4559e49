// SPDX-License-Identifier: MIT

package data

import (
	"cmp"
	_ "embed"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
	"github.com/katalvlaran/moyo/matrix"
)

// wyckoffGrid is the grid, in fractions of the conventional cell, holding
// every tabulated special position and every setting origin shift.
const wyckoffGrid = 24

// WyckoffPosition is one Wyckoff position of a Hall setting.
type WyckoffPosition struct {
	Letter string `json:"letter"`
	// Multiplicity counts points per conventional cell.
	Multiplicity int    `json:"multiplicity"`
	SiteSymmetry string `json:"site_symmetry"`
	// Coordinates is the representative point, e.g. "x,2x,1/4".
	Coordinates string `json:"coordinates"`
	// Space is Coordinates as an affine map of the free parameters.
	Space WyckoffSpace `json:"-"`
	// SiteRotations are the rotations fixing the representative point, in
	// the conventional basis.
	SiteRotations []matrix.IMat3 `json:"-"`
}

// WyckoffSpace is the affine subspace {Origin + Linear·y}. Columns of Linear
// beyond Dim are zero.
type WyckoffSpace struct {
	Linear matrix.IMat3
	Origin matrix.Vec3
	Dim    int
}

// wyckoff.txt lists the positions of the 230 standard settings, 'a' first:
//
//	space-group number | multiplicity | letter | site symmetry | coordinates
//
//go:embed wyckoff.txt
var wyckoffText string

type wyckoffRow struct {
	multiplicity int
	letter       string
	siteSymmetry string
	coordinates  string
	space        WyckoffSpace
}

var wyckoffRows = sync.OnceValue(func() [][]wyckoffRow {
	rows, err := parseWyckoffTable(wyckoffText)
	if err != nil {
		panic(err)
	}

	return rows
})

// parseWyckoffTable returns the rows indexed by space-group number.
func parseWyckoffTable(text string) ([][]wyckoffRow, error) {
	out := make([][]wyckoffRow, NumSpaceGroupTypes+1)
	for i, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return nil, fmt.Errorf("wyckoff table line %d: %d fields: %w", i+1, len(fields), ErrDerivation)
		}
		number, err := strconv.Atoi(fields[0])
		if err != nil || number < 1 || number > NumSpaceGroupTypes {
			return nil, fmt.Errorf("wyckoff table line %d: number %q: %w", i+1, fields[0], ErrDerivation)
		}
		mult, err := strconv.Atoi(fields[1])
		if err != nil || mult < 1 {
			return nil, fmt.Errorf("wyckoff table line %d: multiplicity %q: %w", i+1, fields[1], ErrDerivation)
		}
		if want := wyckoffLetter(len(out[number])); fields[2] != want {
			return nil, fmt.Errorf("wyckoff table line %d: letter %q, want %q: %w", i+1, fields[2], want, ErrDerivation)
		}
		space, err := parseWyckoffSpace(fields[4])
		if err != nil {
			return nil, fmt.Errorf("wyckoff table line %d: %w", i+1, err)
		}
		out[number] = append(out[number], wyckoffRow{
			multiplicity: mult,
			letter:       fields[2],
			siteSymmetry: fields[3],
			coordinates:  fields[4],
			space:        space,
		})
	}
	for n := 1; n <= NumSpaceGroupTypes; n++ {
		if len(out[n]) == 0 {
			return nil, fmt.Errorf("wyckoff table: no rows for %d: %w", n, ErrDerivation)
		}
	}

	return out, nil
}

// wyckoffLetter continues with capitals after 'z', as Pmmm uses 'A'.
func wyckoffLetter(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}

	return string(rune('A' + i - 26))
}

// parseWyckoffSpace reads a triplet such as "x,x+1/2,-x+1/4". Free
// parameters become columns in x, y, z order.
func parseWyckoffSpace(s string) (WyckoffSpace, error) {
	terms := strings.Split(s, ",")
	if len(terms) != 3 {
		return WyckoffSpace{}, fmt.Errorf("coordinates %q: %w", s, ErrDerivation)
	}
	var coef [3]matrix.IVec3 // coef[variable][row]
	var origin matrix.Vec3
	for i, term := range terms {
		for _, tok := range splitSigned(term) {
			if tok == "" {
				return WyckoffSpace{}, fmt.Errorf("coordinates %q: %w", s, ErrDerivation)
			}
			sign := 1
			switch tok[0] {
			case '-':
				sign = -1
				tok = tok[1:]
			case '+':
				tok = tok[1:]
			}
			if tok == "" {
				return WyckoffSpace{}, fmt.Errorf("coordinates %q: %w", s, ErrDerivation)
			}
			if v := strings.IndexByte("xyz", tok[len(tok)-1]); v >= 0 {
				k := 1
				if c := tok[:len(tok)-1]; c != "" {
					var err error
					if k, err = strconv.Atoi(c); err != nil {
						return WyckoffSpace{}, fmt.Errorf("coordinates %q: %w", s, ErrDerivation)
					}
				}
				coef[v][i] += sign * k

				continue
			}
			f, err := parseFraction(tok)
			if err != nil {
				return WyckoffSpace{}, fmt.Errorf("coordinates %q: %w", s, err)
			}
			origin[i] += float64(sign) * f
		}
	}

	var cols []matrix.IVec3
	for _, c := range coef {
		if !c.IsZero() {
			cols = append(cols, c)
		}
	}
	sp := WyckoffSpace{Origin: origin.Wrap(), Dim: len(cols)}
	for len(cols) < 3 {
		cols = append(cols, matrix.IVec3{})
	}
	sp.Linear = matrix.IFromColumns(cols[0], cols[1], cols[2])

	return sp, nil
}

// splitSigned cuts "x-y+1/2" into "x", "-y", "+1/2".
func splitSigned(term string) []string {
	var out []string
	start := 0
	for i := 1; i < len(term); i++ {
		if term[i] == '+' || term[i] == '-' {
			out = append(out, term[start:i])
			start = i
		}
	}

	return append(out, term[start:])
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	p, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("fraction %q: %w", s, ErrDerivation)
	}
	if !ok {
		return float64(p), nil
	}
	q, err := strconv.Atoi(den)
	if err != nil || q == 0 {
		return 0, fmt.Errorf("fraction %q: %w", s, ErrDerivation)
	}

	return float64(p) / float64(q), nil
}

// buildWyckoffPositions letters the positions of a Hall setting. The
// standard setting reads the table directly. Any other setting carries the
// rows of its standard setting through the change of basis between the
// two, so letters agree across settings while the coordinates and the
// oriented site symbols follow the setting's own axes.
func buildWyckoffPositions(hallNumber int) ([]WyckoffPosition, error) {
	entry, err := HallSymbolEntryOf(hallNumber)
	if err != nil {
		return nil, err
	}
	conv, err := conventionalOperationsOf(hallNumber)
	if err != nil {
		return nil, err
	}
	std, err := StandardHallNumber(entry.Number)
	if err != nil {
		return nil, err
	}

	standard := std == hallNumber
	q, shift := matrix.IIdentity(), matrix.Vec3{}
	if !standard {
		if q, shift, err = settingTransformation(entry, std, conv); err != nil {
			return nil, err
		}
	}

	dirs := symmetryDirections(arithmeticClasses[entry.ArithmeticNumber-1].LatticeSystem(), entry.Centering)
	rows := wyckoffRows()[entry.Number]
	out := make([]WyckoffPosition, len(rows))
	for i, row := range rows {
		space := row.space
		if !standard {
			space = transformWyckoffSpace(row.space, q, shift)
		}
		rotations := siteRotations(conv, space)
		if len(rotations) == 0 {
			return nil, fmt.Errorf("WyckoffPositions(%d): %s has no stabilizer: %w", hallNumber, row.letter, ErrDerivation)
		}
		w := WyckoffPosition{
			Letter:        row.letter,
			Multiplicity:  len(conv) / len(rotations),
			SiteSymmetry:  row.siteSymmetry,
			Coordinates:   row.coordinates,
			Space:         space,
			SiteRotations: rotations,
		}
		if standard && w.Multiplicity != row.multiplicity {
			return nil, fmt.Errorf("WyckoffPositions(%d): %s multiplicity %d, table %d: %w",
				hallNumber, row.letter, w.Multiplicity, row.multiplicity, ErrDerivation)
		}
		if !standard {
			w.SiteSymmetry = SiteSymmetrySymbol(rotations, dirs)
			w.Coordinates = space.String()
		}
		out[i] = w
	}

	return out, nil
}

func conventionalOperationsOf(hallNumber int) (base.Operations, error) {
	hs, err := HallSymbolFromNumber(hallNumber)
	if err != nil {
		return nil, err
	}

	return hs.ConventionalOperations()
}

// genericParameters avoid every special value of a Wyckoff space.
var genericParameters = matrix.Vec3{0.1931, 0.3119, 0.4973}

// siteRotations returns the rotations of the operations fixing a generic
// point of space modulo lattice translations.
func siteRotations(conv base.Operations, space WyckoffSpace) []matrix.IMat3 {
	x := space.Origin.Add(space.Linear.MulFVec(genericParameters))
	var out []matrix.IMat3
	for _, op := range conv {
		y := op.Rotation.MulFVec(x).Add(op.Translation)
		if y.Sub(x).WrapSigned().MaxAbs() < 1e-6 {
			out = append(out, op.Rotation)
		}
	}

	return out
}

// Setting codes of the Hall table. Monoclinic codes name the unique axis
// and the cell choice, orthorhombic ones the new axes in terms of the
// standard ones.
var (
	uniqueAxisCodes = map[string]string{
		"b": "abc", "c": "cab", "a": "bca",
		"-b": "c-ba", "-c": "a-cb", "-a": "ba-c",
	}
	cellChoices = map[byte]matrix.IMat3{
		'1': matrix.IIdentity(),
		'2': matrix.IFromColumns(matrix.IVec3{-1, 0, -1}, matrix.IVec3{0, 1, 0}, matrix.IVec3{1, 0, 0}),
		'3': matrix.IFromColumns(matrix.IVec3{0, 0, 1}, matrix.IVec3{0, 1, 0}, matrix.IVec3{-1, 0, -1}),
	}
	// obverse hexagonal to rhombohedral coordinates
	hexagonalToRhombohedral = matrix.IMat3{{1, 0, 1}, {-1, 1, 1}, {0, -1, 1}}
)

// settingBasis returns P, the columns of which are the axes of a setting
// in the standard basis.
func settingBasis(code string) (matrix.IMat3, error) {
	switch code {
	case "", "1", "2", "H":
		return matrix.IIdentity(), nil
	}
	if len(code) > 1 && (code[0] == '1' || code[0] == '2') {
		code = code[1:] // origin choice
	}
	if perm, ok := uniqueAxisCodes[code]; ok {
		return axisPermutation(perm)
	}
	if n := len(code); n > 1 {
		cell, okCell := cellChoices[code[n-1]]
		perm, okAxis := uniqueAxisCodes[code[:n-1]]
		if okCell && okAxis {
			p, err := axisPermutation(perm)
			if err != nil {
				return matrix.IMat3{}, err
			}

			return cell.Mul(p), nil
		}
	}

	return axisPermutation(code)
}

// axisPermutation reads an axis code such as "ba-c".
func axisPermutation(code string) (matrix.IMat3, error) {
	var cols []matrix.IVec3
	sign := 1
	for _, ch := range code {
		switch ch {
		case '-':
			sign = -1
		case 'a', 'b', 'c':
			var v matrix.IVec3
			v[ch-'a'] = sign
			cols = append(cols, v)
			sign = 1
		default:
			return matrix.IMat3{}, fmt.Errorf("setting %q: %w", code, ErrDerivation)
		}
	}
	if len(cols) != 3 {
		return matrix.IMat3{}, fmt.Errorf("setting %q: %w", code, ErrDerivation)
	}

	return matrix.IFromColumns(cols[0], cols[1], cols[2]), nil
}

// settingTransformation returns (Q, q) with x = Q·x_std + q taking
// coordinates of the standard setting std to those of entry.
//
// Q follows from the setting code. Of the origin shifts on the 1/8 grid
// mapping the standard operations onto conv, q is the shortest, positive
// components first, which lands on origin choice 1 of the tables.
func settingTransformation(entry HallSymbolEntry, std int, conv base.Operations) (matrix.IMat3, matrix.Vec3, error) {
	var q matrix.IMat3
	if entry.Setting == "R" {
		q = hexagonalToRhombohedral
	} else {
		p, err := settingBasis(entry.Setting)
		if err != nil {
			return q, matrix.Vec3{}, err
		}
		if q, err = p.Inverse(); err != nil {
			return q, matrix.Vec3{}, fmt.Errorf("setting %q: %w", entry.Setting, err)
		}
	}
	qinv, err := q.FInverse()
	if err != nil {
		return q, matrix.Vec3{}, err
	}
	stdOps, err := conventionalOperationsOf(std)
	if err != nil {
		return q, matrix.Vec3{}, err
	}

	target := make(map[gridOp]bool, len(conv))
	for _, op := range conv {
		g, ok := toGrid(op.Rotation, op.Translation)
		if !ok {
			return q, matrix.Vec3{}, fmt.Errorf("Hall %d: translation %v off grid: %w", entry.HallNumber, op.Translation, ErrDerivation)
		}
		target[g] = true
	}
	qf := q.ToFloat()
	mapped := make([]gridOp, len(stdOps))
	for i, op := range stdOps {
		r := qf.Mul(op.Rotation.ToFloat()).Mul(qinv)
		if !r.IsIntegral(1e-9) {
			return q, matrix.Vec3{}, fmt.Errorf("setting %q: %w", entry.Setting, ErrDerivation)
		}
		g, ok := toGrid(r.Round(), q.MulFVec(op.Translation))
		if !ok {
			return q, matrix.Vec3{}, fmt.Errorf("setting %q: %w", entry.Setting, ErrDerivation)
		}
		mapped[i] = g
	}

	for _, s := range originShiftCandidates() {
		image := make(map[gridOp]bool, len(target))
		ok := true
		for _, g := range mapped {
			h := gridOp{rotation: g.rotation, translation: wrapGrid(g.translation.Add(s).Sub(g.rotation.MulVec(s)))}
			if !target[h] {
				ok = false

				break
			}
			image[h] = true
		}
		// rhombohedral images collapse the hexagonal centering
		if ok && len(image) == len(target) {
			return q, s.ToFloat().Scale(1.0 / wyckoffGrid), nil
		}
	}

	return q, matrix.Vec3{}, fmt.Errorf("Hall %d: no origin shift onto Hall %d: %w", entry.HallNumber, std, ErrDerivation)
}

// gridOp is a conventional operation with its translation in grid units.
type gridOp struct {
	rotation    matrix.IMat3
	translation matrix.IVec3
}

func toGrid(r matrix.IMat3, t matrix.Vec3) (gridOp, bool) {
	s := t.Scale(wyckoffGrid)
	if s.Sub(s.Round().ToFloat()).MaxAbs() > 1e-6 {
		return gridOp{}, false
	}

	return gridOp{rotation: r, translation: wrapGrid(s.Round())}, true
}

func wrapGrid(v matrix.IVec3) matrix.IVec3 {
	for i := range v {
		v[i] = ((v[i] % wyckoffGrid) + wyckoffGrid) % wyckoffGrid
	}

	return v
}

// originShiftCandidates lists the shifts of the 1/8 grid in grid units,
// shortest first.
var originShiftCandidates = sync.OnceValue(func() []matrix.IVec3 {
	const step = wyckoffGrid / 8
	centred := func(v matrix.IVec3) matrix.IVec3 {
		for i := range v {
			if v[i] > wyckoffGrid/2 {
				v[i] -= wyckoffGrid
			}
		}

		return v
	}
	var out []matrix.IVec3
	for a := 0; a < wyckoffGrid; a += step {
		for b := 0; b < wyckoffGrid; b += step {
			for c := 0; c < wyckoffGrid; c += step {
				out = append(out, matrix.IVec3{a, b, c})
			}
		}
	}
	slices.SortStableFunc(out, func(u, v matrix.IVec3) int {
		cu, cv := centred(u), centred(v)
		if c := cmp.Compare(absSum(cu), absSum(cv)); c != 0 {
			return c
		}
		for i := 0; i < 3; i++ {
			if c := cmp.Compare(cv[i], cu[i]); c != 0 {
				return c
			}
		}

		return 0
	})

	return out
})

func absSum(v matrix.IVec3) int {
	s := 0
	for _, x := range v {
		if x < 0 {
			x = -x
		}
		s += x
	}

	return s
}

// transformWyckoffSpace maps a space through x ↦ Q·x + shift and picks a
// readable parametrization of the image.
func transformWyckoffSpace(s WyckoffSpace, q matrix.IMat3, shift matrix.Vec3) WyckoffSpace {
	lin := q.Mul(s.Linear)
	var kernel [][]int
	for c := 0; c < s.Dim; c++ {
		col := lin.Col(c)
		kernel = append(kernel, []int{col[0], col[1], col[2]})
	}
	origin := q.MulFVec(s.Origin).Add(shift).Wrap()

	return wyckoffSpace(wrapGrid(origin.Scale(wyckoffGrid).Round()), kernel)
}

// wyckoffSpace picks a readable parametrization of point + span(kernel),
// point in grid units: lines are parametrized by their first non-zero
// coordinate, planes by the two coordinates other than the last one the
// normal can be solved for.
func wyckoffSpace(point matrix.IVec3, kernel [][]int) WyckoffSpace {
	x := point.ToFloat().Scale(1.0 / wyckoffGrid)
	s := WyckoffSpace{Dim: len(kernel)}
	switch len(kernel) {
	case 0:
		s.Origin = x
	case 1:
		v := primitiveVector(matrix.IVec3{kernel[0][0], kernel[0][1], kernel[0][2]})
		k := 0
		for v[k] == 0 {
			k++
		}
		s.Linear = matrix.IFromColumns(v, matrix.IVec3{}, matrix.IVec3{})
		s.Origin = x.Sub(v.ToFloat().Scale(x[k] / float64(v[k])))
	case 2:
		a := matrix.IVec3{kernel[0][0], kernel[0][1], kernel[0][2]}
		b := matrix.IVec3{kernel[1][0], kernel[1][1], kernel[1][2]}
		nrm := primitiveVector(matrix.IVec3{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		})
		k := -1
		for i := 2; i >= 0; i-- {
			if nrm[i] == 1 || nrm[i] == -1 {
				k = i
				break
			}
		}
		if k < 0 {
			s.Linear = matrix.IFromColumns(a, b, matrix.IVec3{})
			s.Origin = x

			break
		}
		var cols [2]matrix.IVec3
		c := 0
		for i := 0; i < 3; i++ {
			if i == k {
				continue
			}
			cols[c][i] = 1
			cols[c][k] = -nrm[i] * nrm[k] // nrm[k] = ±1 is its own inverse
			c++
		}
		s.Linear = matrix.IFromColumns(cols[0], cols[1], matrix.IVec3{})
		s.Origin = x
		for _, col := range cols {
			for i := 0; i < 3; i++ {
				if i != k && col[i] == 1 {
					s.Origin = s.Origin.Sub(col.ToFloat().Scale(x[i]))
				}
			}
		}
	default:
		s.Linear = matrix.IIdentity()
	}
	s.Origin = s.Origin.Wrap()

	return s
}

// primitiveVector divides by the gcd and makes the first non-zero entry
// positive.
func primitiveVector(v matrix.IVec3) matrix.IVec3 {
	g := 0
	for _, x := range v {
		g = gcd(g, x)
	}
	if g == 0 {
		return v
	}
	for i := range v {
		v[i] /= g
	}
	for _, x := range v {
		if x != 0 {
			if x < 0 {
				v = v.Neg()
			}
			break
		}
	}

	return v
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// variableNames names the free parameters after the coordinate they
// follow: the first non-zero one for a line, the one only this column
// moves for a plane.
func (s WyckoffSpace) variableNames() [3]string {
	names := [3]string{"x", "y", "z"}
	var out [3]string
	if s.Dim == 3 {
		return names
	}
	for c := 0; c < s.Dim; c++ {
		col := s.Linear.Col(c)
		for i := 2; i >= 0; i-- {
			if col[i] != 0 {
				out[c] = names[i]
			}
		}
		if s.Dim != 2 {
			continue
		}
		other := s.Linear.Col(1 - c)
		for i := 0; i < 3; i++ {
			if col[i] == 1 && other[i] == 0 {
				out[c] = names[i]
				break
			}
		}
	}

	return out
}

// String formats the space as a coordinate triplet.
func (s WyckoffSpace) String() string {
	vars := s.variableNames()
	terms := make([]string, 3)
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for c := 0; c < s.Dim; c++ {
			a := s.Linear[i][c]
			switch {
			case a == 0:
				continue
			case a == 1:
				b.WriteString("+")
			case a == -1:
				b.WriteString("-")
			case a > 0:
				b.WriteString("+" + strconv.Itoa(a))
			default:
				b.WriteString(strconv.Itoa(a))
			}
			b.WriteString(vars[c])
		}
		if f := formatFraction(s.Origin[i]); f != "0" || b.Len() == 0 {
			if b.Len() > 0 {
				b.WriteString("+")
			}
			b.WriteString(f)
		}
		terms[i] = strings.TrimPrefix(b.String(), "+")
	}

	return strings.Join(terms, ",")
}

// formatFraction renders x ∈ [0,1) as p/q with q ≤ 48.
func formatFraction(x float64) string {
	const den = 2 * wyckoffGrid
	p := int(math.Round(x * den))
	if p == 0 || p == den {
		return "0"
	}
	g := gcd(p, den)

	return fmt.Sprintf("%d/%d", p/g, den/g)
}

// symmetryDirections are the lattice symmetry directions of ITA Table
// 2.1.3.1 in conventional coordinates, one slice per symbol position.
func symmetryDirections(ls LatticeSystem, c Centering) [][]matrix.IVec3 {
	switch ls {
	case LatticeMonoclinic:
		return [][]matrix.IVec3{{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	case LatticeOrthorhombic:
		return [][]matrix.IVec3{{{1, 0, 0}}, {{0, 1, 0}}, {{0, 0, 1}}}
	case LatticeTetragonal:
		return [][]matrix.IVec3{{{0, 0, 1}}, {{1, 0, 0}, {0, 1, 0}}, {{1, 1, 0}, {1, -1, 0}}}
	case LatticeRhombohedral:
		if c == CenteringP {
			return [][]matrix.IVec3{{{1, 1, 1}}, {{1, -1, 0}, {0, 1, -1}, {-1, 0, 1}}}
		}

		fallthrough
	case LatticeHexagonal:
		return [][]matrix.IVec3{
			{{0, 0, 1}},
			{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
			{{1, -1, 0}, {1, 2, 0}, {2, 1, 0}},
		}
	case LatticeCubic:
		return [][]matrix.IVec3{
			{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
			{{1, -1, 0}, {1, 1, 0}, {0, 1, -1}, {0, 1, 1}, {-1, 0, 1}, {1, 0, 1}},
		}
	default:
		return nil
	}
}

// SiteSymmetrySymbol writes the oriented site-symmetry symbol of a group of
// rotations with respect to the symmetry directions dirs. Each position
// lists one symbol per orbit of symmetry-carrying directions under the
// site group, or "." when no direction carries symmetry.
//
// Within a position, axes of order above two come first. Along cubic face
// diagonals mirrors precede twofold axes; elsewhere twofold axes lead, so
// Pm-3m 12h reads mm2.. and P-6m2 3j reads mm2.
func SiteSymmetrySymbol(rotations []matrix.IMat3, dirs [][]matrix.IVec3) string {
	along := func(d matrix.IVec3) map[group.RotationType]bool {
		d = primitiveVector(d)
		types := make(map[group.RotationType]bool)
		for _, r := range rotations {
			axis, ok := group.RotationAxis(r)
			if !ok || primitiveVector(axis) != d {
				continue
			}
			if t, err := group.RotationTypeOf(r); err == nil {
				types[t] = true
			}
		}

		return types
	}
	equivalent := func(a, b matrix.IVec3) bool {
		for _, r := range rotations {
			if primitiveVector(r.MulVec(a)) == primitiveVector(b) {
				return true
			}
		}

		return false
	}

	positions := make([][]string, len(dirs))
	nonDot := 0
	for p, set := range dirs {
		var reps []matrix.IVec3
		for _, d := range set {
			sym := axisSymbol(along(d))
			if sym == "." {
				continue
			}
			seen := false
			for _, r := range reps {
				if equivalent(r, d) {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			reps = append(reps, d)
			positions[p] = append(positions[p], sym)
			nonDot++
		}
	}
	if nonDot == 0 {
		for _, r := range rotations {
			if r == matrix.IIdentity().Neg() {
				return "-1"
			}
		}

		return "1"
	}

	cubic := len(dirs) == 3 && len(dirs[1]) == 4
	cubicWithBar3 := cubic && len(positions[1]) == 1 && positions[1][0] == "-3"
	var b strings.Builder
	for p, syms := range positions {
		if len(syms) == 0 {
			b.WriteString(".")
			continue
		}
		slices.SortStableFunc(syms, func(x, y string) int {
			return cmp.Compare(symbolRank(x, cubic), symbolRank(y, cubic))
		})
		for _, s := range syms {
			if nonDot > 1 && s == "2/m" {
				s = "m"
			}
			if p == 0 && cubicWithBar3 && s == "4/m" {
				s = "m"
			}
			b.WriteString(s)
		}
	}

	return b.String()
}

// symbolRank orders the symbols written at one position.
func symbolRank(s string, cubic bool) int {
	switch s {
	case "m", "2/m":
		if cubic {
			return 1
		}

		return 2
	case "2":
		if cubic {
			return 2
		}

		return 1
	default:
		return 0
	}
}

// axisSymbol combines the rotation types found along one direction.
func axisSymbol(types map[group.RotationType]bool) string {
	m := types[group.RotoInversion2]
	switch {
	case types[group.Rotation6] && m:
		return "6/m"
	case types[group.Rotation6]:
		return "6"
	case types[group.Rotation4] && m:
		return "4/m"
	case types[group.Rotation4]:
		return "4"
	case types[group.RotoInversion6]:
		return "-6"
	case types[group.RotoInversion4]:
		return "-4"
	case types[group.RotoInversion3]:
		return "-3"
	case types[group.Rotation3]:
		return "3"
	case types[group.Rotation2] && m:
		return "2/m"
	case types[group.Rotation2]:
		return "2"
	case m:
		return "m"
	default:
		return "."
	}
}

// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/group"
)

// Cache sizes of the per-Hall-number derivations. A Wyckoff table is a few
// kilobytes; every Hall setting fits.
const (
	WyckoffCacheSize    = NumHallSymbols
	NormalizerCacheSize = 256
)

// normalizerEps compares translations of tabulated operations, all on the
// 1/12 grid.
const normalizerEps = 1e-6

// Database is the read-only view of the derived tables. The static tables
// (Hall symbols, space-group and crystal-class types) are package data;
// the Database owns the derivations built from them on demand: Wyckoff
// tables, normalizers and the magnetic types. It is safe for concurrent
// use.
type Database struct {
	wyckoff     *lru.Cache[int, []WyckoffPosition]
	normalizer  *lru.Cache[int, normalizerPair]
	magnetic    func() ([]MagneticSpaceGroupType, error)
	uniStartsBy func() ([NumSpaceGroupTypes + 2]int, error)
}

type normalizerPair struct {
	integral []base.UnimodularTransformation
	full     []base.UnimodularTransformation
}

// Load returns the process-wide Database.
var Load = sync.OnceValue(func() *Database {
	return newDatabase()
})

func newDatabase() *Database {
	wy, err := lru.New[int, []WyckoffPosition](WyckoffCacheSize)
	if err != nil {
		panic(err) // positive constant size
	}
	nm, err := lru.New[int, normalizerPair](NormalizerCacheSize)
	if err != nil {
		panic(err)
	}
	db := &Database{wyckoff: wy, normalizer: nm}
	db.magnetic = sync.OnceValues(db.buildMagnetic)
	db.uniStartsBy = sync.OnceValues(func() ([NumSpaceGroupTypes + 2]int, error) {
		var starts [NumSpaceGroupTypes + 2]int
		types, err := db.magnetic()
		if err != nil {
			return starts, err
		}
		for i := len(types) - 1; i >= 0; i-- {
			starts[types[i].Number] = types[i].UNINumber
		}
		starts[NumSpaceGroupTypes+1] = NumMagneticSpaceGroupTypes + 1

		return starts, nil
	})

	return db
}

// WyckoffPositions returns the Wyckoff table of a Hall setting, lettered
// from 'a'. The returned slice must not be modified.
func (db *Database) WyckoffPositions(hallNumber int) ([]WyckoffPosition, error) {
	if hallNumber < 1 || hallNumber > NumHallSymbols {
		return nil, fmt.Errorf("WyckoffPositions(%d): %w", hallNumber, ErrOutOfRange)
	}
	if w, ok := db.wyckoff.Get(hallNumber); ok {
		return w, nil
	}
	w, err := buildWyckoffPositions(hallNumber)
	if err != nil {
		return nil, err
	}
	db.wyckoff.Add(hallNumber, w)

	return w, nil
}

// IntegralNormalizer returns the integral normalizer of the Hall setting in
// its primitive basis, up to the centralizer of the point group.
func (db *Database) IntegralNormalizer(hallNumber int) ([]base.UnimodularTransformation, error) {
	n, err := db.normalizers(hallNumber)
	if err != nil {
		return nil, err
	}

	return n.integral, nil
}

func (db *Database) normalizers(hallNumber int) (normalizerPair, error) {
	if n, ok := db.normalizer.Get(hallNumber); ok {
		return n, nil
	}
	hs, err := HallSymbolFromNumber(hallNumber)
	if err != nil {
		return normalizerPair{}, err
	}
	prim, err := hs.PrimitiveTraverse()
	if err != nil {
		return normalizerPair{}, err
	}
	gens := primitiveGeneratorsWithoutIdentity(hs)
	var n normalizerPair
	if n.integral, err = group.IntegralNormalizer(prim, gens, normalizerEps); err != nil {
		return normalizerPair{}, fmt.Errorf("IntegralNormalizer(%d): %w", hallNumber, err)
	}
	if n.full, err = group.FullNormalizer(prim, gens, normalizerEps); err != nil {
		return normalizerPair{}, fmt.Errorf("FullNormalizer(%d): %w", hallNumber, err)
	}
	db.normalizer.Add(hallNumber, n)

	return n, nil
}

// primitiveGeneratorsWithoutIdentity drops generators with the identity
// rotation; a trivial group keeps the identity itself.
func primitiveGeneratorsWithoutIdentity(hs *HallSymbol) base.Operations {
	var out base.Operations
	for _, g := range hs.PrimitiveGenerators() {
		if !g.Rotation.IsIdentity() {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		out = base.Operations{base.IdentityOperation()}
	}

	return out
}

// buildMagnetic derives the types of all 230 space groups in parallel and
// numbers them.
func (db *Database) buildMagnetic() ([]MagneticSpaceGroupType, error) {
	perNumber := make([][]MagneticSpaceGroupType, NumSpaceGroupTypes+1)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for n := 1; n <= NumSpaceGroupTypes; n++ {
		g.Go(func() error {
			types, err := db.deriveMagneticTypes(n)
			if err != nil {
				return fmt.Errorf("magnetic types of %d: %w", n, err)
			}
			perNumber[n] = types

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]MagneticSpaceGroupType, 0, NumMagneticSpaceGroupTypes)
	serial := 0
	for n := 1; n <= NumSpaceGroupTypes; n++ {
		if lo.Contains(bnsFamilyStart, n) {
			serial = 0
		}
		for _, t := range perNumber[n] {
			serial++
			t.UNINumber = len(out) + 1
			t.BNSNumber = strconv.Itoa(n) + "." + strconv.Itoa(serial)
			out = append(out, t)
		}
	}
	if len(out) != NumMagneticSpaceGroupTypes {
		return nil, fmt.Errorf("buildMagnetic: %d types: %w", len(out), ErrDerivation)
	}

	return out, nil
}

// MagneticSpaceGroupTypes returns all magnetic types in UNI order. The
// first call derives the table.
func (db *Database) MagneticSpaceGroupTypes() ([]MagneticSpaceGroupType, error) {
	types, err := db.magnetic()
	if err != nil {
		return nil, err
	}

	return slices.Clone(types), nil
}

// MagneticSpaceGroupTypeOf returns the type with UNI number 1..1651.
func (db *Database) MagneticSpaceGroupTypeOf(uni int) (MagneticSpaceGroupType, error) {
	if uni < 1 || uni > NumMagneticSpaceGroupTypes {
		return MagneticSpaceGroupType{}, fmt.Errorf("MagneticSpaceGroupTypeOf(%d): %w", uni, ErrOutOfRange)
	}
	types, err := db.magnetic()
	if err != nil {
		return MagneticSpaceGroupType{}, err
	}

	return types[uni-1], nil
}

// UNIRange returns the half-open range [first, last) of UNI numbers over
// the space-group type number.
func (db *Database) UNIRange(number int) (first, last int, err error) {
	if number < 1 || number > NumSpaceGroupTypes {
		return 0, 0, fmt.Errorf("UNIRange(%d): %w", number, ErrOutOfRange)
	}
	starts, err := db.uniStartsBy()
	if err != nil {
		return 0, 0, err
	}

	return starts[number], starts[number+1], nil
}

// WyckoffPositions is Load().WyckoffPositions.
func WyckoffPositions(hallNumber int) ([]WyckoffPosition, error) {
	return Load().WyckoffPositions(hallNumber)
}

// MagneticSpaceGroupTypeOf is Load().MagneticSpaceGroupTypeOf.
func MagneticSpaceGroupTypeOf(uni int) (MagneticSpaceGroupType, error) {
	return Load().MagneticSpaceGroupTypeOf(uni)
}

// UNIRange is Load().UNIRange.
func UNIRange(number int) (first, last int, err error) {
	return Load().UNIRange(number)
}

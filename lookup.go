// SPDX-License-Identifier: MIT

package moyo

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/moyo/base"
	"github.com/katalvlaran/moyo/data"
)

// HallSymbolEntry returns the setting numbered 1..530.
func HallSymbolEntry(hallNumber int) (data.HallSymbolEntry, error) {
	e, err := data.HallSymbolEntryOf(hallNumber)

	return e, errors.WithMessage(err, "moyo")
}

// SpaceGroupType returns the space-group type numbered 1..230.
func SpaceGroupType(number int) (data.SpaceGroupType, error) {
	t, err := data.SpaceGroupTypeOf(number)

	return t, errors.WithMessage(err, "moyo")
}

// MagneticSpaceGroupType returns the magnetic type with UNI number 1..1651.
func MagneticSpaceGroupType(uniNumber int) (data.MagneticSpaceGroupType, error) {
	t, err := data.MagneticSpaceGroupTypeOf(uniNumber)

	return t, errors.WithMessage(err, "moyo")
}

// OperationsFromNumber returns the conventional operations of space-group
// type number in the Hall setting chosen by setting, centring translations
// included. A HallNumberSetting of another type fails with
// data.ErrOutOfRange.
func OperationsFromNumber(number int, setting data.Setting) (base.Operations, error) {
	if _, err := data.SpaceGroupTypeOf(number); err != nil {
		return nil, errors.WithMessage(err, "moyo")
	}
	hallNumbers, err := setting.HallNumbers()
	if err != nil {
		return nil, errors.WithMessage(err, "moyo")
	}
	for _, h := range hallNumbers {
		entry, err := data.HallSymbolEntryOf(h)
		if err != nil {
			return nil, errors.WithMessage(err, "moyo")
		}
		if entry.Number != number {
			continue
		}
		hs, err := data.HallSymbolFromNumber(h)
		if err != nil {
			return nil, errors.WithMessagef(err, "moyo: Hall number %d", h)
		}
		ops, err := hs.ConventionalOperations()

		return ops, errors.WithMessagef(err, "moyo: Hall number %d", h)
	}

	return nil, errors.Wrapf(data.ErrOutOfRange, "moyo: no %s setting of No. %d", setting, number)
}

// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"sync"

	"github.com/samber/lo"
)

type settingKind int

const (
	settingStandard settingKind = iota
	settingSpglib
	settingHallNumber
)

// Setting selects which Hall settings identification may return.
type Setting struct {
	kind       settingKind
	hallNumber int
}

var (
	// Standard is the ITA standard setting: unique axis b, cell choice 1,
	// origin choice 2 where two exist, hexagonal axes for rhombohedral
	// groups.
	Standard = Setting{kind: settingStandard}

	// Spglib picks the smallest Hall number of every type, matching spglib.
	Spglib = Setting{kind: settingSpglib}
)

// HallNumberSetting pins identification to one Hall setting.
func HallNumberSetting(hallNumber int) Setting {
	return Setting{kind: settingHallNumber, hallNumber: hallNumber}
}

// originChoice2 are the types whose standard setting is origin choice 2.
var originChoice2 = []int{
	48, 50, 59, 68, 70, 85, 86, 88, 125, 126, 129, 130, 133, 134, 137, 138,
	141, 142, 201, 203, 222, 224, 227, 228,
}

var standardHallNumbers = sync.OnceValue(func() [NumSpaceGroupTypes + 1]int {
	var out [NumSpaceGroupTypes + 1]int
	for _, e := range hallTable() {
		n := e.Number
		switch {
		case out[n] == 0:
			out[n] = e.HallNumber
		case e.Setting == "H":
			out[n] = e.HallNumber
		case e.Setting == "2" && lo.Contains(originChoice2, n):
			out[n] = e.HallNumber
		}
	}

	return out
})

// StandardHallNumber returns the Hall number of the standard setting of a
// space-group type.
func StandardHallNumber(number int) (int, error) {
	if number < 1 || number > NumSpaceGroupTypes {
		return 0, fmt.Errorf("StandardHallNumber(%d): %w", number, ErrOutOfRange)
	}

	return standardHallNumbers()[number], nil
}

// HallNumbers lists the candidate settings in the order identification
// tries them.
func (s Setting) HallNumbers() ([]int, error) {
	switch s.kind {
	case settingStandard:
		table := standardHallNumbers()
		out := make([]int, NumSpaceGroupTypes)
		copy(out, table[1:])

		return out, nil
	case settingSpglib:
		out := make([]int, 0, NumSpaceGroupTypes)
		last := 0
		for _, e := range hallTable() {
			if e.Number != last {
				out = append(out, e.HallNumber)
				last = e.Number
			}
		}

		return out, nil
	default:
		if s.hallNumber < 1 || s.hallNumber > NumHallSymbols {
			return nil, fmt.Errorf("HallNumberSetting(%d): %w", s.hallNumber, ErrOutOfRange)
		}

		return []int{s.hallNumber}, nil
	}
}

func (s Setting) String() string {
	switch s.kind {
	case settingStandard:
		return "standard"
	case settingSpglib:
		return "spglib"
	default:
		return fmt.Sprintf("hall_number=%d", s.hallNumber)
	}
}

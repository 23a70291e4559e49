// SPDX-License-Identifier: MIT

package data

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// NumHallSymbols is the number of tabulated Hall settings.
const NumHallSymbols = 530

// NumSpaceGroupTypes is the number of space-group types.
const NumSpaceGroupTypes = 230

// HallSymbolEntry is one setting of a space-group type.
type HallSymbolEntry struct {
	HallNumber       int       `json:"hall_number"`
	Number           int       `json:"number"`
	ArithmeticNumber int       `json:"arithmetic_number"`
	Setting          string    `json:"setting"` // origin choice or axis code, e.g. "2", "H", "-cb"
	Centering        Centering `json:"centering"`
	HallSymbol       string    `json:"hall_symbol"`
	HMShort          string    `json:"hm_short"`
}

// hall_symbols.txt holds one setting per line:
//
//	hall number | space-group number | setting | Hall symbol | short HM symbol
//
//go:embed hall_symbols.txt
var hallSymbolsText string

// hallTable parses the embedded table once. The file is fixed at build time
// and checked by the package tests, so a malformed row is a build defect.
var hallTable = sync.OnceValue(func() []HallSymbolEntry {
	entries, err := parseHallTable(hallSymbolsText)
	if err != nil {
		panic(err)
	}

	return entries
})

func parseHallTable(text string) ([]HallSymbolEntry, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	entries := make([]HallSymbolEntry, 0, len(lines))
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return nil, fmt.Errorf("hall table line %d: %d fields: %w", i+1, len(fields), ErrHallSymbolParse)
		}
		hall, err := strconv.Atoi(fields[0])
		if err != nil || hall != i+1 {
			return nil, fmt.Errorf("hall table line %d: hall number %q: %w", i+1, fields[0], ErrHallSymbolParse)
		}
		number, err := strconv.Atoi(fields[1])
		if err != nil || number < 1 || number > NumSpaceGroupTypes {
			return nil, fmt.Errorf("hall table line %d: number %q: %w", i+1, fields[1], ErrHallSymbolParse)
		}
		symbol := fields[3]
		c, err := CenteringFromLetter(strings.TrimPrefix(symbol, "-")[0])
		if err != nil {
			return nil, fmt.Errorf("hall table line %d: %w", i+1, err)
		}
		entries = append(entries, HallSymbolEntry{
			HallNumber:       hall,
			Number:           number,
			ArithmeticNumber: arithmeticNumbers[number],
			Setting:          fields[2],
			Centering:        c,
			HallSymbol:       symbol,
			HMShort:          fields[4],
		})
	}
	if len(entries) != NumHallSymbols {
		return nil, fmt.Errorf("hall table: %d rows: %w", len(entries), ErrHallSymbolParse)
	}

	return entries, nil
}

// HallSymbolEntryOf returns the setting with Hall number 1..530.
func HallSymbolEntryOf(hallNumber int) (HallSymbolEntry, error) {
	if hallNumber < 1 || hallNumber > NumHallSymbols {
		return HallSymbolEntry{}, fmt.Errorf("HallSymbolEntryOf(%d): %w", hallNumber, ErrOutOfRange)
	}

	return hallTable()[hallNumber-1], nil
}

// HallSymbolEntries returns a copy of the whole table.
func HallSymbolEntries() []HallSymbolEntry {
	src := hallTable()
	out := make([]HallSymbolEntry, len(src))
	copy(out, src)

	return out
}

// hallNumbersOf lists the settings of a space-group type in table order.
func hallNumbersOf(number int) []int {
	var out []int
	for _, e := range hallTable() {
		if e.Number == number {
			out = append(out, e.HallNumber)
		}
	}

	return out
}

// SPDX-License-Identifier: MIT

package data

import "errors"

var (
	// ErrHallSymbolParse is returned for a malformed Hall or magnetic Hall
	// symbol.
	ErrHallSymbolParse = errors.New("data: cannot parse Hall symbol")

	// ErrOutOfRange is returned for a Hall, space-group, arithmetic or UNI
	// number outside its table.
	ErrOutOfRange = errors.New("data: number out of range")

	// ErrDerivation is returned when a derived table cannot be built from
	// the Hall symbols.
	ErrDerivation = errors.New("data: derived table is inconsistent")
)

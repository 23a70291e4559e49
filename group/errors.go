// SPDX-License-Identifier: MIT

package group

import "errors"

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("group: invalid option supplied")

	// ErrOrderExceeded is returned when a traversal grows past MaxOrder,
	// which only happens for generators of an infinite group.
	ErrOrderExceeded = errors.New("group: group order exceeds limit")

	// ErrUnknownRotation is returned for an integer matrix whose
	// (det, trace) pair is not crystallographic.
	ErrUnknownRotation = errors.New("group: non-crystallographic rotation")
)

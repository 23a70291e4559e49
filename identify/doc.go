// SPDX-License-Identifier: MIT

// Package identify classifies symmetry operations found in a primitive
// cell against the tabulated types.
//
//   - NewPointGroup: geometric crystal class from the rotation-type
//     histogram, then the arithmetic crystal class and a unimodular change
//     of basis onto its representative.
//   - NewSpaceGroup: Hall setting of the requested Setting and the
//     unimodular transformation (P, p) taking the input primitive operations
//     onto the tabulated primitive operations of that setting.
//   - NewMagneticSpaceGroup: construct type (I–IV) from the maximal space
//     subgroup and the family space group, then the UNI number.
//
// All constructors accept operations directly, so callers holding
// operations from another tool can skip the search stage. Failures wrap
// ErrNoMatchingType.
package identify

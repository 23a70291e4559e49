// SPDX-License-Identifier: MIT

// Package data is the read-only crystallographic database: lattice
// centerings, the 530 Hall symbols and their parser, settings, the
// crystal-class classification, the 230 space-group types, Wyckoff positions
// and the 1,651 magnetic space-group types.
//
// Static tables are compiled in. Wyckoff positions and magnetic types are
// derived from the Hall symbols on first use:
//
//   - Wyckoff positions of a Hall setting come from the orbits of a 1/24
//     grid of the conventional cell under the full conventional group, and
//     are memoized per Hall number in an LRU cache.
//   - Magnetic types come from the index-2 subgroups of each standard space
//     group (type III) and from the half-lattice anti-translations fixed by
//     its point group (type IV), each modulo the normalizer.
//
// Load returns the process-wide *Database. All values handed out are copies
// or immutable.
package data

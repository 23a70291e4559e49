// SPDX-License-Identifier: MIT

package identify

import "errors"

// ErrNoMatchingType is returned when the operations match none of the
// tabulated point-group, space-group or magnetic space-group types. It
// signals operations that are not a crystallographic group, usually found
// with a tolerance that is far too loose.
var ErrNoMatchingType = errors.New("identify: no matching type")

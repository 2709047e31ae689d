// Package column resolves a user-supplied column spec (a name or a zero-based
// index) to the index the pipeline operates on.
//
// Resolution rules:
//
//   - A spec that parses as a non-negative integer is used as the index
//     directly, whether or not the input has headers. Numeric specs always
//     win over name lookup, even when a header cell is textually equal to
//     the spec.
//   - A non-numeric spec requires headers; without them there is nothing to
//     look the name up in, and resolution fails with ErrInvalidColumnSpec.
//   - Name lookup is an exact, case-sensitive scan of the header row from
//     left to right. The first match wins; duplicate header names are not an
//     error.
//
// The resolved index may exceed a given row's width in flexible input. That
// is handled downstream: such rows simply have no field at the target
// position and pass through untouched.
package column

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrColumnNotFound reports a name spec that matched no header cell.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidColumnSpec reports a spec that cannot be resolved at all,
	// e.g. a non-numeric spec when the input has no headers.
	ErrInvalidColumnSpec = errors.New("invalid column")
)

// Resolve maps spec to a zero-based column index.
//
// header is the header row when headersEnabled is true; it may be nil (empty
// input), in which case name lookup fails with ErrColumnNotFound while
// numeric specs still resolve.
func Resolve(spec string, headersEnabled bool, header []string) (int, error) {
	if n, err := strconv.Atoi(spec); err == nil && n >= 0 {
		return n, nil
	}

	if !headersEnabled {
		return 0, fmt.Errorf("%w: %q is not a non-negative index and the input has no headers", ErrInvalidColumnSpec, spec)
	}

	for i, name := range header {
		if name == spec {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, spec)
}

// Package csvio adapts encoding/csv to the row source/sink contract consumed
// by the pipeline: delimiter-bound, flexible field counts, one-row-at-a-time
// streaming with no whole-file buffering.
//
// Framing is strict. Malformed quoting in the input surfaces as the
// underlying *csv.ParseError and is fatal for the run; rows whose field
// count differs from other rows are never an error by themselves.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Options configures a Reader or Writer. The zero value means a comma
// delimiter.
type Options struct {
	// Comma is the field delimiter used for both reading and writing.
	// When zero, ',' is used.
	Comma rune
}

// Reader streams rows from delimiter-separated input.
type Reader struct {
	cr *csv.Reader
}

// NewReader wraps r in a row source bound to the configured delimiter.
// Field counts are flexible: every row is accepted at whatever width it has.
func NewReader(r io.Reader, opt Options) *Reader {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return &Reader{cr: cr}
}

// ReadHeader reads the single header row. The returned slice is an owned
// copy so it stays valid across subsequent Read calls. io.EOF is returned
// as-is for empty input.
func (r *Reader) ReadHeader() ([]string, error) {
	row, err := r.cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	out := make([]string, len(row))
	copy(out, row)
	return out, nil
}

// Read returns the next data row, or io.EOF at clean end of stream. The
// returned slice is only valid until the next Read; callers that retain
// fields must copy them first.
func (r *Reader) Read() ([]string, error) {
	return r.cr.Read()
}

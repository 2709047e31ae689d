package csvio

import (
	"encoding/csv"
	"io"
)

// Writer streams rows to delimiter-separated output.
type Writer struct {
	cw *csv.Writer
}

// NewWriter wraps w in a row sink bound to the configured delimiter.
func NewWriter(w io.Writer, opt Options) *Writer {
	cw := csv.NewWriter(w)
	if opt.Comma != 0 {
		cw.Comma = opt.Comma
	}
	return &Writer{cw: cw}
}

// Write emits a single row. Writes are buffered; an I/O failure may only
// surface here once the buffer fills, or at Flush.
func (w *Writer) Write(row []string) error {
	return w.cw.Write(row)
}

// Flush drains the buffer to the underlying writer and reports any write
// error seen during the stream. It must be called once after the last row.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

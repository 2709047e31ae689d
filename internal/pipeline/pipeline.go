// Package pipeline streams rows from a source to a sink, rewriting exactly
// one column of each data row.
//
// The run has two linear phases. Setup reads the optional header row,
// resolves the target column against it, and re-emits it verbatim. Streaming
// then reads, rewrites, and writes one row at a time until clean end of
// input: row N is fully written before row N+1 is read, so output order is
// input order and memory stays bounded by a single row regardless of stream
// length.
//
// Any read or write failure is fatal and unwinds immediately; there is no
// per-row recovery.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/oskaritimperi/csvre/internal/column"
	"github.com/oskaritimperi/csvre/internal/csvio"
	"github.com/oskaritimperi/csvre/internal/rewrite"
)

// Params carries the immutable per-run inputs. All fields are fixed before
// streaming begins and read-only thereafter.
type Params struct {
	// ColumnSpec selects the target column by name or zero-based index.
	ColumnSpec string

	// Headers indicates the first input row is a header row. It is consumed
	// for name lookup and passed through unchanged, never rewritten.
	Headers bool

	// Rule is the compiled find/replace rule applied to the target column.
	Rule rewrite.Rule
}

// Result summarizes a completed run for logging and metrics.
type Result struct {
	// Rows is the number of data rows written (the header excluded).
	Rows int64

	// Rewritten is the number of data rows whose target field changed.
	Rewritten int64
}

// Run executes the streaming transform. It consumes src to clean end of
// input and writes every row to sink; the caller owns the final sink flush.
//
// Rows narrower than the resolved index have no field at the target position
// and pass through untouched. Empty input with headers enabled produces
// empty output; a name spec still fails then, since there is no header to
// look it up in.
func Run(ctx context.Context, src *csvio.Reader, sink *csvio.Writer, p Params) (Result, error) {
	var res Result

	var header []string
	if p.Headers {
		h, err := src.ReadHeader()
		if err != nil && err != io.EOF {
			return res, err
		}
		header = h
	}

	// Name lookup ignores a UTF-8 BOM on the first header cell; the header
	// itself is re-emitted with the BOM intact.
	idx, err := column.Resolve(p.ColumnSpec, p.Headers, csvio.StripHeaderBOM(header))
	if err != nil {
		return res, err
	}

	if header != nil {
		if err := sink.Write(header); err != nil {
			return res, fmt.Errorf("write header: %w", err)
		}
	}

	out := make([]string, 0, len(header))
	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		row, err := src.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}

		out = out[:0]
		changed := false
		for i, field := range row {
			if i == idx {
				v := p.Rule.Apply(field)
				if v != field {
					changed = true
				}
				out = append(out, v)
				continue
			}
			out = append(out, field)
		}

		if err := sink.Write(out); err != nil {
			return res, fmt.Errorf("write row: %w", err)
		}
		res.Rows++
		if changed {
			res.Rewritten++
		}
	}
}

// Package datasource abstracts where csvre's input bytes come from.
//
// A Source opens a byte stream on demand. Concrete implementations live in
// subpackages (local files, HTTP endpoints); standard input is covered by
// the Stdin helper here since it needs no configuration.
package datasource

import (
	"context"
	"io"
)

// Source opens the input stream for a run. Open is called exactly once.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Stdin adapts an already-open reader (typically os.Stdin) to the Source
// interface. Close is a no-op; the process does not own standard input.
func Stdin(r io.Reader) Source { return stdinSource{r: r} }

type stdinSource struct{ r io.Reader }

func (s stdinSource) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return io.NopCloser(s.r), nil
}

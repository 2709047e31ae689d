// Package textenc decodes input streams from an IANA-named character set to
// UTF-8 so the text-mode pattern engine sees well-formed text.
package textenc

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// NewReader wraps r so that bytes in the named charset come out as UTF-8.
// The name is looked up in the IANA registry (e.g. "windows-1250",
// "ISO-8859-2", "UTF-8"). Unknown names are an error.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown input encoding %q: %w", name, err)
	}
	if enc == nil {
		// The registry knows the name but has no decoder for it.
		return nil, fmt.Errorf("input encoding %q is not supported", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

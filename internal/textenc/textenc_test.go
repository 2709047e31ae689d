package textenc

import (
	"bytes"
	"io"
	"testing"
)

func TestNewReaderDecodes(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		in       []byte
		want     string
	}{
		{name: "windows-1252", encoding: "windows-1252", in: []byte("caf\xe9"), want: "café"},
		{name: "iso-8859-2", encoding: "ISO-8859-2", in: []byte("\xbe"), want: "ž"},
		{name: "utf-8 passthrough", encoding: "UTF-8", in: []byte("už"), want: "už"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(bytes.NewReader(tc.in), tc.encoding)
			if err != nil {
				t.Fatalf("NewReader(%q): %v", tc.encoding, err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("decoded %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewReaderUnknownEncoding(t *testing.T) {
	if _, err := NewReader(bytes.NewReader(nil), "no-such-charset"); err == nil {
		t.Fatal("unknown encoding accepted, want error")
	}
}

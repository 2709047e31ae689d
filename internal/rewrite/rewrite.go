// Package rewrite applies a compiled find/replace rule to individual field
// values.
//
// A Rule is built exactly once at startup, in one of two variants:
//
//   - Text: the input is treated as UTF-8 text and the rule runs on the
//     string API of the regexp engine.
//   - Bytes: the input is treated as raw bytes; the rule runs on the []byte
//     API and never requires the field to be valid UTF-8.
//
// Both variants perform a global (all non-overlapping, leftmost-first)
// substitution. The replacement template follows the engine's expansion
// syntax: $1 and ${name} reference capture groups, $0 is the whole match,
// $$ inserts a literal dollar sign, and a reference to a group that does not
// exist expands to the empty string rather than failing.
//
// Apply is pure: it depends only on the field content, never on where the
// field sits in a row or which row it came from.
package rewrite

import (
	"fmt"
	"regexp"
)

// Rule rewrites a single field value. Implementations are immutable and safe
// to apply to any number of fields.
type Rule interface {
	Apply(field string) string
}

// Text substitutes over the field as UTF-8 text.
type Text struct {
	re       *regexp.Regexp
	template string
}

// Apply runs the global substitution on field. A field with no matches is
// returned unchanged.
func (r Text) Apply(field string) string {
	return r.re.ReplaceAllString(field, r.template)
}

// Bytes substitutes over the field as a raw byte sequence. Fields are carried
// as strings for row compatibility; a Go string holds arbitrary bytes, so no
// validation or re-coding happens on either side of the substitution.
type Bytes struct {
	re       *regexp.Regexp
	template []byte
}

// Apply runs the global substitution on the raw bytes of field.
func (r Bytes) Apply(field string) string {
	return string(r.re.ReplaceAll([]byte(field), r.template))
}

// Compile builds the Rule variant for the run. byteMode selects Bytes over
// Text. A malformed expression returns the engine's diagnostic wrapped with
// context.
func Compile(expr, replacement string, byteMode bool) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	if byteMode {
		return Bytes{re: re, template: []byte(replacement)}, nil
	}
	return Text{re: re, template: replacement}, nil
}

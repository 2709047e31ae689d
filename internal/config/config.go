// Package config defines the run configuration for the csvre tool.
//
// A Config is assembled once from the command line, validated, and then
// treated as read-only for the lifetime of the run. It deliberately stays a
// plain struct with no third-party configuration machinery: every knob maps
// onto one flag or positional argument.
package config

// Config describes a single csvre run.
type Config struct {
	// Pattern is the regular expression matched against the target column.
	Pattern string

	// Replacement is the template expanded for each match. $1, $name and
	// ${name} reference capture groups; $$ inserts a literal dollar sign.
	Replacement string

	// Column selects the target column, by header name or zero-based index.
	Column string

	// Delimiter is the field delimiter used for both input and output.
	Delimiter rune

	// NoHeaders treats the first input row as data. Name-based column specs
	// are invalid in this mode.
	NoHeaders bool

	// Bytes disables the UTF-8 text assumption and runs the pattern over raw
	// bytes. Input that is not valid Unicode passes through untouched outside
	// the matched spans.
	Bytes bool

	// Input is a local file path to read instead of standard input.
	Input string

	// URL streams the input over HTTP instead of standard input. Mutually
	// exclusive with Input.
	URL string

	// Output is a local file path to write instead of standard output.
	Output string

	// InputEncoding names an IANA charset the input is decoded from before
	// parsing. Only meaningful in text mode.
	InputEncoding string

	// Job labels metrics emitted for this run.
	Job string
}

// This file adds a lightweight linter for Config values. It performs static
// checks over an assembled Config and returns a list of issues (errors and
// warnings) that the CLI surfaces before the run starts.
//
// Validation is structural only. Whether the column spec actually resolves
// against the input, and whether the pattern compiles, is decided where
// those inputs are first used.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that is surfaced to the user but
	// does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path names the offending setting in flag form (e.g. "column",
// "input-encoding"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not mutate the
// config; callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Column) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "column",
			Message:  "column must not be empty; pass a header name or a zero-based index",
		})
	}

	if c.Delimiter == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "delimiter",
			Message:  "delimiter must be a single valid character",
		})
	}

	if c.Input != "" && c.URL != "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input",
			Message:  "input and url are mutually exclusive; pick one input source",
		})
	}
	if c.URL != "" && !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "url",
			Message:  fmt.Sprintf("url %q does not look like an HTTP endpoint", c.URL),
		})
	}

	if c.InputEncoding != "" && c.Bytes {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input-encoding",
			Message:  "input-encoding decodes to UTF-8 text and cannot be combined with byte mode",
		})
	}

	if c.NoHeaders && c.Column != "" {
		// A non-numeric spec without headers fails at resolution; warn early
		// so the user sees why before any input is consumed.
		if !isDigits(c.Column) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "column",
				Message:  fmt.Sprintf("column %q is not numeric and no-headers is set; resolution will fail", c.Column),
			})
		}
	}

	return issues
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

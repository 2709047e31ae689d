package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

// valid returns a Config that passes validation cleanly.
func valid() Config {
	return Config{
		Pattern:     `\s+`,
		Replacement: "",
		Column:      "1",
		Delimiter:   ',',
		Job:         "csvre",
	}
}

func TestValidateMinimal(t *testing.T) {
	if issues := Validate(valid()); len(issues) != 0 {
		t.Fatalf("valid config produced issues: %+v", issues)
	}
}

func TestValidateMissingColumn(t *testing.T) {
	c := valid()
	c.Column = " "

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityError, "column", "must not be empty") {
		t.Fatalf("expected column error; got %+v", issues)
	}
}

func TestValidateMissingDelimiter(t *testing.T) {
	c := valid()
	c.Delimiter = 0

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityError, "delimiter", "single valid character") {
		t.Fatalf("expected delimiter error; got %+v", issues)
	}
}

func TestValidateInputAndURLConflict(t *testing.T) {
	c := valid()
	c.Input = "data.csv"
	c.URL = "https://example.com/data.csv"

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityError, "input", "mutually exclusive") {
		t.Fatalf("expected input/url conflict; got %+v", issues)
	}
}

func TestValidateURLScheme(t *testing.T) {
	c := valid()
	c.URL = "ftp://example.com/data.csv"

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityWarning, "url", "does not look like an HTTP endpoint") {
		t.Fatalf("expected url warning; got %+v", issues)
	}
}

func TestValidateEncodingInByteMode(t *testing.T) {
	c := valid()
	c.Bytes = true
	c.InputEncoding = "windows-1250"

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityError, "input-encoding", "byte mode") {
		t.Fatalf("expected input-encoding error; got %+v", issues)
	}
}

/*
TestValidateNameSpecWithoutHeaders checks the early warning for a column spec
that can only fail later at resolution time. It stays a warning: resolution
owns the authoritative failure.
*/
func TestValidateNameSpecWithoutHeaders(t *testing.T) {
	c := valid()
	c.NoHeaders = true
	c.Column = "email"

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityWarning, "column", "resolution will fail") {
		t.Fatalf("expected no-headers warning; got %+v", issues)
	}

	c.Column = "3"
	if issues := Validate(c); len(issues) != 0 {
		t.Fatalf("numeric spec without headers warned: %+v", issues)
	}
}

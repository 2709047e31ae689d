package csvio

import "strings"

const utf8BOM = "\uFEFF"

// StripHeaderBOM returns headers with a UTF-8 BOM removed from the first
// cell if present. The input slice is not modified.
func StripHeaderBOM(headers []string) []string {
	if len(headers) == 0 || !strings.HasPrefix(headers[0], utf8BOM) {
		return headers
	}
	out := make([]string, len(headers))
	copy(out, headers)
	out[0] = strings.TrimPrefix(out[0], utf8BOM)
	return out
}

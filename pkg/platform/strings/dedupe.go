// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims, lowercases, and removes empty and duplicate
// entries. Order of first occurrence is preserved.
//
// Example:
//
//	DedupeAndTrimLower([]string{"  UNILAG.edu.ng ", "unilag.edu.ng", ""})
//	// Returns: []string{"unilag.edu.ng"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// HasLabelSuffix reports whether host equals suffix or ends with "."+suffix.
// Both arguments are expected to be lower-cased already.
func HasLabelSuffix(host, suffix string) bool {
	suffix = strings.TrimPrefix(suffix, ".")
	if suffix == "" {
		return false
	}
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}

// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
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

// SplitList splits comma-separated free-text input into a deduplicated,
// trimmed list. Used to normalize tag input from forms.
//
// Example:
//
//	SplitList("moscow, rent, moscow, ")
//	// Returns: []string{"moscow", "rent"}
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(input, ","))
}

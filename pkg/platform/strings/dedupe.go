// Package strings holds small helpers for list-valued settings.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value into lowercase, trimmed,
// de-duplicated items in first-seen order. Blank items are dropped.
//
//	SplitList(" Name, phone,,NAME ") // []string{"name", "phone"}
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeLower(strings.Split(s, ","))
}

// DedupeLower trims and lowercases each value, then drops blanks and repeats.
func DedupeLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	return result
}

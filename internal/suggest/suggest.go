// Package suggest picks the closest known name for a misspelled one.
package suggest

import (
	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate closest to name by edit distance.
// Returns empty string if no candidate is close enough: distance must not exceed
// a third of name length (at least 1, at most 3).
func Closest(name string, candidates []string) string {
	limit := len(name) / 3
	if limit < 1 {
		limit = 1
	} else if limit > 3 {
		limit = 3
	}

	best := ""
	bestDistance := limit + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	return best
}

// Hint returns " (did you mean NAME?)" for the closest candidate or empty string.
func Hint(name string, candidates []string) string {
	if c := Closest(name, candidates); c != "" {
		return " (did you mean \"" + c + "\"?)"
	}
	return ""
}

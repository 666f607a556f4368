package vocabulary

import (
	"fmt"
	"strings"
)

// Normalize trims surrounding whitespace and lowercases s.
// Every comparison between user input and stored text goes through it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AcceptedMeanings splits the entry's meaning on commas and normalizes each
// synonym. The result is never empty.
func AcceptedMeanings(e Entry) map[string]struct{} {
	accepted := make(map[string]struct{})
	for _, part := range strings.Split(e.Meaning, ",") {
		if m := Normalize(part); m != "" {
			accepted[m] = struct{}{}
		}
	}
	if len(accepted) == 0 {
		accepted[Normalize(e.Meaning)] = struct{}{}
	}
	return accepted
}

// IsCorrect reports whether answer is one of the entry's accepted meanings.
// Matching is exact after normalization.
func IsCorrect(e Entry, answer string) bool {
	_, ok := AcceptedMeanings(e)[Normalize(answer)]
	return ok
}

// Search looks query up in both directions. A term match yields a
// "term — meaning" line, otherwise a synonym match yields a "meaning — term"
// line. Each entry contributes at most one line, in the order given.
func Search(entries []Entry, query string) []string {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	var lines []string
	for _, e := range entries {
		if q == Normalize(e.Term) {
			lines = append(lines, fmt.Sprintf("%s — %s [%s]", e.Term, e.Meaning, e.Category))
			continue
		}
		if _, ok := AcceptedMeanings(e)[q]; ok {
			lines = append(lines, fmt.Sprintf("%s — %s [%s]", e.Meaning, e.Term, e.Category))
		}
	}

	return lines
}

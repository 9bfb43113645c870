package answer

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

var levenshteinParams = levenshtein.NewParams()

// LexicalScore computes a normalized textual similarity between a query
// and a candidate question in [0,1]. Case, punctuation and whitespace
// differences are ignored. The score is 1.0 only when the normalized
// strings are equal and 0.0 when either side normalizes to nothing.
// Edit distance is symmetric, so swapping arguments gives the same score.
func LexicalScore(query, candidate string) float64 {
	q := normalizeText(query)
	c := normalizeText(candidate)
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 1
	}

	score := levenshtein.Similarity(q, c, levenshteinParams)
	if score < 0 {
		return 0
	}
	if score >= 1 {
		// Normalized-unequal strings must never report a perfect score.
		return 0.99
	}
	return score
}

// normalizeText lowercases, replaces punctuation with spaces and collapses
// whitespace runs so that lexically-equivalent questions compare equal.
func normalizeText(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

package answer

import "sort"

// maxSources caps how many ranked candidates are exposed as sources on a
// result. Fusion happens before this truncation.
const maxSources = 3

// Band thresholds consumed by presentation. Downstream warnings depend on
// these exact values, so they are part of the contract.
const (
	confidenceHighThreshold   = 0.7
	confidenceMediumThreshold = 0.4
	fuzzyHighThreshold        = 0.8
	fuzzyMediumThreshold      = 0.6
)

// Rank deduplicates candidates referring to the same entry (keeping the
// highest-scoring instance) and orders them by vector similarity
// descending, ties broken by lexical score descending. The sort is stable,
// so remaining ties keep their insertion order and identical inputs always
// produce identical output.
func Rank(candidates []Candidate) []Candidate {
	byID := make(map[string]int, len(candidates))
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if i, seen := byID[c.Entry.ID]; seen {
			if betterCandidate(c, ranked[i]) {
				ranked[i] = c
			}
			continue
		}
		byID[c.Entry.ID] = len(ranked)
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ScoreVector != ranked[j].ScoreVector {
			return ranked[i].ScoreVector > ranked[j].ScoreVector
		}
		return ranked[i].ScoreLexical > ranked[j].ScoreLexical
	})
	return ranked
}

func betterCandidate(a, b Candidate) bool {
	if a.ScoreVector != b.ScoreVector {
		return a.ScoreVector > b.ScoreVector
	}
	return a.ScoreLexical > b.ScoreLexical
}

// Fuse returns the confidence and fuzzy scores reported for a ranked
// candidate list. Both come from the top-ranked candidate, never from an
// average: the band thresholds were calibrated against top-1 scores. The
// two numbers are surfaced separately and never blended into one figure.
// An empty list fuses to (0, 0).
func Fuse(ranked []Candidate) (confidence, fuzzy float64) {
	if len(ranked) == 0 {
		return 0, 0
	}
	return ranked[0].ScoreVector, ranked[0].ScoreLexical
}

// ConfidenceBand classifies a vector similarity score. The lower bounds
// are inclusive: 0.7 is "high", 0.4 is "medium".
func ConfidenceBand(score float64) string {
	switch {
	case score >= confidenceHighThreshold:
		return "high"
	case score >= confidenceMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}

// FuzzyBand classifies a lexical similarity score with inclusive lower
// bounds at 0.8 and 0.6.
func FuzzyBand(score float64) string {
	switch {
	case score >= fuzzyHighThreshold:
		return "high"
	case score >= fuzzyMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}

// topSources projects the head of a ranked list into Source values owned
// by the result.
func topSources(ranked []Candidate) []Source {
	n := len(ranked)
	if n > maxSources {
		n = maxSources
	}
	sources := make([]Source, 0, n)
	for _, c := range ranked[:n] {
		sources = append(sources, Source{
			Question:     c.Entry.Question,
			Category:     c.Entry.Category,
			Client:       c.Entry.Client,
			ScoreVector:  c.ScoreVector,
			ScoreLexical: c.ScoreLexical,
		})
	}
	return sources
}

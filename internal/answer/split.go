package answer

import (
	"regexp"
	"strings"
)

// splitPattern is one entry in the ordered leading-commentary library.
// Every pattern captures exactly two groups: the commentary (possibly
// empty) and the remaining answer text.
type splitPattern struct {
	name string
	re   *regexp.Regexp
}

// splitPatterns is evaluated top to bottom and the first match wins;
// later patterns are never consulted. More specific patterns must stay
// above more general ones. New language variants are appended here, the
// control flow in Split never changes.
var splitPatterns = []splitPattern{
	// Markdown answer/solution headers. The comment group is deliberately
	// empty: the label itself is formatting, not commentary.
	{"answer-header-de", regexp.MustCompile(`(?s)^\s*()\*\*\s*(?:Antwort|Lösung)\s*\*\*\s*:?\s*(.+)$`)},
	{"answer-header-en", regexp.MustCompile(`(?s)^\s*()\*\*\s*(?:Answer|Solution)\s*\*\*\s*:?\s*(.+)$`)},

	// Meta-announcements introducing the answer.
	{"announcement-de", regexp.MustCompile(`(?s)^\s*((?:Hier ist (?:die|eine|meine) [^\n:]{0,80}|Die Antwort lautet wie folgt)\s*:)\s*(.*)$`)},
	{"announcement-en", regexp.MustCompile(`(?s)^\s*((?:Here(?:'s| is) (?:the|an|my) [^\n:]{0,80})\s*:)\s*(.*)$`)},

	// Explanatory preambles referencing the grounding material.
	{"preamble-de", regexp.MustCompile(`(?s)^\s*((?:Basierend auf|Aufbauend auf|Gemäß|Laut|Unter Berücksichtigung) [^\n:]{0,120}:)\s*(.*)$`)},
	{"preamble-en", regexp.MustCompile(`(?s)^\s*((?:Based on|According to|Drawing on|In line with) [^\n:]{0,120}:)\s*(.*)$`)},
}

var (
	labelHeaderRe = regexp.MustCompile(`^\*\*[^*\n]{1,60}\*\*\s*:\s*`)
	emphasisRe    = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
)

// Split separates leading commentary from the usable answer text in raw
// generated output. When no pattern matches, the comment is empty and the
// whole input is the answer. Split is total: it never fails, and blank
// input yields ("", "").
func Split(raw string) (comment, answer string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ""
	}

	answer = text
	for _, p := range splitPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if c := stripEmphasis(strings.TrimSpace(m[1])); c != "" {
			comment = c
		}
		answer = strings.TrimSpace(m[2])
		break
	}

	return comment, cleanAnswer(answer)
}

// cleanAnswer strips a leftover "**Label**:" header and unwraps bold
// emphasis spans, keeping the enclosed text. Applying it twice yields the
// same result as applying it once.
func cleanAnswer(text string) string {
	text = strings.TrimSpace(labelHeaderRe.ReplaceAllString(text, ""))
	text = emphasisRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

func stripEmphasis(s string) string {
	return strings.TrimSpace(emphasisRe.ReplaceAllString(s, "$1"))
}

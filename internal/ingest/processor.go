package ingest

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposalqa/internal/knowledge"
)

// minFieldLength filters out marker-only fragments; anything shorter than
// this is noise from the extraction patterns, not a real question or answer.
const minFieldLength = 10

// markerPair describes one Q&A layout: a pattern that starts a question
// and a pattern that starts its answer within the same block.
type markerPair struct {
	name     string
	question *regexp.Regexp
	answer   *regexp.Regexp
}

// Layouts are tried in order; the first one that yields any pairs wins, so
// a document is never double-extracted by overlapping patterns.
var markerPairs = []markerPair{
	{
		name:     "q-a",
		question: regexp.MustCompile(`(?im)^[ \t]*Q(?:uestion)?\s*:`),
		answer:   regexp.MustCompile(`(?im)^[ \t]*A(?:nswer)?\s*:`),
	},
	{
		name:     "frage-antwort",
		question: regexp.MustCompile(`(?im)^[ \t]*Frage\s*:`),
		answer:   regexp.MustCompile(`(?im)^[ \t]*Antwort\s*:`),
	},
	{
		name:     "numbered",
		question: regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]`),
		answer:   regexp.MustCompile(`(?im)^[ \t]*(?:Answer|Antwort)\s*:`),
	},
}

type categoryRule struct {
	name     string
	keywords []string
}

// Rules are checked in order; the first category with a keyword hit wins.
var categoryRules = []categoryRule{
	{"technical", []string{"technical", "architecture", "database", "api", "integration", "technology", "technisch", "architektur", "datenbank", "schnittstelle"}},
	{"security", []string{"security", "authentication", "authorization", "encryption", "compliance", "sicherheit", "authentifizierung", "verschlüsselung"}},
	{"pricing", []string{"cost", "price", "budget", "payment", "billing", "license", "kosten", "preis", "zahlung", "lizenz"}},
	{"timeline", []string{"timeline", "schedule", "delivery", "deadline", "when", "how long", "zeitplan", "lieferzeit", "frist", "wann", "wie lange"}},
	{"support", []string{"support", "maintenance", "training", "documentation", "help", "wartung", "schulung", "dokumentation"}},
	{"legal", []string{"contract", "terms", "liability", "warranty", "legal", "sla", "vertrag", "haftung", "gewährleistung"}},
}

// Processor extracts Q&A entries from uploaded documents.
type Processor struct {
	markdown *MarkdownStripper
}

// NewProcessor creates a document processor.
func NewProcessor() *Processor {
	return &Processor{markdown: NewMarkdownStripper()}
}

// Extract parses the document and returns the Q&A entries found in it.
// Markdown files are flattened to plain text first; everything else is
// treated as plain text. The client name is derived from the filename.
func (p *Processor) Extract(filename string, content []byte) []knowledge.QAEntry {
	text := string(content)
	if isMarkdown(filename) {
		text = p.markdown.Strip(content)
	}

	client := clientFromFilename(filename)
	now := time.Now().UTC()

	var entries []knowledge.QAEntry
	for _, pair := range markerPairs {
		for _, extracted := range extractWithPair(text, pair) {
			entries = append(entries, knowledge.QAEntry{
				ID:        uuid.NewString(),
				Question:  extracted.question,
				Answer:    extracted.answer,
				Category:  Categorize(extracted.question),
				Client:    client,
				CreatedAt: now,
			})
		}
		if len(entries) > 0 {
			break
		}
	}
	return entries
}

type extractedPair struct {
	question string
	answer   string
}

// extractWithPair splits the text into blocks at question markers and, in
// each block, splits question from answer at the first answer marker.
func extractWithPair(text string, pair markerPair) []extractedPair {
	starts := pair.question.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}

	var pairs []extractedPair
	for i, loc := range starts {
		blockEnd := len(text)
		if i+1 < len(starts) {
			blockEnd = starts[i+1][0]
		}
		block := text[loc[1]:blockEnd]

		ans := pair.answer.FindStringIndex(block)
		if ans == nil {
			continue
		}

		question := strings.TrimSpace(block[:ans[0]])
		answer := strings.TrimSpace(block[ans[1]:])
		if len(question) < minFieldLength || len(answer) < minFieldLength {
			continue
		}
		pairs = append(pairs, extractedPair{question: question, answer: answer})
	}
	return pairs
}

// Categorize assigns a category from the question's wording. Questions
// matching no rule fall back to "general".
func Categorize(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.name
			}
		}
	}
	return "general"
}

func isMarkdown(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func clientFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package answer

import "proposalqa/internal/knowledge"

// Candidate is a transient retrieval result: a reference to a historical
// entry plus the scores derived for it during one retrieval call.
// Candidates are never persisted.
type Candidate struct {
	// Entry is the historical Q&A record this candidate refers to.
	Entry knowledge.QAEntry
	// Distance is the raw distance reported by the vector index.
	Distance float64
	// ScoreVector is the normalized vector similarity in [0,1], higher is closer.
	ScoreVector float64
	// ScoreLexical is the normalized textual similarity in [0,1] between the
	// query and the candidate's question text.
	ScoreLexical float64
}

// Source is a read-only projection of a Candidate exposed to callers.
type Source struct {
	// Question is the historical question text.
	Question string `json:"question"`
	// Category is the entry's category tag.
	Category string `json:"category"`
	// Client optionally names the client the historical answer was written for.
	Client string `json:"client,omitempty"`
	// ScoreVector is the vector similarity score for this source.
	ScoreVector float64 `json:"score_vector"`
	// ScoreLexical is the lexical similarity score for this source.
	ScoreLexical float64 `json:"score_lexical"`
}

// Request describes one question to answer.
type Request struct {
	// Question is the client question to answer.
	Question string
	// Context is optional caller-supplied free text added to the grounding prompt.
	Context string
	// Category optionally restricts retrieval to entries with that category.
	Category string
	// TopK optionally overrides how many candidates to retrieve. Zero means default.
	TopK int
}

// Result is the outcome of answering one question. The confidence and
// fuzzy scores are always present; both are zero when no sources were found.
type Result struct {
	// Question is the original question text.
	Question string `json:"question"`
	// Answer is the cleaned generated answer.
	Answer string `json:"answer"`
	// Comment is leading commentary separated from the answer, if any.
	Comment string `json:"comment,omitempty"`
	// ConfidenceScore is the vector similarity of the best-matching entry.
	ConfidenceScore float64 `json:"confidence_score"`
	// FuzzyScore is the lexical similarity of that same best-matching entry.
	FuzzyScore float64 `json:"fuzzy_score"`
	// Sources lists the top-ranked historical entries used as grounding.
	Sources []Source `json:"sources"`
	// Category is the category filter that was applied, if any.
	Category string `json:"category,omitempty"`
}

// BatchItem is one per-question outcome inside a batch. Exactly one of
// Result and Err is set.
type BatchItem struct {
	// Index is the question's position in the input list.
	Index int `json:"index"`
	// Question is the question text, echoed for convenience.
	Question string `json:"question"`
	// Result is the successful answer, if the question succeeded.
	Result *Result `json:"result,omitempty"`
	// Err describes the per-question failure, if any.
	Err string `json:"error,omitempty"`
}

// BatchResult is the ordered list of per-question outcomes. Order matches
// the input order and no entry is ever dropped, failed or not.
type BatchResult []BatchItem

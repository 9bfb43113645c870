package knowledge

import "time"

// QAEntry is one historical question/answer record in the knowledge base.
// Entries are created during ingestion and are immutable afterwards; the
// only way to remove them is the clear-all operation on the base.
type QAEntry struct {
	// ID is the unique entry identifier (UUID, shared with the vector point).
	ID string
	// Question is the original client question text.
	Question string
	// Answer is the answer that was given for the question.
	Answer string
	// Category is a free-form tag treated as an enumerable set (e.g. "pricing").
	Category string
	// Client optionally names the client the answer was written for.
	Client string
	// CreatedAt is when the entry was ingested.
	CreatedAt time.Time
}

// Hit is a raw nearest-neighbour result from the knowledge base: the
// matched entry plus the index's raw distance, where lower means closer.
type Hit struct {
	Entry    QAEntry
	Distance float64
}

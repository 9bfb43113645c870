package storage

import "time"

// EntryRecord is a historical Q&A entry row. The ID doubles as the
// Qdrant point ID for the entry's embedding.
type EntryRecord struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	Client    string
	CreatedAt time.Time
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entry_store.go -package=mocks proposalqa/internal/storage EntryStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// EntryStore defines the interface for Q&A entry storage operations.
type EntryStore interface {
	// Upsert inserts an entry, replacing any existing row with the same ID.
	Upsert(ctx context.Context, entry *EntryRecord) error
	// GetByID gets an entry by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*EntryRecord, error)
	// ListByCategory returns up to limit entries in a category, newest first.
	ListByCategory(ctx context.Context, category string, limit int) ([]EntryRecord, error)
	// ListCategories returns all distinct categories, sorted.
	ListCategories(ctx context.Context) ([]string, error)
	// Count returns the total number of entries.
	Count(ctx context.Context) (int, error)
	// DeleteAll removes every entry.
	DeleteAll(ctx context.Context) error
}

// EntryRepo provides methods for Q&A entry operations.
// It implements the EntryStore interface.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Upsert inserts an entry, replacing any existing row with the same ID.
// The entry.ID must be set (UUID) before calling this method.
func (r *EntryRepo) Upsert(ctx context.Context, entry *EntryRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO qa_entries (id, question, answer, category, client) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET question=excluded.question, answer=excluded.answer,
		 category=excluded.category, client=excluded.client`,
		entry.ID, entry.Question, entry.Answer, entry.Category, entry.Client,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// GetByID gets an entry by its ID. Returns ErrNotFound if not found.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*EntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, question, answer, category, client, created_at FROM qa_entries WHERE id = ?", id)

	var entry EntryRecord
	err := row.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &entry.Client, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}

// ListByCategory returns up to limit entries in a category, newest first.
func (r *EntryRepo) ListByCategory(ctx context.Context, category string, limit int) ([]EntryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, question, answer, category, client, created_at FROM qa_entries WHERE category = ? ORDER BY created_at DESC LIMIT ?",
		category, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by category: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []EntryRecord
	for rows.Next() {
		var entry EntryRecord
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &entry.Client, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// ListCategories returns all distinct categories, sorted.
func (r *EntryRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM qa_entries ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

// Count returns the total number of entries.
func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM qa_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// DeleteAll removes every entry.
func (r *EntryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM qa_entries"); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

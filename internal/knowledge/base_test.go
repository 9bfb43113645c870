package knowledge

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"proposalqa/internal/storage"
	"proposalqa/internal/vectorstore"
)

// fakeEmbedder returns a constant vector per text and records what it saw.
type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, texts...)
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// fakeVectorStore holds points in memory and serves canned search results.
type fakeVectorStore struct {
	points  map[string]vectorstore.Point
	results []vectorstore.SearchResult

	dropped   bool
	ensured   bool
	searchErr error
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{points: map[string]vectorstore.Point{}}
}

func (f *fakeVectorStore) Upsert(_ context.Context, _ string, points []vectorstore.Point) error {
	for _, p := range points {
		f.points[p.ID] = p
	}
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, _ string, _ []float32, _ int, _ string) ([]vectorstore.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeVectorStore) EnsureCollection(_ context.Context, _ string, _ int) error {
	f.ensured = true
	return nil
}

func (f *fakeVectorStore) DropCollection(_ context.Context, _ string) error {
	f.dropped = true
	f.points = map[string]vectorstore.Point{}
	return nil
}

func (f *fakeVectorStore) CollectionExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (f *fakeVectorStore) Count(_ context.Context, _ string) (int, error) {
	return len(f.points), nil
}

// fakeEntryStore is an in-memory EntryStore.
type fakeEntryStore struct {
	records map[string]*storage.EntryRecord
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{records: map[string]*storage.EntryRecord{}}
}

func (f *fakeEntryStore) Upsert(_ context.Context, entry *storage.EntryRecord) error {
	stored := *entry
	f.records[entry.ID] = &stored
	return nil
}

func (f *fakeEntryStore) GetByID(_ context.Context, id string) (*storage.EntryRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakeEntryStore) ListByCategory(_ context.Context, category string, limit int) ([]storage.EntryRecord, error) {
	var out []storage.EntryRecord
	for _, r := range f.records {
		if r.Category == category {
			out = append(out, *r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEntryStore) ListCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var categories []string
	for _, r := range f.records {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (f *fakeEntryStore) Count(_ context.Context) (int, error) {
	return len(f.records), nil
}

func (f *fakeEntryStore) DeleteAll(_ context.Context) error {
	f.records = map[string]*storage.EntryRecord{}
	return nil
}

func testBase(t *testing.T) (*Base, *fakeEmbedder, *fakeVectorStore, *fakeEntryStore) {
	t.Helper()
	embedder := &fakeEmbedder{}
	vectors := newFakeVectorStore()
	entries := newFakeEntryStore()
	return NewBase(embedder, vectors, entries, "qa_entries", 3), embedder, vectors, entries
}

func TestBase_Upsert(t *testing.T) {
	base, embedder, vectors, entries := testBase(t)

	err := base.Upsert(context.Background(), []QAEntry{
		{ID: "1", Question: "What is the delivery time?", Answer: "Four weeks.", Category: "timeline", Client: "acme"},
		{ID: "2", Question: "How is data encrypted?", Answer: "AES-256 at rest.", Category: "security"},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if len(embedder.texts) != 2 {
		t.Fatalf("embedded texts = %d, want 2", len(embedder.texts))
	}
	want := "Question: What is the delivery time?\nAnswer: Four weeks."
	if embedder.texts[0] != want {
		t.Errorf("embedded text = %q, want %q", embedder.texts[0], want)
	}

	point, ok := vectors.points["1"]
	if !ok {
		t.Fatal("point 1 not upserted into vector store")
	}
	if point.Meta["category"] != "timeline" {
		t.Errorf("point category = %v, want timeline", point.Meta["category"])
	}

	record, err := entries.GetByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("GetByID(2) error = %v", err)
	}
	if record.Answer != "AES-256 at rest." {
		t.Errorf("stored answer = %q", record.Answer)
	}
}

func TestBase_Upsert_Empty(t *testing.T) {
	base, embedder, _, _ := testBase(t)

	if err := base.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("Upsert(nil) error = %v", err)
	}
	if len(embedder.texts) != 0 {
		t.Errorf("embedder called for empty input")
	}
}

func TestBase_Upsert_EmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding service down")}
	base := NewBase(embedder, newFakeVectorStore(), newFakeEntryStore(), "qa_entries", 3)

	err := base.Upsert(context.Background(), []QAEntry{{ID: "1", Question: "q", Answer: "a"}})
	if err == nil {
		t.Fatal("Upsert() should fail when embedding fails")
	}
}

func TestBase_Query(t *testing.T) {
	base, _, vectors, _ := testBase(t)

	seed := []QAEntry{
		{ID: "1", Question: "What is the delivery time?", Answer: "Four weeks.", Category: "timeline"},
	}
	if err := base.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	vectors.results = []vectorstore.SearchResult{
		{PointID: "1", Score: 0.85},
	}

	hits, err := base.Query(context.Background(), "delivery time", 5, "")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Entry.Question != "What is the delivery time?" {
		t.Errorf("hit question = %q", hits[0].Entry.Question)
	}
	if math.Abs(hits[0].Distance-0.15) > 1e-6 {
		t.Errorf("distance = %v, want 0.15", hits[0].Distance)
	}
}

func TestBase_Query_SkipsDanglingPoints(t *testing.T) {
	base, _, vectors, _ := testBase(t)

	seed := []QAEntry{
		{ID: "1", Question: "What is the delivery time?", Answer: "Four weeks.", Category: "timeline"},
	}
	if err := base.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Point "ghost" has no backing row and must be dropped quietly.
	vectors.results = []vectorstore.SearchResult{
		{PointID: "ghost", Score: 0.9},
		{PointID: "1", Score: 0.8},
	}

	hits, err := base.Query(context.Background(), "delivery time", 5, "")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Entry.ID != "1" {
		t.Errorf("hit ID = %q, want 1", hits[0].Entry.ID)
	}
}

func TestBase_Query_SearchFailure(t *testing.T) {
	base, _, vectors, _ := testBase(t)
	vectors.searchErr = errors.New("qdrant down")

	if _, err := base.Query(context.Background(), "anything", 5, ""); err == nil {
		t.Fatal("Query() should fail when search fails")
	}
}

func TestBase_ListByCategory(t *testing.T) {
	base, _, _, _ := testBase(t)

	seed := []QAEntry{
		{ID: "1", Question: "What is the delivery time?", Answer: "Four weeks.", Category: "timeline"},
		{ID: "2", Question: "When do you deliver?", Answer: "Six weeks.", Category: "timeline"},
		{ID: "3", Question: "How is data encrypted?", Answer: "AES-256.", Category: "security"},
	}
	if err := base.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	entries, err := base.ListByCategory(context.Background(), "timeline", 10)
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.Category != "timeline" {
			t.Errorf("entry %s category = %q, want timeline", entry.ID, entry.Category)
		}
	}

	limited, err := base.ListByCategory(context.Background(), "timeline", 1)
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited entries = %d, want 1", len(limited))
	}
}

func TestBase_Clear(t *testing.T) {
	base, _, vectors, entries := testBase(t)

	seed := []QAEntry{{ID: "1", Question: "q enough length", Answer: "a enough length"}}
	if err := base.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := base.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !vectors.dropped || !vectors.ensured {
		t.Error("Clear() should drop and recreate the collection")
	}
	count, _ := entries.Count(context.Background())
	if count != 0 {
		t.Errorf("entries after clear = %d, want 0", count)
	}
}

func TestDistanceFromScore(t *testing.T) {
	tests := []struct {
		score float32
		want  float64
	}{
		{1.0, 0},
		{0.85, 0.15},
		{0, 1},
		{1.2, 0}, // rounding artifact clamps to 0
	}
	for _, tt := range tests {
		got := distanceFromScore(tt.score)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("distanceFromScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

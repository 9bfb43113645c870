package answer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"proposalqa/internal/answer/mocks"
	"proposalqa/internal/knowledge"
)

func TestRetriever_Retrieve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIndex := mocks.NewMockVectorIndex(ctrl)
	mockIndex.EXPECT().
		Query(gomock.Any(), "What is the delivery time?", 5, "").
		Return([]knowledge.Hit{
			{Entry: knowledge.QAEntry{ID: "1", Question: "What is the delivery time?"}, Distance: 0.1},
			{Entry: knowledge.QAEntry{ID: "2", Question: "What are your payment terms?"}, Distance: 0.6},
		}, nil)

	r := NewRetriever(mockIndex)
	candidates, err := r.Retrieve(context.Background(), "What is the delivery time?", 5, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("Retrieve() returned %d candidates, want 2", len(candidates))
	}

	// Distance 0.1 converts to similarity 0.9.
	if got := candidates[0].ScoreVector; got < 0.89 || got > 0.91 {
		t.Errorf("candidates[0].ScoreVector = %v, want ~0.9", got)
	}
	// Identical question text scores a perfect lexical match.
	if candidates[0].ScoreLexical != 1 {
		t.Errorf("candidates[0].ScoreLexical = %v, want 1", candidates[0].ScoreLexical)
	}
	if candidates[1].ScoreLexical >= 1 {
		t.Errorf("candidates[1].ScoreLexical = %v, want < 1", candidates[1].ScoreLexical)
	}
}

func TestRetriever_Retrieve_DefaultsTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIndex := mocks.NewMockVectorIndex(ctrl)
	mockIndex.EXPECT().
		Query(gomock.Any(), gomock.Any(), 5, gomock.Any()).
		Return(nil, nil)

	r := NewRetriever(mockIndex)
	if _, err := r.Retrieve(context.Background(), "question", 0, ""); err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
}

func TestRetriever_Retrieve_CapsAtTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// An index returning more hits than asked for must still be capped.
	hits := []knowledge.Hit{
		{Entry: knowledge.QAEntry{ID: "1", Question: "a"}, Distance: 0.1},
		{Entry: knowledge.QAEntry{ID: "2", Question: "b"}, Distance: 0.2},
		{Entry: knowledge.QAEntry{ID: "3", Question: "c"}, Distance: 0.3},
	}
	mockIndex := mocks.NewMockVectorIndex(ctrl)
	mockIndex.EXPECT().
		Query(gomock.Any(), gomock.Any(), 2, gomock.Any()).
		Return(hits, nil)

	r := NewRetriever(mockIndex)
	candidates, err := r.Retrieve(context.Background(), "question", 2, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("Retrieve() returned %d candidates, want 2", len(candidates))
	}
}

func TestRetriever_Retrieve_IndexError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIndex := mocks.NewMockVectorIndex(ctrl)
	mockIndex.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	r := NewRetriever(mockIndex)
	_, err := r.Retrieve(context.Background(), "question", 5, "")
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("Retrieve() error = %v, want ErrRetrieval", err)
	}
}

func TestRetriever_Retrieve_PassesCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIndex := mocks.NewMockVectorIndex(ctrl)
	mockIndex.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), "security").
		Return(nil, nil)

	r := NewRetriever(mockIndex)
	candidates, err := r.Retrieve(context.Background(), "question", 5, "security")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("Retrieve() returned %d candidates, want 0", len(candidates))
	}
}

func TestSimilarityFromDistance(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.5, 0},  // distances beyond 1 clamp to 0
		{-0.2, 1}, // rounding artifacts clamp to 1
	}
	for _, tt := range tests {
		if got := similarityFromDistance(tt.distance); got != tt.want {
			t.Errorf("similarityFromDistance(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

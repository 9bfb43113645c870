package answer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"proposalqa/internal/contextutil"
)

const (
	defaultWorkers         = 3
	defaultQuestionTimeout = 60 * time.Second
)

// Engine answers proposal questions against the historical knowledge base.
type Engine interface {
	// AnswerOne retrieves grounding candidates, generates an answer and
	// assembles the scored result for a single question.
	AnswerOne(ctx context.Context, req Request) (Result, error)
	// AnswerMany answers each question independently. A failure on one
	// question is recorded in its slot and never affects the others.
	AnswerMany(ctx context.Context, questions []string) BatchResult
	// SuggestImprovements reviews a manually written answer against the
	// most similar historical pairs.
	SuggestImprovements(ctx context.Context, question, currentAnswer string) (string, error)
}

// Options configures an Engine.
type Options struct {
	// Workers bounds how many questions of a batch are in flight at once.
	// Zero means the default of 3.
	Workers int
	// QuestionTimeout is the per-question budget covering retrieval and
	// generation. Zero means the default of 60s.
	QuestionTimeout time.Duration
	// TopK is the default candidate count per retrieval. Zero means 5.
	TopK int
}

type engine struct {
	retriever   *Retriever
	synthesizer *Synthesizer
	workers     int
	timeout     time.Duration
	topK        int
	logger      *slog.Logger
}

// NewEngine creates an answering engine on top of a vector index and a
// text generator.
func NewEngine(index VectorIndex, generator Generator, opts Options) Engine {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QuestionTimeout <= 0 {
		opts.QuestionTimeout = defaultQuestionTimeout
	}
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	return &engine{
		retriever:   NewRetriever(index),
		synthesizer: NewSynthesizer(generator),
		workers:     opts.Workers,
		timeout:     opts.QuestionTimeout,
		topK:        opts.TopK,
		logger:      slog.Default(),
	}
}

// AnswerOne composes retrieval, ranking, synthesis and splitting.
func (e *engine) AnswerOne(ctx context.Context, req Request) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question")
		return Result{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = e.topK
	}

	candidates, err := e.retriever.Retrieve(ctx, req.Question, topK, req.Category)
	if err != nil {
		return Result{}, err
	}

	ranked := Rank(candidates)
	confidence, fuzzy := Fuse(ranked)

	if len(ranked) == 0 {
		// A valid zero-confidence state, not an error.
		logger.InfoContext(ctx, "no grounding candidates found", "category", req.Category)
		return Result{
			Question:        req.Question,
			Answer:          NoGroundingAnswer(req.Category),
			ConfidenceScore: 0,
			FuzzyScore:      0,
			Sources:         []Source{},
			Category:        req.Category,
		}, nil
	}

	raw, err := e.synthesizer.Synthesize(ctx, req.Question, req.Context, req.Category, ranked)
	if err != nil {
		return Result{}, err
	}

	comment, clean := Split(raw)

	logger.InfoContext(ctx, "question answered",
		"confidence", confidence,
		"fuzzy", fuzzy,
		"sources", min(len(ranked), maxSources),
		"answer_length", len(clean),
	)

	return Result{
		Question:        req.Question,
		Answer:          clean,
		Comment:         comment,
		ConfidenceScore: confidence,
		FuzzyScore:      fuzzy,
		Sources:         topSources(ranked),
		Category:        req.Category,
	}, nil
}

// AnswerMany fans the questions out over a bounded worker pool. The result
// slice is pre-sized and each worker writes only to its own index, so no
// additional locking is needed. Identical questions are not deduplicated;
// each is processed independently.
func (e *engine) AnswerMany(ctx context.Context, questions []string) BatchResult {
	items := make(BatchResult, len(questions))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, question := range questions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			qCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			item := BatchItem{Index: i, Question: question}
			result, err := e.AnswerOne(qCtx, Request{Question: question})
			if err != nil {
				item.Err = err.Error()
			} else {
				item.Result = &result
			}
			items[i] = item
		}()
	}
	wg.Wait()

	var failed int
	for _, item := range items {
		if item.Err != "" {
			failed++
		}
	}
	e.logger.InfoContext(ctx, "batch completed", "questions", len(questions), "failed", failed)

	return items
}

// SuggestImprovements retrieves the closest historical pairs for the
// question and asks the generator to critique the draft answer against
// them. Without comparable pairs it returns a fixed message and skips the
// generator.
func (e *engine) SuggestImprovements(ctx context.Context, question, currentAnswer string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(question) == "" {
		return "", &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if strings.TrimSpace(currentAnswer) == "" {
		return "", &ValidationError{Field: "current_answer", Message: "cannot be empty"}
	}

	candidates, err := e.retriever.Retrieve(ctx, question, improvementTopK, "")
	if err != nil {
		return "", err
	}

	ranked := Rank(candidates)
	if len(ranked) == 0 {
		logger.InfoContext(ctx, "no comparable pairs for improvement review")
		return NoComparableExamples, nil
	}

	suggestions, err := e.synthesizer.SuggestImprovements(ctx, question, currentAnswer, ranked)
	if err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "improvement review generated", "examples", len(ranked), "length", len(suggestions))
	return suggestions, nil
}

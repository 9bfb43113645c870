package answer

import (
	"context"
	"fmt"
	"strings"

	"proposalqa/internal/contextutil"
)

// maxPromptExamples bounds how many historical pairs go into the prompt.
const maxPromptExamples = 5

// improvementTopK is how many similar pairs ground an improvement review.
const improvementTopK = 3

// Synthesizer builds a grounding prompt from ranked candidates and
// delegates generation to the external generator. It performs no retries;
// retry policy, if any, belongs to the caller.
type Synthesizer struct {
	generator Generator
}

// NewSynthesizer creates a Synthesizer on top of a generator.
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize builds the prompt for the question and returns the raw
// generated text. The output is not parsed here; that is the splitter's
// job. Generator failures surface as ErrGeneration.
func (s *Synthesizer) Synthesize(ctx context.Context, question, extraContext, category string, ranked []Candidate) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var prompt string
	if category != "" {
		prompt = buildCategoryPrompt(question, extraContext, category, ranked)
	} else {
		prompt = buildPrompt(question, extraContext, ranked)
	}

	logger.DebugContext(ctx, "prompt built", "prompt_length", len(prompt), "examples", min(len(ranked), maxPromptExamples))

	raw, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "generator call failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return raw, nil
}

// SuggestImprovements reviews a manually written answer against similar
// historical pairs and returns the generator's suggestions as-is.
func (s *Synthesizer) SuggestImprovements(ctx context.Context, question, currentAnswer string, ranked []Candidate) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := buildImprovementPrompt(question, currentAnswer, ranked)
	logger.DebugContext(ctx, "improvement prompt built", "prompt_length", len(prompt), "examples", len(ranked))

	raw, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "generator call failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return raw, nil
}

// NoGroundingAnswer is the fixed reply for a question with no usable
// candidates. The generator is never called for this case.
func NoGroundingAnswer(category string) string {
	if category != "" {
		return fmt.Sprintf("I don't have enough historical data in the '%s' category to answer this question confidently.", category)
	}
	return "I don't have enough historical data to answer this question confidently. Please provide more context or add this to your Q&A knowledge base."
}

// NoComparableExamples is returned by the improvement review when nothing
// similar exists to compare against.
const NoComparableExamples = "No similar examples found for comparison."

// buildPrompt assembles the default German proposal-expert prompt with the
// historical pairs as grounding examples.
func buildPrompt(question, extraContext string, ranked []Candidate) string {
	var b strings.Builder

	b.WriteString("Sie sind ein Experte für Ausschreibungen und helfen dabei, Kundenfragen basierend auf historischen Q&A-Daten zu beantworten.\n\n")
	fmt.Fprintf(&b, "Aktuelle Frage: %s\n\n", question)

	if extraContext != "" {
		fmt.Fprintf(&b, "Zusätzlicher Kontext: %s\n\n", extraContext)
	}

	b.WriteString("Historische Q&A-Beispiele (als Referenz für Konsistenz verwenden):\n\n")
	for i, c := range boundedExamples(ranked) {
		fmt.Fprintf(&b, "Beispiel %d (Ähnlichkeit: %.2f):\n", i+1, c.ScoreVector)
		fmt.Fprintf(&b, "Frage: %s\n", c.Entry.Question)
		fmt.Fprintf(&b, "Antwort: %s\n", c.Entry.Answer)
		if c.Entry.Client != "" {
			fmt.Fprintf(&b, "Kunde: %s\n", c.Entry.Client)
		}
		b.WriteString("\n")
	}

	b.WriteString(`Anweisungen:
1. Erstellen Sie eine umfassende Antwort, die die aktuelle Frage beantwortet
2. Nutzen Sie die historischen Beispiele als Referenz für Ton, Stil und Detailgrad
3. Bewahren Sie Konsistenz mit vorherigen Antworten bei gleichzeitiger Anpassung an die spezifische Frage
4. Falls die Frage sehr ähnlich zu einem historischen Beispiel ist, passen Sie diese Antwort entsprechend an
5. Falls die Frage anders aber verwandt ist, synthetisieren Sie Informationen aus mehreren Beispielen
6. Seien Sie professionell, detailliert und kundenorientiert
7. Falls Sie keine vertrauensvolle Antwort basierend auf den verfügbaren Beispielen geben können, sagen Sie dies klar

Generieren Sie eine professionelle Antwort:`)

	return b.String()
}

// buildCategoryPrompt assembles the category-focused prompt variant used
// when retrieval was restricted to one category.
func buildCategoryPrompt(question, extraContext, category string, ranked []Candidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert proposal writer specializing in %s questions. Answer the client question based on historical %s-related Q&A data.\n\n", category, category)
	fmt.Fprintf(&b, "Current Question: %s\n", question)
	fmt.Fprintf(&b, "Category Focus: %s\n\n", category)

	if extraContext != "" {
		fmt.Fprintf(&b, "Additional Context: %s\n\n", extraContext)
	}

	fmt.Fprintf(&b, "Historical %s Q&A Examples:\n\n", category)
	for i, c := range boundedExamples(ranked) {
		fmt.Fprintf(&b, "Example %d (Category: %s, Similarity: %.2f):\n", i+1, c.Entry.Category, c.ScoreVector)
		fmt.Fprintf(&b, "Question: %s\n", c.Entry.Question)
		fmt.Fprintf(&b, "Answer: %s\n", c.Entry.Answer)
		if c.Entry.Client != "" {
			fmt.Fprintf(&b, "Client: %s\n", c.Entry.Client)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `Instructions:
1. Focus specifically on the %s aspects of the question
2. Use the historical %s examples as your primary reference
3. Maintain consistency with previous %s answers
4. Be detailed and specific to %s concerns

Generate a professional %s-focused answer:`, category, category, category, category, category)

	return b.String()
}

// buildImprovementPrompt asks the model to compare a draft answer with the
// historical pairs and point out concrete improvements.
func buildImprovementPrompt(question, currentAnswer string, ranked []Candidate) string {
	var b strings.Builder

	b.WriteString("Compare the current answer with historical examples and suggest improvements.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "Current Answer:\n%s\n\n", currentAnswer)

	b.WriteString("Historical Examples:\n")
	for i, c := range boundedExamples(ranked) {
		fmt.Fprintf(&b, "\nExample %d:\nQ: %s\nA: %s\n", i+1, c.Entry.Question, c.Entry.Answer)
	}

	b.WriteString("\nAnalyze the current answer and provide specific suggestions for improvement based on the historical examples. Focus on tone, completeness, structure, and alignment with previous responses.")

	return b.String()
}

func boundedExamples(ranked []Candidate) []Candidate {
	if len(ranked) > maxPromptExamples {
		return ranked[:maxPromptExamples]
	}
	return ranked
}

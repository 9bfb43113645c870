package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Generation parameters tuned for grounded answering: low temperature so
// the model stays close to the supplied examples.
const (
	generatorMaxTokens   = 2048
	generatorTemperature = 0.1
)

// Generator produces answer text from a prompt via the Anthropic API.
type Generator struct {
	client anthropic.Client
	model  string
}

// NewGenerator creates a generator using the given API key and model name.
func NewGenerator(apiKey, model string) *Generator {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Generator{
		client: client,
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the
// concatenated text of the response.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   generatorMaxTokens,
		Temperature: anthropic.Float(generatorTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("message request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return text.String(), nil
}

// Package textgen produces short generated texts, such as recipe
// descriptions, through the Gemini API. Failures never surface as errors:
// callers always get a displayable string.
package textgen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/recipebox/internal/logging"
)

const (
	DefaultModel = "gemini-2.5-flash"

	DisabledMessage = "AI features are disabled. Please configure your API key."
	FailureMessage  = "Sorry, I couldn't generate a suggestion right now."
)

type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Disabled answers every prompt with DisabledMessage.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) string { return DisabledMessage }

type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// GenAIGenerator calls GenerateContent once per prompt, without retries.
type GenAIGenerator struct {
	model    string
	generate generateFunc
	log      logging.Logger
}

// newGenAIClient is a seam for testing genai.NewClient.
var newGenAIClient = genai.NewClient

// New returns Disabled when apiKey is empty.
func New(ctx context.Context, apiKey, model string, log logging.Logger) (Generator, error) {
	if apiKey == "" {
		log.Warn(ctx, "GenAI API key not configured, AI features disabled")
		return Disabled{}, nil
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := newGenAIClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{
		model: model,
		log:   log,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) string {
	text, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		g.log.Error(ctx, "error generating text", "model", g.model, "error", err)
		return FailureMessage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		g.log.Warn(ctx, "empty generation result", "model", g.model)
		return FailureMessage
	}
	return text
}

// DescriptionPrompt builds the prompt used to describe a recipe.
func DescriptionPrompt(title string, ingredients []string) string {
	return fmt.Sprintf("Generate a short, appetizing recipe description for a dish called %q with ingredients: %s. Keep it under 50 words.",
		title, strings.Join(ingredients, ", "))
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// GeminiGenerator implements TextGenerator on top of the Gemini API client.
// One call per request, no retry; failures surface to the caller.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator bound to a model name
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

// Generate sends the prompt and extracts the plain-text reply
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", errors.New("no text in model response")
	}

	return reply, nil
}

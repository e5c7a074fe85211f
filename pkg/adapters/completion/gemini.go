package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/mindbuffer/pkg/ports"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when the settings carry no Gemini model name.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini calls the Google Gemini API through the official genai client.
type Gemini struct {
	cli   *genai.Client
	model string
	temp  float32
}

// NewGemini creates a Gemini completer authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" || !strings.HasPrefix(model, "gemini") {
		model = DefaultGeminiModel
	}
	return &Gemini{cli: cli, model: model, temp: DefaultTemperature}, nil
}

// Complete implements ports.Completer.
func (g *Gemini) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	temp := g.temp
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		Temperature:       &temp,
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.User}}}},
		cfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

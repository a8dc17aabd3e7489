package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GenAI streams completions from Google's Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGenAI creates a Gemini-backed Generator.
func NewGenAI(ctx context.Context, apiKey, model string, log *zap.Logger) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, model: model, log: log}, nil
}

// GenerateStream implements Generator.
func (g *GenAI) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	contentChan := make(chan string, 64)
	errorChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		g.log.Debug("genai stream start", zap.String("model", g.model), zap.Int("prompt_len", len(prompt)))
		tokens := 0
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), nil) {
			if err != nil {
				errorChan <- fmt.Errorf("GenAI stream failed: %w", err)
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case contentChan <- text:
				tokens++
			case <-ctx.Done():
				errorChan <- ctx.Err()
				return
			}
		}
		g.log.Debug("genai stream done", zap.String("model", g.model), zap.Int("chunks", tokens))
	}()

	return contentChan, errorChan
}

// IsLoaded implements ModelGate. A configured client is always ready.
func (g *GenAI) IsLoaded() bool { return g != nil && g.client != nil }

// Name returns the engine name.
func (g *GenAI) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

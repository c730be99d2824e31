package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Encoder turns a short piece of text into a fixed-size embedding.
type Encoder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	Name() string
}

type geminiEncoder struct {
	client     *genai.Client
	embedModel string
	dimension  int
}

func NewGeminiEncoder(ctx context.Context, apiKey, model string, dimension int) (Encoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing gemini api key: %w", ErrEncoderUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEncoder{
		client:     client,
		embedModel: model,
		dimension:  dimension,
	}, nil
}

// Embed implements Encoder.
func (g *geminiEncoder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Dimension implements Encoder.
func (g *geminiEncoder) Dimension() int {
	return g.dimension
}

// Name implements Encoder.
func (g *geminiEncoder) Name() string {
	return "gemini:" + g.embedModel
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIEncoder struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAIEncoder builds an encoder on the OpenAI embeddings endpoint. Extra
// request options (base URL, HTTP client) are passed through to the client.
func NewOpenAIEncoder(apiKey, model string, dimension int, opts ...option.RequestOption) (Encoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing openai api key: %w", ErrEncoderUnavailable)
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &openAIEncoder{
		client:    &client,
		model:     model,
		dimension: dimension,
	}, nil
}

// Embed implements Encoder.
func (e *openAIEncoder) Embed(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(e.model),
	}
	// Only the text-embedding-3 family accepts a custom output size.
	if strings.HasPrefix(e.model, "text-embedding-3") {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	values := resp.Data[0].Embedding
	vector := make([]float32, len(values))
	for i, v := range values {
		vector[i] = float32(v)
	}

	return vector, nil
}

// Dimension implements Encoder.
func (e *openAIEncoder) Dimension() int {
	return e.dimension
}

// Name implements Encoder.
func (e *openAIEncoder) Name() string {
	return "openai:" + e.model
}

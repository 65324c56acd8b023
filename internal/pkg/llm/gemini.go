package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiEmbedder struct {
	Model  string
	client *genai.Client
}

func NewGeminiEmbedder(ctx context.Context, apiKey string, model string) (*GeminiEmbedder, error) {
	if model == "" {
		model = "gemini-embedding-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiEmbedder{
		Model:  model,
		client: client,
	}, nil
}

func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.Model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("gemini returned no embeddings")
	}

	return resp.Embeddings[0].Values, nil
}

func (g *GeminiEmbedder) ModelName() string {
	return "gemini:" + g.Model
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService is the embedding backend. The encoder sits in front of it and
// is the only caller during ranking; nothing here is cached.
type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	embedModel string
	logger     *zap.Logger
}

func NewGeminiService(apiKey, embedModel string, logger *zap.Logger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &geminiService{
		client:     client,
		embedModel: embedModel,
		logger:     logger.With(zap.String("embed_model", embedModel)),
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	if len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding vector")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateEmbeddingWithRetry implements GeminiService.
func (g *geminiService) GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int) ([]float32, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateEmbedding(ctx, text)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			g.logger.Warn("embedding attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

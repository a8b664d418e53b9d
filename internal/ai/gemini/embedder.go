package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type textEmbedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Embedder adapts the Gemini embedding endpoint to the engine's semantic
// encoder capability.
type Embedder struct {
	client textEmbedder
	logger *zap.Logger
}

// NewEmbedder wraps the provided client as an encoder capability.
func NewEmbedder(client textEmbedder, log *zap.Logger) *Embedder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Embedder{client: client, logger: log}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vector, err := e.client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding: %w", err)
	}

	e.logger.Debug("gemini embedding produced", zap.Int("dimensions", len(vector)))
	return vector, nil
}

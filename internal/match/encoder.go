package match

import (
	"context"
	"fmt"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"go.uber.org/zap"
)

// encoderVectorizer scores with an external semantic encoder. The candidate
// document is encoded once during Fit; posting documents are encoded on
// demand so a single failed remote call skips one posting instead of the
// whole batch.
type encoderVectorizer struct {
	embedder  ai.Embedder
	logger    *zap.Logger
	docs      []string
	candidate []float64
}

func newEncoderVectorizer(embedder ai.Embedder, log *zap.Logger) *encoderVectorizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &encoderVectorizer{embedder: embedder, logger: log}
}

func (v *encoderVectorizer) Name() string { return StrategyEncoder }

func (v *encoderVectorizer) Weights() Weights {
	return Weights{Similarity: 0.7, Coverage: 0.3}
}

func (v *encoderVectorizer) Fit(ctx context.Context, docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("at least the candidate document is required")
	}

	// Failing to encode the candidate means nothing can be scored at all,
	// so this is a hard error rather than a per-posting skip.
	candidate, err := v.embedder.Embed(ctx, docs[0])
	if err != nil {
		return fmt.Errorf("encoding candidate text: %w", err)
	}

	v.docs = docs
	v.candidate = candidate
	v.logger.Debug("candidate text encoded", zap.Int("dimensions", len(candidate)))
	return nil
}

func (v *encoderVectorizer) Vector(ctx context.Context, i int) ([]float64, error) {
	if v.docs == nil {
		return nil, fmt.Errorf("vectorizer is not fitted")
	}
	if i < 0 || i >= len(v.docs) {
		return nil, fmt.Errorf("document index %d out of range", i)
	}
	if i == 0 {
		return v.candidate, nil
	}
	return v.embedder.Embed(ctx, v.docs[i])
}

package match

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"go.uber.org/zap"
)

// Strategy identifiers accepted by the configuration surface.
const (
	StrategyAuto     = "auto"
	StrategyEncoder  = "encoder"
	StrategyFallback = "fallback"
)

// Weights describes how similarity and skill coverage are fused into the
// combined score. Each strategy carries its own pair: the lexical fallback
// leans harder on coverage because its similarity signal is weaker.
type Weights struct {
	Similarity float64
	Coverage   float64
}

// vectorizer is the strategy-selectable capability that turns documents into
// comparable vectors. Fit must be called once, synchronously, with the
// candidate text at index 0 followed by every posting text; the fallback
// strategy derives its corpus statistics from that joint batch. Vector must be
// safe for concurrent use after Fit.
type vectorizer interface {
	Name() string
	Weights() Weights
	Fit(ctx context.Context, docs []string) error
	Vector(ctx context.Context, i int) ([]float64, error)
}

// newVectorizer selects the scoring strategy once, at construction. The
// choice is fixed for the run.
func newVectorizer(strategy string, embedder ai.Embedder, log *zap.Logger) (vectorizer, error) {
	switch strings.TrimSpace(strings.ToLower(strategy)) {
	case "", StrategyAuto:
		if embedder != nil {
			return newEncoderVectorizer(embedder, log), nil
		}
		log.Info("no encoder capability available, using term-weighting fallback")
		return newTfidfVectorizer(), nil
	case StrategyEncoder:
		if embedder == nil {
			return nil, fmt.Errorf("strategy %q requires an encoder capability", StrategyEncoder)
		}
		return newEncoderVectorizer(embedder, log), nil
	case StrategyFallback:
		return newTfidfVectorizer(), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", strategy)
	}
}

// cosine returns the cosine similarity of the two vectors, or 0 when either
// is empty, mismatched, or zero-length in magnitude.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return sim
}

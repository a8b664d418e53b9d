package ai

import "context"

// Embedder maps text to a fixed-length numeric vector. It is an optional
// capability; when absent the engine falls back to term-weighting similarity.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ExplainRequest carries the candidate and posting digests an explanation is
// requested for. Description is expected to be pre-truncated by the caller.
type ExplainRequest struct {
	CandidateName   string
	ExperienceYears float64
	TopSkills       []string
	RecentTitle     string

	JobTitle    string
	Company     string
	Location    string
	Description string

	Score float64
}

// Explainer produces a short natural-language rationale for a match. It is an
// optional capability and may fail per call; callers must substitute a
// fallback on error.
type Explainer interface {
	Explain(ctx context.Context, req *ExplainRequest) (string, error)
}

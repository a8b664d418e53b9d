package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"github.com/arpitpandey99/jobmatcher/internal/posting"
	"github.com/arpitpandey99/jobmatcher/internal/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultThreshold is the run-level minimum combined score.
	DefaultThreshold = 0.5
	// DefaultTopK bounds the returned shortlist.
	DefaultTopK = 20
	// DefaultCoverageRatio is assumed when no taxonomy term is detectable
	// in a posting text.
	DefaultCoverageRatio = 0.8

	defaultParallelism = 4
)

// Config is the run-level configuration surface consumed by the engine. It is
// supplied by the caller; the engine never loads configuration itself.
type Config struct {
	// Threshold is the minimum combined score, inclusive, in [0,1].
	Threshold float64
	// TopK is the maximum shortlist size, positive.
	TopK int
	// Strategy is auto, encoder or fallback.
	Strategy string
	// CoverageDefault is the ratio assumed when no taxonomy term is found.
	CoverageDefault float64
	// Taxonomy overrides the built-in required-skill vocabulary.
	Taxonomy []string
	// Parallelism bounds concurrent per-posting scoring.
	Parallelism int
}

// Validate rejects caller misuse before any batch work starts.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is required")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v is outside [0,1]", c.Threshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	if c.CoverageDefault < 0 || c.CoverageDefault > 1 {
		return fmt.Errorf("coverage default %v is outside [0,1]", c.CoverageDefault)
	}
	switch strings.TrimSpace(strings.ToLower(c.Strategy)) {
	case "", StrategyAuto, StrategyEncoder, StrategyFallback:
		return nil
	default:
		return fmt.Errorf("unknown strategy: %q", c.Strategy)
	}
}

// Engine runs the relevance-scoring and ranking pipeline. The scoring
// strategy is committed at construction and never switched mid-run.
type Engine struct {
	cfg      *Config
	vec      vectorizer
	analyzer *skillAnalyzer
	logger   *zap.Logger
}

// New validates the configuration and commits to a scoring strategy based on
// the availability of the encoder capability.
func New(cfg *Config, embedder ai.Embedder, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	vec, err := newVectorizer(cfg.Strategy, embedder, log)
	if err != nil {
		return nil, err
	}

	log.Info("scoring strategy selected",
		zap.String("strategy", vec.Name()),
		zap.Float64("similarity_weight", vec.Weights().Similarity),
		zap.Float64("coverage_weight", vec.Weights().Coverage),
	)

	return &Engine{
		cfg:      cfg,
		vec:      vec,
		analyzer: newSkillAnalyzer(cfg.Taxonomy, cfg.CoverageDefault),
		logger:   log,
	}, nil
}

// Strategy reports the strategy identifier actually in use.
func (e *Engine) Strategy() string {
	return e.vec.Name()
}

// Match runs the whole pipeline over the postings: deduplicate, represent,
// score, analyze skills, combine, threshold, rank. Per-posting faults are
// absorbed into the outcome's skip list; only a total inability to score
// surfaces as an error. On cancellation, postings not fully scored are
// omitted rather than emitted half-populated.
func (e *Engine) Match(ctx context.Context, prof *profile.Profile, list *posting.Postings) (*Outcome, error) {
	if prof == nil {
		return nil, fmt.Errorf("candidate profile is required")
	}
	if list == nil {
		list = &posting.Postings{}
	}

	initial := list.Len()
	deduped, droppedIDs := list.Deduplicate()
	e.logger.Info("deduplication",
		zap.Int("initial", initial),
		zap.Int("dropped", len(droppedIDs)),
		zap.Int("left", deduped.Len()),
	)
	if len(droppedIDs) > 0 {
		e.logger.Debug("dropped duplicate postings", zap.Strings("posting_ids", droppedIDs))
	}

	outcome := &Outcome{
		Strategy:  e.vec.Name(),
		Threshold: e.cfg.Threshold,
		Deduped:   len(droppedIDs),
	}

	scorable := make([]*posting.Posting, 0, deduped.Len())
	docs := []string{CandidateText(prof)}
	for _, p := range deduped.Items {
		if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Description+p.Requirements) == "" {
			outcome.Skipped = append(outcome.Skipped, Skip{
				PostingID: p.ID,
				Reason:    SkipMalformed,
				Detail:    "no scoreable text",
			})
			e.logger.Warn("skipping malformed posting", zap.String("posting_id", p.ID))
			continue
		}
		scorable = append(scorable, p)
		docs = append(docs, PostingText(p))
	}

	// The vector space must exist before any per-posting scoring starts:
	// the fallback derives IDF statistics from the joint batch.
	if err := e.vec.Fit(ctx, docs); err != nil {
		return nil, fmt.Errorf("fitting %s scorer: %w", e.vec.Name(), err)
	}

	candidate, err := e.vec.Vector(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("candidate vector: %w", err)
	}

	skills := prof.SkillSet()
	weights := e.vec.Weights()

	scored := make([]*Result, len(scorable))
	skips := make([]*Skip, len(scorable))

	parallelism := e.cfg.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)

	for i, p := range scorable {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				skips[i] = &Skip{PostingID: p.ID, Title: p.Title, Reason: SkipScoring, Detail: err.Error()}
				return nil
			}

			vec, err := e.vec.Vector(groupCtx, i+1)
			if err != nil {
				e.logger.Warn("scoring failed, skipping posting",
					zap.String("posting_id", p.ID),
					zap.String("title", p.Title),
					zap.Error(err),
				)
				skips[i] = &Skip{PostingID: p.ID, Title: p.Title, Reason: SkipScoring, Detail: err.Error()}
				return nil
			}

			similarity := clamp01(cosine(candidate, vec))
			coverage := e.analyzer.Analyze(prof.Skills, skills, strings.ToLower(p.Description+" "+p.Requirements))

			scored[i] = &Result{
				Posting:    p,
				Score:      combine(weights, similarity, coverage.Ratio),
				Similarity: similarity,
				Coverage:   coverage.Ratio,
				Matched:    coverage.Matched,
				Missing:    coverage.Missing,
			}
			return nil
		})
	}

	// Goroutines absorb their own faults, so Wait only propagates leftover
	// context state, which is already recorded per posting.
	_ = group.Wait()

	results := make([]*Result, 0, len(scored))
	for i := range scored {
		switch {
		case scored[i] != nil:
			results = append(results, scored[i])
		case skips[i] != nil:
			outcome.Skipped = append(outcome.Skipped, *skips[i])
		}
	}

	outcome.Matches = rank(results, e.cfg.Threshold, e.cfg.TopK)

	e.logger.Info("ranking",
		zap.Int("scored", len(results)),
		zap.Int("skipped", len(outcome.Skipped)),
		zap.Int("passed_threshold", len(outcome.Matches)),
		zap.Float64("threshold", e.cfg.Threshold),
		zap.String("strategy", outcome.Strategy),
	)

	return outcome, nil
}

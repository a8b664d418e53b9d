package rationale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"github.com/arpitpandey99/jobmatcher/internal/match"
	"github.com/arpitpandey99/jobmatcher/internal/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultMaxInFlight      = 2
	defaultInterval         = 500 * time.Millisecond
	defaultTimeout          = 15 * time.Second
	defaultDescriptionLimit = 300
	defaultTopSkills        = 10
)

// Config controls how the external rationale capability is called. The
// capability is typically a metered remote service, so calls are both bounded
// in flight and spaced out.
type Config struct {
	// MaxInFlight bounds concurrent capability calls.
	MaxInFlight int
	// Interval is the minimum spacing between call starts.
	Interval time.Duration
	// Timeout applies per call; a timeout is treated as a capability
	// failure and falls back to the template.
	Timeout time.Duration
}

func (c *Config) withDefaults() Config {
	cfg := Config{
		MaxInFlight: defaultMaxInFlight,
		Interval:    defaultInterval,
		Timeout:     defaultTimeout,
	}
	if c == nil {
		return cfg
	}
	if c.MaxInFlight > 0 {
		cfg.MaxInFlight = c.MaxInFlight
	}
	if c.Interval > 0 {
		cfg.Interval = c.Interval
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg
}

// Annotator attaches a rationale to each ranked result. A non-empty string is
// always produced: when the capability is absent, errors out or times out,
// the deterministic template takes its place. The pipeline never fails
// because explanations are unavailable.
type Annotator struct {
	explainer ai.Explainer
	cfg       Config
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// New builds an annotator. explainer may be nil; every result then receives
// the template rationale.
func New(explainer ai.Explainer, cfg *Config, log *zap.Logger) *Annotator {
	resolved := cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	return &Annotator{
		explainer: explainer,
		cfg:       resolved,
		limiter:   rate.NewLimiter(rate.Every(resolved.Interval), 1),
		logger:    log,
	}
}

// Annotate fills the Rationale field of every result in place.
func (a *Annotator) Annotate(ctx context.Context, prof *profile.Profile, results []*match.Result) {
	if len(results) == 0 {
		return
	}

	fallback := Fallback(prof)

	if a.explainer == nil {
		for _, r := range results {
			r.Rationale = fallback
		}
		a.logger.Debug("rationale capability absent, using template", zap.Int("results", len(results)))
		return
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.cfg.MaxInFlight)

	for _, r := range results {
		group.Go(func() error {
			text, err := a.explain(groupCtx, prof, r)
			if err != nil {
				a.logger.Warn("rationale generation failed, using template",
					zap.String("posting_id", r.Posting.ID),
					zap.Error(err),
				)
				text = fallback
			}
			r.Rationale = text
			return nil
		})
	}

	_ = group.Wait()

	// A canceled context can leave goroutines that never ran; results must
	// not leave here half-populated.
	for _, r := range results {
		if strings.TrimSpace(r.Rationale) == "" {
			r.Rationale = fallback
		}
	}
}

func (a *Annotator) explain(ctx context.Context, prof *profile.Profile, r *match.Result) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.explainer.Explain(callCtx, &ai.ExplainRequest{
		CandidateName:   prof.Name,
		ExperienceYears: prof.ExperienceYrs,
		TopSkills:       prof.TopSkills(defaultTopSkills),
		RecentTitle:     prof.RecentTitle(),
		JobTitle:        r.Posting.Title,
		Company:         r.Posting.Company,
		Location:        r.Posting.Location,
		Description:     truncate(r.Posting.Description, defaultDescriptionLimit),
		Score:           r.Score,
	})
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("capability returned an empty rationale")
	}
	return text, nil
}

// Fallback builds the deterministic template rationale from the candidate's
// experience and leading skills.
func Fallback(prof *profile.Profile) string {
	skills := prof.TopSkills(3)
	if len(skills) == 0 {
		return fmt.Sprintf("This position aligns well with your %.1f years of experience and skill set.", prof.ExperienceYrs)
	}
	return fmt.Sprintf("Strong match based on %.1f years of experience in %s. Skills align well with job requirements.",
		prof.ExperienceYrs, strings.Join(skills, ", "))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"github.com/arpitpandey99/jobmatcher/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxRationaleRunes   = 1200
)

// Explainer asks Gemini for a short match rationale.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewExplainer creates the Gemini-backed rationale capability.
func NewExplainer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Explainer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Explain renders the prompt from the request digests and returns the model's
// plain-text answer.
func (e *Explainer) Explain(ctx context.Context, req *ai.ExplainRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("explain request is required")
	}

	prompt := buildPrompt(req)

	e.logger.Debug("gemini explain request",
		zap.String("job_title", req.JobTitle),
		zap.String("company", req.Company),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	e.logger.Debug("gemini explain response",
		zap.String("job_title", req.JobTitle),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("empty rationale from provider")
	}

	// Remote models occasionally ramble far past the requested length.
	if runes := []rune(text); len(runes) > maxRationaleRunes {
		text = string(runes[:maxRationaleRunes])
	}

	return text, nil
}

func buildPrompt(req *ai.ExplainRequest) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate: {{CANDIDATE_NAME}}\nJob: {{JOB_TITLE}} at {{COMPANY}}\nScore: {{SCORE}}\nExplain the fit in 2-3 sentences."
	}

	replacer := strings.NewReplacer(
		"{{CANDIDATE_NAME}}", orNA(req.CandidateName),
		"{{EXPERIENCE_YEARS}}", fmt.Sprintf("%.1f", req.ExperienceYears),
		"{{TOP_SKILLS}}", orNA(strings.Join(req.TopSkills, ", ")),
		"{{RECENT_TITLE}}", orNA(req.RecentTitle),
		"{{JOB_TITLE}}", orNA(req.JobTitle),
		"{{COMPANY}}", orNA(req.Company),
		"{{LOCATION}}", orNA(req.Location),
		"{{DESCRIPTION}}", orNA(req.Description),
		"{{SCORE}}", fmt.Sprintf("%.2f", req.Score),
	)

	return replacer.Replace(template)
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return s
}

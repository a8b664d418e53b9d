package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRequest() *ai.ExplainRequest {
	return &ai.ExplainRequest{
		CandidateName:   "Jordan Doe",
		ExperienceYears: 6,
		TopSkills:       []string{"python", "aws"},
		RecentTitle:     "Senior Data Scientist",
		JobTitle:        "ML Engineer",
		Company:         "Acme",
		Location:        "Remote",
		Description:     "Ship recommendation models.",
		Score:           0.82,
	}
}

func TestExplainerBuildsPromptFromDigests(t *testing.T) {
	stub := &stubGenerator{response: "Skills and seniority line up well."}
	explainer := NewExplainer(stub, zap.NewNop(), 0)

	text, err := explainer.Explain(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Skills and seniority line up well." {
		t.Fatalf("unexpected rationale: %q", text)
	}

	for _, want := range []string{
		"Jordan Doe",
		"6.0 years",
		"python, aws",
		"Senior Data Scientist",
		"ML Engineer",
		"Acme",
		"Remote",
		"Ship recommendation models.",
		"0.82",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q, got: %s", want, stub.lastPrompt)
		}
	}
}

func TestExplainerSubstitutesMissingFields(t *testing.T) {
	stub := &stubGenerator{response: "ok"}
	explainer := NewExplainer(stub, zap.NewNop(), 0)

	req := testRequest()
	req.Location = ""
	req.RecentTitle = "  "

	if _, err := explainer.Explain(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.lastPrompt, "N/A") {
		t.Fatalf("expected placeholder for empty fields, got: %s", stub.lastPrompt)
	}
}

func TestExplainerPropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	explainer := NewExplainer(stub, zap.NewNop(), 0)

	if _, err := explainer.Explain(context.Background(), testRequest()); err == nil {
		t.Fatal("expected the generator error to propagate")
	}
}

func TestExplainerRejectsEmptyResponse(t *testing.T) {
	stub := &stubGenerator{response: "   "}
	explainer := NewExplainer(stub, zap.NewNop(), 0)

	if _, err := explainer.Explain(context.Background(), testRequest()); err == nil {
		t.Fatal("expected an error for a blank response")
	}
}

func TestExplainerCapsRunawayResponses(t *testing.T) {
	stub := &stubGenerator{response: strings.Repeat("a", maxRationaleRunes+500)}
	explainer := NewExplainer(stub, zap.NewNop(), 0)

	text, err := explainer.Explain(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(text)); got != maxRationaleRunes {
		t.Fatalf("expected response capped at %d runes, got %d", maxRationaleRunes, got)
	}
}

func TestExplainerRequiresRequest(t *testing.T) {
	explainer := NewExplainer(&stubGenerator{response: "ok"}, zap.NewNop(), 0)

	if _, err := explainer.Explain(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil request")
	}
}

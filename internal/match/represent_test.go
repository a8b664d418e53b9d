package match

import (
	"strings"
	"testing"

	"github.com/arpitpandey99/jobmatcher/internal/posting"
	"github.com/arpitpandey99/jobmatcher/internal/profile"
)

func TestCandidateText(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		Summary: "Experienced data scientist.",
		Skills:  []string{"python", "aws"},
		Experience: []profile.Experience{
			{Title: "Data Scientist", Company: "Acme", Description: "Built models"},
		},
		Education: []profile.Education{
			{Degree: "MSc", Field: "Computer Science", Institution: "State University"},
		},
	}

	text := CandidateText(p)

	for _, want := range []string{
		"Experienced data scientist.",
		"Skills: python, aws",
		"Data Scientist at Acme: Built models",
		"MSc in Computer Science from State University",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected candidate text to contain %q, got: %s", want, text)
		}
	}
}

func TestCandidateTextEmptyProfile(t *testing.T) {
	t.Parallel()

	text := CandidateText(&profile.Profile{})
	if !strings.Contains(text, "Skills: ") {
		t.Fatalf("expected skeleton text for empty profile, got %q", text)
	}
}

func TestPostingText(t *testing.T) {
	t.Parallel()

	p := &posting.Posting{
		Title:        "ML Engineer",
		Company:      "Initech",
		Description:  "Ship models.",
		Requirements: "python required",
	}

	if got := PostingText(p); got != "ML Engineer at Initech. Ship models. python required" {
		t.Fatalf("unexpected posting text: %q", got)
	}
}

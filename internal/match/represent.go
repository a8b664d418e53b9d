package match

import (
	"fmt"
	"strings"

	"github.com/arpitpandey99/jobmatcher/internal/posting"
	"github.com/arpitpandey99/jobmatcher/internal/profile"
)

// CandidateText flattens the structured profile into a single searchable text
// block shared by both scoring strategies. Empty optional fields contribute
// empty strings.
func CandidateText(p *profile.Profile) string {
	parts := []string{
		p.Summary,
		fmt.Sprintf("Skills: %s", strings.Join(p.Skills, ", ")),
	}

	for _, exp := range p.Experience {
		parts = append(parts, fmt.Sprintf("%s at %s: %s", exp.Title, exp.Company, exp.Description))
	}

	for _, edu := range p.Education {
		parts = append(parts, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.Field, edu.Institution))
	}

	return strings.Join(parts, " ")
}

// PostingText flattens one posting into its searchable text block.
func PostingText(p *posting.Posting) string {
	return fmt.Sprintf("%s at %s. %s %s", p.Title, p.Company, p.Description, p.Requirements)
}

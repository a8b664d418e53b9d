package match

import (
	"fmt"
	"strings"

	"github.com/arpitpandey99/jobmatcher/internal/profile"
)

// BuildReport renders the outcome as a human-readable match report.
func BuildReport(prof *profile.Profile, outcome *Outcome) string {
	var b strings.Builder

	b.WriteString("JOB MATCH REPORT\n")
	fmt.Fprintf(&b, "Strategy: %s | Threshold: %.2f\n\n", outcome.Strategy, outcome.Threshold)
	fmt.Fprintf(&b, "CANDIDATE: %s\n", prof.Name)
	fmt.Fprintf(&b, "EXPERIENCE: %.1f years\n", prof.ExperienceYrs)
	fmt.Fprintf(&b, "LOCATION: %s\n\n", prof.Location)
	fmt.Fprintf(&b, "TOP SKILLS:\n%s\n\n", strings.Join(prof.TopSkills(15), ", "))

	b.WriteString("===================================\n")
	fmt.Fprintf(&b, "TOP MATCHING JOBS (%d)\n", len(outcome.Matches))
	b.WriteString("===================================\n")

	for i, m := range outcome.Matches {
		p := m.Posting
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   Company: %s\n", p.Company)
		fmt.Fprintf(&b, "   Location: %s | %s\n", p.Location, p.WorkMode)
		fmt.Fprintf(&b, "   Match Score: %.2f%%\n", m.Score*100)
		fmt.Fprintf(&b, "   Skill Match: %.1f%%\n", m.Coverage*100)
		fmt.Fprintf(&b, "\n   Why it's a good fit:\n   %s\n", m.Rationale)
		fmt.Fprintf(&b, "\n   Matching Skills: %s\n", strings.Join(head(m.Matched, 10), ", "))
		if len(m.Missing) > 0 {
			fmt.Fprintf(&b, "   Skills to develop: %s\n", strings.Join(head(m.Missing, 5), ", "))
		}
		fmt.Fprintf(&b, "\n   Apply at: %s\n", p.ApplyURL)
		b.WriteString("\n   ---\n")
	}

	if len(outcome.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSKIPPED POSTINGS (%d):\n", len(outcome.Skipped))
		for _, s := range outcome.Skipped {
			fmt.Fprintf(&b, "  - %s (%s): %s\n", s.PostingID, s.Reason, s.Detail)
		}
	}

	return b.String()
}

func head(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

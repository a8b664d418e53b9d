package match

import "github.com/arpitpandey99/jobmatcher/internal/posting"

// SkipReason categorizes why a posting left the pipeline before ranking.
type SkipReason string

const (
	// SkipMalformed marks postings without any scoreable text.
	SkipMalformed SkipReason = "malformed"
	// SkipScoring marks postings whose scoring raised an error.
	SkipScoring SkipReason = "scoring"
)

// Skip records one excluded posting and the reason category, so callers can
// tell "no good matches" apart from "matching degraded".
type Skip struct {
	PostingID string     `json:"posting_id"`
	Title     string     `json:"title,omitempty"`
	Reason    SkipReason `json:"reason"`
	Detail    string     `json:"detail,omitempty"`
}

// Result is one ranked match. Rationale is filled by the annotation step
// after ranking.
type Result struct {
	Posting    *posting.Posting `json:"posting"`
	Score      float64          `json:"match_score"`
	Similarity float64          `json:"similarity"`
	Coverage   float64          `json:"skill_match_percentage"`
	Matched    []string         `json:"matching_skills"`
	Missing    []string         `json:"missing_skills"`
	Rationale  string           `json:"reasoning,omitempty"`
}

// Outcome is what one engine run hands to downstream consumers: the ordered
// shortlist plus enough audit information for the caller's logging.
type Outcome struct {
	Matches   []*Result `json:"matches"`
	Strategy  string    `json:"strategy"`
	Threshold float64   `json:"threshold"`
	Skipped   []Skip    `json:"skipped,omitempty"`
	Deduped   int       `json:"deduplicated"`
}

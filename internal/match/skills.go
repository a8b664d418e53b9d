package match

import "strings"

// DefaultTaxonomy is the built-in required-skill vocabulary for the target
// job family. It is an ordered set; callers targeting another domain supply
// their own list through the configuration instead of editing this one.
var DefaultTaxonomy = []string{
	"python", "java", "javascript", "sql", "aws", "azure", "docker",
	"kubernetes", "tensorflow", "pytorch", "machine learning",
	"deep learning", "nlp", "computer vision", "data science",
	"ml", "ai", "generative ai", "llm", "genai",
}

// Coverage is the skill-gap analysis for one posting.
type Coverage struct {
	// Matched are candidate skills found verbatim in the posting text.
	Matched []string
	// Missing are taxonomy-required skills the candidate does not list.
	Missing []string
	// Ratio is |required ∩ candidate| / |required|, or the configured
	// default when no taxonomy term appears in the posting text.
	Ratio float64
}

// skillAnalyzer estimates required skills from a fixed domain vocabulary and
// compares them against the candidate's skill set.
type skillAnalyzer struct {
	taxonomy     []string
	defaultRatio float64
}

func newSkillAnalyzer(taxonomy []string, defaultRatio float64) *skillAnalyzer {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy
	}
	normalized := make([]string, 0, len(taxonomy))
	for _, term := range taxonomy {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			normalized = append(normalized, term)
		}
	}

	return &skillAnalyzer{taxonomy: normalized, defaultRatio: defaultRatio}
}

// Analyze runs the overlap analysis. orderedSkills keeps output deterministic;
// candidateSet is its lower-cased set form. text is the lower-cased posting
// description plus requirements.
func (a *skillAnalyzer) Analyze(orderedSkills []string, candidateSet map[string]bool, text string) Coverage {
	var matched []string
	for _, skill := range orderedSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(text, skill) {
			matched = append(matched, skill)
		}
	}

	var required []string
	for _, term := range a.taxonomy {
		if strings.Contains(text, term) {
			required = append(required, term)
		}
	}

	// No detectable vocabulary means "can't tell", not "no match"; assume
	// an acceptable fit instead of over-penalizing poorly worded postings.
	if len(required) == 0 {
		return Coverage{Matched: matched, Ratio: a.defaultRatio}
	}

	overlap := 0
	var missing []string
	for _, term := range required {
		if candidateSet[term] {
			overlap++
			continue
		}
		missing = append(missing, term)
	}

	return Coverage{
		Matched: matched,
		Missing: missing,
		Ratio:   float64(overlap) / float64(len(required)),
	}
}

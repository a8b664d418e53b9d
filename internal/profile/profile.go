package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Profile is the structured candidate profile produced upstream by the resume
// parsing collaborator. The matching engine only reads it.
type Profile struct {
	Name           string       `json:"name,omitempty"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Location       string       `json:"location,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	ExperienceYrs  float64      `json:"total_experience_years,omitempty"`
}

// Experience is a single work history record.
type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single education record.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// FromFile loads a profile from a JSON dump written by the resume parser.
func FromFile(path string) (*Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var p Profile
	if err := json.NewDecoder(file).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding profile file %q: %w", path, err)
	}

	if strings.TrimSpace(p.Name) == "" && len(p.Skills) == 0 && strings.TrimSpace(p.Summary) == "" {
		return nil, fmt.Errorf("profile file %q has no usable candidate data", path)
	}

	if p.ExperienceYrs < 0 {
		return nil, fmt.Errorf("profile file %q: total_experience_years must not be negative", path)
	}

	return &p, nil
}

// TopSkills returns up to n leading skills, preserving their order.
func (p *Profile) TopSkills(n int) []string {
	if n <= 0 || len(p.Skills) == 0 {
		return nil
	}
	if n > len(p.Skills) {
		n = len(p.Skills)
	}
	return p.Skills[:n]
}

// RecentTitle returns the title of the most recent experience record, or an
// empty string when no experience is present.
func (p *Profile) RecentTitle() string {
	if len(p.Experience) == 0 {
		return ""
	}
	return p.Experience[0].Title
}

// SkillSet returns the candidate skills as a lower-cased set.
func (p *Profile) SkillSet() map[string]bool {
	set := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		set[skill] = true
	}
	return set
}

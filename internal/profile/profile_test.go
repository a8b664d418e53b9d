package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `{
		"name": "Jordan Doe",
		"summary": "Data scientist",
		"skills": ["Python", "Machine Learning", "AWS"],
		"experience": [{"title": "Senior Data Scientist", "company": "Acme"}],
		"total_experience_years": 6.5
	}`)

	p, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Jordan Doe" {
		t.Fatalf("unexpected name: %s", p.Name)
	}
	if p.ExperienceYrs != 6.5 {
		t.Fatalf("unexpected experience years: %v", p.ExperienceYrs)
	}
	if p.RecentTitle() != "Senior Data Scientist" {
		t.Fatalf("unexpected recent title: %s", p.RecentTitle())
	}
}

func TestFromFileRejectsNegativeExperience(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `{"name": "X", "total_experience_years": -1}`)
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected an error for negative experience years")
	}
}

func TestFromFileRejectsEmptyProfile(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `{}`)
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected an error for a profile without candidate data")
	}
}

func TestTopSkills(t *testing.T) {
	t.Parallel()

	p := &Profile{Skills: []string{"python", "sql", "aws"}}

	if got := p.TopSkills(2); len(got) != 2 || got[0] != "python" || got[1] != "sql" {
		t.Fatalf("unexpected top skills: %v", got)
	}
	if got := p.TopSkills(10); len(got) != 3 {
		t.Fatalf("expected all skills when n exceeds length, got %v", got)
	}
	if got := p.TopSkills(0); got != nil {
		t.Fatalf("expected nil for non-positive n, got %v", got)
	}
}

func TestSkillSetLowercasesAndTrims(t *testing.T) {
	t.Parallel()

	p := &Profile{Skills: []string{" Python ", "AWS", ""}}
	set := p.SkillSet()

	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
	if !set["python"] || !set["aws"] {
		t.Fatalf("unexpected skill set: %v", set)
	}
}

func TestRecentTitleWithoutExperience(t *testing.T) {
	t.Parallel()

	p := &Profile{}
	if got := p.RecentTitle(); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

package posting

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Posting is one externally sourced job advertisement, produced by the
// scraping collaborator and treated as immutable input here.
type Posting struct {
	ID           string `json:"job_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	Location     string `json:"location,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	WorkMode     string `json:"work_mode,omitempty"`
	Salary       string `json:"salary,omitempty"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	PostedDate   string `json:"posted_date,omitempty"`
	ApplyURL     string `json:"apply_url,omitempty"`
	Source       string `json:"source,omitempty"`
	ScrapedAt    string `json:"scraped_at,omitempty"`
}

// Postings is an ordered list of postings from one or more sources.
type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, item := range p.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Append merges the other list into this one, preserving scan order.
func (p *Postings) Append(other *Postings) {
	if other == nil {
		return
	}
	p.Items = append(p.Items, other.Items...)
}

// Signature returns the canonical dedup key for the posting: lower-cased,
// whitespace-normalized title and company.
func (p *Posting) Signature() string {
	return normalize(p.Title) + "_" + normalize(p.Company)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Deduplicate returns a new list with one posting per canonical signature.
// The first-encountered posting wins and the original scan order is kept.
// Cross-source reposts are common; keeping them would double-count in ranking.
func (p *Postings) Deduplicate() (*Postings, []string) {
	seen := make(map[string]bool, len(p.Items))
	kept := make([]*Posting, 0, len(p.Items))
	var dropped []string

	for _, item := range p.Items {
		sig := item.Signature()
		if seen[sig] {
			dropped = append(dropped, item.ID)
			continue
		}
		seen[sig] = true
		kept = append(kept, item)
	}

	return &Postings{Items: kept}, dropped
}

// DumpToTmpFile writes the postings as indented JSON to a temporary file and
// returns its name.
func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// FromFiles loads and merges posting dumps from the given paths in order.
func FromFiles(paths []string) (*Postings, error) {
	merged := &Postings{}
	for _, path := range paths {
		part, err := FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading postings from %q: %w", path, err)
		}
		merged.Append(part)
	}
	return merged, nil
}

// Package report records labels that could not be resolved with confidence
// and writes them out for manual review.
//
// The JSON layout matches failed_matches.json: an array of objects with
// country_name_svg, fuzzy_match, ratio and an id placeholder that a reviewer
// fills in. Reviewed files can be loaded back and folded into the overlay.
package report

import (
	"strings"
)

// Entry is one unresolved label with its best fuzzy suggestion.
type Entry struct {
	// Label is the input label as it appeared in the source.
	Label string `json:"country_name_svg" yaml:"country_name_svg"`
	// Candidate is the best-scoring reference name.
	Candidate string `json:"fuzzy_match" yaml:"fuzzy_match"`
	// Score is the candidate's similarity, 0 to 100.
	Score int `json:"ratio" yaml:"ratio"`
	// Target is left blank for a reviewer to fill with the correct code.
	Target string `json:"id" yaml:"id"`
}

// Report is the ordered sequence of unresolved entries.
type Report struct {
	Entries []Entry
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// Add appends an entry with an empty target.
func (r *Report) Add(label, candidate string, score int) {
	r.Entries = append(r.Entries, Entry{Label: label, Candidate: candidate, Score: score})
}

// Len returns the number of entries.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// IsEmpty reports whether the report has no entries.
func (r *Report) IsEmpty() bool {
	return r.Len() == 0
}

// Reviewed returns the label to target pairs a reviewer filled in.
// Entries with a blank target are left out.
func (r *Report) Reviewed() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for _, e := range r.Entries {
		if t := strings.TrimSpace(e.Target); t != "" {
			out[e.Label] = t
		}
	}
	return out
}

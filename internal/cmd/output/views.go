package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/match"
	"github.com/agentstation/georecon/pkg/reconcile"
)

// OutcomeView renders a reconciliation outcome.
type OutcomeView struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	Mode        string          `json:"mode" yaml:"mode"`
	Records     int             `json:"records" yaml:"records"`
	Exact       int             `json:"exact" yaml:"exact"`
	Overridden  int             `json:"overridden" yaml:"overridden"`
	Fuzzy       int             `json:"fuzzy" yaml:"fuzzy"`
	Unresolved  int             `json:"unresolved" yaml:"unresolved"`
	Skipped     int             `json:"skipped" yaml:"skipped"`
	Overwrites  int             `json:"overwrites" yaml:"overwrites"`
	ForReview   int             `json:"for_review" yaml:"for_review"`
	Duration    string          `json:"duration" yaml:"duration"`
	Diagnostics []DiagnosticRow `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Results     []ResultRow     `json:"-" yaml:"-"`
}

// DiagnosticRow is one diagnostic line.
type DiagnosticRow struct {
	Index    int    `json:"index" yaml:"index"`
	Severity string `json:"severity" yaml:"severity"`
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`
}

// ResultRow is one record's outcome, listed in wide tables.
type ResultRow struct {
	Index    int
	Key      string
	Kind     string
	Value    string
	Score    int
	Resolver string
}

// NewOutcomeView flattens an outcome for display.
func NewOutcomeView(o *reconcile.Outcome) OutcomeView {
	s := o.Stats
	v := OutcomeView{
		RunID:      o.RunID,
		Mode:       string(o.Mode),
		Records:    s.Records,
		Exact:      s.Exact,
		Overridden: s.Overridden,
		Fuzzy:      s.Fuzzy,
		Unresolved: s.Unresolved,
		Skipped:    s.Skipped,
		Overwrites: s.Overwrites,
		ForReview:  o.Report.Len(),
		Duration:   s.Duration.String(),
	}
	for _, d := range o.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, DiagnosticRow{
			Index:    d.Index,
			Severity: string(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
		})
	}
	for _, r := range o.Results {
		v.Results = append(v.Results, ResultRow{
			Index:    r.Index,
			Key:      r.Key,
			Kind:     r.Kind.String(),
			Value:    r.Value,
			Score:    r.Score,
			Resolver: r.Resolver,
		})
	}
	return v
}

// Table implements Tabular. The narrow form is a property table of counts;
// the wide form lists every record.
func (v OutcomeView) Table(wide bool) Data {
	if wide {
		data := Data{
			Headers:         []string{"#", "Key", "Kind", "Value", "Score", "Resolver"},
			ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
		}
		for _, r := range v.Results {
			score := ""
			if r.Kind == reconcile.Fuzzy.String() {
				score = strconv.Itoa(r.Score)
			}
			data.Rows = append(data.Rows, []string{strconv.Itoa(r.Index), r.Key, r.Kind, r.Value, score, r.Resolver})
		}
		return data
	}

	rows := [][]string{
		{"Run", v.RunID},
		{"Mode", v.Mode},
		{"Records", strconv.Itoa(v.Records)},
		{"Exact", strconv.Itoa(v.Exact)},
		{"Overridden", strconv.Itoa(v.Overridden)},
		{"Fuzzy", strconv.Itoa(v.Fuzzy)},
		{"Unresolved", strconv.Itoa(v.Unresolved)},
		{"Skipped", strconv.Itoa(v.Skipped)},
		{"Overwrites", strconv.Itoa(v.Overwrites)},
		{"For Review", strconv.Itoa(v.ForReview)},
		{"Duration", v.Duration},
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// DiagnosticsTable lists diagnostics.
func DiagnosticsTable(rows []DiagnosticRow) Data {
	data := Data{
		Headers:         []string{"#", "Severity", "Code", "Message"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, d := range rows {
		index := "-"
		if d.Index >= 0 {
			index = strconv.Itoa(d.Index)
		}
		data.Rows = append(data.Rows, []string{index, d.Severity, Title(d.Code), d.Message})
	}
	return data
}

// OverlayView renders the effective exception overlay.
type OverlayView struct {
	Continents map[string]string `json:"continents" yaml:"continents"`
	Labels     map[string]string `json:"labels" yaml:"labels"`
}

// NewOverlayView captures an overlay for display.
func NewOverlayView(o *match.Overlay) OverlayView {
	f := o.File()
	return OverlayView{Continents: f.Continents, Labels: f.Labels}
}

// Table implements Tabular.
func (v OverlayView) Table(bool) Data {
	data := Data{Headers: []string{"Section", "Name", "Value"}}
	add := func(section string, m map[string]string) {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			data.Rows = append(data.Rows, []string{section, name, m[name]})
		}
	}
	add("continents", v.Continents)
	add("labels", v.Labels)
	return data
}

// ReferenceView summarizes an ingested reference set per continent.
type ReferenceView struct {
	Groups []GroupRow `json:"groups" yaml:"groups"`
	Issues []string   `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// GroupRow counts the entities of one continent.
type GroupRow struct {
	Continent string `json:"continent" yaml:"continent"`
	Entities  int    `json:"entities" yaml:"entities"`
	WithCode  int    `json:"with_code" yaml:"with_code"`
}

// NewReferenceView summarizes set.
func NewReferenceView(set *geo.ReferenceSet) ReferenceView {
	var v ReferenceView
	for _, g := range set.Groups() {
		row := GroupRow{Continent: g.Continent.String(), Entities: len(g.Entities)}
		for _, e := range g.Entities {
			if e.HasCode() {
				row.WithCode++
			}
		}
		v.Groups = append(v.Groups, row)
	}
	for _, issue := range set.Issues() {
		v.Issues = append(v.Issues, issue.Error())
	}
	return v
}

// Table implements Tabular. Ingestion issues are listed in wide mode.
func (v ReferenceView) Table(wide bool) Data {
	data := Data{
		Headers:         []string{"Continent", "Entities", "With Code"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
	total, coded := 0, 0
	for _, g := range v.Groups {
		data.Rows = append(data.Rows, []string{g.Continent, strconv.Itoa(g.Entities), strconv.Itoa(g.WithCode)})
		total += g.Entities
		coded += g.WithCode
	}
	data.Rows = append(data.Rows, []string{"Total", strconv.Itoa(total), strconv.Itoa(coded)})
	if wide {
		for i, issue := range v.Issues {
			data.Rows = append(data.Rows, []string{fmt.Sprintf("issue %d", i+1), issue, ""})
		}
	}
	return data
}

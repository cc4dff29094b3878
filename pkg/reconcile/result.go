package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/report"
)

// Record is one foreign input to reconcile.
type Record struct {
	// Index is the record's position in the caller's input.
	Index int
	// Key is the match key: an alpha-2 code in continent mode, a label in label mode.
	Key string
	// Name is the human-readable name used for overlay lookups.
	Name string
}

// MatchKind classifies how a record was resolved.
type MatchKind int

const (
	// Unresolved means no resolver produced a value.
	Unresolved MatchKind = iota
	// Exact means the normalized key matched a reference entity.
	Exact
	// Overridden means the exception overlay forced the value.
	Overridden
	// Fuzzy means only a suggestion exists; the value is left blank.
	Fuzzy
)

// String returns the kind name.
func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Overridden:
		return "overridden"
	case Fuzzy:
		return "fuzzy"
	default:
		return "unresolved"
	}
}

// MatchResult is the immutable outcome for one record.
type MatchResult struct {
	Record
	Kind MatchKind
	// Entity is the matched or suggested reference entity, if any.
	Entity *geo.ReferenceEntity
	// Value is the resolved continent or code; empty when left unset.
	Value string
	// Score is the fuzzy similarity for Fuzzy results.
	Score int
	// Resolver names the resolver that produced the result.
	Resolver string
}

// Resolved reports whether the result carries a value to apply.
func (r MatchResult) Resolved() bool {
	return r.Value != "" && (r.Kind == Exact || r.Kind == Overridden)
}

// Severity ranks a diagnostic.
type Severity string

// Diagnostic severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code identifies a diagnostic class.
type Code string

// Diagnostic codes.
const (
	CodeMalformedRecord       Code = "malformed_record"
	CodeNoContinentFound      Code = "no_continent_found"
	CodeNoCodeFound           Code = "no_code_found"
	CodeUnresolvedFuzzyOnly   Code = "unresolved_fuzzy_only"
	CodeDuplicateKeyOverwrite Code = "duplicate_key_overwrite"
)

// Diagnostic is a recovered per-record problem.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Label    string
	// Index is the record position, or -1 for problems found while indexing the reference.
	Index int
}

// String returns a one-line rendering.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// Stats summarizes a run.
type Stats struct {
	Records    int
	Exact      int
	Overridden int
	Fuzzy      int
	Unresolved int
	Skipped    int
	Overwrites int

	StartedAt  utc.Time
	FinishedAt utc.Time
	Duration   time.Duration
}

// Outcome is everything a run produced.
type Outcome struct {
	RunID       string
	Mode        Mode
	Results     []MatchResult
	Report      *report.Report
	Diagnostics []Diagnostic
	Stats       Stats
}

// Values returns the resolved value for each record index that has one.
func (o *Outcome) Values() map[int]string {
	out := make(map[int]string, len(o.Results))
	for _, r := range o.Results {
		if r.Resolved() {
			out[r.Index] = r.Value
		}
	}
	return out
}

// DiagnosticsByCode returns the diagnostics with the given code, in order.
func (o *Outcome) DiagnosticsByCode(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range o.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Summary returns a human-readable summary of the outcome.
func (o *Outcome) Summary() string {
	s := o.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d records, %d exact, %d overridden, %d fuzzy, %d unresolved",
		o.Mode, s.Records, s.Exact, s.Overridden, s.Fuzzy, s.Unresolved)
	if s.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", s.Skipped)
	}
	if s.Overwrites > 0 {
		fmt.Fprintf(&b, ", %d overwrites", s.Overwrites)
	}
	if n := o.Report.Len(); n > 0 {
		fmt.Fprintf(&b, "; %d for review", n)
	}
	return b.String()
}

// outcomeBuilder accumulates an Outcome in commit order.
type outcomeBuilder struct {
	outcome  *Outcome
	assigned map[string]string
}

func newOutcomeBuilder(runID string, mode Mode) *outcomeBuilder {
	return &outcomeBuilder{
		outcome: &Outcome{
			RunID:  runID,
			Mode:   mode,
			Report: report.New(),
			Stats:  Stats{StartedAt: utc.Now()},
		},
		assigned: make(map[string]string),
	}
}

func (b *outcomeBuilder) diagnose(d Diagnostic) {
	b.outcome.Diagnostics = append(b.outcome.Diagnostics, d)
}

func (b *outcomeBuilder) skip(d Diagnostic) {
	b.outcome.Stats.Records++
	b.outcome.Stats.Skipped++
	b.diagnose(d)
}

func (b *outcomeBuilder) add(r MatchResult) {
	st := &b.outcome.Stats
	st.Records++
	switch r.Kind {
	case Exact:
		st.Exact++
	case Overridden:
		st.Overridden++
	case Fuzzy:
		st.Fuzzy++
	default:
		st.Unresolved++
	}
	b.outcome.Results = append(b.outcome.Results, r)
}

// assign records key -> value and returns the earlier value when the key had
// already been assigned.
func (b *outcomeBuilder) assign(key, value string) (string, bool) {
	prev, seen := b.assigned[key]
	b.assigned[key] = value
	if seen {
		b.outcome.Stats.Overwrites++
	}
	return prev, seen
}

func (b *outcomeBuilder) build() *Outcome {
	st := &b.outcome.Stats
	st.FinishedAt = utc.Now()
	st.Duration = st.FinishedAt.Time.Sub(st.StartedAt.Time)
	return b.outcome
}

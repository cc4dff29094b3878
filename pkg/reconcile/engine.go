// Package reconcile runs records through an ordered resolver chain against a
// reference set and an exception overlay, collecting results, an unresolved
// report and diagnostics.
//
// Per-record problems never fail a run. They are recovered, logged and
// aggregated on the Outcome. Only cancellation of the context ends a run early.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/logging"
	"github.com/agentstation/georecon/pkg/match"
)

// Engine reconciles records for one mode. It keeps no state across runs and
// is safe for concurrent use.
type Engine struct {
	mode       Mode
	resolvers  []Resolver
	duplicates []match.Duplicate
	normalizer match.Normalizer
	workers    int
	logger     *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWorkers runs match attempts on n goroutines. Results are still
// committed in input order.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return errors.NewValidationError("workers", n, "must be at least 1")
		}
		e.workers = n
		return nil
	}
}

// WithLogger sets the logger. By default the logger comes from the run context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithNormalizer sets the normalizer used to build the exact-match index.
func WithNormalizer(n match.Normalizer) Option {
	return func(e *Engine) error {
		e.normalizer = n
		return nil
	}
}

// New builds the resolver chain for mode over reference. A nil overlay
// means no exceptions.
func New(mode Mode, reference *geo.ReferenceSet, overlay *match.Overlay, opts ...Option) (*Engine, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if reference == nil {
		return nil, errors.NewValidationError("reference", nil, "reference set is required")
	}

	e := &Engine{mode: mode, workers: constants.DefaultWorkers}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	resolvers, exact, err := chainFor(mode, reference.Entities(), overlay, e.normalizer)
	if err != nil {
		return nil, err
	}
	e.resolvers = resolvers
	e.duplicates = exact.Duplicates()
	return e, nil
}

// Mode returns the engine's mode.
func (e *Engine) Mode() Mode { return e.mode }

// Resolvers returns the names of the resolver chain in order.
func (e *Engine) Resolvers() []string {
	names := make([]string, len(e.resolvers))
	for i, r := range e.resolvers {
		names[i] = r.Name()
	}
	return names
}

// pending is a validated record with its chain outcome.
type pending struct {
	rec      Record
	attempt  Attempt
	resolver string
	matched  bool
	invalid  string
}

// Run reconciles records. The returned error is non-nil only when ctx is
// canceled before the run completes.
func (e *Engine) Run(ctx context.Context, records []Record) (*Outcome, error) {
	log := e.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}
	l := log.With().Str("mode", e.mode.String()).Logger()
	log = &l

	b := newOutcomeBuilder(logging.RunID(ctx), e.mode)
	for _, d := range e.duplicates {
		msg := fmt.Sprintf("reference key %q is shared by %q and %q; keeping %q",
			d.Key, d.Kept.Name, d.Ignored.Name, d.Kept.Name)
		log.Warn().Str("key", d.Key).Str("kept", d.Kept.Name).Str("ignored", d.Ignored.Name).Msg("Duplicate reference key")
		b.diagnose(Diagnostic{Code: CodeDuplicateKeyOverwrite, Severity: SeverityWarning, Message: msg, Label: d.Ignored.Name, Index: -1})
	}

	items := make([]pending, len(records))
	for i, rec := range records {
		items[i] = pending{rec: rec, invalid: e.validate(rec)}
	}

	if err := e.attemptAll(ctx, items); err != nil {
		return nil, err
	}

	for _, p := range items {
		e.commit(b, p, log)
	}

	outcome := b.build()
	log.Info().
		Int("records", outcome.Stats.Records).
		Int("exact", outcome.Stats.Exact).
		Int("overridden", outcome.Stats.Overridden).
		Int("fuzzy", outcome.Stats.Fuzzy).
		Int("unresolved", outcome.Stats.Unresolved).
		Int("skipped", outcome.Stats.Skipped).
		Dur("duration", outcome.Stats.Duration).
		Msg("Reconciliation complete")
	return outcome, nil
}

func (e *Engine) validate(rec Record) string {
	if strings.TrimSpace(rec.Key) == "" {
		if e.mode == ModeContinents {
			return "country_code"
		}
		return "label"
	}
	if e.mode == ModeContinents && strings.TrimSpace(rec.Name) == "" {
		return "country_name"
	}
	return ""
}

func (e *Engine) attemptAll(ctx context.Context, items []pending) error {
	if e.workers <= 1 {
		for i := range items {
			if err := ctx.Err(); err != nil {
				return canceled(err)
			}
			e.attempt(&items[i])
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.attempt(&items[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return canceled(err)
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	return nil
}

func (e *Engine) attempt(p *pending) {
	if p.invalid != "" {
		return
	}
	for _, r := range e.resolvers {
		if a, ok := r.Attempt(p.rec); ok {
			p.attempt, p.resolver, p.matched = a, r.Name(), true
			return
		}
	}
}

func (e *Engine) commit(b *outcomeBuilder, p pending, log *zerolog.Logger) {
	rec := p.rec
	if p.invalid != "" {
		err := errors.NewMalformedRecordError(rec.Index, p.invalid, "")
		log.Warn().Int("index", rec.Index).Str("missing", p.invalid).Msg("Skipping malformed record")
		b.skip(Diagnostic{Code: CodeMalformedRecord, Severity: SeverityError, Message: err.Error(), Label: rec.Key, Index: rec.Index})
		return
	}

	result := MatchResult{Record: rec, Kind: Unresolved}
	if p.matched {
		a := p.attempt
		result = MatchResult{Record: rec, Kind: a.Kind, Entity: a.Entity, Value: a.Value, Score: a.Score, Resolver: p.resolver}
	}

	switch {
	case result.Kind == Fuzzy:
		b.outcome.Report.Add(rec.Key, result.Entity.Name, result.Score)
		log.Info().Str("label", rec.Key).Str("candidate", result.Entity.Name).Int("score", result.Score).Msg("No exact match, routed for review")
		b.diagnose(Diagnostic{
			Code:     CodeUnresolvedFuzzyOnly,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%s: best candidate %s (%d)", rec.Key, result.Entity.Name, result.Score),
			Label:    rec.Key,
			Index:    rec.Index,
		})

	case result.Kind == Unresolved && e.mode == ModeContinents:
		log.Warn().Str("label", rec.Name).Str("code", rec.Key).Msg("No continent found")
		b.diagnose(Diagnostic{
			Code:     CodeNoContinentFound,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("No continent found for %s (%s)", rec.Name, rec.Key),
			Label:    rec.Name,
			Index:    rec.Index,
		})

	case result.Kind == Unresolved:
		b.outcome.Report.Add(rec.Key, "", 0)
		log.Warn().Str("label", rec.Key).Msg("No match and no candidate, routed for review")

	case result.Value == "":
		log.Warn().Str("label", rec.Key).Str("entity", result.Entity.Name).Str("missing", p.attempt.Missing).Msg("Matched entity has no value")
		b.diagnose(Diagnostic{
			Code:     CodeNoCodeFound,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s not found for %s", p.attempt.Missing, result.Entity.Name),
			Label:    rec.Key,
			Index:    rec.Index,
		})

	default:
		if prev, seen := b.assign(rec.Key, result.Value); seen {
			log.Warn().Str("key", rec.Key).Str("previous", prev).Str("value", result.Value).Msg("Overwriting previous assignment")
			b.diagnose(Diagnostic{
				Code:     CodeDuplicateKeyOverwrite,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Overwriting %s with %s", rec.Key, result.Value),
				Label:    rec.Key,
				Index:    rec.Index,
			})
		}
		log.Debug().Str("key", rec.Key).Str("value", result.Value).Str("kind", result.Kind.String()).Msg("Resolved")
	}

	b.add(result)
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
}

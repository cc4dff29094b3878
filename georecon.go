// Package georecon reconciles country and territory labels from independently
// sourced geographic datasets against a canonical reference.
//
// Two modes are offered:
//
//   - continent resolution attaches a continent to each border record by exact
//     alpha-2 code match, falling back to a curated exception overlay. It never
//     guesses.
//   - map-label resolution relabels map features with their alpha-2 code by
//     exact name match or overlay, and routes everything else to a review
//     report together with the closest fuzzy candidate.
//
// Example:
//
//	client, err := georecon.New(
//	    georecon.WithContinentReference(continents),
//	    georecon.WithCodeReference(codes),
//	)
//	outcome, err := client.RelabelFeatures(ctx, features)
//	err = report.Writer{Path: "failed_matches.json"}.Write(outcome.Report)
package georecon

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/logging"
	"github.com/agentstation/georecon/pkg/match"
	"github.com/agentstation/georecon/pkg/reconcile"
	"github.com/agentstation/georecon/pkg/sources"
)

// Client runs reconciliations. It is safe for concurrent use.
type Client struct {
	config  *config
	engines map[reconcile.Mode]*reconcile.Engine
	hooks   *hooks
}

// New creates a client. Each mode is available once its reference is set.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if cfg.overlay == nil {
		cfg.overlay = match.DefaultOverlay(cfg.normalizer)
	}

	c := &Client{
		config:  cfg,
		engines: make(map[reconcile.Mode]*reconcile.Engine),
		hooks:   newHooks(),
	}

	engineOpts := []reconcile.Option{
		reconcile.WithWorkers(cfg.workers),
		reconcile.WithNormalizer(cfg.normalizer),
	}
	if cfg.logger != nil {
		engineOpts = append(engineOpts, reconcile.WithLogger(cfg.logger))
	}

	for mode, ref := range map[reconcile.Mode]*geo.ReferenceSet{
		reconcile.ModeContinents: cfg.continents,
		reconcile.ModeLabels:     cfg.codes,
	} {
		if ref == nil {
			continue
		}
		engine, err := reconcile.New(mode, ref, cfg.overlay, engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("building %s engine: %w", mode, err)
		}
		c.engines[mode] = engine
	}

	return c, nil
}

// Overlay returns the exception overlay in use.
func (c *Client) Overlay() *match.Overlay {
	return c.config.overlay
}

// ResolveContinents sets Continent on every border whose code matches the
// reference exactly or whose name is in the overlay. Other borders are left
// untouched and reported as no_continent_found diagnostics.
func (c *Client) ResolveContinents(ctx context.Context, borders []sources.Border) (*reconcile.Outcome, error) {
	records := make([]reconcile.Record, len(borders))
	for i, b := range borders {
		records[i] = reconcile.Record{Index: i, Key: b.CountryCode, Name: b.CountryName}
	}

	outcome, err := c.run(ctx, reconcile.ModeContinents, records)
	if err != nil {
		return nil, err
	}
	for i, v := range outcome.Values() {
		borders[i].Continent = v
	}
	return outcome, nil
}

// RelabelFeatures sets ID to the resolved code on every feature matched
// exactly or through the overlay. Other features keep their ID and appear in
// the outcome's report with their best fuzzy candidate.
func (c *Client) RelabelFeatures(ctx context.Context, features []sources.Feature) (*reconcile.Outcome, error) {
	records := make([]reconcile.Record, len(features))
	for i, f := range features {
		records[i] = reconcile.Record{Index: i, Key: f.Label, Name: f.Label}
	}

	outcome, err := c.run(ctx, reconcile.ModeLabels, records)
	if err != nil {
		return nil, err
	}
	for i, v := range outcome.Values() {
		features[i].ID = v
	}
	return outcome, nil
}

func (c *Client) run(ctx context.Context, mode reconcile.Mode, records []reconcile.Record) (*reconcile.Outcome, error) {
	engine, ok := c.engines[mode]
	if !ok {
		return nil, errors.NewValidationError("reference", mode.String(), fmt.Sprintf("no reference configured for %s mode", mode))
	}

	// A logger already on the context carries caller fields; keep it.
	if c.config.logger != nil && !logging.HasLogger(ctx) {
		ctx = logging.WithLogger(ctx, c.config.logger)
	}
	if logging.RunID(ctx) == "" {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}

	outcome, err := engine.Run(ctx, records)
	if err != nil {
		return nil, err
	}
	c.hooks.trigger(outcome)
	return outcome, nil
}

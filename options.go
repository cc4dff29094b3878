package georecon

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/match"
)

// Option is a function that configures a Client.
type Option func(*config) error

// config holds the client configuration.
type config struct {
	continents *geo.ReferenceSet
	codes      *geo.ReferenceSet
	overlay    *match.Overlay
	normalizer match.Normalizer
	workers    int
	logger     *zerolog.Logger
}

func defaultConfig() *config {
	return &config{workers: constants.DefaultWorkers}
}

// WithReference uses set as the reference for both modes.
func WithReference(set *geo.ReferenceSet) Option {
	return func(c *config) error {
		if set == nil {
			return errors.NewValidationError("reference", nil, "reference set is nil")
		}
		c.continents = set
		c.codes = set
		return nil
	}
}

// WithContinentReference sets the reference for continent resolution,
// typically loaded from continents.json.
func WithContinentReference(set *geo.ReferenceSet) Option {
	return func(c *config) error {
		if set == nil {
			return errors.NewValidationError("continents", nil, "reference set is nil")
		}
		c.continents = set
		return nil
	}
}

// WithCodeReference sets the name to code reference for map-label resolution,
// typically loaded from the UNSD table.
func WithCodeReference(set *geo.ReferenceSet) Option {
	return func(c *config) error {
		if set == nil {
			return errors.NewValidationError("codes", nil, "reference set is nil")
		}
		c.codes = set
		return nil
	}
}

// WithOverlay sets the exception overlay. Without it the curated continent
// exceptions are used.
func WithOverlay(overlay *match.Overlay) Option {
	return func(c *config) error {
		c.overlay = overlay
		return nil
	}
}

// WithNormalizer sets how labels are normalized for exact matching.
func WithNormalizer(n match.Normalizer) Option {
	return func(c *config) error {
		c.normalizer = n
		return nil
	}
}

// WithWorkers sets how many goroutines run match attempts.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("workers", n, "must be at least 1")
		}
		c.workers = n
		return nil
	}
}

// WithLogger sets the logger for every run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

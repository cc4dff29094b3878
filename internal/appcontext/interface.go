// Package appcontext provides the shared application context interface
// used by all commands, so command packages depend on an interface rather
// than on the concrete CLI App.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/pkg/match"
)

// Interface defines what commands need from the application.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured summary format (table, json, yaml, wide).
	OutputFormat() string

	// Settings returns the resolved input and output locations.
	Settings() Settings

	// Overlay returns the configured overlay layered over the built-in
	// continent exceptions.
	Overlay() (*match.Overlay, error)

	// Client creates a reconciliation client carrying the configured overlay,
	// normalizer, worker count and logger, plus any extra options.
	Client(opts ...georecon.Option) (*georecon.Client, error)

	// Version returns the application version string.
	Version() string
}

// Settings are the file locations and matching knobs resolved from flags,
// environment and config file.
type Settings struct {
	ContinentsPath string
	CodesPath      string
	OverlayPath    string
	FoldAccents    bool
	Workers        int
	ReportPath     string
	ReportFormat   string
}

// Normalizer returns the normalizer the settings call for.
func (s Settings) Normalizer() match.Normalizer {
	return match.Normalizer{FoldAccents: s.FoldAccents}
}

// Package app provides the application context and dependency management
// for the georecon CLI: configuration, logging, and construction of
// reconciliation clients for commands.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/internal/appcontext"
	"github.com/agentstation/georecon/pkg/match"
)

// App represents the georecon application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Overlay is loaded once per process.
	mu      sync.Mutex
	overlay *match.Overlay
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured summary format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns the resolved input and output locations.
func (a *App) Settings() appcontext.Settings {
	c := a.config
	return appcontext.Settings{
		ContinentsPath: c.ContinentsPath,
		CodesPath:      c.CodesPath,
		OverlayPath:    c.OverlayPath,
		FoldAccents:    c.FoldAccents,
		Workers:        c.Workers,
		ReportPath:     c.ReportPath,
		ReportFormat:   c.ReportFormat,
	}
}

// Overlay returns the configured overlay, loading it on first use.
func (a *App) Overlay() (*match.Overlay, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.overlay != nil {
		return a.overlay, nil
	}
	settings := a.Settings()
	overlay, err := match.LoadOverlay(settings.OverlayPath, settings.Normalizer())
	if err != nil {
		return nil, err
	}
	if settings.OverlayPath != "" {
		a.logger.Debug().
			Str("path", settings.OverlayPath).
			Int("continents", overlay.Continents().Len()).
			Int("labels", overlay.Labels().Len()).
			Msg("loaded overlay")
	}
	a.overlay = overlay
	return overlay, nil
}

// Client creates a reconciliation client from the configuration. Extra
// options, typically the reference sets, are applied last.
func (a *App) Client(opts ...georecon.Option) (*georecon.Client, error) {
	overlay, err := a.Overlay()
	if err != nil {
		return nil, err
	}
	settings := a.Settings()
	base := []georecon.Option{
		georecon.WithOverlay(overlay),
		georecon.WithNormalizer(settings.Normalizer()),
		georecon.WithWorkers(settings.Workers),
		georecon.WithLogger(a.logger),
	}
	return georecon.New(append(base, opts...)...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

var _ appcontext.Interface = (*App)(nil)

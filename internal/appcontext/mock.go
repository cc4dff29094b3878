package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/pkg/match"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding field.
// If a function field is nil, the method derives a default from MockSettings.
type Mock struct {
	MockSettings Settings
	LoggerFunc   func() *zerolog.Logger
	OverlayFunc  func() (*match.Overlay, error)
	ClientFunc   func(opts ...georecon.Option) (*georecon.Client, error)
	Format       string
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format, defaulting to json.
func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "json"
	}
	return m.Format
}

// Settings returns MockSettings.
func (m *Mock) Settings() Settings {
	return m.MockSettings
}

// Overlay returns the mock overlay or loads MockSettings.OverlayPath.
func (m *Mock) Overlay() (*match.Overlay, error) {
	if m.OverlayFunc != nil {
		return m.OverlayFunc()
	}
	return match.LoadOverlay(m.MockSettings.OverlayPath, m.MockSettings.Normalizer())
}

// Client returns the mock client or builds one from MockSettings.
func (m *Mock) Client(opts ...georecon.Option) (*georecon.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	overlay, err := m.Overlay()
	if err != nil {
		return nil, err
	}
	base := []georecon.Option{
		georecon.WithOverlay(overlay),
		georecon.WithNormalizer(m.MockSettings.Normalizer()),
		georecon.WithLogger(m.Logger()),
	}
	return georecon.New(append(base, opts...)...)
}

// Version returns a fixed test version.
func (m *Mock) Version() string {
	return "test"
}

var _ Interface = (*Mock)(nil)

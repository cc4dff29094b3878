package georecon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/logging"
	"github.com/agentstation/georecon/pkg/match"
	"github.com/agentstation/georecon/pkg/reconcile"
	"github.com/agentstation/georecon/pkg/report"
	"github.com/agentstation/georecon/pkg/sources"
)

func newClient(t *testing.T, opts ...georecon.Option) *georecon.Client {
	t.Helper()
	continents := geo.NewReferenceSet([]geo.ReferenceEntity{
		{Name: "France", ISOAlpha2: "FR", ISOAlpha3: "FRA", Continent: geo.Europe},
		{Name: "Japan", ISOAlpha2: "JP", ISOAlpha3: "JPN", Continent: geo.Asia},
	})
	codes := geo.NewReferenceSet([]geo.ReferenceEntity{
		{Name: "Republic of Korea", ISOAlpha2: "KR"},
		{Name: "France", ISOAlpha2: "FR"},
		{Name: "Japan", ISOAlpha2: "JP"},
	})
	opts = append([]georecon.Option{
		georecon.WithContinentReference(continents),
		georecon.WithCodeReference(codes),
		georecon.WithLogger(logging.NewNopLogger()),
	}, opts...)
	c, err := georecon.New(opts...)
	require.NoError(t, err)
	return c
}

func TestResolveContinents(t *testing.T) {
	c := newClient(t)
	borders := []sources.Border{
		{CountryCode: "FR", CountryName: "France"},
		{CountryCode: "AX", CountryName: "Aland Islands"},
		{CountryCode: "XK", CountryName: "Kosovo"},
	}

	outcome, err := c.ResolveContinents(context.Background(), borders)
	require.NoError(t, err)

	assert.Equal(t, "Europe", borders[0].Continent)
	assert.Equal(t, "Europe", borders[1].Continent, "Aland Islands comes from the curated exceptions")
	assert.Empty(t, borders[2].Continent)
	assert.True(t, outcome.Report.IsEmpty())
	assert.Len(t, outcome.DiagnosticsByCode(reconcile.CodeNoContinentFound), 1)
	assert.NotEmpty(t, outcome.RunID)
}

func TestRelabelFeatures(t *testing.T) {
	c := newClient(t)
	features := []sources.Feature{
		{Index: 0, Label: "France", ID: "France"},
		{Index: 1, Label: "South-Korea", ID: "South-Korea"},
	}

	outcome, err := c.RelabelFeatures(context.Background(), features)
	require.NoError(t, err)

	assert.Equal(t, "FR", features[0].ID)
	assert.Equal(t, "South-Korea", features[1].ID)
	require.Equal(t, 1, outcome.Report.Len())
	entry := outcome.Report.Entries[0]
	assert.Equal(t, "South-Korea", entry.Label)
	assert.Equal(t, "Republic of Korea", entry.Candidate)
	assert.Greater(t, entry.Score, 0)
	assert.Less(t, entry.Score, 100)
	assert.Empty(t, entry.Target)
}

func TestReviewedReportFeedsOverlay(t *testing.T) {
	reviewed := &report.Report{Entries: []report.Entry{{Label: "South-Korea", Candidate: "Republic of Korea", Score: 35, Target: "KR"}}}
	overlay, err := match.NewOverlay(match.Merge(match.DefaultOverlayFile(), match.OverlayFile{Labels: reviewed.Reviewed()}), match.Normalizer{})
	require.NoError(t, err)

	c := newClient(t, georecon.WithOverlay(overlay))
	features := []sources.Feature{{Index: 0, Label: "South-Korea", ID: "South-Korea"}}

	outcome, err := c.RelabelFeatures(context.Background(), features)
	require.NoError(t, err)
	assert.Equal(t, "KR", features[0].ID)
	assert.True(t, outcome.Report.IsEmpty())
}

func TestHooks(t *testing.T) {
	c := newClient(t, georecon.WithWorkers(2))

	var resolved, unresolved []string
	var codes []reconcile.Code
	c.OnResolved(func(r reconcile.MatchResult) { resolved = append(resolved, r.Key) })
	c.OnUnresolved(func(r reconcile.MatchResult) { unresolved = append(unresolved, r.Key) })
	c.OnDiagnostic(func(d reconcile.Diagnostic) { codes = append(codes, d.Code) })

	_, err := c.ResolveContinents(context.Background(), []sources.Border{
		{CountryCode: "JP", CountryName: "Japan"},
		{CountryCode: "XK", CountryName: "Kosovo"},
		{CountryCode: "", CountryName: "Nowhere"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"JP"}, resolved)
	assert.Equal(t, []string{"XK"}, unresolved)
	assert.Equal(t, []reconcile.Code{reconcile.CodeNoContinentFound, reconcile.CodeMalformedRecord}, codes)
}

func TestModeWithoutReference(t *testing.T) {
	c, err := georecon.New(georecon.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	_, err = c.RelabelFeatures(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestNewOptionErrors(t *testing.T) {
	_, err := georecon.New(georecon.WithWorkers(0))
	assert.True(t, errors.IsValidationError(err))

	_, err = georecon.New(georecon.WithReference(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestRunIDFromContextIsKept(t *testing.T) {
	c := newClient(t)
	ctx := logging.WithRunID(context.Background(), "fixed-run")

	outcome, err := c.ResolveContinents(ctx, []sources.Border{{CountryCode: "FR", CountryName: "France"}})
	require.NoError(t, err)
	assert.Equal(t, "fixed-run", outcome.RunID)
}

package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/report"
)

func sampleReport() *report.Report {
	r := report.New()
	r.Add("South-Korea", "Republic of Korea", 35)
	r.Add("Bassas da India", "India", 47)
	return r
}

func TestWriteEmptyReportCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_matches.json")

	require.NoError(t, report.Writer{Path: path}.Write(report.New()))
	require.NoError(t, report.Writer{Path: path}.Write(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSONLegacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_matches.json")
	require.NoError(t, report.Writer{Path: path, Format: report.FormatJSON}.Write(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"country_name_svg": "South-Korea"`)
	assert.Contains(t, out, `"fuzzy_match": "Republic of Korea"`)
	assert.Contains(t, out, `"ratio": 35`)
	assert.Contains(t, out, `"id": ""`)
	assert.Less(t, strings.Index(out, "South-Korea"), strings.Index(out, "Bassas da India"), "engine order kept")
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"report.json", "report.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			r := sampleReport()
			require.NoError(t, report.Writer{Path: path}.Write(r))

			got, err := report.Load(path)
			require.NoError(t, err)
			assert.Equal(t, r.Entries, got.Entries)
		})
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, report.Writer{Path: path}.Write(sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# Unresolved matches")
	assert.Contains(t, out, "South-Korea")
	assert.Contains(t, out, "Republic of Korea")

	_, err = report.Load(path)
	assert.True(t, errors.IsValidationError(err))
}

func TestReviewed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_matches.json")
	content := `[
  {"country_name_svg": "South-Korea", "fuzzy_match": "Republic of Korea", "ratio": 35, "id": "KR"},
  {"country_name_svg": "Bassas da India", "fuzzy_match": "India", "ratio": 47, "id": "  "}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := report.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, map[string]string{"South-Korea": "KR"}, r.Reviewed())
}

func TestLoadErrors(t *testing.T) {
	_, err := report.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.IsSourceUnavailable(err))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = report.Load(path)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    report.Format
		wantErr bool
	}{
		{"", report.FormatJSON, false},
		{"YAML", report.FormatYAML, false},
		{"md", report.FormatMarkdown, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package sources_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/georecon/internal/sources"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	pubsources "github.com/agentstation/georecon/pkg/sources"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBordersRoundTrip(t *testing.T) {
	path := writeTestFile(t, "country-borders.json", `[
  {"country_code": "FR", "country_name": "France", "country_border_code": "BE"},
  {"country_code": "AX", "country_name": "Aland Islands", "country_border_code": ""}
]`)

	borders, err := sources.ReadBorders(path)
	require.NoError(t, err)
	require.Len(t, borders, 2)
	assert.Equal(t, "AX", borders[1].CountryCode)

	borders[0].Continent = "Europe"
	require.NoError(t, sources.WriteBorders(path, borders))

	again, err := sources.ReadBorders(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe", again[0].Continent)
	assert.Empty(t, again[1].Continent)
	assert.Equal(t, []string{"country_border_code"}, again[0].Extra())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {")
}

func TestReadBordersErrors(t *testing.T) {
	_, err := sources.ReadBorders(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.IsSourceUnavailable(err))

	_, err = sources.ReadBorders(writeTestFile(t, "bad.json", `{"not": "an array"}`))
	assert.True(t, errors.IsSourceUnavailable(err))
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestReadCodes(t *testing.T) {
	content := "\ufeffGlobal Code;Country or Area;M49 Code;ISO-alpha2 Code;ISO-alpha3 Code\n" +
		"001;Republic of Korea;410;KR;KOR\n" +
		"001;\"Côte d’Ivoire\";384;CI;CIV\n" +
		"001;Namibia;516;NA;NAM\n" +
		"001;Sark;680;;\n"
	path := writeTestFile(t, "UNSD.csv", content)

	table, err := sources.ReadCodes(path)
	require.NoError(t, err)
	assert.Equal(t, "UNSD.csv", table.Name)
	assert.Equal(t, "Global Code", table.Header[0])
	assert.Len(t, table.Rows, 4)

	set, err := sources.LoadCodeReference(path)
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())

	na, ok := set.FindByAlpha2("NA")
	require.True(t, ok)
	assert.Equal(t, "Namibia", na.Name)
	assert.Equal(t, geo.NotApplicable, set.Entities()[3].ISOAlpha2)
}

func TestParseCodesEmpty(t *testing.T) {
	_, err := sources.ParseCodes(strings.NewReader(""))
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadCodeReferenceMissingColumn(t *testing.T) {
	path := writeTestFile(t, "codes.csv", "Name;Code\nFrance;FR\n")
	_, err := sources.LoadCodeReference(path)
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.True(t, errors.IsValidationError(err))
}

func TestContinentsRoundTripKeepsOrder(t *testing.T) {
	set := geo.NewReferenceSet([]geo.ReferenceEntity{
		{Name: "Namibia", ISOAlpha2: "NA", ISOAlpha3: "NAM", CCTLD: ".na", Continent: geo.Africa},
		{Name: "France", ISOAlpha2: "FR", ISOAlpha3: "FRA", CCTLD: ".fr", Continent: geo.Europe},
		{Name: "Aland Islands", ISOAlpha2: "AX", ISOAlpha3: "ALA", CCTLD: ".ax", Continent: geo.Europe},
	})
	path := filepath.Join(t.TempDir(), "out", "continents.json")
	require.NoError(t, sources.WriteContinents(path, set))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Less(t, strings.Index(out, `"Africa"`), strings.Index(out, `"Europe"`))
	assert.Contains(t, out, `"ISO-3166-2": "NA"`)
	assert.NotContains(t, out, `"continent"`)

	got, err := sources.ReadContinents(path)
	require.NoError(t, err)
	assert.Equal(t, set.Entities(), got.Entities())
}

func TestParseContinentsErrors(t *testing.T) {
	_, err := sources.ParseContinents([]byte(`[]`))
	assert.Error(t, err)

	_, err = sources.ParseContinents([]byte(`{"Atlantis": []}`))
	assert.True(t, errors.IsValidationError(err))
}

func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	for _, name := range order {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "continents.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	header := []any{"Country", "ISO-3166-2", "ISO-3166-3", "ccTLD"}
	path := writeWorkbook(t, map[string][][]any{
		"Europe": {
			{"Countries of Europe"},
			header,
			{"France", "FR", "FRA", ".fr"},
			{"Aland Islands", "AX", "ALA"},
			{},
		},
		"Africa": {
			{"Countries of Africa"},
			header,
			{"Namibia", "NA", "NAM", ".na"},
		},
		"Notes": {
			{"Notes"},
			{"Anything"},
		},
	}, []string{"Europe", "Africa", "Notes"})

	tables, err := sources.ReadWorkbook(path, nil)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, "Europe", tables[0].Name)
	assert.Equal(t, []string{"Country", "ISO-3166-2", "ISO-3166-3", "ccTLD"}, tables[0].Header)
	require.Len(t, tables[0].Rows, 2)
	assert.Len(t, tables[0].Rows[1], 4, "short rows are padded")

	set, err := geo.FromTables(tables)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.Len(t, set.Issues(), 1, "notes sheet is skipped")
	assert.Equal(t, geo.NotApplicable, set.Entities()[1].CCTLD)

	only, err := sources.ReadWorkbook(path, func(sheet string) bool { return sheet == "Africa" })
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Africa", only[0].Name)
}

func TestReadWorkbookMissing(t *testing.T) {
	_, err := sources.ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), nil)
	assert.True(t, errors.IsSourceUnavailable(err))
}

const testSVG = `<?xml version="1.0" encoding="utf-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <g id="countries">
    <path id="France" d="M1 1L2 2Z"/>
    <path id="South-Korea" d="M3 3L4 4Z"/>
    <circle id="marker" r="2"/>
  </g>
</svg>
`

func TestMapRelabel(t *testing.T) {
	m, err := sources.ParseMap([]byte(testSVG))
	require.NoError(t, err)

	features := m.Features()
	require.Len(t, features, 2)
	assert.Equal(t, pubsources.Feature{Index: 0, Label: "France", ID: "France"}, features[0])
	assert.Equal(t, "South-Korea", features[1].Label)

	features[0].ID = "FR"
	assert.Equal(t, 1, m.Apply(features))

	path := filepath.Join(t.TempDir(), "modified-world-map.svg")
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, out, "viewBox")

	again, err := sources.ReadMap(path)
	require.NoError(t, err)
	relabeled := again.Features()
	require.Len(t, relabeled, 2)
	assert.Equal(t, "FR", relabeled[0].Label)
	assert.Equal(t, "South-Korea", relabeled[1].Label)
}

const ammapSVG = `<?xml version="1.0" encoding="utf-8"?>
<!-- world map -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:amcharts="http://amcharts.com/ammap" version="1.1">
	<defs>
		<amcharts:ammap projection="mercator" leftLongitude="-169.6" topLatitude="83.68" rightLongitude="190.25" bottomLatitude="-55.55"/>
	</defs>
	<g>
		<path id="Aland Islands" title="Aland Islands" class="land" d="M1 1Z"/>
		<path d='M2 2Z' id='Cote d&apos;Ivoire'/>
		<path data-id="x" id="Namibia" d="M3 3Z" />
	</g>
</svg>
`

func TestMapRoundTripKeepsDocument(t *testing.T) {
	m, err := sources.ParseMap([]byte(ammapSVG))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, ammapSVG, buf.String())

	features := m.Features()
	require.Len(t, features, 3)
	assert.Equal(t, "Cote d'Ivoire", features[1].Label)
	assert.Equal(t, "Namibia", features[2].Label)

	features[0].ID = "AX"
	features[1].ID = "CI"
	features[2].ID = "N&A"
	assert.Equal(t, 3, m.Apply(features))

	buf.Reset()
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `leftLongitude="-169.6" topLatitude="83.68"`)
	assert.Contains(t, out, `<path id="AX" title="Aland Islands" class="land" d="M1 1Z"/>`)
	assert.Contains(t, out, `<path d='M2 2Z' id='CI'/>`)
	assert.Contains(t, out, `<path data-id="x" id="N&amp;A" d="M3 3Z" />`)
	assert.Contains(t, out, `bottomLatitude="-55.55"/>`)
	assert.NotContains(t, out, "</amcharts:ammap>")
	assert.Contains(t, out, "<!-- world map -->")

	again, err := sources.ParseMap(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "N&A", again.Features()[2].Label)
}

func TestMapErrors(t *testing.T) {
	_, err := sources.ParseMap([]byte("<html></html>"))
	assert.True(t, errors.IsValidationError(err))

	_, err = sources.ReadMap(filepath.Join(t.TempDir(), "missing.svg"))
	assert.True(t, errors.IsSourceUnavailable(err))

	m, err := sources.ParseMap([]byte(testSVG))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `id="France"`)
}

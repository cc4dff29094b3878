package sources

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/georecon/pkg/constants"
	georeconerrors "github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/sources"
)

const utf8BOM = "\ufeff"

// ReadCodes reads the semicolon-delimited UNSD code table.
func ReadCodes(path string) (geo.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return geo.Table{}, georeconerrors.WrapSource(sources.Codes.String(), path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	t, err := ParseCodes(f)
	if err != nil {
		return geo.Table{}, georeconerrors.WrapSource(sources.Codes.String(), path, georeconerrors.WrapParse("csv", path, err))
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ParseCodes reads a semicolon-delimited table whose first row is the header.
func ParseCodes(r io.Reader) (geo.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = constants.CodesDelimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return geo.Table{}, georeconerrors.NewValidationError("header", nil, "empty code table")
		}
		return geo.Table{}, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	t := geo.Table{Header: header}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return geo.Table{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadCodeReference reads the code table and builds the name to code reference.
func LoadCodeReference(path string) (*geo.ReferenceSet, error) {
	t, err := ReadCodes(path)
	if err != nil {
		return nil, err
	}
	set, err := geo.FromCodeTable(t, constants.CodesNameColumn, constants.CodesAlpha2Column)
	if err != nil {
		return nil, georeconerrors.WrapSource(sources.Codes.String(), path, err)
	}
	return set, nil
}

package geo

import (
	"fmt"
	"strings"

	"github.com/agentstation/georecon/pkg/errors"
)

// Reference table column headers.
const (
	ColumnCountry = "Country"
	ColumnAlpha2  = "ISO-3166-2"
	ColumnAlpha3  = "ISO-3166-3"
	ColumnCCTLD   = "ccTLD"
)

// Table is one tabular sheet: a name, a header row and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// column returns the index of the named header cell, or -1.
func (t Table) column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// FromTables converts continent sheets into a reference set. The sheet name is
// the continent. A sheet that does not carry exactly the four reference
// columns is skipped, as is a row without a country name; both are recorded
// as issues on the returned set. It fails only when no sheet is usable.
func FromTables(tables []Table) (*ReferenceSet, error) {
	var (
		entities []ReferenceEntity
		issues   []error
		usable   int
	)

	for _, t := range tables {
		continent, err := ParseContinent(t.Name)
		if err != nil {
			issues = append(issues, fmt.Errorf("sheet %q: %w", t.Name, err))
			continue
		}

		cols := []int{t.column(ColumnCountry), t.column(ColumnAlpha2), t.column(ColumnAlpha3), t.column(ColumnCCTLD)}
		if len(t.Header) != len(cols) || contains(cols, -1) {
			issues = append(issues, errors.NewValidationError("sheet", t.Name,
				fmt.Sprintf("sheet %q has %d columns, want %s, %s, %s, %s",
					t.Name, len(t.Header), ColumnCountry, ColumnAlpha2, ColumnAlpha3, ColumnCCTLD)))
			continue
		}
		usable++

		for i, row := range t.Rows {
			name := cell(row, cols[0])
			if name == "" {
				issues = append(issues, errors.NewMalformedRecordError(i, "name", "sheet "+t.Name))
				continue
			}
			entities = append(entities, ReferenceEntity{
				Name:      name,
				ISOAlpha2: orNotApplicable(cell(row, cols[1])),
				ISOAlpha3: orNotApplicable(cell(row, cols[2])),
				CCTLD:     orNotApplicable(cell(row, cols[3])),
				Continent: continent,
			})
		}
	}

	if usable == 0 && len(tables) > 0 {
		return nil, errors.NewValidationError("tables", len(tables), "no usable reference sheet")
	}

	s := NewReferenceSet(entities)
	s.issues = issues
	return s, nil
}

// FromCodeTable builds a name to code reference set from a flat table, such as
// the UNSD country list. The continent is left unassigned. A missing column is
// an error; rows without a name are skipped and recorded as issues.
func FromCodeTable(t Table, nameColumn, codeColumn string) (*ReferenceSet, error) {
	nameIdx, codeIdx := t.column(nameColumn), t.column(codeColumn)
	if nameIdx < 0 {
		return nil, errors.NewValidationError("column", nameColumn, "name column not found in "+t.Name)
	}
	if codeIdx < 0 {
		return nil, errors.NewValidationError("column", codeColumn, "code column not found in "+t.Name)
	}

	var (
		entities []ReferenceEntity
		issues   []error
	)
	for i, row := range t.Rows {
		name := cell(row, nameIdx)
		if name == "" {
			issues = append(issues, errors.NewMalformedRecordError(i, "name", t.Name))
			continue
		}
		entities = append(entities, ReferenceEntity{
			Name:      name,
			ISOAlpha2: orNotApplicable(cell(row, codeIdx)),
			ISOAlpha3: NotApplicable,
			CCTLD:     NotApplicable,
		})
	}

	s := NewReferenceSet(entities)
	s.issues = issues
	return s, nil
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

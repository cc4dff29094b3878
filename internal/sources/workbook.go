package sources

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/errors"
	"github.com/agentstation/georecon/pkg/geo"
	"github.com/agentstation/georecon/pkg/sources"
)

// ReadWorkbook reads every sheet of a continents workbook accepted by
// include (nil accepts all). The row at constants.WorkbookHeaderRow holds the
// column names; rows above it are titles. Short rows are padded to the header
// width.
func ReadWorkbook(path string, include func(sheet string) bool) ([]geo.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapSource(sources.Workbook.String(), path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	var tables []geo.Table
	for _, sheet := range f.GetSheetList() {
		if include != nil && !include(sheet) {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.WrapSource(sources.Workbook.String(), path, errors.WrapParse("xlsx", path, err))
		}
		tables = append(tables, sheetTable(sheet, rows))
	}
	return tables, nil
}

func sheetTable(sheet string, rows [][]string) geo.Table {
	t := geo.Table{Name: sheet}
	if len(rows) <= constants.WorkbookHeaderRow {
		return t
	}
	t.Header = trimTrailingBlank(rows[constants.WorkbookHeaderRow])
	for _, row := range rows[constants.WorkbookHeaderRow+1:] {
		if isBlank(row) {
			continue
		}
		padded := make([]string, max(len(t.Header), len(row)))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t
}

func trimTrailingBlank(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

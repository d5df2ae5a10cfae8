package export

import (
	"encoding/csv"
	"io"
	"sort"
)

// Import file column template. Keep header order EXACT; columns outside this
// list are appended alphabetically at the end.
var importHeader = []string{
	ColHandle,
	ColTitle,
	ColBody,
	ColTags,
	ColSKU,
	ColBarcode,
	ColPrice,
	ColFulfillment,
	ColImagePos,
	ColImageSrc,
	ColImageAlt,
	ColAuthor,
	ColLanguage,
	ColBinding,
	ColPubDate,
}

// ImportColumns returns the column order for the given rows: the fixed
// template followed by any extra columns, sorted.
func ImportColumns(rows []Row) []string {
	known := make(map[string]bool, len(importHeader))
	for _, col := range importHeader {
		known[col] = true
	}

	extraSet := map[string]bool{}
	for _, row := range rows {
		for col := range row {
			if !known[col] && !extraSet[col] {
				extraSet[col] = true
			}
		}
	}

	extras := make([]string, 0, len(extraSet))
	for col := range extraSet {
		extras = append(extras, col)
	}
	sort.Strings(extras)

	columns := make([]string, 0, len(importHeader)+len(extras))
	columns = append(columns, importHeader...)
	columns = append(columns, extras...)
	return columns
}

// WriteImportCSV writes the correction-import file. Cells without a value for
// a column are left empty.
func WriteImportCSV(w io.Writer, rows []Row) error {
	columns := ImportColumns(rows)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Package ingest normalizes uploaded tabular files (CSV or Excel) into
// expense records ready to be appended to a session's collection.
//
// The import policy is best effort, never crash: unsupported formats, broken
// files and unparseable rows all degrade to fewer rows or an empty result.
// Callers can still tell "nothing imported" from "some rows dropped" through
// the returned Result.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"financas/internal/core"

	"github.com/xuri/excelize/v2"
)

// Result reports what a normalization run produced. Dropped counts data rows
// that were discarded for a missing name, a missing cell or an amount that
// failed numeric coercion.
type Result struct {
	Records []core.Expense
	Dropped int
}

// Header aliases, exact match. Sources label the name column "Descrição" and
// the category column "Tipo"; English exports use "Description" and "Type".
var (
	nameAliases     = []string{"Descrição", "Description", "Nome", "Name"}
	amountAliases   = []string{"Valor", "Value", "Amount"}
	categoryAliases = []string{"Tipo", "Type", "Categoria", "Category"}
)

// Normalize reads an uploaded file and returns its rows projected onto the
// three canonical fields (name, amount, category). Dispatch is by file
// extension; anything other than .csv/.xlsx/.xls yields an empty Result.
// Normalize is pure: identical input bytes always yield an identical Result.
func Normalize(filename string, r io.Reader) Result {
	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows = readCSV(r)
	case ".xlsx", ".xls":
		rows = readWorkbook(r)
	default:
		return Result{}
	}
	return project(rows)
}

// readCSV parses comma-separated data with a header row. Ragged rows are
// tolerated here and handled per-row during projection.
func readCSV(r io.Reader) [][]string {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		// Spreadsheet CSV exports often carry a UTF-8 BOM
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows
}

// readWorkbook parses the first sheet of an Excel workbook. Legacy .xls
// binaries are not OOXML and fail to open, which degrades to an empty result
// as the error policy requires for unreadable input.
func readWorkbook(r io.Reader) [][]string {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil
	}
	return rows
}

// project applies alias renaming, validates column presence, synthesizes the
// default category and coerces amounts, preserving original row order.
func project(rows [][]string) Result {
	if len(rows) == 0 {
		return Result{}
	}

	header := rows[0]
	nameIdx := findColumn(header, nameAliases)
	amountIdx := findColumn(header, amountAliases)
	catIdx := findColumn(header, categoryAliases)
	if nameIdx < 0 || amountIdx < 0 {
		return Result{}
	}

	var res Result
	for _, row := range rows[1:] {
		name, ok := cell(row, nameIdx)
		if !ok || strings.TrimSpace(name) == "" {
			res.Dropped++
			continue
		}
		raw, ok := cell(row, amountIdx)
		if !ok {
			res.Dropped++
			continue
		}
		cents, err := core.ParseAmountToCents(raw)
		if err != nil {
			res.Dropped++
			continue
		}

		category := core.DefaultCategory
		if catIdx >= 0 {
			// Column exists: keep the cell as given, blanks included.
			category, _ = cell(row, catIdx)
		}

		res.Records = append(res.Records, core.Expense{
			Name:     name,
			Amount:   core.Money{Cents: cents},
			Category: category,
		})
	}
	return res
}

// findColumn returns the index of the first header matching any alias,
// aliases tried in order so the preferred label wins.
func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if strings.TrimSpace(h) == alias {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

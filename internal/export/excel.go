// Package export serializes a session's expense collection to an in-memory
// XLSX workbook for the dashboard's download button.
package export

import (
	"bytes"
	"fmt"

	"financas/internal/core"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Despesas"

// Filename is the download name offered to the browser.
const Filename = "controle_financeiro.xlsx"

// Workbook builds an XLSX workbook with one row per expense plus a total row.
func Workbook(ov core.Overview, expenses []core.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#6C5CE7"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: strPtr(`"R$" #,##0.00`),
	})
	if err != nil {
		return nil, fmt.Errorf("currency style: %w", err)
	}

	headers := []string{"Nome", "Valor", "Categoria"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "C1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, e := range expenses {
		row := i + 2
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Name); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Amount.Reais()); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Category); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	totalRow := len(expenses) + 2
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return nil, fmt.Errorf("write total row: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalRow), ov.Spent.Reais()); err != nil {
		return nil, fmt.Errorf("write total row: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "B2", fmt.Sprintf("B%d", totalRow), currencyStyle); err != nil {
		return nil, fmt.Errorf("style amounts: %w", err)
	}
	_ = f.SetColWidth(sheetName, "A", "A", 32)
	_ = f.SetColWidth(sheetName, "B", "C", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func strPtr(s string) *string { return &s }

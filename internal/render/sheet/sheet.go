// Package sheet writes the summary spreadsheet: one row per person with the
// statement totals, health text flattened to a single line.
package sheet

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"esocial-informe/core/types"
	"esocial-informe/internal/errors"
)

// SheetName is the single worksheet name.
const SheetName = "Conferência"

var headers = []string{
	"CPF", "Nome",
	"Rend. Tributáveis", "INSS Oficial", "IRRF",
	"13º Líquido", "13º Bruto", "INSS 13º", "IRRF 13º",
	"Info Saúde",
}

// Write renders the workbook to w.
func Write(w io.Writer, statements []types.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Render("naming worksheet", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Render("addressing header cell", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return errors.Render("writing header", err)
		}
	}

	for i, st := range statements {
		values := []interface{}{
			string(st.Person),
			st.Name,
			st.Gross.InexactFloat64(),
			st.INSS.InexactFloat64(),
			st.IRRF.InexactFloat64(),
			st.NetThirteenth.InexactFloat64(),
			st.ThirteenthGross.InexactFloat64(),
			st.ThirteenthINSS.InexactFloat64(),
			st.ThirteenthIRRF.InexactFloat64(),
			flattenHealth(st.HealthInfo),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return errors.Render("addressing cell", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return errors.Render("writing row", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Render("writing workbook", err)
	}
	return nil
}

func flattenHealth(text string) string {
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", " | ")
}

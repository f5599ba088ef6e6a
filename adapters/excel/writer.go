package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"attritionlens/domain/employee"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used for exports
const DefaultSheet = "Sheet1"

// WriteWorkbook writes a header row plus data rows into a single-sheet workbook.
// Numeric and ordinal columns plus the derived binary column are stored as
// numbers so spreadsheets can sum them; every other column stays text.
func WriteWorkbook(w io.Writer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRow(f, 1, header, nil); err != nil {
		return err
	}
	numeric := numericColumns(header)
	for i, row := range rows {
		if err := writeRow(f, i+2, row, numeric); err != nil {
			return err
		}
	}

	if err := f.SetPanes(DefaultSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func numericColumns(header []string) []bool {
	numeric := make([]bool, len(header))
	for i, col := range header {
		f := employee.Field(col)
		numeric[i] = col == employee.AttritionBinaryColumn || (f.Valid() && f.Kind() != employee.KindCategorical)
	}
	return numeric
}

func writeRow(f *excelize.File, rowNum int, cells []string, numeric []bool) error {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
		if i < len(numeric) && numeric[i] {
			if n, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
				values[i] = n
			}
		}
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(DefaultSheet, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

package export

import (
	"fmt"
	"io"
	"strings"

	"attritionlens/adapters/excel"
	"attritionlens/domain/employee"
	apperrors "attritionlens/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Format is a raw-data output format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts json, csv and xlsx; the empty string means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unsupported export format %q", s))
}

// ContentType is the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json; charset=utf-8"
}

// Filename is the download name for the format
func (f Format) Filename() string {
	return "attrition_filtered." + string(f)
}

// Rows flattens the view into source column order plus the derived binary column.
func Rows(view *employee.View) (header []string, rows [][]string) {
	header = view.Table().ExportColumns()
	rows = make([][]string, 0, view.Len())
	view.Each(func(r *employee.Record) {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = r.Value(col)
		}
		rows = append(rows, row)
	})
	return header, rows
}

// Page is a window of raw rows for the JSON raw-data endpoint
type Page struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
	Offset  int        `json:"offset"`
	Limit   int        `json:"limit"`
}

// Paginate returns rows [offset, offset+limit). A non-positive limit returns everything.
func Paginate(view *employee.View, offset, limit int) Page {
	header, rows := Rows(view)
	total := len(rows)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return Page{Columns: header, Rows: rows[offset:end], Total: total, Offset: offset, Limit: limit}
}

// WriteCSV writes the view as CSV. Every column is kept as text so values
// round-trip exactly as loaded.
func WriteCSV(w io.Writer, view *employee.View) error {
	if view.IsEmpty() {
		return apperrors.EmptyResultWarning()
	}
	header, rows := Rows(view)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return apperrors.Wrap(df.Err, "failed to build export frame")
	}
	if err := df.WriteCSV(w); err != nil {
		return apperrors.Wrap(err, "failed to write CSV export")
	}
	return nil
}

// WriteXLSX writes the view as a single-sheet workbook.
func WriteXLSX(w io.Writer, view *employee.View) error {
	if view.IsEmpty() {
		return apperrors.EmptyResultWarning()
	}
	header, rows := Rows(view)
	if err := excel.WriteWorkbook(w, header, rows); err != nil {
		return apperrors.Wrap(err, "failed to write XLSX export")
	}
	return nil
}

// Write dispatches to the writer for f. JSON is handled by the caller.
func Write(w io.Writer, view *employee.View, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, view)
	case FormatXLSX:
		return WriteXLSX(w, view)
	}
	return apperrors.InvalidInput(fmt.Sprintf("format %q is not a file export", f))
}

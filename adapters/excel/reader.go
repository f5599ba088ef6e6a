package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"attritionlens/domain/employee"
	"attritionlens/internal"
	"attritionlens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(filePath, DefaultReaderConfig())
}

// NewDataReaderWithConfig creates a reader with explicit delimiter/sheet settings
func NewDataReaderWithConfig(filePath string, config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// Key identifies the file for caching
func (r *DataReader) Key() string {
	if abs, err := filepath.Abs(r.filePath); err == nil {
		return abs
	}
	return r.filePath
}

// Signature returns size and modification time; a missing file yields NOT_FOUND
func (r *DataReader) Signature(ctx context.Context) (string, error) {
	info, err := os.Stat(r.filePath)
	if os.IsNotExist(err) {
		return "", errors.NotFoundError(r.filePath)
	}
	if err != nil {
		return "", errors.LoadError(fmt.Sprintf("failed to stat %s", r.filePath), err)
	}
	if info.IsDir() {
		return "", errors.LoadError(fmt.Sprintf("%s is a directory", r.filePath), nil)
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()), nil
}

// Read reads data from Excel or CSV files into a raw table
func (r *DataReader) Read(ctx context.Context) (*employee.RawTable, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFoundError(r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.LoadError(fmt.Sprintf("unsupported file type: %s", r.fileType), nil)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.LoadError(fmt.Sprintf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType)), nil)
	}

	return r.processRows(rows)
}

// readExcelRows reads the configured sheet, or the first sheet when none is configured
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.LoadError("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.LoadError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	r.logger.Info("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV data; ragged rows are rejected by the csv reader
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.LoadError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.config.Delimiter
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.LoadError("failed to read CSV file", err)
	}
	r.logger.Info("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into a RawTable. Excel rows may be
// shorter than the header when trailing cells are empty; those cells are "".
func (r *DataReader) processRows(rows [][]string) (*employee.RawTable, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]bool, len(headerRow))
	for i, header := range headerRow {
		h := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if seen[h] {
			return nil, errors.LoadError(fmt.Sprintf("duplicate column %q", h), nil)
		}
		seen[h] = true
		headers[i] = h
	}

	dataRows := make([]map[string]string, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > len(headers) {
			return nil, errors.LoadError(fmt.Sprintf("row %d has %d cells but the header has %d", i+1, len(row), len(headers)), nil)
		}
		rowData := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &employee.RawTable{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

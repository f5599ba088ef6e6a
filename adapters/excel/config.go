package excel

// ReaderConfig holds configuration for a file data source
type ReaderConfig struct {
	Delimiter rune   `json:"delimiter"`
	Sheet     string `json:"sheet"`
}

// DefaultReaderConfig returns comma-delimited CSV and the first workbook sheet
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Delimiter: ',',
	}
}

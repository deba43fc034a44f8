package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (default: first of ds/date/Date/Month)
	ValueColumn string // Column name for values (default: first of y/value/Value/sales)
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

var (
	defaultDateHeaders  = []string{"ds", "date", "Date", "Month", "timestamp"}
	defaultValueHeaders = []string{"y", "value", "Value", "sales", "Sales"}
)

// LoadCSV reads raw (date, value) pairs from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) ([]RawPoint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV reads raw (date, value) pairs from r. Cells are passed through
// untouched; coercion and cleaning happen in Prepare.
func ReadCSV(r io.Reader, opts *CSVOptions) ([]RawPoint, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	dateIdx, valueIdx, idIdx := 0, 1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i := range header {
			header[i] = strings.TrimSpace(strings.Trim(header[i], "\""))
		}

		dateIdx = columnIndex(header, opts.DateColumn, defaultDateHeaders)
		valueIdx = columnIndex(header, opts.ValueColumn, defaultValueHeaders)
		if opts.IDColumn != "" {
			idIdx = columnIndex(header, opts.IDColumn, nil)
			if idIdx < 0 {
				return nil, fmt.Errorf("id column %q not found", opts.IDColumn)
			}
		}
		if dateIdx < 0 {
			return nil, fmt.Errorf("date column %q not found", opts.DateColumn)
		}
		if valueIdx < 0 {
			return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
	}

	var points []RawPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if idIdx >= 0 {
			if idIdx >= len(record) || strings.TrimSpace(record[idIdx]) != opts.IDFilter {
				continue
			}
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			continue
		}
		points = append(points, RawPoint{Date: record[dateIdx], Value: record[valueIdx]})
	}

	if len(points) == 0 {
		return nil, errors.New("no data rows found in CSV")
	}
	return points, nil
}

func columnIndex(header []string, name string, fallbacks []string) int {
	if name != "" {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	for _, f := range fallbacks {
		for i, h := range header {
			if h == f {
				return i
			}
		}
	}
	return -1
}

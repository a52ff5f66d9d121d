// Package tabular reads and writes survey response tables from CSV and
// Excel files.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// Reader loads a response table from a CSV or XLSX file. The format is
// picked from the file extension.
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"
	sheet    string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// Sheet selects the worksheet to read from an Excel file.
func Sheet(name string) ReaderOption {
	return func(r *Reader) { r.sheet = name }
}

// NewReader creates a reader for the given file path.
func NewReader(filePath string, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{filePath: filePath, sheet: "Sheet1"}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		r.fileType = "csv"
	case ".xlsx", ".xlsm":
		r.fileType = "xlsx"
	default:
		return nil, core.NewUnknownFormatError(filePath)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Read loads the file into a frame. The first row is the header, every
// later row is one respondent. Numeric-looking cells become float64,
// empty cells become missing values.
func (r *Reader) Read() (*frame.Frame, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewLoadingError(fmt.Sprintf("file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSV()
	case "xlsx":
		rows, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, core.NewLoadingError("need a header row and at least one response row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([][]frame.Value, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]frame.Value, 0, len(row))
		for _, cell := range row {
			record = append(record, coerce(strings.TrimSpace(cell)))
		}
		records = append(records, record)
	}

	return frame.FromRecords(headers, records)
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewLoadingError(err.Error())
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewLoadingError(fmt.Sprintf("reading %s: %v", r.filePath, err))
	}
	return rows, nil
}

func (r *Reader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewLoadingError(fmt.Sprintf("opening %s: %v", r.filePath, err))
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, core.NewLoadingError(fmt.Sprintf("reading sheet %s: %v", r.sheet, err))
	}
	return rows, nil
}

// coerce maps a raw cell to a frame value. Empty cells are missing,
// parseable numbers are float64, everything else stays a string.
func coerce(cell string) frame.Value {
	if cell == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}

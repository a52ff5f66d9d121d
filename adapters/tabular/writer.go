package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
)

// Writer exports a frame to a CSV or XLSX file. The format is picked
// from the file extension, same as Reader.
type Writer struct {
	filePath string
	fileType string
	sheet    string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// OnSheet selects the worksheet an Excel export is written to.
func OnSheet(name string) WriterOption {
	return func(w *Writer) { w.sheet = name }
}

// NewWriter creates a writer for the given file path.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	w := &Writer{filePath: filePath, sheet: "Sheet1"}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		w.fileType = "csv"
	case ".xlsx":
		w.fileType = "xlsx"
	default:
		return nil, core.NewUnknownFormatError(filePath)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write renders the frame to disk, header row first.
func (w *Writer) Write(f *frame.Frame) error {
	records := f.Records()
	switch w.fileType {
	case "csv":
		return w.writeCSV(records)
	default:
		return w.writeExcel(records)
	}
}

func (w *Writer) writeCSV(records [][]string) error {
	file, err := os.Create(w.filePath)
	if err != nil {
		return core.NewLoadingError(err.Error())
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return core.NewLoadingError(fmt.Sprintf("writing %s: %v", w.filePath, err))
	}
	return nil
}

func (w *Writer) writeExcel(records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if w.sheet != "Sheet1" {
		if _, err := f.NewSheet(w.sheet); err != nil {
			return core.NewLoadingError(err.Error())
		}
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return core.NewLoadingError(err.Error())
		}
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
			return core.NewLoadingError(err.Error())
		}
	}
	if err := f.SaveAs(w.filePath); err != nil {
		return core.NewLoadingError(fmt.Sprintf("saving %s: %v", w.filePath, err))
	}
	return nil
}

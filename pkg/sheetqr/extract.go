package sheetqr

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/models"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/output"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/parser"
)

// openWorkbook opens path, classifying every failure as KindOpen.
func openWorkbook(path string, opts Options) (parser.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindOpen, path, "", ErrFileNotFound)
		}
		return nil, newError(KindOpen, path, "", err)
	}

	wb, err := parser.Open(path, opts.readOptions())
	if err != nil {
		return nil, newError(KindOpen, path, "", err)
	}
	return wb, nil
}

// ListSheetNames returns the sheet names of the workbook at path in
// workbook order.
func ListSheetNames(path string, opts Options) ([]string, error) {
	wb, err := openWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return wb.SheetNames(), nil
}

// SummarizeSheets lists every sheet with its row count and used range.
func SummarizeSheets(path string, opts Options) (*models.WorkbookData, error) {
	wb, err := openWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	data := &models.WorkbookData{
		BookName: filepath.Base(path),
		Format:   string(wb.Format()),
	}
	for _, name := range wb.SheetNames() {
		rows, err := wb.Rows(name)
		if err != nil {
			return nil, newError(KindRead, path, name, err)
		}
		data.Sheets = append(data.Sheets, models.SheetSummary{
			Name:  name,
			Rows:  len(rows),
			Cells: parser.CountNonEmpty(rows),
			Range: parser.DataRange(rows),
		})
	}
	return data, nil
}

// ExtractSheet reads the named sheet, uses its first row as headers and
// converts every following row into a Record.
func ExtractSheet(path, sheet string, opts Options) (*models.SheetData, error) {
	wb, err := openWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	rows, err := wb.Rows(sheet)
	if err != nil {
		if errors.Is(err, parser.ErrSheetNotFound) {
			return nil, newError(KindSheetNotFound, path, sheet, err)
		}
		return nil, newError(KindRead, path, sheet, err)
	}
	// The table starts at the first used cell, not necessarily A1.
	rows = parser.CropToData(rows)
	if len(rows) == 0 {
		return nil, newError(KindEmptyHeader, path, sheet, nil)
	}

	headers := rows[0]
	records, err := buildRecords(headers, rows[1:], opts.WorkerCount())
	if err != nil {
		return nil, newError(KindRead, path, sheet, err)
	}
	return &models.SheetData{
		Name:    sheet,
		Headers: headers,
		Records: records,
	}, nil
}

// ExtractSheetJSON is ExtractSheet followed by serialization of the records
// as a compact JSON array of objects with string values.
func ExtractSheetJSON(path, sheet string, opts Options) (string, error) {
	data, err := ExtractSheet(path, sheet, opts)
	if err != nil {
		return "", err
	}

	out, err := output.RecordsToJSON(data.Records, false)
	if err != nil {
		return "", newError(KindSerialization, path, sheet, err)
	}
	return string(out), nil
}

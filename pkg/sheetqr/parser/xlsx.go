package parser

import (
	"github.com/xuri/excelize/v2"
)

type xlsxWorkbook struct {
	f   *excelize.File
	raw bool
}

func openXLSX(path string, opts ReadOptions) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f, raw: opts.RawValues}, nil
}

func (w *xlsxWorkbook) Format() Format { return FormatXLSX }

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows reads the sheet with excelize. Sheet lookup in excelize ignores case,
// so the exact name is checked first.
func (w *xlsxWorkbook) Rows(sheet string) ([][]string, error) {
	if indexOf(w.f.GetSheetList(), sheet) < 0 {
		return nil, ErrSheetNotFound
	}

	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: w.raw})
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		rows[i] = trimRow(row)
	}
	return trimRows(rows), nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

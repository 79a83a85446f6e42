package parser

import (
	"os"

	"github.com/extrame/xls"
)

type xlsWorkbook struct {
	file *os.File
	wb   *xls.WorkBook
}

// openXLS keeps the file open: extrame/xls parses sheets lazily from the reader.
func openXLS(path string, _ ReadOptions) (_ Workbook, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()
	defer recoverMalformed(&err)

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, err
	}
	return &xlsWorkbook{file: file, wb: wb}, nil
}

func (w *xlsWorkbook) Format() Format { return FormatXLS }

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet := w.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

// Rows returns formatted cell text; BIFF cells have no raw mode here.
func (w *xlsWorkbook) Rows(sheet string) (_ [][]string, err error) {
	defer recoverMalformed(&err)

	var ws *xls.WorkSheet
	for i := 0; i < w.wb.NumSheets(); i++ {
		if s := w.wb.GetSheet(i); s != nil && s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, ErrSheetNotFound
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, trimRow(cells))
	}
	return trimRows(rows), nil
}

func (w *xlsWorkbook) Close() error {
	return w.file.Close()
}

package parser

import (
	"github.com/TsubasaBE/go-xlsb/workbook"
)

type xlsbWorkbook struct {
	names []string
	rows  func(index int) ([][]string, error)
	close func() error
}

func openXLSB(path string, opts ReadOptions) (_ Workbook, err error) {
	defer recoverMalformed(&err)

	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}

	return &xlsbWorkbook{
		names: wb.Sheets(),
		rows: func(index int) (_ [][]string, err error) {
			defer recoverMalformed(&err)

			ws, err := wb.Sheet(index + 1)
			if err != nil {
				return nil, err
			}

			var rows [][]string
			// Dense iteration yields every row index, keeping row positions.
			for row := range ws.Rows(false) {
				var cells []string
				for _, c := range row {
					if c.V == nil {
						continue
					}
					col := int(c.C)
					for len(cells) <= col {
						cells = append(cells, "")
					}
					if opts.RawValues {
						cells[col] = cellText(c.V)
					} else {
						cells[col] = ws.FormatCell(c)
					}
				}
				rows = append(rows, trimRow(cells))
			}
			return trimRows(rows), nil
		},
		close: func() error {
			wb.Close()
			return nil
		},
	}, nil
}

func (w *xlsbWorkbook) Format() Format { return FormatXLSB }

func (w *xlsbWorkbook) SheetNames() []string {
	return w.names
}

func (w *xlsbWorkbook) Rows(sheet string) ([][]string, error) {
	index := indexOf(w.names, sheet)
	if index < 0 {
		return nil, ErrSheetNotFound
	}
	return w.rows(index)
}

func (w *xlsbWorkbook) Close() error {
	return w.close()
}

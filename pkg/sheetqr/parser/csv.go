package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// csvWorkbook holds a delimited text file as a single sheet named after the
// file stem.
type csvWorkbook struct {
	name string
	rows [][]string
}

func openCSV(path string, opts ReadOptions) (Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if opts.CSVCharset != "" {
		enc, err := htmlindex.Get(opts.CSVCharset)
		if err != nil {
			return nil, fmt.Errorf("unknown CSV charset %q: %w", opts.CSVCharset, err)
		}
		r = enc.NewDecoder().Reader(file)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	base := filepath.Base(path)
	return &csvWorkbook{
		name: strings.TrimSuffix(base, filepath.Ext(base)),
		// Row length comes from the delimiters: explicitly empty fields stay.
		rows: trimRows(rows),
	}, nil
}

func (w *csvWorkbook) Format() Format { return FormatCSV }

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.name}
}

func (w *csvWorkbook) Rows(sheet string) ([][]string, error) {
	if sheet != w.name {
		return nil, ErrSheetNotFound
	}
	return w.rows, nil
}

func (w *csvWorkbook) Close() error {
	return nil
}

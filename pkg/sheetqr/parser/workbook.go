// Package parser opens spreadsheet files of any supported format and reads
// sheets as rows of cell text.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedFormat indicates the file content is not a supported spreadsheet.
var ErrUnsupportedFormat = errors.New("unrecognized spreadsheet format")

// ErrSheetNotFound is returned by Workbook.Rows for an unknown sheet name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMalformed wraps a panic raised by a backend while decoding a damaged file.
var ErrMalformed = errors.New("malformed workbook")

// Format identifies a workbook backend.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatXLSB Format = "xlsb"
	FormatCSV  Format = "csv"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
	mimeZip  = "application/zip"
	mimeOLE  = "application/x-ole-storage"
	mimeText = "text/plain"
)

// ReadOptions configures how cells are turned into text.
type ReadOptions struct {
	// RawValues skips number formats where the backend supports it (xlsx, xlsb).
	RawValues bool
	// CSVCharset is the WHATWG encoding label of CSV input. Empty means UTF-8.
	CSVCharset string
}

// Workbook is an open spreadsheet. Callers must Close it.
type Workbook interface {
	// Format reports the detected backend.
	Format() Format
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// Rows returns every row of the named sheet as cell text. Trailing empty
	// cells of a row and trailing empty rows are not included.
	Rows(sheet string) ([][]string, error)
	Close() error
}

// Open detects the format of the file at path and opens it with the
// matching backend.
func Open(path string, opts ReadOptions) (Workbook, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return openXLSX(path, opts)
	case FormatXLS:
		return openXLS(path, opts)
	case FormatXLSB:
		return openXLSB(path, opts)
	case FormatCSV:
		return openCSV(path, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// DetectFormat inspects the file content, falling back to the extension to
// tell apart formats sharing a container (zip, OLE2, plain text).
func DetectFormat(path string) (Format, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case isA(m, mimeZip):
		// xlsb packages also carry an xl/ tree, so the extension decides first.
		if ext == ".xlsb" {
			return FormatXLSB, nil
		}
		if m.Is(mimeXLSX) {
			return FormatXLSX, nil
		}
		switch ext {
		case ".xlsx", ".xlsm", ".xltx", ".xltm":
			return FormatXLSX, nil
		}
	case m.Is(mimeXLS):
		return FormatXLS, nil
	case isA(m, mimeOLE):
		if ext == ".xls" {
			return FormatXLS, nil
		}
	case isA(m, mimeText):
		switch ext {
		case ".csv", ".tsv", ".txt":
			return FormatCSV, nil
		}
	}
	if ext == ".csv" || ext == ".tsv" {
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, m.String())
}

// recoverMalformed turns a backend panic into an ErrMalformed error. It must
// be deferred directly.
func recoverMalformed(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrMalformed, r)
	}
}

func isA(m *mimetype.MIME, mime string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(mime) {
			return true
		}
	}
	return false
}

func indexOf(names []string, sheet string) int {
	for i, name := range names {
		if name == sheet {
			return i
		}
	}
	return -1
}

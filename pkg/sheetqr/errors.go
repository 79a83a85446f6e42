package sheetqr

import (
	"errors"
	"fmt"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a recognized spreadsheet format.
var ErrInvalidFormat = parser.ErrUnsupportedFormat

// Kind discriminates extraction failures so callers can branch without
// matching on message text.
type Kind string

const (
	// KindOpen: path missing, unreadable, or not a spreadsheet.
	KindOpen Kind = "open"
	// KindSheetNotFound: no sheet with the exact requested name.
	KindSheetNotFound Kind = "sheet_not_found"
	// KindRead: the sheet exists but its rows could not be read.
	KindRead Kind = "read"
	// KindEmptyHeader: the sheet has no rows to use as headers.
	KindEmptyHeader Kind = "empty_header"
	// KindSerialization: records could not be encoded as JSON.
	KindSerialization Kind = "serialization"
)

// Error is returned by every exported operation of this package.
type Error struct {
	Kind  Kind
	Path  string
	Sheet string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOpen:
		return fmt.Sprintf("failed to open workbook %q: %v", e.Path, e.Err)
	case KindSheetNotFound:
		return fmt.Sprintf("sheet %q not found in %q", e.Sheet, e.Path)
	case KindRead:
		return fmt.Sprintf("failed to extract worksheet %q: %v", e.Sheet, e.Err)
	case KindEmptyHeader:
		return fmt.Sprintf("no headers found in sheet %q", e.Sheet)
	case KindSerialization:
		return fmt.Sprintf("failed to serialize sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, path, sheet string, err error) *Error {
	return &Error{
		Kind:  kind,
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}

// KindOf reports the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

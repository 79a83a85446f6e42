// Package sheetqr reads spreadsheet sheets as JSON records and drives QR label generation.
package sheetqr

import (
	"runtime"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/parser"
)

// Options configures workbook reading and record construction.
type Options struct {
	// Workers bounds the goroutines converting rows to records.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
	// RawValues returns stored cell values instead of number-formatted text.
	RawValues bool
	// CSVCharset names the encoding of CSV input (e.g. "windows-1252").
	// Empty means UTF-8.
	CSVCharset string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// WorkerCount returns the effective number of row workers.
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) readOptions() parser.ReadOptions {
	return parser.ReadOptions{
		RawValues:  o.RawValues,
		CSVCharset: o.CSVCharset,
	}
}

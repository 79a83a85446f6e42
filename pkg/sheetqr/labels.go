package sheetqr

import (
	"fmt"
	"path/filepath"

	"github.com/sheetqr/sheetqr-go/pkg/imagestore"
	"github.com/sheetqr/sheetqr-go/pkg/qrcode"
)

// DefaultLabelColumn is the header whose values are encoded by GenerateLabels.
const DefaultLabelColumn = "UPC"

// LabelOptions configures GenerateLabels.
type LabelOptions struct {
	Options
	// Column is the header holding the value to encode.
	Column string
	// OutDir receives one subdirectory per sheet.
	OutDir string
	// Size is the PNG width and height in pixels.
	Size int
}

// GenerateLabels renders a QR code PNG for the Column value of every record
// of sheet into OutDir/<sanitized sheet>/<sanitized value>.png. Records
// without a value are skipped. It returns the written paths in row order.
func GenerateLabels(path, sheet string, opts LabelOptions) ([]string, error) {
	if opts.Column == "" {
		opts.Column = DefaultLabelColumn
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("labels: output directory is required")
	}

	data, err := ExtractSheet(path, sheet, opts.Options)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(opts.OutDir, imagestore.SanitizeDirName(sheet))
	var written []string
	for i, record := range data.Records {
		value, ok := record.Get(opts.Column)
		if !ok || value == "" {
			continue
		}

		img, err := qrcode.PNG(value, opts.Size)
		if err != nil {
			return written, fmt.Errorf("labels: row %d: %w", i+2, err)
		}
		target := filepath.Join(dir, imagestore.SanitizeDirName(value)+".png")
		if err := imagestore.Write(target, img); err != nil {
			return written, fmt.Errorf("labels: row %d: %w", i+2, err)
		}
		written = append(written, target)
	}
	return written, nil
}

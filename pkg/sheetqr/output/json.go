// Package output serializes extraction results to JSON.
package output

import (
	json "github.com/goccy/go-json"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/models"
)

// RecordsToJSON encodes records as a JSON array of objects. A nil slice
// encodes as an empty array.
func RecordsToJSON(records []*models.Record, pretty bool) ([]byte, error) {
	if records == nil {
		records = []*models.Record{}
	}
	return marshal(records, pretty)
}

// WorkbookToJSON encodes a workbook listing.
func WorkbookToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

package sheetqr

import (
	"fmt"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/models"
	"golang.org/x/sync/errgroup"
)

// BuildRecord zips row against headers by position. Only the first
// min(len(row), len(headers)) cells are mapped: headers past the end of the
// row are absent and cells past the last header are dropped. A repeated
// header keeps its first position and takes the value of its last column.
func BuildRecord(headers, row []string) *models.Record {
	n := len(row)
	if len(headers) < n {
		n = len(headers)
	}

	record := models.NewRecord()
	for i := 0; i < n; i++ {
		record.Set(headers[i], row[i])
	}
	return record
}

// buildRecords converts rows in parallel, splitting them into contiguous
// chunks. Each worker writes only its own slots of the result, so the output
// order equals the input order whatever the scheduling. A panicking worker
// is reported as an error instead of crashing the process.
func buildRecords(headers []string, rows [][]string, workers int) ([]*models.Record, error) {
	records := make([]*models.Record, len(rows))
	if len(rows) == 0 {
		return records, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(rows) {
		workers = len(rows)
	}
	chunk := (len(rows) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("records %d-%d: %v", start, end-1, r)
				}
			}()
			for i := start; i < end; i++ {
				records[i] = BuildRecord(headers, rows[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

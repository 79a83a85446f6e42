package models

// SheetData represents the records extracted from a single sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Headers is the first row of the sheet.
	Headers []string `json:"headers"`
	// Records holds one entry per row after the header row, in sheet order.
	Records []*Record `json:"records"`
}

// SheetSummary describes a sheet without converting its rows.
type SheetSummary struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the number of rows including the header row.
	Rows int `json:"rows"`
	// Cells is the number of non-empty cells.
	Cells int `json:"cells"`
	// Range is the range bounding all non-empty cells, e.g. "A1:D10".
	Range string `json:"range,omitempty"`
}

package models

// WorkbookData represents a workbook-level listing.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is the detected file format (xlsx, xls, xlsb, csv).
	Format string `json:"format"`
	// Sheets lists sheet summaries in workbook order.
	Sheets []SheetSummary `json:"sheets"`
}

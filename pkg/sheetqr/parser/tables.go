package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DataRange returns the range (e.g. "A1:D10") bounding all non-empty cells,
// or "" when every cell is empty.
func DataRange(rows [][]string) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return ""
	}

	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// CountNonEmpty counts cells holding text.
func CountNonEmpty(rows [][]string) int {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return 0
	}
	return countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
}

// CropToData drops the empty rows above and the empty columns left of the
// first used cell, so row 0 of the result is the first row holding data.
// Cells right of the used range are kept. It returns nil when every cell is
// empty.
func CropToData(rows [][]string) [][]string {
	minRow, maxRow, minCol, _ := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}

	cropped := make([][]string, 0, maxRow-minRow+1)
	for _, row := range rows[minRow : maxRow+1] {
		if len(row) <= minCol {
			cropped = append(cropped, nil)
			continue
		}
		cropped = append(cropped, row[minCol:])
	}
	return cropped
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}

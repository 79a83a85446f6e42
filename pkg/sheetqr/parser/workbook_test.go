package parser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveXLSX(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDetectFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Header"))
	xlsxPath := saveXLSX(t, f, "book.xlsx")

	zipPath := filepath.Join(t.TempDir(), "book.xlsb")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("xl/workbook.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte{0x83, 0x01, 0x00})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr error
	}{
		{"xlsx", xlsxPath, FormatXLSX, nil},
		{"xlsb by extension", zipPath, FormatXLSB, nil},
		{"csv", writeFile(t, "a.csv", []byte("a,b\n1,2\n")), FormatCSV, nil},
		{"tsv", writeFile(t, "a.tsv", []byte("a\tb\n1\t2\n")), FormatCSV, nil},
		{"text with spreadsheet extension", writeFile(t, "a.xlsx", []byte("hello\n")), "", ErrUnsupportedFormat},
		{"image", writeFile(t, "a.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")), "", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = DetectFormat(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestXLSXRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Share", "Count", ""}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 0.5))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 12))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))
	path := saveXLSX(t, f, "styled.xlsx")

	formatted, err := Open(path, ReadOptions{})
	require.NoError(t, err)
	defer formatted.Close()
	assert.Equal(t, FormatXLSX, formatted.Format())
	assert.Equal(t, []string{"Sheet1"}, formatted.SheetNames())

	rows, err := formatted.Rows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Share", "Count"}, {"50.00%", "12"}}, rows)

	raw, err := Open(path, ReadOptions{RawValues: true})
	require.NoError(t, err)
	defer raw.Close()
	rows, err = raw.Rows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "0.5", rows[1][0])

	_, err = formatted.Rows("sheet1")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestCSVWorkbook(t *testing.T) {
	path := writeFile(t, "list.csv", []byte("\ufeffName,Qty,\nWidget,3,,\n\n"))

	wb, err := Open(path, ReadOptions{})
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, FormatCSV, wb.Format())
	assert.Equal(t, []string{"list"}, wb.SheetNames())

	rows, err := wb.Rows("list")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Qty", ""}, {"Widget", "3", "", ""}}, rows)

	_, err = wb.Rows("List")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenMalformed(t *testing.T) {
	oleMagic := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	zipPath := filepath.Join(t.TempDir(), "broken.xlsb")
	zf, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not a workbook"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	tests := []struct {
		name string
		path string
	}{
		{"truncated xls", writeFile(t, "broken.xls", oleMagic)},
		{"xlsb without workbook part", zipPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wb Workbook
			assert.NotPanics(t, func() {
				wb, err = Open(tt.path, ReadOptions{})
			})
			assert.Error(t, err)
			assert.Nil(t, wb)
		})
	}
}

func TestCSVUnknownCharset(t *testing.T) {
	path := writeFile(t, "list.csv", []byte("a,b\n"))
	_, err := Open(path, ReadOptions{CSVCharset: "no-such-charset"})
	assert.Error(t, err)
}

func TestTrimRow(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, trimRow([]string{"a", "", "b", "", ""}))
	assert.Empty(t, trimRow([]string{"", ""}))
	assert.Empty(t, trimRow(nil))

	rows := trimRows([][]string{{"a"}, {}, {"b"}, nil, {"", ""}})
	assert.Equal(t, [][]string{{"a"}, {}, {"b"}}, rows)
}

func TestCellText(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected string
	}{
		{nil, ""},
		{"hello", "hello"},
		{float64(123), "123"},
		{123.45, "123.45"},
		{-100, "-100"},
		{int64(7), "7"},
		{true, "TRUE"},
		{false, "FALSE"},
	}

	for _, tt := range tests {
		if got := cellText(tt.input); got != tt.expected {
			t.Errorf("cellText(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCropToData(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want [][]string
	}{
		{"empty", [][]string{{}, {"", ""}}, nil},
		{"already at A1", [][]string{{"a", "b"}, {"1"}}, [][]string{{"a", "b"}, {"1"}}},
		{
			"offset table",
			[][]string{{}, {}, {"", "Name", "Age"}, {"", "Alice", "30"}},
			[][]string{{"Name", "Age"}, {"Alice", "30"}},
		},
		{
			"short and blank rows inside the table",
			[][]string{{"", "", "h"}, {""}, {"", "x", "y"}},
			[][]string{{"", "h"}, nil, {"x", "y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CropToData(tt.rows))
		})
	}
}

func TestDataRange(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		want  string
		cells int
	}{
		{"empty", nil, "", 0},
		{"single cell", [][]string{{"x"}}, "A1:A1", 1},
		{"offset block", [][]string{{}, {"", "a", "b"}, {"", "", "c"}}, "B2:C3", 3},
		{"ragged", [][]string{{"h1", "h2", "h3"}, {"1"}}, "A1:C2", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DataRange(tt.rows))
			assert.Equal(t, tt.cells, CountNonEmpty(tt.rows))
		})
	}
}

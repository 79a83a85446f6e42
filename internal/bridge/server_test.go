package bridge

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(zap.NewNop(), sheetqr.Options{Workers: 2}, 200).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func invoke(t *testing.T, srv *httptest.Server, command, body string) (int, gjson.Result) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/invoke/"+command, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb bytes.Buffer
	_, err = sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, gjson.Parse(sb.String())
}

func writeBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", 30}))
	_, err := f.NewSheet("Blank")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func quote(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

func TestGetSheetNames(t *testing.T) {
	srv := newTestServer(t)
	path := writeBook(t)

	status, body := invoke(t, srv, "get_sheet_names", `{"filePath":"`+quote(path)+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `["Sheet1","Blank"]`, body.Get("data").Raw)
}

func TestGetSheetData(t *testing.T) {
	srv := newTestServer(t)
	path := writeBook(t)

	status, body := invoke(t, srv, "get_sheet_data", `{"filePath":"`+quote(path)+`","sheetName":"Sheet1"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `[{"Name":"Alice","Age":"30"}]`, body.Get("data").String())
}

func TestGetSheetSummary(t *testing.T) {
	srv := newTestServer(t)
	path := writeBook(t)

	status, body := invoke(t, srv, "get_sheet_summary", `{"filePath":"`+quote(path)+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A1:B2", body.Get("data.sheets.0.range").String())
	assert.Equal(t, int64(0), body.Get("data.sheets.1.rows").Int())
}

func TestCommandErrors(t *testing.T) {
	srv := newTestServer(t)
	path := quote(writeBook(t))
	missing := quote(filepath.Join(t.TempDir(), "missing.xlsx"))

	tests := []struct {
		name    string
		command string
		body    string
		status  int
		kind    string
	}{
		{"missing file", "get_sheet_names", `{"filePath":"` + missing + `"}`, http.StatusNotFound, "open"},
		{"missing sheet", "get_sheet_data", `{"filePath":"` + path + `","sheetName":"Nope"}`, http.StatusNotFound, "sheet_not_found"},
		{"empty sheet", "get_sheet_data", `{"filePath":"` + path + `","sheetName":"Blank"}`, http.StatusUnprocessableEntity, "empty_header"},
		{"missing argument", "get_sheet_data", `{"filePath":"` + path + `"}`, http.StatusBadRequest, "invalid_arguments"},
		{"malformed body", "get_sheet_names", `{`, http.StatusBadRequest, "invalid_arguments"},
		{"empty qr value", "generate_qrcode", `{"value":""}`, http.StatusBadRequest, "invalid_arguments"},
		{"bad base64", "save_image", `{"request":{"directory":"` + quote(t.TempDir()) + `","filename":"a.png","data":"***"}}`, http.StatusBadRequest, "invalid_arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := invoke(t, srv, tt.command, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Get("error.kind").String())
			assert.NotEmpty(t, body.Get("error.message").String())
			assert.False(t, body.Get("data").Exists())
		})
	}
}

func TestGenerateQRCode(t *testing.T) {
	srv := newTestServer(t)

	status, body := invoke(t, srv, "generate_qrcode", `{"value":"012345678905"}`)
	assert.Equal(t, http.StatusOK, status)
	svg := body.Get("data").String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `width="200"`)

	_, body = invoke(t, srv, "generate_qrcode", `{"value":"012345678905","size":64}`)
	assert.Contains(t, body.Get("data").String(), `width="64"`)
}

func TestSaveImage(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	status, body := invoke(t, srv, "save_image",
		`{"request":{"directory":"`+quote(dir)+`","filename":"label.png","data":"`+data+`"}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body.Get("data").String(), "Successfully saved image to")

	written, err := os.ReadFile(filepath.Join(dir, "label.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(written))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

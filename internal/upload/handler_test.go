package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/upload", NewHandler(nil).Upload)
	return r
}

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func postFile(t *testing.T, r *gin.Engine, field, name string, content []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec, parsed
}

func TestUpload(t *testing.T) {
	t.Parallel()

	content := buildWorkbook(t, [][]string{
		{"Webinar Name", "Date", "Time", "Presenter Name", "Presenter Email", "Presenter Phone", "Attendee Name", "Attendee Email", "Attendee Phone"},
		{"Go Concurrency Patterns", "2026-03-14", "15:00", "Ada Lovelace", "ada@example.com", "5551234567", "Grace Hopper", "grace@example.com", "915551234567"},
		{"", "", "", "", "", "", "", "", ""}, // blank rows are dropped
		{"Intro to Channels", "2026-03-15", "10:30", "Rob P", "rob@example.com", "", "", "", ""},
	})

	rec, parsed := postFile(t, newUploadRouter(t), "file", "webinars.xlsx", content)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if parsed["message"] != "Parsed 2 webinars successfully" {
		t.Errorf("message = %v", parsed["message"])
	}

	webinars, _ := parsed["webinars"].([]any)
	if len(webinars) != 2 {
		t.Fatalf("webinars = %d, want 2", len(webinars))
	}
	first, _ := webinars[0].(map[string]any)
	if first["id"] != float64(1) || first["webinar_name"] != "Go Concurrency Patterns" {
		t.Errorf("first record = %v", first)
	}
	if first["presenter_email"] != "ada@example.com" || first["attendee_phone"] != "915551234567" {
		t.Errorf("first record fields = %v", first)
	}
	second, _ := webinars[1].(map[string]any)
	if second["id"] != float64(2) || second["webinar_name"] != "Intro to Channels" {
		t.Errorf("second record = %v", second)
	}
	if _, ok := second["attendee_email"]; ok {
		t.Error("empty optional fields should be omitted from JSON")
	}
}

func TestUploadNoFile(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	newUploadRouter(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No file uploaded") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUploadNotASpreadsheet(t *testing.T) {
	t.Parallel()

	rec, parsed := postFile(t, newUploadRouter(t), "file", "webinars.csv", []byte("name,date\na,b\n"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	errMsg, _ := parsed["error"].(string)
	if !strings.Contains(errMsg, "not a valid spreadsheet") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestParseRowsHeaderMapping(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"  Webinar Name ", "DATE", "Time", "Unknown Column"},
		{"A", "2026-01-01", "09:00", "ignored"},
		{"B", "2026-01-02"}, // short rows are padded
	}
	got := parseRows(rows)
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if got[0].Name != "A" || got[0].Date != "2026-01-01" || got[0].Time != "09:00" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Name != "B" || got[1].Time != "" {
		t.Errorf("second = %+v", got[1])
	}
}

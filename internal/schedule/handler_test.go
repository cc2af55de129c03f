package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/webinar-wrapper/backend/internal/meeting"
	"github.com/webinar-wrapper/backend/internal/models"
)

func newTestRouter(zoom, google meeting.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(nil), zoom, google, nil)
	router := gin.New()
	router.POST("/api/schedule", h.ScheduleZoom)
	router.POST("/api/schedule-google", h.ScheduleGoogle)
	return router
}

func postSchedule(t *testing.T, router *gin.Engine, path string, records []models.WebinarRecord) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]any{"webinars": records})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestScheduleEndpointPartialValidation(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "zoom"}
	router := newTestRouter(p, p)

	records := []models.WebinarRecord{
		batchRecord(1, "First"),
		{ID: 2, Name: "Second", Date: "2026-03-15", Time: "10:00", PresenterName: "Grace Hopper"}, // missing presenter email
		batchRecord(3, "Third"),
	}
	rec := postSchedule(t, router, "/api/schedule", records)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success should be true")
	}
	if len(resp.ScheduledWebinars) != 2 {
		t.Fatalf("scheduled_webinars = %d, want 2", len(resp.ScheduledWebinars))
	}
	if resp.SkippedInvalid != 1 {
		t.Errorf("skipped_invalid = %d, want 1", resp.SkippedInvalid)
	}
	if len(resp.ValidationWarnings) != 1 || !strings.Contains(resp.ValidationWarnings[0], "Row 2") {
		t.Errorf("validation_warnings = %v, want exactly one message referencing row 2", resp.ValidationWarnings)
	}
}

func TestScheduleEndpointNoValidRecords(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "zoom"}
	router := newTestRouter(p, p)

	rec := postSchedule(t, router, "/api/schedule", []models.WebinarRecord{{ID: 1}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error            string   `json:"error"`
		ValidationErrors []string `json:"validation_errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.Contains(resp.Error, "No valid webinars") {
		t.Errorf("error = %q, should mention no valid webinars", resp.Error)
	}
	if len(resp.ValidationErrors) == 0 {
		t.Error("validation_errors should carry the per-row messages")
	}
	if strings.Contains(rec.Body.String(), `"success":true`) {
		t.Error("failure response must not report success")
	}
	if p.beginCalls != 0 {
		t.Error("no remote call may be attempted")
	}
}

func TestScheduleEndpointFailFast(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "zoom", failOn: "Second"}
	router := newTestRouter(p, p)

	rec := postSchedule(t, router, "/api/schedule", []models.WebinarRecord{
		batchRecord(1, "First"),
		batchRecord(2, "Second"),
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500; body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Second") {
		t.Errorf("body %q should name the failing webinar", body)
	}
	if strings.Contains(body, "scheduled_webinars") {
		t.Error("fail-fast response must not return any scheduled webinars")
	}
}

func TestScheduleEndpointConfigError(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "google", beginErr: &meeting.ConfigError{Provider: "google", Message: "Google OAuth credentials not configured"}}
	router := newTestRouter(p, p)

	rec := postSchedule(t, router, "/api/schedule-google", []models.WebinarRecord{batchRecord(1, "First")})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Errorf("body %q should explain the missing configuration", rec.Body.String())
	}
}

func TestScheduleEndpointBadBody(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{name: "zoom"}
	router := newTestRouter(p, p)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

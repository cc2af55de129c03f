// Package upload parses an uploaded spreadsheet of webinars into typed
// records. This is the system boundary where records are constructed;
// everything downstream consumes models.WebinarRecord as-is.
package upload

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/pkg/response"
)

// Response is the success payload for POST /api/upload.
type Response struct {
	Success  bool                   `json:"success"`
	Webinars []models.WebinarRecord `json:"webinars"`
	Message  string                 `json:"message"`
}

// Handler handles the spreadsheet upload endpoint.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates an upload handler.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger}
}

// Upload handles POST /api/upload: multipart "file" (xlsx), first row is
// headers, empty rows are dropped, ids are 1-based positions.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "Failed to process file")
		return
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		h.logger.Error("open spreadsheet failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		response.BadRequest(c, "Failed to process file: not a valid spreadsheet")
		return
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		response.BadRequest(c, "Spreadsheet has no sheets")
		return
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		response.Internal(c, "Failed to process file")
		return
	}
	if len(rows) == 0 {
		response.BadRequest(c, "Spreadsheet is empty")
		return
	}

	webinars := parseRows(rows)
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Webinars: webinars,
		Message:  fmt.Sprintf("Parsed %d webinars successfully", len(webinars)),
	})
}

// parseRows maps header names (lowercased, spaces to underscores) onto
// record fields. Unknown headers are ignored.
func parseRows(rows [][]string) []models.WebinarRecord {
	headers := make([]string, len(rows[0]))
	for i, hdr := range rows[0] {
		headers[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(hdr)), " ", "_")
	}

	webinars := make([]models.WebinarRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rec := models.WebinarRecord{ID: len(webinars) + 1}
		for i, hdr := range headers {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			switch hdr {
			case "webinar_name":
				rec.Name = cell
			case "date":
				rec.Date = cell
			case "time":
				rec.Time = cell
			case "presenter_name":
				rec.PresenterName = cell
			case "presenter_email":
				rec.PresenterEmail = cell
			case "presenter_phone":
				rec.PresenterPhone = cell
			case "attendee_name":
				rec.AttendeeName = cell
			case "attendee_email":
				rec.AttendeeEmail = cell
			case "attendee_phone":
				rec.AttendeePhone = cell
			}
		}
		webinars = append(webinars, rec)
	}
	return webinars
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package schedule

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/internal/meeting"
	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/pkg/response"
)

// Request is the body for the schedule endpoints.
type Request struct {
	Webinars []models.WebinarRecord `json:"webinars" binding:"required"`
}

// Response is the success payload for the schedule endpoints.
type Response struct {
	Success            bool                      `json:"success"`
	ScheduledWebinars  []models.ScheduledWebinar `json:"scheduled_webinars"`
	Message            string                    `json:"message"`
	ValidationWarnings []string                  `json:"validation_warnings,omitempty"`
	SkippedInvalid     int                       `json:"skipped_invalid"`
}

// Handler handles the scheduling HTTP endpoints, one per provider.
type Handler struct {
	svc    *Service
	zoom   meeting.Provider
	google meeting.Provider
	logger *zap.Logger
}

// NewHandler creates a schedule handler.
func NewHandler(svc *Service, zoom, google meeting.Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, zoom: zoom, google: google, logger: logger}
}

// ScheduleZoom handles POST /api/schedule.
func (h *Handler) ScheduleZoom(c *gin.Context) {
	h.schedule(c, h.zoom, "Zoom meetings")
}

// ScheduleGoogle handles POST /api/schedule-google.
func (h *Handler) ScheduleGoogle(c *gin.Context) {
	h.schedule(c, h.google, "Google Meet events")
}

func (h *Handler) schedule(c *gin.Context, provider meeting.Provider, label string) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.svc.Schedule(c.Request.Context(), provider, req.Webinars)
	if err != nil {
		h.writeError(c, provider, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success:            true,
		ScheduledWebinars:  result.Scheduled,
		Message:            fmt.Sprintf("Successfully created %d %s", len(result.Scheduled), label),
		ValidationWarnings: result.Warnings,
		SkippedInvalid:     result.Skipped,
	})
}

func (h *Handler) writeError(c *gin.Context, provider meeting.Provider, err error) {
	var cfgErr *meeting.ConfigError
	if errors.As(err, &cfgErr) {
		response.BadRequest(c, cfgErr.Message)
		return
	}
	var nvErr *NoValidRecordsError
	if errors.As(err, &nvErr) {
		response.BadRequestWithErrors(c, nvErr.Error(), nvErr.Errors)
		return
	}
	var provErr *meeting.ProviderError
	if errors.As(err, &provErr) {
		response.Internal(c, provErr.Error())
		return
	}
	h.logger.Error("schedule failed", zap.String("provider", provider.Name()), zap.Error(err))
	response.Internal(c, "Failed to schedule webinars: "+err.Error())
}

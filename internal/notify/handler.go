package notify

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/pkg/response"
)

// Request is the body for the notification endpoints. Type is "schedule"
// (default) or "reminder".
type Request struct {
	Webinars []models.ScheduledWebinar `json:"webinars" binding:"required"`
	Type     string                    `json:"type"`
}

// EmailResponse is the success payload for POST /api/send-email.
type EmailResponse struct {
	Success            bool                         `json:"success"`
	EmailResults       []models.NotificationOutcome `json:"email_results"`
	Message            string                       `json:"message"`
	ValidationWarnings []string                     `json:"validation_warnings,omitempty"`
	SkippedInvalid     int                          `json:"skipped_invalid"`
}

// WhatsAppResponse is the success payload for POST /api/send-whatsapp.
type WhatsAppResponse struct {
	Success            bool                         `json:"success"`
	WhatsAppResults    []models.NotificationOutcome `json:"whatsapp_results"`
	Message            string                       `json:"message"`
	SentCount          int                          `json:"sent_count"`
	FailedCount        int                          `json:"failed_count"`
	ValidationWarnings []string                     `json:"validation_warnings,omitempty"`
	SkippedInvalid     int                          `json:"skipped_invalid"`
}

// Handler handles the notification HTTP endpoints.
type Handler struct {
	dispatcher *Dispatcher
	email      Channel
	whatsapp   Channel
	logger     *zap.Logger
}

// NewHandler creates a notification handler.
func NewHandler(dispatcher *Dispatcher, email, whatsapp Channel, logger *zap.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, email: email, whatsapp: whatsapp, logger: orNop(logger)}
}

// SendEmail handles POST /api/send-email.
func (h *Handler) SendEmail(c *gin.Context) {
	outcomes, warnings, skipped, ok := h.dispatch(c, h.email, "email sending")
	if !ok {
		return
	}
	sent, failed, _ := Summarize(outcomes)
	message := fmt.Sprintf("Successfully sent %d emails", sent)
	if failed > 0 {
		message += fmt.Sprintf(" (%d failed)", failed)
	}
	c.JSON(http.StatusOK, EmailResponse{
		Success:            true,
		EmailResults:       outcomes,
		Message:            message,
		ValidationWarnings: warnings,
		SkippedInvalid:     skipped,
	})
}

// SendWhatsApp handles POST /api/send-whatsapp.
func (h *Handler) SendWhatsApp(c *gin.Context) {
	outcomes, warnings, skipped, ok := h.dispatch(c, h.whatsapp, "WhatsApp sending")
	if !ok {
		return
	}
	sent, failed, simulated := Summarize(outcomes)
	message := fmt.Sprintf("Successfully sent %d WhatsApp messages", sent)
	if simulated > 0 {
		message += fmt.Sprintf(" (%d simulated)", simulated)
	}
	if failed > 0 {
		message += fmt.Sprintf(" (%d failed)", failed)
	}
	c.JSON(http.StatusOK, WhatsAppResponse{
		Success:            true,
		WhatsAppResults:    outcomes,
		Message:            message,
		SentCount:          sent,
		FailedCount:        failed,
		ValidationWarnings: warnings,
		SkippedInvalid:     skipped,
	})
}

// dispatch runs the shared request flow: bind, intent parse, channel
// readiness, per-channel validation, fan-out. Returns ok=false when a
// response was already written.
func (h *Handler) dispatch(c *gin.Context, ch Channel, label string) (outcomes []models.NotificationOutcome, warnings []string, skipped int, ok bool) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return nil, nil, 0, false
	}
	intent, err := ParseIntent(req.Type)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, nil, 0, false
	}
	if err := ch.Ready(); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			response.BadRequest(c, cfgErr.Message)
		} else {
			response.Internal(c, err.Error())
		}
		return nil, nil, 0, false
	}

	valid, validationErrors := partitionScheduled(req.Webinars, ch.Purpose())
	if len(valid) == 0 {
		response.BadRequestWithErrors(c, "No valid webinars found for "+label, validationErrors)
		return nil, nil, 0, false
	}
	if len(validationErrors) > 0 {
		h.logger.Warn("validation warnings",
			zap.String("channel", ch.Name()),
			zap.Strings("warnings", validationErrors),
		)
	}

	outcomes = h.dispatcher.Dispatch(c.Request.Context(), ch, valid, intent)
	return outcomes, validationErrors, len(req.Webinars) - len(valid), true
}

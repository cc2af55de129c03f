package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/internal/phone"
	"github.com/webinar-wrapper/backend/internal/validation"
)

const twilioRequestTimeout = 15 * time.Second

// WhatsAppChannel sends plain-text WhatsApp messages through the Twilio
// Messages API. With the placeholder account SID the channel runs in
// simulation: outcomes carry status "simulated" and a synthetic message id
// instead of being transmitted.
type WhatsAppChannel struct {
	cfg    config.TwilioConfig
	client *resty.Client
	logger *zap.Logger
}

// NewWhatsAppChannel creates the WhatsApp channel from configuration.
func NewWhatsAppChannel(cfg config.TwilioConfig, logger *zap.Logger) *WhatsAppChannel {
	client := resty.New()
	client.SetTimeout(twilioRequestTimeout)
	client.SetRetryCount(0)
	return &WhatsAppChannel{cfg: cfg, client: client, logger: orNop(logger)}
}

// Name implements Channel.
func (ch *WhatsAppChannel) Name() string { return "whatsapp" }

// Purpose implements Channel.
func (ch *WhatsAppChannel) Purpose() validation.Purpose { return validation.Messaging }

// Ready implements Channel.
func (ch *WhatsAppChannel) Ready() error {
	if !ch.cfg.Configured() {
		return &ConfigError{
			Channel: ch.Name(),
			Message: "Twilio credentials not configured. Please set TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN",
		}
	}
	return nil
}

// Send messages the presenter and, when an attendee phone is present, the
// attendee. Phone numbers are normalized before sending.
func (ch *WhatsAppChannel) Send(ctx context.Context, w models.ScheduledWebinar, intent Intent) []models.NotificationOutcome {
	outcomes := make([]models.NotificationOutcome, 0, 2)

	outcomes = append(outcomes, ch.deliver(ctx, w, models.RolePresenter, w.PresenterPhone, presenterWhatsApp(w, intent)))
	if w.AttendeePhone != "" {
		outcomes = append(outcomes, ch.deliver(ctx, w, models.RoleAttendee, w.AttendeePhone, attendeeWhatsApp(w, intent)))
	}
	return outcomes
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // error detail on non-2xx
}

func (ch *WhatsAppChannel) deliver(ctx context.Context, w models.ScheduledWebinar, role, rawPhone, body string) models.NotificationOutcome {
	outcome := models.NotificationOutcome{
		To:        rawPhone,
		Role:      role,
		Channel:   ch.Name(),
		WebinarID: w.ID,
	}

	if ch.cfg.Simulated() {
		outcome.Status = models.StatusSimulated
		outcome.MessageID = "SIM" + strings.ReplaceAll(uuid.NewString(), "-", "")
		ch.logger.Info("whatsapp send simulated",
			zap.String("to", rawPhone),
			zap.String("role", role),
			zap.String("webinar", w.Name),
		)
		return outcome
	}

	normalized := phone.Normalize(rawPhone, ch.cfg.DefaultCountryCode)

	var msg twilioMessageResponse
	resp, err := ch.client.R().
		SetContext(ctx).
		SetBasicAuth(ch.cfg.AccountSID, ch.cfg.AuthToken).
		SetFormData(map[string]string{
			"From": ch.cfg.WhatsAppFrom,
			"To":   "whatsapp:" + normalized,
			"Body": body,
		}).
		SetResult(&msg).
		SetError(&msg).
		Post(fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", ch.cfg.APIBaseURL, ch.cfg.AccountSID))

	switch {
	case err != nil:
		outcome.Status = models.StatusFailed
		outcome.Error = err.Error()
	case !resp.IsSuccess():
		outcome.Status = models.StatusFailed
		detail := msg.Message
		if detail == "" {
			detail = resp.String()
		}
		outcome.Error = fmt.Sprintf("status %d: %s", resp.StatusCode(), detail)
	default:
		outcome.Status = models.StatusSent
		outcome.MessageID = msg.SID
		outcome.FormattedPhone = normalized
	}

	if outcome.Status == models.StatusFailed {
		ch.logger.Error("whatsapp send failed",
			zap.String("to", rawPhone),
			zap.String("role", role),
			zap.String("webinar", w.Name),
			zap.String("error", outcome.Error),
		)
	}
	return outcome
}

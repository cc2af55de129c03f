package notify

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/internal/validation"
)

// Sender delivers one rendered email. The SMTP implementation is swapped
// out in tests.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type smtpSender struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// EmailChannel sends invitation and reminder email over SMTP.
type EmailChannel struct {
	sender Sender
	logger *zap.Logger
}

// NewEmailChannel creates the email channel. With no SMTP credentials the
// channel is constructed but not ready; Ready reports the ConfigError.
func NewEmailChannel(cfg config.EmailConfig, logger *zap.Logger) *EmailChannel {
	var sender Sender
	if cfg.Configured() {
		sender = &smtpSender{
			dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
		}
	}
	return &EmailChannel{sender: sender, logger: orNop(logger)}
}

// NewEmailChannelWithSender creates an email channel with an explicit
// sender.
func NewEmailChannelWithSender(sender Sender, logger *zap.Logger) *EmailChannel {
	return &EmailChannel{sender: sender, logger: orNop(logger)}
}

// Name implements Channel.
func (ch *EmailChannel) Name() string { return "email" }

// Purpose implements Channel.
func (ch *EmailChannel) Purpose() validation.Purpose { return validation.Email }

// Ready implements Channel.
func (ch *EmailChannel) Ready() error {
	if ch.sender == nil {
		return &ConfigError{
			Channel: ch.Name(),
			Message: "Email credentials not configured. Please set EMAIL_USER and EMAIL_PASS",
		}
	}
	return nil
}

// Send emails the presenter and, when an attendee address is present, the
// attendee. Each send is attempted independently.
func (ch *EmailChannel) Send(_ context.Context, w models.ScheduledWebinar, intent Intent) []models.NotificationOutcome {
	outcomes := make([]models.NotificationOutcome, 0, 2)

	subject, body := presenterEmail(w, intent)
	outcomes = append(outcomes, ch.deliver(w, models.RolePresenter, w.PresenterEmail, subject, body))

	if w.AttendeeEmail != "" {
		subject, body = attendeeEmail(w, intent)
		outcomes = append(outcomes, ch.deliver(w, models.RoleAttendee, w.AttendeeEmail, subject, body))
	}
	return outcomes
}

func (ch *EmailChannel) deliver(w models.ScheduledWebinar, role, to, subject, body string) models.NotificationOutcome {
	outcome := models.NotificationOutcome{
		To:        to,
		Role:      role,
		Channel:   ch.Name(),
		WebinarID: w.ID,
	}
	if err := ch.sender.Send(to, subject, body); err != nil {
		ch.logger.Error("email send failed",
			zap.String("to", to),
			zap.String("role", role),
			zap.String("webinar", w.Name),
			zap.Error(err),
		)
		outcome.Status = models.StatusFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Status = models.StatusSent
	return outcome
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

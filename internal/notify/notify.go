// Package notify fans out schedule/reminder notifications for scheduled
// webinars over email and WhatsApp. Delivery is per-recipient and
// continue-on-error: one failed send never suppresses the others.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/internal/validation"
)

// Intent distinguishes the initial schedule notification from a reminder.
type Intent string

const (
	IntentSchedule Intent = "schedule"
	IntentReminder Intent = "reminder"
)

// ParseIntent maps the request "type" field onto an Intent. Empty defaults
// to the initial schedule notification.
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "", string(IntentSchedule):
		return IntentSchedule, nil
	case string(IntentReminder):
		return IntentReminder, nil
	}
	return "", fmt.Errorf("invalid notification type %q (want %q or %q)", s, IntentSchedule, IntentReminder)
}

// Channel is one notification transport (email, WhatsApp).
type Channel interface {
	Name() string
	// Purpose selects the validation rule set for this channel.
	Purpose() validation.Purpose
	// Ready reports whether the channel is configured; a *ConfigError
	// means required credentials are absent.
	Ready() error
	// Send delivers to the presenter and, when reachable, the attendee of
	// one webinar. It never fails as a whole: per-recipient errors are
	// captured into failed outcomes.
	Send(ctx context.Context, w models.ScheduledWebinar, intent Intent) []models.NotificationOutcome
}

// ConfigError means required channel credentials are absent.
type ConfigError struct {
	Channel string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// dispatchConcurrency bounds the fan-out across records. Recipient sends
// within one record stay sequential.
const dispatchConcurrency = 4

// Dispatcher runs one notification pass over a batch of scheduled webinars.
type Dispatcher struct {
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{logger: logger}
}

// Dispatch sends notifications for every webinar through the channel with
// bounded concurrency. Outcomes land in per-record slots, so the returned
// flat sequence preserves the batch's input order regardless of completion
// order.
func (d *Dispatcher) Dispatch(ctx context.Context, ch Channel, webinars []models.ScheduledWebinar, intent Intent) []models.NotificationOutcome {
	perRecord := make([][]models.NotificationOutcome, len(webinars))

	var g errgroup.Group
	g.SetLimit(dispatchConcurrency)
	for i, w := range webinars {
		i, w := i, w
		g.Go(func() error {
			perRecord[i] = ch.Send(ctx, w, intent)
			return nil
		})
	}
	_ = g.Wait() // sends never surface errors; failures are in the outcomes

	var out []models.NotificationOutcome
	for _, rec := range perRecord {
		out = append(out, rec...)
	}
	return out
}

// partitionScheduled filters a batch against the channel's rule set,
// keeping input order and accumulating row-indexed messages for the rest.
func partitionScheduled(webinars []models.ScheduledWebinar, purpose validation.Purpose) ([]models.ScheduledWebinar, []string) {
	valid := make([]models.ScheduledWebinar, 0, len(webinars))
	var errs []string
	for i, w := range webinars {
		ok, rowErrs := validation.Validate(w.WebinarRecord, i, purpose)
		if ok {
			valid = append(valid, w)
		} else {
			errs = append(errs, rowErrs...)
		}
	}
	return valid, errs
}

// Summarize counts outcomes by delivery status.
func Summarize(outcomes []models.NotificationOutcome) (sent, failed, simulated int) {
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusSent:
			sent++
		case models.StatusFailed:
			failed++
		case models.StatusSimulated:
			simulated++
		}
	}
	return sent, failed, simulated
}

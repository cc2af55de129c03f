// Package meeting provisions remote meeting resources with a
// video-conferencing provider. Each provider resolves its credential once
// per batch (Begin) and then creates one meeting per record (Provision).
package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/webinar-wrapper/backend/internal/models"
)

// Provider is one video-conferencing backend (Zoom, Google Meet).
type Provider interface {
	Name() string
	// Begin resolves the provider credential for one batch. The returned
	// session is read-only and safe to reuse across provisioning calls.
	Begin(ctx context.Context) (Session, error)
}

// Session is a provider with a resolved credential.
type Session interface {
	Provision(ctx context.Context, rec models.WebinarRecord) (*models.MeetingRecord, error)
}

// ConfigError means required provider credentials are absent. No remote
// call was attempted.
type ConfigError struct {
	Provider string
	Message  string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// ProviderError means a remote provisioning call failed. It is fatal for
// the whole batch and names the offending webinar.
type ProviderError struct {
	Provider string
	Webinar  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Webinar == "" {
		return fmt.Sprintf("%s: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("Failed to create %s meeting for %q: %v", e.Provider, e.Webinar, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

const meetingDuration = time.Hour

// startAt parses a record's date and wall-clock time as UTC. Only
// "YYYY-MM-DD" dates and 24-hour "HH:MM" times are accepted; spreadsheet
// locale renderings like "3/14/26" must be reformatted before upload, or
// the record fails with a per-record provider error.
func startAt(rec models.WebinarRecord) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", rec.Date+" "+rec.Time, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", rec.Date, rec.Time, err)
	}
	return t, nil
}

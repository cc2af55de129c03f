package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/webinar-wrapper/backend/config"
	"github.com/webinar-wrapper/backend/internal/models"
)

// OAuthConfig builds the OAuth2 config shared by the Google provider and
// the /api/auth/google authorization endpoints.
func OAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			calendar.CalendarScope,
			calendar.CalendarEventsScope,
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleProvider creates Calendar events with provider-generated Meet
// conferencing data, using a long-lived refresh token to mint access tokens
// on demand for the duration of a batch.
type GoogleProvider struct {
	cfg    config.GoogleConfig
	logger *zap.Logger
	opts   []option.ClientOption // extra client options, used by tests
}

// NewGoogleProvider creates a Google Meet provider from configuration.
func NewGoogleProvider(cfg config.GoogleConfig, logger *zap.Logger, opts ...option.ClientOption) *GoogleProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleProvider{cfg: cfg, logger: logger, opts: opts}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Begin builds a Calendar client from the configured refresh token. A
// missing refresh token is not fatal here; it surfaces on the first
// Provision call with a re-authorization hint.
func (p *GoogleProvider) Begin(ctx context.Context) (Session, error) {
	if !p.cfg.Configured() {
		return nil, &ConfigError{
			Provider: p.Name(),
			Message:  "Google OAuth credentials not configured. Please set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET",
		}
	}
	if p.cfg.RefreshToken == "" {
		return &googleSession{provider: p}, nil
	}

	ts := OAuthConfig(p.cfg).TokenSource(ctx, &oauth2.Token{RefreshToken: p.cfg.RefreshToken})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, p.opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Cause: fmt.Errorf("failed to build calendar client: %w", err)}
	}
	return &googleSession{provider: p, svc: svc}, nil
}

type googleSession struct {
	provider *GoogleProvider
	svc      *calendar.Service
}

// Provision inserts a one-hour Calendar event with presenter and attendee
// as participants and a Meet conference attached. Calendar invitations are
// suppressed; notification is this pipeline's own job.
func (s *googleSession) Provision(ctx context.Context, rec models.WebinarRecord) (*models.MeetingRecord, error) {
	p := s.provider

	if s.svc == nil {
		return nil, &ProviderError{
			Provider: p.Name(),
			Webinar:  rec.Name,
			Cause:    errors.New("Google account not authorized: no refresh token configured. Visit /api/auth/google to grant calendar access"),
		}
	}

	start, err := startAt(rec)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Webinar: rec.Name, Cause: err}
	}
	end := start.Add(meetingDuration)

	attendees := []*calendar.EventAttendee{
		{Email: rec.PresenterEmail, Organizer: true},
	}
	if rec.AttendeeEmail != "" {
		attendees = append(attendees, &calendar.EventAttendee{Email: rec.AttendeeEmail})
	}

	event := &calendar.Event{
		Summary:     rec.Name,
		Description: eventDescription(rec),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: attendees,
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				// Unique per request so a retried call cannot collide.
				RequestId: fmt.Sprintf("meet-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		Visibility: "private",
	}

	created, err := s.svc.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Webinar: rec.Name, Cause: err}
	}

	link := created.HangoutLink
	var conferenceID string
	if created.ConferenceData != nil {
		conferenceID = created.ConferenceData.ConferenceId
		if link == "" && len(created.ConferenceData.EntryPoints) > 0 {
			link = created.ConferenceData.EntryPoints[0].Uri
		}
	}
	meetingID := conferenceID
	if meetingID == "" {
		meetingID = meetCode(link)
	}

	p.logger.Info("google meet event created",
		zap.String("event_id", created.Id),
		zap.String("webinar", rec.Name),
	)

	payload, _ := json.Marshal(created)
	return &models.MeetingRecord{
		Provider:      p.Name(),
		ExternalID:    created.Id,
		PresenterLink: link,
		AttendeeLink:  link,
		MeetingID:     meetingID,
		Password:      models.NoPasscode,
		Payload:       payload,
	}, nil
}

func eventDescription(rec models.WebinarRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Webinar: %s\n", rec.Name)
	fmt.Fprintf(&b, "Presenter: %s (%s)\n", rec.PresenterName, rec.PresenterEmail)
	if rec.AttendeeName != "" {
		fmt.Fprintf(&b, "Attendee: %s (%s)\n", rec.AttendeeName, rec.AttendeeEmail)
	}
	b.WriteString("\nInvitations are sent separately by the webinar notification system.")
	return b.String()
}

// meetCode extracts the meeting code from a Meet link
// (https://meet.google.com/abc-defg-hij -> abc-defg-hij).
func meetCode(link string) string {
	if link == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(link, "/"), "/")
	return parts[len(parts)-1]
}

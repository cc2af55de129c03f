package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/webinar-wrapper/backend/internal/models"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentEmail
	failTo map[string]error
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failTo[to]; ok {
		return err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func scheduled(id int, name string) models.ScheduledWebinar {
	return models.ScheduledWebinar{
		WebinarRecord: models.WebinarRecord{
			ID:             id,
			Name:           name,
			Date:           "2026-03-14",
			Time:           "15:00",
			PresenterName:  "Ada Lovelace",
			PresenterEmail: "ada@example.com",
			PresenterPhone: "5551234567",
			AttendeeName:   "Grace Hopper",
			AttendeeEmail:  "grace@example.com",
			AttendeePhone:  "915551234567",
		},
		MeetingRecord: models.MeetingRecord{
			Provider:      "zoom",
			ExternalID:    "ext-1",
			PresenterLink: "https://zoom.example/start/1",
			AttendeeLink:  "https://zoom.example/j/1",
			MeetingID:     "81234567890",
			Password:      "p4ss",
		},
	}
}

func TestEmailSendBothRecipients(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	ch := NewEmailChannelWithSender(sender, nil)

	outcomes := ch.Send(context.Background(), scheduled(1, "Go Concurrency Patterns"), IntentSchedule)
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want presenter + attendee", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Status != models.StatusSent {
			t.Errorf("outcome %+v not sent", o)
		}
		if o.Channel != "email" {
			t.Errorf("channel = %q", o.Channel)
		}
	}
	if outcomes[0].Role != models.RolePresenter || outcomes[1].Role != models.RoleAttendee {
		t.Errorf("roles = %q,%q", outcomes[0].Role, outcomes[1].Role)
	}

	// Round-trip: rendered bodies carry name, date and time verbatim.
	for _, m := range sender.sent {
		for _, want := range []string{"Go Concurrency Patterns", "2026-03-14", "15:00"} {
			if !strings.Contains(m.body, want) {
				t.Errorf("body for %s missing %q", m.to, want)
			}
		}
	}

	// Host-only details never reach the attendee.
	attendeeBody := sender.sent[1].body
	if strings.Contains(attendeeBody, "https://zoom.example/start/1") {
		t.Error("attendee body must not contain the host link")
	}
	if !strings.Contains(attendeeBody, "https://zoom.example/j/1") {
		t.Error("attendee body should contain the join link")
	}
}

func TestEmailSubjectsByIntent(t *testing.T) {
	t.Parallel()

	w := scheduled(1, "Go Concurrency Patterns")

	schedSubject, _ := presenterEmail(w, IntentSchedule)
	remindSubject, _ := presenterEmail(w, IntentReminder)
	if !strings.Contains(schedSubject, "has been scheduled") {
		t.Errorf("schedule subject = %q", schedSubject)
	}
	if !strings.Contains(remindSubject, "Reminder") {
		t.Errorf("reminder subject = %q", remindSubject)
	}

	attSched, _ := attendeeEmail(w, IntentSchedule)
	if !strings.Contains(attSched, "invited") {
		t.Errorf("attendee schedule subject = %q", attSched)
	}
}

func TestEmailContinueOnError(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failTo: map[string]error{"ada@example.com": errors.New("mailbox unavailable")}}
	ch := NewEmailChannelWithSender(sender, nil)

	outcomes := ch.Send(context.Background(), scheduled(1, "Go Concurrency Patterns"), IntentReminder)
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if outcomes[0].Status != models.StatusFailed {
		t.Errorf("presenter outcome = %+v, want failed", outcomes[0])
	}
	if !strings.Contains(outcomes[0].Error, "mailbox unavailable") {
		t.Errorf("error detail = %q", outcomes[0].Error)
	}
	if outcomes[1].Status != models.StatusSent {
		t.Errorf("attendee outcome = %+v, want sent despite presenter failure", outcomes[1])
	}
}

func TestEmailSkipsAbsentAttendee(t *testing.T) {
	t.Parallel()

	w := scheduled(1, "Solo Webinar")
	w.AttendeeName = ""
	w.AttendeeEmail = ""

	sender := &fakeSender{}
	ch := NewEmailChannelWithSender(sender, nil)
	outcomes := ch.Send(context.Background(), w, IntentSchedule)
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want presenter only", len(outcomes))
	}
	if outcomes[0].Role != models.RolePresenter {
		t.Errorf("role = %q", outcomes[0].Role)
	}
}

func TestEmailReady(t *testing.T) {
	t.Parallel()

	ch := NewEmailChannelWithSender(nil, nil)
	err := ch.Ready()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	if !strings.Contains(cfgErr.Message, "EMAIL_USER") {
		t.Errorf("message %q should name the missing variables", cfgErr.Message)
	}

	if err := NewEmailChannelWithSender(&fakeSender{}, nil).Ready(); err != nil {
		t.Errorf("configured channel Ready() = %v, want nil", err)
	}
}

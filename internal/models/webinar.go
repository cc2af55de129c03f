package models

import "encoding/json"

// NoPasscode is the meeting password reported for providers that have no
// passcode concept (Google Meet). Notification templates and clients key
// off this literal, so it is part of the API contract.
const NoPasscode = "No password required"

// WebinarRecord is one row of input webinar data, constructed once at the
// system boundary (upload parsing or request body) and never re-inferred
// downstream. Attendee fields and phone numbers are optional.
type WebinarRecord struct {
	ID             int    `json:"id"` // 1-based position within the batch
	Name           string `json:"webinar_name"`
	Date           string `json:"date"` // calendar date, e.g. 2026-03-14
	Time           string `json:"time"` // wall-clock HH:MM, interpreted as UTC
	PresenterName  string `json:"presenter_name"`
	PresenterEmail string `json:"presenter_email"`
	PresenterPhone string `json:"presenter_phone,omitempty"`
	AttendeeName   string `json:"attendee_name,omitempty"`
	AttendeeEmail  string `json:"attendee_email,omitempty"`
	AttendeePhone  string `json:"attendee_phone,omitempty"`
}

// MeetingRecord is the normalized result of provisioning a meeting with a
// video-conferencing provider.
type MeetingRecord struct {
	Provider      string          `json:"provider"` // "zoom" or "google"
	ExternalID    string          `json:"external_id"`
	PresenterLink string          `json:"presenter_link"` // host/start URL
	AttendeeLink  string          `json:"attendee_link"`  // join URL
	MeetingID     string          `json:"meeting_id"`
	Password      string          `json:"meeting_password"` // NoPasscode when the provider issues none
	Payload       json.RawMessage `json:"provider_payload,omitempty"`
}

// ScheduledWebinar is a webinar record with a successfully provisioned
// meeting attached. Immutable once built.
type ScheduledWebinar struct {
	WebinarRecord
	MeetingRecord
}

package models

// Recipient roles for notification outcomes.
const (
	RolePresenter = "presenter"
	RoleAttendee  = "attendee"
)

// Notification delivery statuses.
const (
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusSimulated = "simulated"
)

// NotificationOutcome records one delivery attempt for one recipient of one
// scheduled webinar. Error is set iff Status is "failed".
type NotificationOutcome struct {
	To             string `json:"to"`
	Role           string `json:"role"`
	Channel        string `json:"channel"`
	Status         string `json:"status"`
	WebinarID      int    `json:"webinar_id"`
	MessageID      string `json:"message_id,omitempty"`
	FormattedPhone string `json:"formatted_phone,omitempty"`
	Error          string `json:"error,omitempty"`
}

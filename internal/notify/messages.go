package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/webinar-wrapper/backend/internal/models"
)

// Message rendering for both channels. Every body carries the webinar's
// name, date and time verbatim; host-only details (the start link) never
// appear in attendee messages.

type messageData struct {
	models.ScheduledWebinar
	Reminder bool
}

var presenterEmailTmpl = template.Must(template.New("presenter_email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hello {{.PresenterName}}!</h2>
  {{if .Reminder}}<p>This is a reminder that your webinar is starting soon:</p>{{else}}<p>Your webinar has been successfully scheduled:</p>{{end}}
  <h3>Webinar Details</h3>
  <p><strong>Title:</strong> {{.Name}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  {{if .MeetingID}}<p><strong>Meeting ID/Code:</strong> {{.MeetingID}}</p>{{end}}
  <p><strong>Password:</strong> {{.Password}}</p>
  <p><strong>Your Host Link:</strong> <a href="{{.PresenterLink}}">Join as Host</a></p>
  {{if .AttendeeName}}<h4>Attendee Information</h4>
  <p><strong>Name:</strong> {{.AttendeeName}}</p>
  <p><strong>Email:</strong> {{.AttendeeEmail}}</p>
  {{if .AttendeePhone}}<p><strong>Phone:</strong> {{.AttendeePhone}}</p>{{end}}{{end}}
  <p><strong>Please be ready 10 minutes before the scheduled time.</strong></p>
  <hr>
  <p style="color: #6b7280; font-size: 12px;">This is an automated message from Webinar Wrapper</p>
</div>`))

var attendeeEmailTmpl = template.Must(template.New("attendee_email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hello {{.AttendeeName}}!</h2>
  {{if .Reminder}}<p>This is a reminder about your upcoming webinar:</p>{{else}}<p>You have been invited to a webinar:</p>{{end}}
  <h3>Webinar Details</h3>
  <p><strong>Title:</strong> {{.Name}}</p>
  <p><strong>Presenter:</strong> {{.PresenterName}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  {{if .MeetingID}}<p><strong>Meeting ID/Code:</strong> {{.MeetingID}}</p>{{end}}
  <p><strong>Password:</strong> {{.Password}}</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.AttendeeLink}}" style="background: #16a34a; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; display: inline-block;">Join Webinar</a>
  </div>
  <p><strong>Please join on time to not miss any content.</strong></p>
  <hr>
  <p style="color: #6b7280; font-size: 12px;">This is an automated message from Webinar Wrapper</p>
</div>`))

func presenterEmail(w models.ScheduledWebinar, intent Intent) (subject, body string) {
	if intent == IntentReminder {
		subject = fmt.Sprintf("Reminder: Your webinar %q is coming up!", w.Name)
	} else {
		subject = fmt.Sprintf("Your webinar %q has been scheduled", w.Name)
	}
	return subject, renderEmail(presenterEmailTmpl, w, intent)
}

func attendeeEmail(w models.ScheduledWebinar, intent Intent) (subject, body string) {
	if intent == IntentReminder {
		subject = fmt.Sprintf("Reminder: Webinar %q is starting soon!", w.Name)
	} else {
		subject = fmt.Sprintf("You're invited to webinar %q", w.Name)
	}
	return subject, renderEmail(attendeeEmailTmpl, w, intent)
}

func renderEmail(t *template.Template, w models.ScheduledWebinar, intent Intent) string {
	var b strings.Builder
	// Templates are statically parsed over plain fields; Execute cannot
	// fail for this data shape.
	_ = t.Execute(&b, messageData{ScheduledWebinar: w, Reminder: intent == IntentReminder})
	return b.String()
}

// whatsappMeetingInfo renders the shared meeting-credentials block.
func whatsappMeetingInfo(w models.ScheduledWebinar) string {
	if w.Password != "" && w.Password != models.NoPasscode {
		return fmt.Sprintf("Meeting ID: %s\nPassword: %s", w.MeetingID, w.Password)
	}
	return fmt.Sprintf("Meeting Code: %s\nNo password required", w.MeetingID)
}

func presenterWhatsApp(w models.ScheduledWebinar, intent Intent) string {
	info := whatsappMeetingInfo(w)
	if intent == IntentReminder {
		return fmt.Sprintf("*REMINDER* - Your webinar %q starts soon!\n\nDate: %s\nTime: %s\n\nHost Link: %s\n%s\n\nPlease join 10 minutes early to test your setup!",
			w.Name, w.Date, w.Time, w.PresenterLink, info)
	}
	msg := fmt.Sprintf("*WEBINAR SCHEDULED* - %q\n\nDate: %s\nTime: %s\n", w.Name, w.Date, w.Time)
	if w.AttendeeName != "" {
		msg += fmt.Sprintf("Attendee: %s\n", w.AttendeeName)
	}
	return msg + fmt.Sprintf("\nHost Link: %s\n%s", w.PresenterLink, info)
}

func attendeeWhatsApp(w models.ScheduledWebinar, intent Intent) string {
	info := whatsappMeetingInfo(w)
	if intent == IntentReminder {
		return fmt.Sprintf("*REMINDER* - Webinar %q starts soon!\n\nDate: %s\nTime: %s\nPresenter: %s\n\nJoin Link: %s\n%s\n\nSee you there!",
			w.Name, w.Date, w.Time, w.PresenterName, w.AttendeeLink, info)
	}
	return fmt.Sprintf("*WEBINAR INVITATION* - %q\n\nDate: %s\nTime: %s\nPresenter: %s\n\nJoin Link: %s\n%s",
		w.Name, w.Date, w.Time, w.PresenterName, w.AttendeeLink, info)
}

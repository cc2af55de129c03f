// Package validation checks incoming webinar records before any remote call
// is attempted. Every rule is checked independently so a single response
// reports all violations for a row, each message carrying the 1-indexed row
// number from the uploaded sheet.
package validation

import (
	"fmt"
	"strings"

	"github.com/webinar-wrapper/backend/internal/models"
)

// Purpose selects the rule set for a pipeline stage. Scheduling and email
// require a presenter email; messaging requires a presenter phone instead.
type Purpose int

const (
	Scheduling Purpose = iota
	Email
	Messaging
)

// Validate checks one record against the rule set for the given purpose.
// rowIndex is 0-based; messages report it 1-based.
func Validate(r models.WebinarRecord, rowIndex int, purpose Purpose) (bool, []string) {
	row := rowIndex + 1
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Missing webinar name", row))
	}
	if strings.TrimSpace(r.PresenterName) == "" {
		errs = append(errs, fmt.Sprintf("Row %d: Missing presenter name", row))
	}

	switch purpose {
	case Scheduling:
		if strings.TrimSpace(r.Date) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing date", row))
		}
		if strings.TrimSpace(r.Time) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing time", row))
		}
		if strings.TrimSpace(r.PresenterEmail) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing presenter email", row))
		}
		errs = append(errs, emailFormatErrors(r, row)...)
	case Email:
		if strings.TrimSpace(r.PresenterEmail) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing presenter email", row))
		}
		errs = append(errs, emailFormatErrors(r, row)...)
	case Messaging:
		if strings.TrimSpace(r.PresenterPhone) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing presenter phone", row))
		}
	}

	return len(errs) == 0, errs
}

// Partition splits a batch into valid records and flattened, row-ordered
// validation messages. Records keep their input order.
func Partition(records []models.WebinarRecord, purpose Purpose) ([]models.WebinarRecord, []string) {
	valid := make([]models.WebinarRecord, 0, len(records))
	var errs []string
	for i, r := range records {
		ok, rowErrs := Validate(r, i, purpose)
		if ok {
			valid = append(valid, r)
		} else {
			errs = append(errs, rowErrs...)
		}
	}
	return valid, errs
}

func emailFormatErrors(r models.WebinarRecord, row int) []string {
	var errs []string
	if e := strings.TrimSpace(r.PresenterEmail); e != "" && !ValidEmail(e) {
		errs = append(errs, fmt.Sprintf("Row %d: Invalid presenter email format", row))
	}
	if e := strings.TrimSpace(r.AttendeeEmail); e != "" && !ValidEmail(e) {
		errs = append(errs, fmt.Sprintf("Row %d: Invalid attendee email format", row))
	}
	return errs
}

// ValidEmail reports whether s has a simple local@domain.tld shape: no
// whitespace, exactly one "@", and at least one "." in the domain part.
// Deliberately a shape check, not RFC 5322 parsing.
func ValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n\r") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Package phone normalizes phone numbers before messaging sends. This is a
// deliberate heuristic for operator-entered spreadsheet data, not an E.164
// parser: numbers that already carry a country code (more than 10 digits)
// are kept as-is, everything else gets a configurable default country code.
package phone

import "strings"

// DefaultCountryCode is used when the caller passes an empty country code.
const DefaultCountryCode = "+1"

// Normalize strips all non-digit characters and returns a "+"-prefixed
// number. More than 10 digits is assumed to already include a country code;
// 10 or fewer digits get countryCode prepended. Empty input stays empty.
// Normalize is idempotent: feeding its own output back returns the same
// value for any number that ends up with more than 10 digits.
func Normalize(raw, countryCode string) string {
	digits := stripNonDigits(raw)
	if digits == "" {
		return ""
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if len(digits) > 10 {
		return "+" + digits
	}
	return countryCode + digits
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

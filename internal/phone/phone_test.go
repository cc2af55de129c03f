package phone

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		in          string
		countryCode string
		want        string
	}{
		{name: "ten digits gets default country code", in: "5551234567", want: "+15551234567"},
		{name: "twelve digits kept as-is", in: "915551234567", want: "+915551234567"},
		{name: "formatting stripped", in: "(555) 123-4567", want: "+15551234567"},
		{name: "already prefixed", in: "+1 555 123 4567", want: "+15551234567"},
		{name: "short number gets default country code", in: "12345", want: "+112345"},
		{name: "custom country code", in: "5551234567", countryCode: "+44", want: "+445551234567"},
		{name: "empty stays empty", in: "", want: ""},
		{name: "no digits stays empty", in: "n/a", want: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in, tc.countryCode); got != tc.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tc.in, tc.countryCode, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"5551234567", "915551234567", "+15551234567", "+915551234567"} {
		once := Normalize(in, "")
		twice := Normalize(once, "")
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStrictISO(t *testing.T) {
	// Exact UTC millisecond strings round-trip and parse.
	parsed, err := ParseStrictISO("2026-09-01T08:30:00.000Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC), parsed)

	parsed, err = ParseStrictISO("2026-09-01T08:30:00.123Z")
	assert.NoError(t, err)
	assert.Equal(t, 123*int(time.Millisecond), parsed.Nanosecond())
}

func TestParseStrictISORejectsLooseInputs(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"date only", "2026-09-01"},
		{"no milliseconds", "2026-09-01T08:30:00Z"},
		{"numeric offset", "2026-09-01T08:30:00.000+00:00"},
		{"lowercase z", "2026-09-01t08:30:00.000z"},
		{"trailing garbage", "2026-09-01T08:30:00.000Z extra"},
		{"impossible day", "2026-02-30T08:30:00.000Z"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStrictISO(tc.input)
			assert.Error(t, err, "input %q should be rejected", tc.input)
		})
	}
}

func TestFormatISORoundTrip(t *testing.T) {
	// Whatever FormatISO produces must be accepted back by ParseStrictISO.
	now := time.Now().Truncate(time.Millisecond)
	formatted := FormatISO(now)

	parsed, err := ParseStrictISO(formatted)
	assert.NoError(t, err)
	assert.True(t, now.Equal(parsed), "formatted time should parse back to the same instant")
	assert.Equal(t, formatted, FormatISO(parsed))
}

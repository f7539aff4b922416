package utils

import (
	"fmt"
	"time"
)

// ISOMillisFormat is UTC ISO-8601 with millisecond precision, e.g.
// "2024-01-01T00:00:00.000Z".
const ISOMillisFormat = "2006-01-02T15:04:05.000Z"

// ParseStrictISO parses a publish timestamp. The input must round-trip
// identically through parse and re-serialization: anything that is not an
// exact UTC ISO-8601 millisecond string is rejected.
func ParseStrictISO(value string) (time.Time, error) {
	t, err := time.Parse(ISOMillisFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	if FormatISO(t) != value {
		return time.Time{}, fmt.Errorf("timestamp %q does not round-trip to ISO-8601", value)
	}
	return t, nil
}

// FormatISO serializes t the way stored publish timestamps are returned.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillisFormat)
}

package api

import "time"

// Timestamp layouts the service has been observed to emit. RFC 3339 with a
// zone, and naive ISO 8601 (no zone) from the service's own clock.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a service timestamp; the zero time on failure or empty
// input. Naive timestamps are taken as UTC.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTime renders t the way the service expects timestamps on the wire.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

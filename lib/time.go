package lib

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the boundary representation: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const dateOnlyLayout = "2006-01-02"

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// Now is the storage clock: UTC truncated to what every supported store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ParseTimeBound parses an RFC 3339 timestamp or a YYYY-MM-DD date. A date-only upper
// bound covers the whole day.
func ParseTimeBound(value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a date", ErrInvalidInput, value)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

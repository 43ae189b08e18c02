package domain

import (
	"strings"
	"time"
)

// Timestamps are carried as ISO-8601 strings exactly as stored, so data
// written by other tooling round-trips untouched. They are display-only.

func Stamp(now time.Time) string {
	return now.Format(time.RFC3339)
}

// DateOnly trims a stored timestamp down to its date part. Values without
// a time component pass through unchanged.
func DateOnly(stamp string) string {
	if i := strings.IndexByte(stamp, 'T'); i > 0 {
		return stamp[:i]
	}
	return stamp
}

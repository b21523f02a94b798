// Package greeting contains the pure display-string helpers of the action.
package greeting

import "time"

// timestampLayout renders an instant as ISO-8601 with millisecond
// precision and the UTC designator, e.g. "2023-01-01T12:00:00.000Z".
// A fixed layout is used instead of RFC3339Nano because the latter
// trims trailing zeros and would not always produce three digits.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Format combines a prefix and a subject into the display greeting.
// It is pure and total: empty operands are rendered literally, so
// Format("", "") yields ", !".
func Format(prefix, name string) string {
	return prefix + ", " + name + "!"
}

// Timestamp formats the given instant in UTC per timestampLayout.
// Callers pass in the current time so tests can pin the instant.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

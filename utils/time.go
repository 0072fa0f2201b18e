package utils

import "time"

var location = time.FixedZone("KGT", 6*60*60)

// SetLocation sets the zone used to decide which calendar day "today" is.
// Kyrgyzstan is UTC+6 all year, which is also the fallback.
func SetLocation(name string) {
	if loc, err := time.LoadLocation(name); err == nil {
		location = loc
	}
}

func Location() *time.Location {
	return location
}

// LocalNow returns the current time in the configured zone.
func LocalNow() time.Time {
	return time.Now().In(location)
}

// DateOnly truncates t to midnight UTC of its calendar day (as seen in t's zone).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SQLDate formats t's calendar day as YYYY-MM-DD for comparisons against
// date columns. A string bound compares as a date on postgres regardless of
// the session TimeZone, and as a prefix on SQLite.
func SQLDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate parses YYYY-MM-DD into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

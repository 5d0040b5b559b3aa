package utils

import "time"

// FormatClock renders a time of day the way the recommendation document shows
// departure and arrival, e.g. "06:45 PM".
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("03:04 PM")
}

// FormatMeetingDate renders e.g. "Friday, March 14, 2025 at 07:30 PM".
func FormatMeetingDate(t time.Time) string {
	return t.Format("Monday, January 02, 2006 at 03:04 PM")
}

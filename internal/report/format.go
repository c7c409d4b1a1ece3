package report

import (
	"fmt"
	"time"
)

// FmtMin renders a minute total the way the app displays durations:
// "0 Min", "45 Min", "2 h", "2 h 5 m".
func FmtMin(minutes int64) string {
	if minutes <= 0 {
		return "0 Min"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d Min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d m", h, m)
}

// FmtClock renders the time-of-day of an instant, in UTC, as "15:04".
func FmtClock(t time.Time) string {
	return t.UTC().Format("15:04")
}

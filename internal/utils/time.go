package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutClock = "15:04"
)

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// ParseClock parses a time-of-day string, accepting "HH:MM" and "HH:MM:SS".
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutClock, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

// ClockOrMidnight normalizes a clock string, falling back to "00:00" when
// it cannot be parsed. Data entry stays lenient on purpose: a bad stop time
// must not reject the whole record.
func ClockOrMidnight(s string) string {
	t, err := ParseClock(s)
	if err != nil {
		return "00:00"
	}
	return t.Format(layoutClock)
}

// Duration computes elapsed time between two clock strings. An arrival
// earlier than the departure means the bus arrives the next day, so 24h is
// added before subtracting.
func Duration(departure, arrival string) (time.Duration, error) {
	dep, err := ParseClock(departure)
	if err != nil {
		return 0, fmt.Errorf("departure %q: %w", departure, err)
	}
	arr, err := ParseClock(arrival)
	if err != nil {
		return 0, fmt.Errorf("arrival %q: %w", arrival, err)
	}
	if arr.Before(dep) {
		arr = arr.Add(24 * time.Hour)
	}
	return arr.Sub(dep), nil
}

// FormatDuration renders a duration as "2h 30m".
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, mins)
}

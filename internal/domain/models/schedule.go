package models

import (
	"strings"
	"time"
)

// WeekdayTokens is the canonical Mon..Sun order used for storage and
// normalization.
var WeekdayTokens = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// NormalizeWeekday maps "mon", "MONDAY", "Tue" etc. onto a canonical token.
// Returns "" when the input is not a weekday.
func NormalizeWeekday(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return ""
	}
	prefix := strings.ToLower(s[:3])
	for _, tok := range WeekdayTokens {
		if strings.ToLower(tok) == prefix {
			return tok
		}
	}
	return ""
}

type calendarKind int

const (
	calendarNone calendarKind = iota
	calendarDate
	calendarDays
)

// Calendar says when a schedule runs. It is a tagged variant: a schedule is
// either bound to one specific date or recurs on a fixed weekday set. The
// zero value is a legacy record with neither, which no date or weekday
// filter ever matches.
type Calendar struct {
	kind calendarKind
	date time.Time
	days map[string]bool
}

// DateBound builds a calendar that runs on exactly one date.
func DateBound(date time.Time) Calendar {
	y, m, d := date.Date()
	return Calendar{kind: calendarDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Recurring builds a calendar that runs every week on the given days.
// Unrecognized tokens are dropped; an empty result degrades to the
// unfilterable zero calendar.
func Recurring(days []string) Calendar {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		if tok := NormalizeWeekday(d); tok != "" {
			set[tok] = true
		}
	}
	if len(set) == 0 {
		return Calendar{}
	}
	return Calendar{kind: calendarDays, days: set}
}

// IsDateBound reports whether the calendar is tied to one specific date.
func (c Calendar) IsDateBound() bool { return c.kind == calendarDate }

// IsRecurring reports whether the calendar recurs on weekdays.
func (c Calendar) IsRecurring() bool { return c.kind == calendarDays }

// Filterable reports whether any date or weekday filter can match this
// calendar at all.
func (c Calendar) Filterable() bool { return c.kind != calendarNone }

// Date returns the bound date for date-bound calendars.
func (c Calendar) Date() (time.Time, bool) {
	return c.date, c.kind == calendarDate
}

// Days returns the recurring weekday tokens in Mon..Sun order.
func (c Calendar) Days() []string {
	if c.kind != calendarDays {
		return nil
	}
	out := make([]string, 0, len(c.days))
	for _, tok := range WeekdayTokens {
		if c.days[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// RunsOn resolves a full date. Date-bound calendars match only their exact
// date, never via the weekday; recurring calendars match the date's
// weekday; the zero calendar matches nothing.
func (c Calendar) RunsOn(date time.Time) bool {
	switch c.kind {
	case calendarDate:
		y1, m1, d1 := c.date.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case calendarDays:
		return c.days[date.Weekday().String()[:3]]
	default:
		return false
	}
}

// RunsOnDay resolves a bare weekday token with no date attached. Only
// recurring calendars can match; a date-bound schedule is not weekday
// matchable.
func (c Calendar) RunsOnDay(day string) bool {
	if c.kind != calendarDays {
		return false
	}
	tok := NormalizeWeekday(day)
	if tok == "" {
		return false
	}
	return c.days[tok]
}

// Schedule is one repeatable or date-specific trip of a bus along a route.
// RouteID is zero when the route was deleted; such schedules survive but
// cannot be matched by stop searches.
type Schedule struct {
	ID            int64
	BusID         int64
	RouteID       int64
	DepartureTime string // clock "HH:MM"
	ArrivalTime   string // clock "HH:MM"; earlier than departure means next-day arrival
	Calendar      Calendar
}

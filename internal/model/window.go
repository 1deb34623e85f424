package model

import (
	"fmt"
	"time"
)

// TimeWindow is the half-open interval [Start, End) a summary covers.
// Windows are replaced wholesale on every date-selection event or period
// change, never mutated in place.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Period is a named window resolved against the current wall clock.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodYear      Period = "year"
)

// ParsePeriod validates a config-supplied period keyword. Empty defaults to
// "today".
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Window resolves the period against now, in now's location. Weeks start on
// Monday; month and year windows start on the first of the period.
func (p Period) Window(now time.Time) TimeWindow {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch p {
	case PeriodYesterday:
		return TimeWindow{Start: midnight.AddDate(0, 0, -1), End: midnight}
	case PeriodWeek:
		// time.Weekday puts Sunday at 0; shift so Monday is the week start.
		offset := (int(now.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return TimeWindow{Start: start, End: start.AddDate(0, 0, 7)}
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return TimeWindow{Start: start, End: start.AddDate(0, 1, 0)}
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return TimeWindow{Start: start, End: start.AddDate(1, 0, 0)}
	default: // today
		return TimeWindow{Start: midnight, End: midnight.AddDate(0, 0, 1)}
	}
}

package habit

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoQualifyingPeriod is returned by FromDate for the weekday and
// weekendday resolutions when no qualifying day has elapsed between a
// habit's start and the requested date. It signals "not yet applicable",
// not bad input.
var ErrNoQualifyingPeriod = errors.New("no qualifying periods have passed since start")

// ErrBeforeStart is returned by FromDate when the requested date precedes
// the habit's start date.
var ErrBeforeStart = errors.New("date is before habit start")

// TimePeriod is a canonical, resolution-specific interval. Index is a
// zero-based ordinal counted from a habit's start date; Date is the
// period's anchor date. Weeks anchor on Mondays, months on the 1st.
type TimePeriod struct {
	Resolution Resolution `json:"resolution"`
	Index      int        `json:"index"`
	Date       time.Time  `json:"date"`
}

// FromDate returns the TimePeriod containing the given date, counted from
// start at the given resolution.
func FromDate(start time.Time, res Resolution, when time.Time) (TimePeriod, error) {
	if when.Before(start) {
		return TimePeriod{}, fmt.Errorf("%w: %s < %s", ErrBeforeStart, FormatDate(when), FormatDate(start))
	}

	switch res {
	case ResolutionDay:
		return TimePeriod{res, DaysBetween(start, when), when}, nil

	case ResolutionWeek:
		idx := DaysBetween(WeekStart(start), WeekStart(when)) / 7
		return TimePeriod{res, idx, WeekStart(when)}, nil

	case ResolutionMonth:
		idx := 12*(when.Year()-start.Year()) + int(when.Month()) - int(start.Month())
		return TimePeriod{res, idx, Date(when.Year(), when.Month(), 1)}, nil

	case ResolutionWeekday:
		numDays := DaysBetween(start, when) + 1
		idx := numDays - WeekendDayCount(start, when) - 1
		if idx < 0 {
			return TimePeriod{}, fmt.Errorf("weekday %w", ErrNoQualifyingPeriod)
		}
		anchor := when
		if wd := WeekdayIndex(when); wd > 4 {
			// Weekend dates belong to the most recent Friday.
			anchor = when.AddDate(0, 0, 4-wd)
		}
		return TimePeriod{res, idx, anchor}, nil

	case ResolutionWeekendDay:
		idx := WeekendDayCount(start, when) - 1
		if idx < 0 {
			return TimePeriod{}, fmt.Errorf("weekendday %w", ErrNoQualifyingPeriod)
		}
		anchor := when
		if wd := WeekdayIndex(when); wd < 5 {
			// Weekday dates belong to the most recent Sunday.
			anchor = when.AddDate(0, 0, -(wd + 1))
		}
		return TimePeriod{res, idx, anchor}, nil
	}

	return TimePeriod{}, fmt.Errorf("unknown resolution %q", res)
}

// FromIndex returns the TimePeriod with the given index counted from start.
// It is the inverse of FromDate at the index/anchor level: converting a
// date to an index and the index back yields the canonical anchor of the
// period containing that date.
func FromIndex(start time.Time, res Resolution, index int) (TimePeriod, error) {
	if index < 0 {
		return TimePeriod{}, fmt.Errorf("negative period index %d", index)
	}

	switch res {
	case ResolutionDay:
		return TimePeriod{res, index, start.AddDate(0, 0, index)}, nil

	case ResolutionWeek:
		return TimePeriod{res, index, WeekStart(start).AddDate(0, 0, 7*index)}, nil

	case ResolutionMonth:
		return TimePeriod{res, index, Date(start.Year(), start.Month(), 1).AddDate(0, index, 0)}, nil

	case ResolutionWeekday:
		// Offset index by the weekdays of start's week already spent, then
		// lay indices over the 5-day grid of Monday-aligned weeks.
		offset := min(WeekdayIndex(start), 5)
		n := index + offset
		anchor := WeekStart(start).AddDate(0, 0, 7*(n/5)+n%5)
		return TimePeriod{res, index, anchor}, nil

	case ResolutionWeekendDay:
		offset := 0
		if WeekdayIndex(start) == 6 {
			offset = 1
		}
		n := index + offset
		anchor := WeekStart(start).AddDate(0, 0, 5+7*(n/2)+n%2)
		return TimePeriod{res, index, anchor}, nil
	}

	return TimePeriod{}, fmt.Errorf("unknown resolution %q", res)
}

// FriendlyDateRelativeTo renders the period's anchor date as a human label
// from the point of view of the given date.
func (tp TimePeriod) FriendlyDateRelativeTo(rel time.Time) string {
	if tp.Resolution == ResolutionWeek {
		return fmt.Sprintf("Week of %s %s", tp.Date.Month(), ordinal(tp.Date.Day()))
	}

	switch days := DaysBetween(tp.Date, rel); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return tp.Date.Weekday().String()
	default:
		return fmt.Sprintf("%s %s", tp.Date.Month(), ordinal(tp.Date.Day()))
	}
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

package habit

import "time"

// Dates in this package are naive calendar dates: time.Time values at
// midnight UTC. Date and ParseDate produce them; everything else assumes
// its inputs are already normalised.

const dateFormat = "2006-01-02"

// Date returns the calendar date for the given year, month and day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(dateFormat)
}

// ToDate truncates an arbitrary instant to its calendar date.
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Date(y, m, d)
}

// WeekdayIndex maps a date to its weekday with Monday as 0 and Sunday as 6.
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -WeekdayIndex(d))
}

// DaysBetween returns the number of calendar days from 'from' to 'to'.
// Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// WeekendDayCount counts the days in [from, to] inclusive that fall on a
// Saturday or Sunday. It is computed from whole weeks between the two
// Monday-aligned weeks with corrections for the partial first and last
// weeks, and agrees with counting day by day. Callers must pass to >= from.
func WeekendDayCount(from, to time.Time) int {
	n := 2 * DaysBetween(WeekStart(from), WeekStart(to)) / 7

	// A Sunday start loses the Saturday counted for its week.
	if WeekdayIndex(from) == 6 {
		n--
	}
	switch WeekdayIndex(to) {
	case 5:
		n++
	case 6:
		n += 2
	}
	return n
}

package habit

import (
	"errors"
	"testing"
)

// Weeks start on a Monday, months on the first. A date of "" means FromDate
// must fail with ErrNoQualifyingPeriod: e.g. a habit created on a Tuesday
// with weekendday resolution has no valid TimePeriod until the Saturday.
var periodFixtures = []struct {
	start      string
	when       string
	resolution Resolution
	index      int
	date       string
}{
	{"2013-03-03", "2013-03-05", ResolutionDay, 2, "2013-03-05"},
	{"2013-03-03", "2013-03-05", ResolutionWeekday, 1, "2013-03-05"},
	{"2013-03-03", "2013-03-05", ResolutionWeekendDay, 0, "2013-03-03"},
	{"2013-03-03", "2013-03-05", ResolutionWeek, 1, "2013-03-04"},
	{"2013-03-03", "2013-03-05", ResolutionMonth, 0, "2013-03-01"},
	{"2013-03-04", "2013-03-05", ResolutionDay, 1, "2013-03-05"},
	{"2013-03-04", "2013-03-05", ResolutionWeekday, 1, "2013-03-05"},
	{"2013-03-04", "2013-03-05", ResolutionWeekendDay, 0, ""},
	{"2013-03-04", "2013-03-05", ResolutionWeek, 0, "2013-03-04"},
	{"2013-03-04", "2013-03-05", ResolutionMonth, 0, "2013-03-01"},
	{"2013-03-04", "2013-03-11", ResolutionDay, 7, "2013-03-11"},
	{"2013-03-04", "2013-03-11", ResolutionWeekday, 5, "2013-03-11"},
	{"2013-03-04", "2013-03-11", ResolutionWeekendDay, 1, "2013-03-10"},
	{"2013-03-04", "2013-03-11", ResolutionWeek, 1, "2013-03-11"},
	{"2013-03-04", "2013-03-11", ResolutionMonth, 0, "2013-03-01"},
	{"2013-03-04", "2013-03-16", ResolutionDay, 12, "2013-03-16"},
	{"2013-03-04", "2013-03-16", ResolutionWeekday, 9, "2013-03-15"},
	{"2013-03-04", "2013-03-16", ResolutionWeekendDay, 2, "2013-03-16"},
	{"2013-03-04", "2013-03-16", ResolutionWeek, 1, "2013-03-11"},
	{"2013-03-04", "2013-03-16", ResolutionMonth, 0, "2013-03-01"},
	{"2013-03-04", "2013-03-28", ResolutionWeek, 3, "2013-03-25"},
	{"2013-03-04", "2013-03-28", ResolutionMonth, 0, "2013-03-01"},
	{"2013-03-04", "2013-04-01", ResolutionWeek, 4, "2013-04-01"},
	{"2013-03-04", "2013-04-01", ResolutionMonth, 1, "2013-04-01"},
	{"2013-03-07", "2013-03-10", ResolutionWeekday, 1, "2013-03-08"},
	{"2013-03-07", "2013-03-09", ResolutionWeekday, 1, "2013-03-08"},
	{"2013-03-07", "2013-03-13", ResolutionWeekday, 4, "2013-03-13"},
	{"2013-03-07", "2013-03-20", ResolutionWeekday, 9, "2013-03-20"},
	{"2013-03-07", "2013-03-27", ResolutionWeekday, 14, "2013-03-27"},
	{"2013-03-07", "2013-03-23", ResolutionWeekday, 11, "2013-03-22"},
	{"2013-03-07", "2013-03-09", ResolutionWeekendDay, 0, "2013-03-09"},
	{"2013-03-09", "2013-03-10", ResolutionWeekday, 0, ""},
	{"2013-03-09", "2013-03-10", ResolutionWeekendDay, 1, "2013-03-10"},
	{"2013-03-10", "2013-03-10", ResolutionWeekendDay, 0, "2013-03-10"},
	{"2013-03-10", "2013-03-16", ResolutionWeekendDay, 1, "2013-03-16"},
	{"2013-03-10", "2013-03-17", ResolutionWeekendDay, 2, "2013-03-17"},
	{"2013-03-10", "2013-03-23", ResolutionWeekendDay, 3, "2013-03-23"},
	{"2013-03-10", "2013-03-26", ResolutionWeekendDay, 4, "2013-03-24"},
}

func TestFromDate(t *testing.T) {
	for _, f := range periodFixtures {
		start := mustDate(t, f.start)
		when := mustDate(t, f.when)

		tp, err := FromDate(start, f.resolution, when)
		if f.date == "" {
			if !errors.Is(err, ErrNoQualifyingPeriod) {
				t.Errorf("FromDate(%s, %s, %s): want ErrNoQualifyingPeriod, got (%+v, %v)",
					f.start, f.resolution, f.when, tp, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FromDate(%s, %s, %s): %v", f.start, f.resolution, f.when, err)
			continue
		}
		want := TimePeriod{f.resolution, f.index, mustDate(t, f.date)}
		if tp != want {
			t.Errorf("FromDate(%s, %s, %s) = %+v, want %+v", f.start, f.resolution, f.when, tp, want)
		}
	}
}

func TestFromIndex(t *testing.T) {
	for _, f := range periodFixtures {
		if f.date == "" {
			continue
		}
		start := mustDate(t, f.start)

		tp, err := FromIndex(start, f.resolution, f.index)
		if err != nil {
			t.Errorf("FromIndex(%s, %s, %d): %v", f.start, f.resolution, f.index, err)
			continue
		}
		want := TimePeriod{f.resolution, f.index, mustDate(t, f.date)}
		if tp != want {
			t.Errorf("FromIndex(%s, %s, %d) = %+v, want %+v", f.start, f.resolution, f.index, tp, want)
		}
	}
}

// Converting a date to an index and that index back must yield the canonical
// anchor for the period containing the date.
func TestRoundTrip(t *testing.T) {
	start := mustDate(t, "2013-03-03")
	for _, res := range Resolutions {
		for i := 0; i < 60; i++ {
			when := start.AddDate(0, 0, i)

			fromDate, err := FromDate(start, res, when)
			if errors.Is(err, ErrNoQualifyingPeriod) {
				continue
			}
			if err != nil {
				t.Fatalf("FromDate(%s, %s): %v", res, FormatDate(when), err)
			}

			fromIndex, err := FromIndex(start, res, fromDate.Index)
			if err != nil {
				t.Fatalf("FromIndex(%s, %d): %v", res, fromDate.Index, err)
			}
			if !fromIndex.Date.Equal(fromDate.Date) {
				t.Errorf("%s %s: FromIndex anchor %s != FromDate anchor %s",
					res, FormatDate(when), FormatDate(fromIndex.Date), FormatDate(fromDate.Date))
			}
		}
	}
}

func TestFromDateMonotonic(t *testing.T) {
	start := mustDate(t, "2013-03-06")
	for _, res := range Resolutions {
		prev := -1
		for i := 0; i < 60; i++ {
			when := start.AddDate(0, 0, i)
			tp, err := FromDate(start, res, when)
			if errors.Is(err, ErrNoQualifyingPeriod) {
				continue
			}
			if err != nil {
				t.Fatalf("FromDate(%s, %s): %v", res, FormatDate(when), err)
			}
			if tp.Index < prev {
				t.Errorf("%s: index went backwards at %s: %d < %d", res, FormatDate(when), tp.Index, prev)
			}
			prev = tp.Index
		}
	}
}

func TestFromDateBeforeStart(t *testing.T) {
	start := mustDate(t, "2013-03-04")
	for _, res := range Resolutions {
		_, err := FromDate(start, res, mustDate(t, "2013-03-03"))
		if !errors.Is(err, ErrBeforeStart) {
			t.Errorf("%s: want ErrBeforeStart, got %v", res, err)
		}
	}
}

func TestFromDateUnknownResolution(t *testing.T) {
	start := mustDate(t, "2013-03-04")
	if _, err := FromDate(start, Resolution("fortnight"), start); err == nil {
		t.Error("want error for unknown resolution")
	}
	if _, err := FromIndex(start, Resolution("fortnight"), 0); err == nil {
		t.Error("want error for unknown resolution")
	}
}

func TestFriendlyDateRelativeTo(t *testing.T) {
	tests := []struct {
		date       string
		resolution Resolution
		relative   string
		want       string
	}{
		{"2013-03-05", ResolutionDay, "2013-03-05", "Today"},
		{"2013-03-04", ResolutionDay, "2013-03-05", "Yesterday"},
		{"2013-03-03", ResolutionDay, "2013-03-05", "Sunday"},
		{"2013-03-02", ResolutionDay, "2013-03-05", "Saturday"},
		{"2013-03-01", ResolutionDay, "2013-03-05", "Friday"},
		{"2013-02-28", ResolutionDay, "2013-03-05", "Thursday"},
		{"2013-02-27", ResolutionDay, "2013-03-05", "Wednesday"},
		{"2013-02-26", ResolutionDay, "2013-03-05", "February 26th"},
		{"2013-03-05", ResolutionDay, "2013-03-15", "March 5th"},
		{"2013-03-05", ResolutionWeek, "2013-03-15", "Week of March 5th"},
		{"2013-03-01", ResolutionMonth, "2013-05-15", "March 1st"},
		{"2013-03-22", ResolutionDay, "2013-04-15", "March 22nd"},
		{"2013-03-23", ResolutionDay, "2013-04-15", "March 23rd"},
		{"2013-03-11", ResolutionDay, "2013-04-15", "March 11th"},
	}
	for _, tt := range tests {
		tp := TimePeriod{tt.resolution, 0, mustDate(t, tt.date)}
		if got := tp.FriendlyDateRelativeTo(mustDate(t, tt.relative)); got != tt.want {
			t.Errorf("FriendlyDateRelativeTo(%s, %s, %s) = %q, want %q",
				tt.date, tt.resolution, tt.relative, got, tt.want)
		}
	}
}

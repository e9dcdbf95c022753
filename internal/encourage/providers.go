package encourage

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

// Static always has something nice to say. Not in Default: a provider that
// always fires drowns out the meaningful ones, so callers opt in.
func Static(messages ...string) Provider {
	return func(h habit.Habit, src Source) (string, error) {
		if len(messages) == 0 {
			return "", nil
		}
		return messages[rand.IntN(len(messages))], nil
	}
}

// LongestStreakSucceeding fires when the most recent streak of on-target
// periods beats every earlier streak.
func LongestStreakSucceeding(h habit.Habit, src Source) (string, error) {
	record, err := latestStreakIsRecord(h, src, nil)
	if err != nil || !record {
		return "", err
	}
	return "Longest succeeding streak. You're on a roll!", nil
}

// LongestStreakNonZero is the same check counting any non-zero period.
func LongestStreakNonZero(h habit.Habit, src Source) (string, error) {
	record, err := latestStreakIsRecord(h, src, engine.NonZero)
	if err != nil || !record {
		return "", err
	}
	return "Longest streak where you did anything at all. Keep it up!", nil
}

// BestDayEver fires when the latest period at the habit's own (day-grained)
// resolution beats every earlier one.
func BestDayEver(h habit.Habit, src Source) (string, error) {
	if h.Resolution == habit.ResolutionWeek || h.Resolution == habit.ResolutionMonth {
		return "", nil
	}
	best, err := latestBucketIsBest(h, src, h.Resolution)
	if err != nil || !best {
		return "", err
	}
	return "BEST. DAY. EVERRR!", nil
}

func BestWeekEver(h habit.Habit, src Source) (string, error) {
	if h.Resolution == habit.ResolutionMonth {
		return "", nil
	}
	best, err := latestBucketIsBest(h, src, habit.ResolutionWeek)
	if err != nil || !best {
		return "", err
	}
	return "BEST. WEEK. EVERRR!", nil
}

func BestMonthEver(h habit.Habit, src Source) (string, error) {
	best, err := latestBucketIsBest(h, src, habit.ResolutionMonth)
	if err != nil || !best {
		return "", err
	}
	return "BEST. MONTH. EVERRR!", nil
}

// BetterThanBefore fires when the latest period immediately follows the
// previous one and improves on it.
func BetterThanBefore(h habit.Habit, src Source) (string, error) {
	buckets, err := src.GetBucketsAt(h, h.Resolution, storage.Descending)
	if err != nil {
		return "", err
	}
	if len(buckets) < 2 {
		return "", nil
	}
	if buckets[0].Index-buckets[1].Index != 1 {
		return "", nil
	}
	if buckets[0].Value <= buckets[1].Value {
		return "", nil
	}
	return "Better than last time. Onwards and upwards!", nil
}

// EveryDayThisMonth fires on the last day of a month when a daily habit has
// a non-zero entry for every day of that month.
func EveryDayThisMonth(h habit.Habit, src Source) (string, error) {
	if h.Resolution != habit.ResolutionDay {
		return "", nil
	}

	buckets, err := src.GetBucketsAt(h, h.Resolution, storage.Descending)
	if err != nil {
		return "", err
	}
	if len(buckets) < 28 {
		return "", nil
	}

	latest := buckets[0]
	latestDate := h.Start.AddDate(0, 0, latest.Index)

	// Fire only once we have just entered the last bucket of the month.
	// Compare months with != because they are not monotonic across years.
	nextDate := latestDate.AddDate(0, 0, 1)
	if latestDate.Month() == nextDate.Month() {
		return "", nil
	}

	monthDays := latestDate.Day()
	minIndex := latest.Index - (monthDays - 1)
	seen := 0
	for _, b := range buckets {
		if b.Index < minIndex {
			break
		}
		if b.Value == 0 {
			return "", nil
		}
		seen++
	}
	if seen < monthDays {
		return "", nil
	}

	return fmt.Sprintf("Wahey! You've done your thing every day in %s!", latestDate.Month()), nil
}

// EveryWeekdayThisMonth fires on the last Monday (Tuesday, ...) of a month
// when a daily habit has a non-zero entry for every one of that weekday in
// the month. The weekday of a day-resolution bucket is recovered from its
// index: (index + start weekday offset) mod 7.
func EveryWeekdayThisMonth(h habit.Habit, src Source) (string, error) {
	if h.Resolution != habit.ResolutionDay {
		return "", nil
	}

	buckets, err := src.GetBucketsAt(h, h.Resolution, storage.Descending)
	if err != nil {
		return "", err
	}
	if len(buckets) == 0 {
		return "", nil
	}

	latest := buckets[0]
	latestDate := h.Start.AddDate(0, 0, latest.Index)
	weekday := habit.WeekdayIndex(latestDate)

	occurrences := weekdayDatesInMonth(latestDate)
	if occurrences[len(occurrences)-1] != latestDate.Day() {
		// Not the last such weekday of the month yet.
		return "", nil
	}

	minIndex := latest.Index - (latestDate.Day() - 1)
	startOffset := habit.WeekdayIndex(h.Start)
	matched := 0
	for _, b := range buckets {
		if b.Index < minIndex {
			break
		}
		if (b.Index+startOffset)%7 != weekday {
			continue
		}
		if b.Value > 0 {
			matched++
		}
	}
	if matched < len(occurrences) {
		return "", nil
	}

	return fmt.Sprintf("Congratulations, you've done your task every %s this %s!",
		latestDate.Weekday(), latestDate.Month()), nil
}

// weekdayDatesInMonth lists the days of d's month that share d's weekday,
// ascending.
func weekdayDatesInMonth(d time.Time) []int {
	first := habit.Date(d.Year(), d.Month(), 1)
	firstOffset := habit.WeekdayIndex(first)
	target := habit.WeekdayIndex(d)

	firstHit := 1 + (target-firstOffset+7)%7
	lastDay := first.AddDate(0, 1, -1).Day()

	var days []int
	for day := firstHit; day <= lastDay; day += 7 {
		days = append(days, day)
	}
	return days
}

func latestStreakIsRecord(h habit.Habit, src Source, success engine.SuccessFunc) (bool, error) {
	streaks, err := src.GetStreaks(h, success)
	if err != nil {
		return false, err
	}
	if len(streaks) == 0 {
		return false, nil
	}
	latest := streaks[0]
	for _, s := range streaks[1:] {
		if s >= latest {
			return false, nil
		}
	}
	return true, nil
}

func latestBucketIsBest(h habit.Habit, src Source, res habit.Resolution) (bool, error) {
	buckets, err := src.GetBucketsAt(h, res, storage.Descending)
	if err != nil {
		return false, err
	}
	if len(buckets) < 2 {
		return false, nil
	}
	latest := buckets[0]
	for _, b := range buckets[1:] {
		if b.Value >= latest.Value {
			return false, nil
		}
	}
	return true, nil
}

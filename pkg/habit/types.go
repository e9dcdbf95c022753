package habit

import (
	"fmt"
	"time"
)

// Resolution is the granularity at which a habit's occurrences are bucketed.
type Resolution string

const (
	ResolutionDay        Resolution = "day"
	ResolutionWeekday    Resolution = "weekday"
	ResolutionWeekendDay Resolution = "weekendday"
	ResolutionWeek       Resolution = "week"
	ResolutionMonth      Resolution = "month"
)

// Resolutions lists every valid resolution, finest first.
var Resolutions = []Resolution{
	ResolutionDay,
	ResolutionWeekday,
	ResolutionWeekendDay,
	ResolutionWeek,
	ResolutionMonth,
}

func (r Resolution) Valid() bool {
	switch r {
	case ResolutionDay, ResolutionWeekday, ResolutionWeekendDay, ResolutionWeek, ResolutionMonth:
		return true
	}
	return false
}

// Coarseness orders resolutions: day/weekday/weekendday < week < month.
func (r Resolution) Coarseness() int {
	switch r {
	case ResolutionWeek:
		return 1
	case ResolutionMonth:
		return 2
	}
	return 0
}

// Habit is a tracked recurring action and its configuration. Start is
// immutable once buckets exist: every bucket index is counted from it.
type Habit struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Resolution  Resolution `json:"resolution"`
	TargetValue int        `json:"target_value"`
	Archived    bool       `json:"archived"`

	// ReminderDays is a weekday bitmask (bit n set means remind on weekday
	// n, Monday=0). Zero means no reminders.
	ReminderDays     int       `json:"reminder_days"`
	ReminderHour     int       `json:"reminder_hour"`
	ReminderLastSent time.Time `json:"reminder_last_sent"`
}

// Bucket is the persisted cumulative value for one habit at one resolution
// and index. A missing bucket means "no data", which is distinct from a
// bucket recorded with value zero.
type Bucket struct {
	HabitID    string     `json:"habit_id"`
	Resolution Resolution `json:"resolution"`
	Index      int        `json:"index"`
	Value      int        `json:"value"`
}

// SetReminderSchedule configures reminders from a 7-element weekday mask
// (Monday first) and an hour of day.
func (h *Habit) SetReminderSchedule(weekdays []bool, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", hour)
	}
	if len(weekdays) != 7 {
		return fmt.Errorf("weekday mask must have 7 entries, got %d", len(weekdays))
	}
	days := 0
	for i, on := range weekdays {
		if on {
			days |= 1 << i
		}
	}
	h.ReminderDays = days
	h.ReminderHour = hour
	return nil
}

// ReminderSchedule returns the weekday mask (Monday first) and hour set by
// SetReminderSchedule.
func (h *Habit) ReminderSchedule() ([]bool, int) {
	weekdays := make([]bool, 7)
	for i := range weekdays {
		weekdays[i] = h.ReminderDays&(1<<i) != 0
	}
	return weekdays, h.ReminderHour
}

// RemindsAt reports whether the habit wants a reminder on the given weekday
// (Monday=0) at the given hour.
func (h *Habit) RemindsAt(weekday, hour int) bool {
	return h.ReminderDays&(1<<weekday) != 0 && h.ReminderHour == hour
}

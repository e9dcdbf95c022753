package remind

import (
	"fmt"
	"time"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/logger"
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

// Notifier delivers reminder and data-collection emails.
type Notifier interface {
	SendReminder(h habit.Habit) error
	SendDataCollection(h habit.Habit, periods []habit.TimePeriod) error
}

// Due filters the habits whose reminder schedule matches the given weekday
// (Monday=0) and hour. Archived habits never get reminders.
func Due(habits []habit.Habit, weekday, hour int) []habit.Habit {
	var out []habit.Habit
	for _, h := range habits {
		if h.Archived {
			continue
		}
		if h.RemindsAt(weekday, hour) {
			out = append(out, h)
		}
	}
	return out
}

// SendPending sends every reminder due at now. Meant to run once an hour,
// shortly after the top of the hour. A habit is skipped when a reminder was
// already sent this hour, so re-runs within the hour are safe.
func SendPending(store storage.Store, n Notifier, now time.Time) error {
	hour := now.UTC().Truncate(time.Hour)
	day := habit.ToDate(now)

	habits, err := store.ListHabits()
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}

	for _, h := range Due(habits, habit.WeekdayIndex(day), hour.Hour()) {
		if !h.ReminderLastSent.IsZero() && !h.ReminderLastSent.Before(hour) {
			continue
		}
		h.ReminderLastSent = hour
		if err := store.PutHabit(h); err != nil {
			return fmt.Errorf("mark reminder sent for %s: %w", h.ID, err)
		}
		if err := n.SendReminder(h); err != nil {
			return fmt.Errorf("send reminder for %s: %w", h.ID, err)
		}
		logger.Info("Sent reminder", "habit_id", h.ID, "hour", hour)
	}
	return nil
}

// SendDataCollections prompts for unentered periods: every unarchived habit
// with a backlog as of today gets a data-collection email listing the
// periods to fill in. Meant to run once a day.
func SendDataCollections(store storage.Store, e *engine.Engine, n Notifier, today time.Time) error {
	habits, err := store.ListHabits()
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}

	for _, h := range habits {
		if h.Archived {
			continue
		}
		periods, err := e.GetUnenteredTimePeriods(h, today)
		if err != nil {
			return fmt.Errorf("backlog for %s: %w", h.ID, err)
		}
		if len(periods) == 0 {
			continue
		}
		if err := n.SendDataCollection(h, periods); err != nil {
			return fmt.Errorf("send data collection for %s: %w", h.ID, err)
		}
		logger.Info("Sent data collection prompt", "habit_id", h.ID, "periods", len(periods))
	}
	return nil
}

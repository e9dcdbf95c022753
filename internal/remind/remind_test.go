package remind

import (
	"testing"
	"time"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/storage/memory"
	"github.com/devfort/behabitual/pkg/habit"
)

func schedule(days ...int) []bool {
	mask := make([]bool, 7)
	for _, d := range days {
		mask[d] = true
	}
	return mask
}

func newScheduledHabit(t *testing.T, id string, days []int, hour int) habit.Habit {
	t.Helper()
	h := habit.Habit{
		ID:          id,
		Description: "Do a thing. On a day.",
		Start:       habit.Date(2013, time.March, 4),
		Resolution:  habit.ResolutionDay,
		TargetValue: 1,
	}
	if len(days) > 0 {
		if err := h.SetReminderSchedule(schedule(days...), hour); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func TestDue_NoSchedule(t *testing.T) {
	habits := []habit.Habit{newScheduledHabit(t, "h1", nil, 0)}

	if got := Due(habits, 0, 12); len(got) != 0 {
		t.Fatalf("unscheduled habit should never be due, got %v", got)
	}
}

func TestDue_Mondays(t *testing.T) {
	habits := []habit.Habit{newScheduledHabit(t, "h1", []int{0}, 12)}

	if got := Due(habits, 0, 12); len(got) != 1 || got[0].ID != "h1" {
		t.Fatalf("want h1 due Monday 12:00, got %v", got)
	}
	if got := Due(habits, 0, 6); len(got) != 0 {
		t.Fatalf("wrong hour should not be due, got %v", got)
	}
	if got := Due(habits, 1, 12); len(got) != 0 {
		t.Fatalf("Tuesday should not be due, got %v", got)
	}
}

func TestDue_MultipleHabits(t *testing.T) {
	habits := []habit.Habit{
		newScheduledHabit(t, "h1", []int{0}, 16),
		newScheduledHabit(t, "h2", []int{0, 2, 4}, 16),
	}

	if got := Due(habits, 0, 16); len(got) != 2 {
		t.Fatalf("want both habits due Monday 16:00, got %v", got)
	}
	if got := Due(habits, 2, 16); len(got) != 1 || got[0].ID != "h2" {
		t.Fatalf("want only h2 due Wednesday, got %v", got)
	}
	if got := Due(habits, 0, 0); len(got) != 0 {
		t.Fatalf("midnight should not be due, got %v", got)
	}
}

func TestDue_SkipsArchived(t *testing.T) {
	h := newScheduledHabit(t, "h1", []int{0}, 12)
	h.Archived = true

	if got := Due([]habit.Habit{h}, 0, 12); len(got) != 0 {
		t.Fatalf("archived habit should not be due, got %v", got)
	}
}

func TestSendPending(t *testing.T) {
	store := memory.New()
	// 2013-03-04 is a Monday.
	h := newScheduledHabit(t, "h1", []int{0}, 12)
	if err := store.PutHabit(h); err != nil {
		t.Fatal(err)
	}

	n := newMockNotifier()
	now := time.Date(2013, time.March, 4, 12, 7, 0, 0, time.UTC)

	if err := SendPending(store, n, now); err != nil {
		t.Fatal(err)
	}
	if len(n.reminders) != 1 || n.reminders[0].ID != "h1" {
		t.Fatalf("want one reminder for h1, got %v", n.reminders)
	}

	// A second run in the same hour must not send again.
	if err := SendPending(store, n, now.Add(20*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if len(n.reminders) != 1 {
		t.Fatalf("reminder sent twice in one hour: %v", n.reminders)
	}

	// A week later it fires again.
	if err := SendPending(store, n, now.AddDate(0, 0, 7)); err != nil {
		t.Fatal(err)
	}
	if len(n.reminders) != 2 {
		t.Fatalf("want a second reminder a week later, got %d", len(n.reminders))
	}
}

func TestSendPending_WrongHour(t *testing.T) {
	store := memory.New()
	h := newScheduledHabit(t, "h1", []int{0}, 12)
	if err := store.PutHabit(h); err != nil {
		t.Fatal(err)
	}

	n := newMockNotifier()
	now := time.Date(2013, time.March, 4, 9, 0, 0, 0, time.UTC)

	if err := SendPending(store, n, now); err != nil {
		t.Fatal(err)
	}
	if len(n.reminders) != 0 {
		t.Fatalf("nothing due at 9:00, got %v", n.reminders)
	}
}

func TestSendDataCollections(t *testing.T) {
	store := memory.New()
	e := engine.New(store)

	behind := newScheduledHabit(t, "behind", nil, 0)
	current := newScheduledHabit(t, "current", nil, 0)
	archived := newScheduledHabit(t, "archived", nil, 0)
	archived.Archived = true

	for _, h := range []habit.Habit{behind, current, archived} {
		if err := store.PutHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	today := habit.Date(2013, time.March, 6)
	tp, err := e.GetTimePeriod(current, today)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Record(current, tp, 2); err != nil {
		t.Fatal(err)
	}

	n := newMockNotifier()
	if err := SendDataCollections(store, e, n, today); err != nil {
		t.Fatal(err)
	}

	if len(n.collections) != 1 {
		t.Fatalf("want one data collection email, got %v", n.collections)
	}
	periods, ok := n.collections["behind"]
	if !ok {
		t.Fatal("want prompt for the habit with a backlog")
	}
	if len(periods) != 3 {
		t.Fatalf("want 3 backlog periods, got %d", len(periods))
	}
}

package memory

import (
	"testing"
	"time"

	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

func TestHabitRoundTrip(t *testing.T) {
	store := New()

	h := habit.Habit{ID: "h1", Start: habit.Date(2013, time.March, 4), Resolution: habit.ResolutionDay}
	if err := store.PutHabit(h); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}

	got, found, err := store.GetHabit("h1")
	if err != nil || !found {
		t.Fatalf("GetHabit: found=%v err=%v", found, err)
	}
	if got.ID != "h1" {
		t.Fatalf("got %+v", got)
	}

	_, found, err = store.GetHabit("missing")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if found {
		t.Fatal("expected missing habit")
	}
}

func TestIncrementAccumulates(t *testing.T) {
	store := New()

	if err := store.IncrementBucket("h1", habit.ResolutionDay, 2, 5); err != nil {
		t.Fatal(err)
	}
	if err := store.IncrementBucket("h1", habit.ResolutionDay, 2, 2); err != nil {
		t.Fatal(err)
	}

	b, found, err := store.GetBucket("h1", habit.ResolutionDay, 2)
	if err != nil || !found {
		t.Fatalf("GetBucket: found=%v err=%v", found, err)
	}
	if b.Value != 7 {
		t.Fatalf("expected 7, got %d", b.Value)
	}
}

func TestListBucketsOrdering(t *testing.T) {
	store := New()

	for _, idx := range []int{4, 1, 9} {
		if err := store.IncrementBucket("h1", habit.ResolutionWeek, idx, 1); err != nil {
			t.Fatal(err)
		}
	}

	desc, err := store.ListBuckets("h1", habit.ResolutionWeek, storage.Descending)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{9, 4, 1}
	for i, b := range desc {
		if b.Index != want[i] {
			t.Errorf("desc[%d].Index = %d, want %d", i, b.Index, want[i])
		}
	}
}

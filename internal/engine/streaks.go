package engine

import (
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

// SuccessFunc decides whether a bucket counts towards a streak.
type SuccessFunc func(habit.Bucket) bool

// Succeeding returns the default predicate: a period succeeds when its
// recorded value reaches the habit's target.
func Succeeding(h habit.Habit) SuccessFunc {
	return func(b habit.Bucket) bool { return b.Value >= h.TargetValue }
}

// NonZero counts any period with a recorded value above zero.
func NonZero(b habit.Bucket) bool {
	return b.Value > 0
}

// GetStreaks returns the lengths of maximal runs of consecutive successful
// periods at the habit's primary resolution, most recent streak first. An
// index gap between buckets means data is missing and breaks a streak even
// before the gapped bucket is evaluated. Each call recomputes from current
// bucket state.
func (e *Engine) GetStreaks(h habit.Habit, success SuccessFunc) ([]int, error) {
	if success == nil {
		success = Succeeding(h)
	}

	buckets, err := e.store.ListBuckets(h.ID, h.Resolution, storage.Descending)
	if err != nil {
		return nil, err
	}

	var streaks []int
	run := 0
	prev := -1

	flush := func() {
		if run > 0 {
			streaks = append(streaks, run)
			run = 0
		}
	}

	for _, b := range buckets {
		if prev >= 0 && b.Index != prev-1 {
			flush()
		}
		if success(b) {
			run++
		} else {
			flush()
		}
		prev = b.Index
	}
	flush()

	return streaks, nil
}

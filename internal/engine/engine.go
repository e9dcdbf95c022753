package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/devfort/behabitual/internal/logger"
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

// Validation errors. These are caller mistakes and are surfaced before any
// store mutation, so a failed Record has no partial effect.
var (
	ErrNegativeValue      = errors.New("value must not be negative")
	ErrResolutionMismatch = errors.New("time period resolution does not match habit resolution")
)

// RecordObserver is invoked synchronously after a successful Record.
type RecordObserver func(h habit.Habit, tp habit.TimePeriod, value int)

// Engine maintains the aggregate buckets for habits across their primary
// resolution and the coarser week/month roll-ups.
type Engine struct {
	store     storage.Store
	observers []RecordObserver
}

func New(store storage.Store, observers ...RecordObserver) *Engine {
	return &Engine{store: store, observers: observers}
}

// GetCurrentTimePeriod returns the habit's period containing today.
func (e *Engine) GetCurrentTimePeriod(h habit.Habit, today time.Time) (habit.TimePeriod, error) {
	return habit.FromDate(h.Start, h.Resolution, today)
}

// GetTimePeriod returns the habit's period containing the given date at its
// primary resolution.
func (e *Engine) GetTimePeriod(h habit.Habit, when time.Time) (habit.TimePeriod, error) {
	return habit.FromDate(h.Start, h.Resolution, when)
}

// GetTimePeriodAt is GetTimePeriod with an explicit resolution override.
func (e *Engine) GetTimePeriodAt(h habit.Habit, res habit.Resolution, when time.Time) (habit.TimePeriod, error) {
	return habit.FromDate(h.Start, res, when)
}

// Record adds value to the habit's bucket for the given period, then fans
// the same value out to the coarser roll-ups: day-grained habits roll up to
// week and month, week-grained habits to month only.
//
// The increments are separate store transactions. If a roll-up fails after
// the primary increment succeeded, the returned error names the resolution
// that failed so just that increment can be re-applied; blindly retrying
// the whole Record would double count.
func (e *Engine) Record(h habit.Habit, tp habit.TimePeriod, value int) error {
	if value < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeValue, value)
	}
	if tp.Resolution != h.Resolution {
		return fmt.Errorf("%w: got %s, habit is %s", ErrResolutionMismatch, tp.Resolution, h.Resolution)
	}

	if err := e.store.IncrementBucket(h.ID, tp.Resolution, tp.Index, value); err != nil {
		return fmt.Errorf("increment %s bucket: %w", tp.Resolution, err)
	}

	// Roll-ups are derived from the period's anchor date, so a Sunday data
	// point on a weekday habit lands in the anchor Friday's week.
	if h.Resolution.Coarseness() < habit.ResolutionWeek.Coarseness() {
		if err := e.rollUp(h, habit.ResolutionWeek, tp.Date, value); err != nil {
			return err
		}
	}
	if h.Resolution != habit.ResolutionMonth {
		if err := e.rollUp(h, habit.ResolutionMonth, tp.Date, value); err != nil {
			return err
		}
	}

	logger.Debug("Recorded habit value",
		"habit_id", h.ID, "resolution", tp.Resolution, "index", tp.Index, "value", value)

	for _, observe := range e.observers {
		observe(h, tp, value)
	}
	return nil
}

func (e *Engine) rollUp(h habit.Habit, res habit.Resolution, anchor time.Time, value int) error {
	tp, err := habit.FromDate(h.Start, res, anchor)
	if err != nil {
		return fmt.Errorf("compute %s roll-up: %w", res, err)
	}
	if err := e.store.IncrementBucket(h.ID, res, tp.Index, value); err != nil {
		return fmt.Errorf("increment %s roll-up: %w", res, err)
	}
	return nil
}

// GetBuckets returns the habit's buckets at its primary resolution.
func (e *Engine) GetBuckets(h habit.Habit, order storage.Order) ([]habit.Bucket, error) {
	return e.store.ListBuckets(h.ID, h.Resolution, order)
}

// GetBucketsAt returns the habit's buckets at an arbitrary resolution, for
// reporting over the week/month roll-ups.
func (e *Engine) GetBucketsAt(h habit.Habit, res habit.Resolution, order storage.Order) ([]habit.Bucket, error) {
	return e.store.ListBuckets(h.ID, res, order)
}

// GetUnenteredTimePeriods lists the periods between the habit's most recent
// bucket and asOf, most recent first: the backlog a UI should prompt for.
// A habit with a bucket for the current period has no backlog. A weekday or
// weekendday habit with no qualifying period yet has no backlog either.
func (e *Engine) GetUnenteredTimePeriods(h habit.Habit, asOf time.Time) ([]habit.TimePeriod, error) {
	current, err := habit.FromDate(h.Start, h.Resolution, asOf)
	if errors.Is(err, habit.ErrNoQualifyingPeriod) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	buckets, err := e.store.ListBuckets(h.ID, h.Resolution, storage.Descending)
	if err != nil {
		return nil, err
	}

	from := 0
	if len(buckets) > 0 {
		if buckets[0].Index >= current.Index {
			return nil, nil
		}
		from = buckets[0].Index + 1
	}

	periods := make([]habit.TimePeriod, 0, current.Index-from+1)
	for i := current.Index; i >= from; i-- {
		tp, err := habit.FromIndex(h.Start, h.Resolution, i)
		if err != nil {
			return nil, err
		}
		periods = append(periods, tp)
	}
	return periods, nil
}

// IsUpToDate reports whether the habit has no backlog as of the given date.
func (e *Engine) IsUpToDate(h habit.Habit, asOf time.Time) (bool, error) {
	periods, err := e.GetUnenteredTimePeriods(h, asOf)
	if err != nil {
		return false, err
	}
	return len(periods) == 0, nil
}

package storage

import "github.com/devfort/behabitual/pkg/habit"

// Order selects bucket iteration order by index.
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Store persists habit configurations and their aggregate buckets. Buckets
// are unique on (habit, resolution, index) and only ever mutated by
// addition: IncrementBucket must apply the delta atomically so concurrent
// increments on the same key never lose an update.
type Store interface {
	PutHabit(h habit.Habit) error
	GetHabit(id string) (habit.Habit, bool, error)
	ListHabits() ([]habit.Habit, error)

	IncrementBucket(habitID string, res habit.Resolution, index, delta int) error
	GetBucket(habitID string, res habit.Resolution, index int) (habit.Bucket, bool, error)
	ListBuckets(habitID string, res habit.Resolution, order Order) ([]habit.Bucket, error)

	Close() error
}

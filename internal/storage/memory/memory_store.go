package memory

import (
	"sort"
	"sync"

	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

type seriesKey struct {
	habitID    string
	resolution habit.Resolution
}

// Store is an in-memory storage.Store used by tests and throwaway servers.
type Store struct {
	mu     sync.Mutex
	habits map[string]habit.Habit
	series map[seriesKey]map[int]int
}

func New() *Store {
	return &Store{
		habits: make(map[string]habit.Habit),
		series: make(map[seriesKey]map[int]int),
	}
}

func (s *Store) PutHabit(h habit.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits[h.ID] = h
	return nil
}

func (s *Store) GetHabit(id string) (habit.Habit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	return h, ok, nil
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]habit.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) IncrementBucket(habitID string, res habit.Resolution, index, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := seriesKey{habitID, res}
	if s.series[key] == nil {
		s.series[key] = make(map[int]int)
	}
	s.series[key][index] += delta
	return nil
}

func (s *Store) GetBucket(habitID string, res habit.Resolution, index int) (habit.Bucket, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.series[seriesKey{habitID, res}]
	if !ok {
		return habit.Bucket{}, false, nil
	}
	v, ok := values[index]
	if !ok {
		return habit.Bucket{}, false, nil
	}
	return habit.Bucket{HabitID: habitID, Resolution: res, Index: index, Value: v}, true, nil
}

func (s *Store) ListBuckets(habitID string, res habit.Resolution, order storage.Order) ([]habit.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.series[seriesKey{habitID, res}]
	out := make([]habit.Bucket, 0, len(values))
	for idx, v := range values {
		out = append(out, habit.Bucket{HabitID: habitID, Resolution: res, Index: idx, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if order == storage.Descending {
			return out[i].Index > out[j].Index
		}
		return out[i].Index < out[j].Index
	})
	return out, nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)

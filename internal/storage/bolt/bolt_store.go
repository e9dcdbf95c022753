package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	rootBucket   = "habits"
	configKey    = "config"
	seriesBucket = "series"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func habitBucket(tx *bbolt.Tx, habitID string, create bool) (*bbolt.Bucket, error) {
	root := tx.Bucket([]byte(rootBucket))
	if create {
		return root.CreateBucketIfNotExists([]byte(habitID))
	}
	return root.Bucket([]byte(habitID)), nil
}

// seriesFor returns the per-resolution bucket holding the index series for
// a habit. Keys are big-endian indices so cursor order is index order.
func seriesFor(hb *bbolt.Bucket, res habit.Resolution, create bool) (*bbolt.Bucket, error) {
	if create {
		series, err := hb.CreateBucketIfNotExists([]byte(seriesBucket))
		if err != nil {
			return nil, err
		}
		return series.CreateBucketIfNotExists([]byte(res))
	}
	series := hb.Bucket([]byte(seriesBucket))
	if series == nil {
		return nil, nil
	}
	return series.Bucket([]byte(res)), nil
}

func indexKey(index int) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(index))
	return k[:]
}

func encodeValue(v int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func decodeValue(b []byte) int {
	return int(binary.BigEndian.Uint64(b))
}

func (s *Store) PutHabit(h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		hb, err := habitBucket(tx, h.ID, true)
		if err != nil {
			return err
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return hb.Put([]byte(configKey), val)
	})
}

func (s *Store) GetHabit(id string) (habit.Habit, bool, error) {
	var h habit.Habit
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb, _ := habitBucket(tx, id, false)
		if hb == nil {
			return nil
		}
		val := hb.Get([]byte(configKey))
		if val == nil {
			return nil
		}
		if err := json.Unmarshal(val, &h); err != nil {
			return err
		}
		found = true
		return nil
	})
	return h, found, err
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	var out []habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket([]byte(rootBucket))
		return root.ForEachBucket(func(k []byte) error {
			hb := root.Bucket(k)
			val := hb.Get([]byte(configKey))
			if val == nil {
				return nil
			}
			var h habit.Habit
			if err := json.Unmarshal(val, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	return out, err
}

// IncrementBucket applies an insert-or-add upsert. The whole read-modify-
// write runs inside one bbolt update transaction, so concurrent increments
// on the same key serialise and the stored value is the sum of all applied
// deltas.
func (s *Store) IncrementBucket(habitID string, res habit.Resolution, index, delta int) error {
	if index < 0 {
		return fmt.Errorf("negative bucket index %d", index)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		hb, err := habitBucket(tx, habitID, true)
		if err != nil {
			return err
		}
		series, err := seriesFor(hb, res, true)
		if err != nil {
			return err
		}
		key := indexKey(index)
		value := delta
		if cur := series.Get(key); cur != nil {
			value += decodeValue(cur)
		}
		return series.Put(key, encodeValue(value))
	})
}

func (s *Store) GetBucket(habitID string, res habit.Resolution, index int) (habit.Bucket, bool, error) {
	var b habit.Bucket
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb, _ := habitBucket(tx, habitID, false)
		if hb == nil {
			return nil
		}
		series, err := seriesFor(hb, res, false)
		if err != nil || series == nil {
			return err
		}
		val := series.Get(indexKey(index))
		if val == nil {
			return nil
		}
		b = habit.Bucket{HabitID: habitID, Resolution: res, Index: index, Value: decodeValue(val)}
		found = true
		return nil
	})
	return b, found, err
}

func (s *Store) ListBuckets(habitID string, res habit.Resolution, order storage.Order) ([]habit.Bucket, error) {
	var out []habit.Bucket
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb, _ := habitBucket(tx, habitID, false)
		if hb == nil {
			return nil
		}
		series, err := seriesFor(hb, res, false)
		if err != nil || series == nil {
			return err
		}

		c := series.Cursor()
		next := c.Next
		k, v := c.First()
		if order == storage.Descending {
			next = c.Prev
			k, v = c.Last()
		}
		for ; k != nil; k, v = next() {
			out = append(out, habit.Bucket{
				HabitID:    habitID,
				Resolution: res,
				Index:      int(binary.BigEndian.Uint64(k)),
				Value:      decodeValue(v),
			})
		}
		return nil
	})
	return out, err
}

var _ storage.Store = (*Store)(nil)

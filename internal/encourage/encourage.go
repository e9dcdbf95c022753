package encourage

import (
	"math/rand/v2"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/logger"
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
)

// Source is the read side a provider inspects. *engine.Engine satisfies it.
type Source interface {
	GetStreaks(h habit.Habit, success engine.SuccessFunc) ([]int, error)
	GetBucketsAt(h habit.Habit, res habit.Resolution, order storage.Order) ([]habit.Bucket, error)
}

// Provider inspects a habit's history and returns an encouragement, or ""
// when it has nothing to say.
type Provider func(h habit.Habit, src Source) (string, error)

// Registry holds an explicit, caller-owned list of providers. Selection
// shuffles the list and takes the first non-empty answer.
type Registry struct {
	providers []Provider
}

func New(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Default returns a registry with every built-in provider.
func Default() *Registry {
	return New(
		LongestStreakSucceeding,
		LongestStreakNonZero,
		BestDayEver,
		BestWeekEver,
		BestMonthEver,
		BetterThanBefore,
		EveryDayThisMonth,
		EveryWeekdayThisMonth,
	)
}

// Encouragement returns an encouragement for the habit, or "" if no
// provider has one. Provider errors are logged and skipped so one broken
// read never silences the rest.
func (r *Registry) Encouragement(h habit.Habit, src Source) string {
	order := rand.Perm(len(r.providers))
	for _, i := range order {
		msg, err := r.providers[i](h, src)
		if err != nil {
			logger.Warn("Encouragement provider failed", "habit_id", h.ID, "error", err)
			continue
		}
		if msg != "" {
			return msg
		}
	}
	return ""
}

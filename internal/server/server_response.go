package server

import (
	"time"

	"github.com/devfort/behabitual/pkg/habit"
)

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type HabitGetResponse struct {
	Habit    habit.Habit `json:"habit"`
	UpToDate bool        `json:"up_to_date"`
}

type CreateHabitRequest struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	Resolution  string `json:"resolution"`
	TargetValue int    `json:"target_value"`
}

type RecordRequest struct {
	Date  string `json:"date"`
	Value *int   `json:"value"`
}

type RecordResponse struct {
	HabitID       string         `json:"habit_id"`
	Period        PeriodResponse `json:"period"`
	Value         int            `json:"value"`
	Encouragement string         `json:"encouragement,omitempty"`
}

type PeriodResponse struct {
	Resolution habit.Resolution `json:"resolution"`
	Index      int              `json:"index"`
	Date       string           `json:"date"`
	Label      string           `json:"label"`
}

type StreaksResponse struct {
	HabitID string `json:"habit_id"`
	Streaks []int  `json:"streaks"`
}

type BacklogResponse struct {
	HabitID string           `json:"habit_id"`
	Periods []PeriodResponse `json:"periods"`
}

type BucketsResponse struct {
	HabitID    string           `json:"habit_id"`
	Resolution habit.Resolution `json:"resolution"`
	Buckets    []habit.Bucket   `json:"buckets"`
}

type EncouragementResponse struct {
	HabitID       string `json:"habit_id"`
	Encouragement string `json:"encouragement,omitempty"`
}

func newPeriodResponse(tp habit.TimePeriod, rel time.Time) PeriodResponse {
	return PeriodResponse{
		Resolution: tp.Resolution,
		Index:      tp.Index,
		Date:       habit.FormatDate(tp.Date),
		Label:      tp.FriendlyDateRelativeTo(rel),
	}
}

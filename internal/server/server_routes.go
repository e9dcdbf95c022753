package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/logger"
	"github.com/devfort/behabitual/internal/storage"
	"github.com/devfort/behabitual/pkg/habit"
	"github.com/devfort/behabitual/pkg/versioninfo"
)

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	h := habit.Habit{
		ID:          uuid.NewString(),
		Description: req.Description,
		Resolution:  habit.Resolution(req.Resolution),
		TargetValue: req.TargetValue,
	}
	if req.Resolution == "" {
		h.Resolution = habit.ResolutionDay
	}
	if req.TargetValue == 0 {
		h.TargetValue = 1
	}
	if req.Start == "" {
		h.Start = habit.ToDate(time.Now())
	} else {
		start, err := habit.ParseDate(req.Start)
		if err != nil {
			http.Error(w, `{"error":"start must be a YYYY-MM-DD date"}`, http.StatusBadRequest)
			return
		}
		h.Start = start
	}

	if err := validateHabit(h); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		return
	}

	logger.Info("Creating habit", "habit_id", h.ID, "resolution", h.Resolution, "start", habit.FormatDate(h.Start))
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to store habit", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	s.updateActiveHabits()

	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize create habit response", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listHabits(w http.ResponseWriter, _ *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	active := habits[:0:0]
	for _, h := range habits {
		if !h.Archived {
			active = append(active, h)
		}
	}

	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: active}); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

// loadHabit resolves the habit in the URL, writing the error response
// itself when the habit cannot be served.
func (s *Server) loadHabit(w http.ResponseWriter, r *http.Request) (habit.Habit, bool) {
	id := chi.URLParam(r, "habit_id")
	if id == "" {
		http.Error(w, `{"error":"habit id is required"}`, http.StatusBadRequest)
		return habit.Habit{}, false
	}
	h, found, err := s.store.GetHabit(id)
	if err != nil {
		logger.Error("Failed to load habit", "habit_id", id, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return habit.Habit{}, false
	}
	if !found {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return habit.Habit{}, false
	}
	return h, true
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	upToDate, err := s.engine.IsUpToDate(h, habit.ToDate(time.Now()))
	if err != nil {
		logger.Error("Failed to compute backlog", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"error computing backlog"}`, http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, HabitGetResponse{Habit: h, UpToDate: upToDate}); err != nil {
		logger.Error("Failed to serialize get habit response", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) recordHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in record request", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, `{"error":"value is required"}`, http.StatusBadRequest)
		return
	}

	when := habit.ToDate(time.Now())
	if req.Date != "" {
		var err error
		if when, err = habit.ParseDate(req.Date); err != nil {
			http.Error(w, `{"error":"date must be a YYYY-MM-DD date"}`, http.StatusBadRequest)
			return
		}
	}

	tp, err := s.engine.GetTimePeriod(h, when)
	if err != nil {
		s.writePeriodError(w, h, err)
		return
	}

	if err := s.engine.Record(h, tp, *req.Value); err != nil {
		switch {
		case errors.Is(err, engine.ErrNegativeValue), errors.Is(err, engine.ErrResolutionMismatch):
			http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		default:
			logger.Error("Failed to record value", "habit_id", h.ID, "error", err)
			http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		}
		return
	}

	resp := RecordResponse{
		HabitID:       h.ID,
		Period:        newPeriodResponse(tp, habit.ToDate(time.Now())),
		Value:         *req.Value,
		Encouragement: s.encouragements.Encouragement(h, s.engine),
	}
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error("Failed to serialize record response", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) archiveHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	h.Archived = req.Archived
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to archive habit", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	logger.Info("Habit archive state changed", "habit_id", h.ID, "archived", h.Archived)
	s.updateActiveHabits()

	if err := writeJSON(w, http.StatusOK, h); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getStreaks(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	streaks, err := s.engine.GetStreaks(h, nil)
	if err != nil {
		logger.Error("Failed to compute streaks", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"error computing streaks"}`, http.StatusInternalServerError)
		return
	}
	if streaks == nil {
		streaks = []int{}
	}

	if err := writeJSON(w, http.StatusOK, StreaksResponse{HabitID: h.ID, Streaks: streaks}); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getBacklog(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	today := habit.ToDate(time.Now())
	if d := r.URL.Query().Get("as_of"); d != "" {
		var err error
		if today, err = habit.ParseDate(d); err != nil {
			http.Error(w, `{"error":"as_of must be a YYYY-MM-DD date"}`, http.StatusBadRequest)
			return
		}
	}

	periods, err := s.engine.GetUnenteredTimePeriods(h, today)
	if err != nil {
		s.writePeriodError(w, h, err)
		return
	}

	resp := BacklogResponse{HabitID: h.ID, Periods: make([]PeriodResponse, 0, len(periods))}
	for _, tp := range periods {
		resp.Periods = append(resp.Periods, newPeriodResponse(tp, today))
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getBuckets(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	res := h.Resolution
	if q := r.URL.Query().Get("resolution"); q != "" {
		res = habit.Resolution(q)
		if !res.Valid() {
			http.Error(w, `{"error":"unknown resolution"}`, http.StatusBadRequest)
			return
		}
	}
	order := storage.Ascending
	if r.URL.Query().Get("order") == string(storage.Descending) {
		order = storage.Descending
	}

	buckets, err := s.engine.GetBucketsAt(h, res, order)
	if err != nil {
		logger.Error("Failed to list buckets", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	if buckets == nil {
		buckets = []habit.Bucket{}
	}

	resp := BucketsResponse{HabitID: h.ID, Resolution: res, Buckets: buckets}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getEncouragement(w http.ResponseWriter, r *http.Request) {
	h, ok := s.loadHabit(w, r)
	if !ok {
		return
	}

	resp := EncouragementResponse{
		HabitID:       h.ID,
		Encouragement: s.encouragements.Encouragement(h, s.engine),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

// writePeriodError maps period computation failures onto status codes:
// "not yet applicable" is 422, a date the caller got wrong is 400.
func (s *Server) writePeriodError(w http.ResponseWriter, h habit.Habit, err error) {
	switch {
	case errors.Is(err, habit.ErrNoQualifyingPeriod):
		http.Error(w, `{"error":"no qualifying periods have passed yet"}`, http.StatusUnprocessableEntity)
	case errors.Is(err, habit.ErrBeforeStart):
		http.Error(w, `{"error":"date is before the habit start"}`, http.StatusBadRequest)
	default:
		logger.Error("Failed to compute time period", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"error computing time period"}`, http.StatusInternalServerError)
	}
}

func (s *Server) updateActiveHabits() {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Warn("Failed to update active habits metric", "error", err)
		return
	}
	count := 0
	for _, h := range habits {
		if !h.Archived {
			count++
		}
	}
	activeHabits.Set(float64(count))
}

func validateHabit(h habit.Habit) error {
	const maxDescriptionLength = 140

	if len(h.Description) == 0 || len(h.Description) > maxDescriptionLength {
		return fmt.Errorf("bad habit description: must be 1-%d characters", maxDescriptionLength)
	}
	if !h.Resolution.Valid() {
		return fmt.Errorf("unknown resolution %q", h.Resolution)
	}
	if h.TargetValue < 1 {
		return fmt.Errorf("target value must be at least 1")
	}
	return nil
}

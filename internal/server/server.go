package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devfort/behabitual/internal/encourage"
	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/storage"
)

type Server struct {
	store          storage.Store
	engine         *engine.Engine
	encouragements *encourage.Registry
}

func New(store storage.Store) *Server {
	return &Server{
		store:          store,
		engine:         engine.New(store, observeRecord),
		encouragements: encourage.Default(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/habits", func(r chi.Router) {
		r.Post("/", s.createHabit)
		r.Get("/", s.listHabits)
		r.Get("/{habit_id}", s.getHabit)
		r.Post("/{habit_id}/record", s.recordHabit)
		r.Post("/{habit_id}/archive", s.archiveHabit)
		r.Get("/{habit_id}/streaks", s.getStreaks)
		r.Get("/{habit_id}/backlog", s.getBacklog)
		r.Get("/{habit_id}/buckets", s.getBuckets)
		r.Get("/{habit_id}/encouragement", s.getEncouragement)
	})
	return r
}

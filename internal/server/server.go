package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fennor/taper/internal/store"
	"github.com/fennor/taper/internal/tracker"
)

// Server is the taper HTTP API server. The tracker is not safe for
// concurrent use, so handlers serialize access through mu.
type Server struct {
	mu      sync.Mutex
	tracker *tracker.Tracker

	db      *store.DB
	runID   string
	router  chi.Router
	version string
	started time.Time
	samples int
}

// New creates a new Server around an opened tracker. db may be nil
// and runID empty when run history is disabled.
func New(tr *tracker.Tracker, db *store.DB, runID, version string, samples int) *Server {
	if samples < 2 {
		samples = 100
	}
	s := &Server{
		tracker: tr,
		db:      db,
		runID:   runID,
		version: version,
		started: time.Now(),
		samples: samples,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/expected", s.handleExpected)
		r.Get("/series", s.handleSeries)
		r.Get("/observations", s.handleListObservations)
		r.Post("/observations", s.handleAddObservation)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	anchored := s.tracker.Anchored()
	count := len(s.tracker.Observations())
	s.mu.Unlock()

	dbOK := false
	if s.db != nil && s.db.Ping() == nil {
		dbOK = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       "ok",
		"version":      s.version,
		"uptime":       time.Since(s.started).Seconds(),
		"db":           dbOK,
		"anchored":     anchored,
		"observations": count,
		"start_year":   s.tracker.StartYear(),
		"end_year":     s.tracker.EndYear(),
		"log_path":     s.tracker.LogPath(),
	})
}

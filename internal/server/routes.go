package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fennor/taper/internal/decay"
	"github.com/fennor/taper/internal/tracker"
)

func (s *Server) handleAddObservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  *int     `json:"year"`
		Value *float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Year == nil || req.Value == nil {
		http.Error(w, `{"error":"year and value required"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	res, err := s.tracker.AddObservation(*req.Year, *req.Value)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, tracker.ErrYearOutOfRange) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	// Run history is best-effort; never fail the request over it.
	if s.db != nil && s.runID != "" {
		if err := s.db.RecordAdded(s.runID); err != nil {
			log.Printf("record added for run %s: %v", s.runID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"year":           res.Year,
		"value":          res.Value,
		"expected":       res.Expected,
		"assessment":     res.Assessment.String(),
		"recommendation": res.Assessment.Recommendation(),
		"anchored":       res.Anchored,
	})
}

func (s *Server) handleExpected(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("year")
	if q == "" {
		http.Error(w, `{"error":"year parameter required"}`, http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(q)
	if err != nil {
		http.Error(w, `{"error":"year must be an integer"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	expected, err := s.tracker.ExpectedAt(year)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, decay.ErrNotAnchored) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"year":     year,
		"expected": expected,
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	curve, err := s.tracker.Curve(s.samples)
	obs := s.tracker.Observations()
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, decay.ErrNotAnchored) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type sampleJSON struct {
		Year  float64 `json:"year"`
		Value float64 `json:"value"`
	}

	line := make([]sampleJSON, len(curve))
	for i, p := range curve {
		line[i] = sampleJSON{Year: p.Year, Value: p.Value}
	}
	points := make([]sampleJSON, len(obs))
	for i, o := range obs {
		points[i] = sampleJSON{Year: float64(o.Year), Value: o.Value}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"samples": len(line),
		"line":    line,
		"points":  points,
	})
}

func (s *Server) handleListObservations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	obs := s.tracker.Observations()
	anchored := s.tracker.Anchored()
	s.mu.Unlock()

	type obsJSON struct {
		Year  int     `json:"year"`
		Value float64 `json:"value"`
	}

	out := make([]obsJSON, len(obs))
	for i, o := range obs {
		out[i] = obsJSON{Year: o.Year, Value: o.Value}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":        len(out),
		"anchored":     anchored,
		"observations": out,
	})
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennor/taper/internal/tracker"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	tr, err := tracker.New(tracker.Options{
		StartYear: 1836,
		EndYear:   1936,
		Mode:      tracker.ModeNew,
		LogPath:   filepath.Join(t.TempDir(), "decay_data.csv"),
	})
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	return New(tr, nil, "", "test-version", 100)
}

func postJSON(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	w := getJSON(t, srv, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["anchored"] != false {
		t.Errorf("anchored = %v, want false", body["anchored"])
	}
}

func TestAddObservation(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/observations", `{"year": 1836, "value": 100.0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["anchored"] != true {
		t.Errorf("anchored = %v, want true", body["anchored"])
	}
	if body["expected"] != 100.0 {
		t.Errorf("expected = %v, want 100", body["expected"])
	}
	if body["assessment"] != "on track" {
		t.Errorf("assessment = %v, want on track", body["assessment"])
	}
	if body["recommendation"] != "Decay is on track." {
		t.Errorf("recommendation = %v", body["recommendation"])
	}
}

func TestAddObservationClassifies(t *testing.T) {
	srv := testServer(t)

	postJSON(t, srv, "/api/observations", `{"year": 1836, "value": 100.0}`)
	w := postJSON(t, srv, "/api/observations", `{"year": 1900, "value": 10.0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["expected"] != 36.0 {
		t.Errorf("expected = %v, want 36", body["expected"])
	}
	if body["assessment"] != "below trend" {
		t.Errorf("assessment = %v, want below trend", body["assessment"])
	}
	if body["recommendation"] != "Amortize decay." {
		t.Errorf("recommendation = %v", body["recommendation"])
	}
}

func TestAddObservationBadRequests(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"year": `},
		{"missing year", `{"value": 10.0}`},
		{"missing value", `{"year": 1850}`},
		{"year out of range", `{"year": 2000, "value": 10.0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, srv, "/api/observations", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestExpectedEndpoint(t *testing.T) {
	srv := testServer(t)

	// Unanchored: no model to evaluate yet
	w := getJSON(t, srv, "/api/expected?year=1900")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}

	postJSON(t, srv, "/api/observations", `{"year": 1836, "value": 100.0}`)

	w = getJSON(t, srv, "/api/expected?year=1900")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["expected"] != 36.0 {
		t.Errorf("expected = %v, want 36", body["expected"])
	}

	// Parameter validation
	if w := getJSON(t, srv, "/api/expected"); w.Code != http.StatusBadRequest {
		t.Errorf("missing year: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if w := getJSON(t, srv, "/api/expected?year=abc"); w.Code != http.StatusBadRequest {
		t.Errorf("bad year: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSeriesEndpoint(t *testing.T) {
	srv := testServer(t)

	w := getJSON(t, srv, "/api/series")
	if w.Code != http.StatusConflict {
		t.Fatalf("unanchored series: status = %d, want %d", w.Code, http.StatusConflict)
	}

	postJSON(t, srv, "/api/observations", `{"year": 1836, "value": 100.0}`)
	postJSON(t, srv, "/api/observations", `{"year": 1886, "value": 42.0}`)

	w = getJSON(t, srv, "/api/series")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Samples int `json:"samples"`
		Line    []struct {
			Year  float64 `json:"year"`
			Value float64 `json:"value"`
		} `json:"line"`
		Points []struct {
			Year  float64 `json:"year"`
			Value float64 `json:"value"`
		} `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Samples != 100 || len(body.Line) != 100 {
		t.Errorf("samples = %d, line = %d, want 100", body.Samples, len(body.Line))
	}
	if body.Line[0].Year != 1836 || body.Line[0].Value != 100.0 {
		t.Errorf("line[0] = %+v", body.Line[0])
	}
	if len(body.Points) != 2 {
		t.Errorf("got %d points, want 2", len(body.Points))
	}
}

func TestListObservations(t *testing.T) {
	srv := testServer(t)

	postJSON(t, srv, "/api/observations", `{"year": 1836, "value": 100.0}`)
	postJSON(t, srv, "/api/observations", `{"year": 1900, "value": 40.0}`)

	w := getJSON(t, srv, "/api/observations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Count        int  `json:"count"`
		Anchored     bool `json:"anchored"`
		Observations []struct {
			Year  int     `json:"year"`
			Value float64 `json:"value"`
		} `json:"observations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 || !body.Anchored {
		t.Errorf("count = %d, anchored = %v", body.Count, body.Anchored)
	}
	if body.Observations[0].Year != 1836 {
		t.Errorf("observations[0] = %+v, want insertion order", body.Observations[0])
	}
}

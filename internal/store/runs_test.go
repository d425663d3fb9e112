package store

import (
	"testing"
)

func TestBeginRun(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, err := db.BeginRun("NEW", 1836, 1936, "decay_data.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if r.RunID == "" {
		t.Error("RunID should be generated")
	}
	if r.Mode != "NEW" {
		t.Errorf("Mode = %q, want NEW", r.Mode)
	}
	if r.StartYear != 1836 || r.EndYear != 1936 {
		t.Errorf("year range = %d..%d, want 1836..1936", r.StartYear, r.EndYear)
	}
	if r.Added != 0 {
		t.Errorf("Added = %d, want 0", r.Added)
	}
	if r.EndedAt != nil {
		t.Error("EndedAt should be nil for an open run")
	}
}

func TestBeginRunUniqueIDs(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r1, err := db.BeginRun("NEW", 1836, 1936, "a.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	r2, err := db.BeginRun("CONTINUE", 1836, 1936, "a.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if r1.RunID == r2.RunID {
		t.Errorf("run IDs collide: %q", r1.RunID)
	}
}

func TestGetRun(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	// Not found returns nil
	r, err := db.GetRun("nonexistent")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil for nonexistent run, got %+v", r)
	}

	// Found
	created, err := db.BeginRun("CONTINUE", 1843, 1950, "x.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	r, err = db.GetRun(created.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r == nil {
		t.Fatal("expected run, got nil")
	}
	if r.Mode != "CONTINUE" || r.LogPath != "x.csv" {
		t.Errorf("got %+v", r)
	}
}

func TestRecordAdded(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, err := db.BeginRun("NEW", 1836, 1936, "a.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := db.RecordAdded(r.RunID); err != nil {
			t.Fatalf("RecordAdded: %v", err)
		}
	}

	got, _ := db.GetRun(r.RunID)
	if got.Added != 3 {
		t.Errorf("Added = %d, want 3", got.Added)
	}

	// Counting stops once the run is ended
	if err := db.EndRun(r.RunID); err != nil {
		t.Fatalf("EndRun: %v", err)
	}
	if err := db.RecordAdded(r.RunID); err != nil {
		t.Fatalf("RecordAdded after end: %v", err)
	}
	got, _ = db.GetRun(r.RunID)
	if got.Added != 3 {
		t.Errorf("Added = %d after end, want 3", got.Added)
	}
}

func TestEndRun(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	r, err := db.BeginRun("NEW", 1836, 1936, "a.csv")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	if err := db.EndRun(r.RunID); err != nil {
		t.Fatalf("EndRun: %v", err)
	}
	got, _ := db.GetRun(r.RunID)
	if got.EndedAt == nil {
		t.Fatal("EndedAt should be set")
	}
	first := *got.EndedAt

	// Ending again is a no-op, the timestamp stays
	if err := db.EndRun(r.RunID); err != nil {
		t.Fatalf("EndRun again: %v", err)
	}
	got, _ = db.GetRun(r.RunID)
	if *got.EndedAt != first {
		t.Errorf("EndedAt changed from %d to %d", first, *got.EndedAt)
	}
}

func TestRecentRuns(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if _, err := db.BeginRun("NEW", 1836, 1936, "a.csv"); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first
	if runs[0].ID < runs[1].ID {
		t.Errorf("runs out of order: %d before %d", runs[0].ID, runs[1].ID)
	}
}

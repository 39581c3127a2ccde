package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestStartAndFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("preprocess-reddit")
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if runID == 0 {
		t.Error("expected non-zero run ID")
	}

	if err := db.FinishRun(runID); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Command != "preprocess-reddit" {
		t.Errorf("command = %q, want preprocess-reddit", runs[0].Command)
	}
	if runs[0].FinishedAt == nil {
		t.Error("expected finished_at to be set")
	}
}

func TestRecordSource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("merge")
	if err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}

	tests := []SourceStats{
		{Path: "counts-reddit.txt", RecordsRead: 1000, RecordsKept: 800, RecordsSkipped: 195, ParseErrors: 5},
		{Path: "counts-twitter.txt", RecordsRead: 500, RecordsKept: 450, RecordsSkipped: 50},
	}
	for _, s := range tests {
		if err := db.RecordSource(runID, s); err != nil {
			t.Fatalf("RecordSource(%s) failed: %v", s.Path, err)
		}
	}

	sources, err := db.RunSources(runID)
	if err != nil {
		t.Fatalf("RunSources failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Path != "counts-reddit.txt" || sources[0].ParseErrors != 5 {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
	if sources[1].RecordsKept != 450 {
		t.Errorf("unexpected second source: %+v", sources[1])
	}
}

func TestListRunsOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, _ := db.StartRun("preprocess-reddit")
	second, _ := db.StartRun("merge")

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("runs out of order: %d then %d", runs[0].RunID, runs[1].RunID)
	}
}

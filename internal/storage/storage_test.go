package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ladzin/modula/internal/model"
	"github.com/ladzin/modula/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := store.State{
		Projects: []model.Project{{
			ID:    "p1",
			Title: "Alpha",
			Modules: []model.Module{{
				ID:        "m1",
				Title:     "Core",
				ProjectID: "p1",
				Tasks: []model.Task{{
					ID:        "t1",
					Title:     "Build",
					Status:    model.StatusInProgress,
					Priority:  model.PriorityHigh,
					TimeSpent: 65,
					ModuleID:  "m1",
					CreatedAt: now,
					UpdatedAt: now,
				}},
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}},
		CurrentProjectID: "p1",
		CurrentView:      store.ViewKanban,
	}

	if err := db.Save(state); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}
	if len(loaded.Projects) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(loaded.Projects))
	}
	if loaded.CurrentProjectID != "p1" {
		t.Errorf("Expected current project p1, got %q", loaded.CurrentProjectID)
	}
	if loaded.CurrentView != store.ViewKanban {
		t.Errorf("Expected kanban view, got %q", loaded.CurrentView)
	}
	task := loaded.Projects[0].Modules[0].Tasks[0]
	if task.TimeSpent != 65 {
		t.Errorf("Expected 65 seconds tracked, got %d", task.TimeSpent)
	}
	if !task.CreatedAt.Equal(now) {
		t.Errorf("Timestamp changed across round trip: %v", task.CreatedAt)
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	db := openTestDB(t)

	first := store.State{Projects: []model.Project{{ID: "p1", Title: "Alpha"}}}
	second := store.State{Projects: []model.Project{{ID: "p2", Title: "Beta"}}}

	if err := db.Save(first); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := db.Save(second); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(loaded.Projects) != 1 || loaded.Projects[0].ID != "p2" {
		t.Errorf("Expected only the latest snapshot, got %+v", loaded.Projects)
	}

	// exactly one row under the fixed key
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 state row, got %d", count)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Load on empty database should not error: %v", err)
	}
	if len(loaded.Projects) != 0 {
		t.Errorf("Expected empty state, got %d projects", len(loaded.Projects))
	}
}

func TestLoadCorruptBlobStartsOver(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO state (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		"modula-state", "{not json")
	if err != nil {
		t.Fatalf("Failed to plant corrupt blob: %v", err)
	}

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Corrupt blob should not surface an error: %v", err)
	}
	if len(loaded.Projects) != 0 {
		t.Errorf("Expected empty state after corrupt blob, got %+v", loaded)
	}
}

func TestExportFilename(t *testing.T) {
	cases := map[string]string{
		"My Project":      "my-project.json",
		"  spaced  ":      "spaced.json",
		"Weird/&:chars!!": "weirdchars.json",
		"":                "project.json",
		"///":             "project.json",
	}
	for in, want := range cases {
		if got := ExportFilename(in); got != want {
			t.Errorf("ExportFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

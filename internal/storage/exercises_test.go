// ABOUTME: Tests for exercise catalog storage and the token-overlap scorer.
// ABOUTME: Verifies case-insensitive lookup and Jaccard scoring edge cases.
package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/repbot/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "repbot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "repbot.db")
	db, err := Open(dbPath, time.UTC)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func TestCreateAndGetExercise(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	e := models.NewExercise("Bench Press", "chest")
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	got, err := db.GetExerciseByName("Bench Press")
	if err != nil {
		t.Fatalf("GetExerciseByName failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected exercise, got nil")
	}
	if got.ID != e.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, e.ID)
	}
	if got.MuscleGroup != "chest" {
		t.Errorf("MuscleGroup mismatch: got %q, want %q", got.MuscleGroup, "chest")
	}
}

func TestGetExerciseByNameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	e := models.NewExercise("Bench Press", "chest")
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	got, err := db.GetExerciseByName("bench press")
	if err != nil {
		t.Fatalf("GetExerciseByName failed: %v", err)
	}
	if got == nil || got.ID != e.ID {
		t.Errorf("Case-insensitive lookup failed: got %v", got)
	}
}

func TestGetExerciseByNameAbsent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetExerciseByName("nonexistent")
	if err != nil {
		t.Fatalf("Expected no error for absent exercise, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for absent exercise, got %v", got)
	}
}

func TestGetExercisesByMuscleGroup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, spec := range []struct{ name, group string }{
		{"Bench Press", "chest"},
		{"Incline Press", "chest"},
		{"Squat", "legs"},
	} {
		if err := db.CreateExercise(models.NewExercise(spec.name, spec.group)); err != nil {
			t.Fatalf("CreateExercise failed: %v", err)
		}
	}

	chest, err := db.GetExercisesByMuscleGroup("chest")
	if err != nil {
		t.Fatalf("GetExercisesByMuscleGroup failed: %v", err)
	}
	if len(chest) != 2 {
		t.Errorf("Expected 2 chest exercises, got %d", len(chest))
	}
}

func TestScoreMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cand  string
		want  float64
	}{
		{"exact match", "bench press", "bench press", 1.0},
		{"case insensitive", "Bench Press", "bench press", 1.0},
		{"partial overlap", "incline bench press", "bench press", 2.0 / 3.0},
		{"no overlap", "squat", "bench press", 0},
		{"empty query", "", "bench press", 0},
		{"empty candidate", "bench press", "", 0},
		{"single shared token", "press", "bench press", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreMatch(tt.query, tt.cand)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScoreMatch(%q, %q) = %v, want %v", tt.query, tt.cand, got, tt.want)
			}
		})
	}
}

func TestScoreMatchSymmetric(t *testing.T) {
	a := ScoreMatch("incline bench", "bench press")
	b := ScoreMatch("bench press", "incline bench")
	if a != b {
		t.Errorf("ScoreMatch not symmetric: %v vs %v", a, b)
	}
}

// ABOUTME: Tests for workout set batch storage.
// ABOUTME: Covers batch numbering, ownership-scoped delete, and history queries.
package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

func mustCreateExercise(t *testing.T, db *DB, name, group string) *models.Exercise {
	t.Helper()
	e := models.NewExercise(name, group)
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	return e
}

func TestCreateSetBatchNumbering(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Bench Press", "chest")

	first, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(10),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if first != 1 {
		t.Errorf("First batch id = %d, want 1", first)
	}

	second, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(8),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if second != 2 {
		t.Errorf("Second batch id = %d, want 2", second)
	}

	// Batch ids are per-user, so another user starts back at 1.
	other, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(2, ex.ID, 1).WithReps(12),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if other != 1 {
		t.Errorf("Other user's first batch id = %d, want 1", other)
	}
}

func TestLatestBatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Squat", "legs")

	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(5).WithWeight(135, "lbs"),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(5).WithWeight(155, "lbs"),
		models.NewWorkoutSet(1, ex.ID, 2).WithReps(5).WithWeight(155, "lbs"),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	sets, err := db.LatestBatch(1)
	if err != nil {
		t.Fatalf("LatestBatch failed: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("Expected 2 sets in latest batch, got %d", len(sets))
	}
	if sets[0].BatchID != 2 {
		t.Errorf("BatchID = %d, want 2", sets[0].BatchID)
	}
	if sets[0].Weight == nil || *sets[0].Weight != 155 {
		t.Errorf("Weight = %v, want 155", sets[0].Weight)
	}
	if sets[0].Exercise == nil || sets[0].Exercise.Name != "Squat" {
		t.Errorf("Exercise not joined: %v", sets[0].Exercise)
	}
}

func TestLatestBatchEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	sets, err := db.LatestBatch(99)
	if err != nil {
		t.Fatalf("LatestBatch failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("Expected no sets, got %d", len(sets))
	}
}

func TestDeleteBatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Deadlift", "back")

	batchID, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(3).WithWeight(225, "lbs"),
		models.NewWorkoutSet(1, ex.ID, 2).WithReps(3).WithWeight(225, "lbs"),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	deleted, err := db.DeleteBatch(1, batchID)
	if err != nil {
		t.Fatalf("DeleteBatch failed: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("Expected 2 deleted sets, got %d", len(deleted))
	}
	if deleted[0].Exercise == nil || deleted[0].Exercise.Name != "Deadlift" {
		t.Errorf("Deleted sets missing exercise: %v", deleted[0].Exercise)
	}

	remaining, err := db.LatestBatch(1)
	if err != nil {
		t.Fatalf("LatestBatch failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected batch gone, found %d sets", len(remaining))
	}
}

func TestDeleteBatchOwnership(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Row", "back")

	batchID, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(10),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	// Another user cannot delete it, and gets the same answer as a
	// nonexistent batch.
	deleted, err := db.DeleteBatch(2, batchID)
	if err != nil {
		t.Fatalf("DeleteBatch failed: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("Expected no deletion across users, got %d sets", len(deleted))
	}

	sets, err := db.LatestBatch(1)
	if err != nil {
		t.Fatalf("LatestBatch failed: %v", err)
	}
	if len(sets) != 1 {
		t.Errorf("Owner's batch should survive, got %d sets", len(sets))
	}
}

func TestAllPersonalRecords(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bench := mustCreateExercise(t, db, "Bench Press", "chest")
	squat := mustCreateExercise(t, db, "Squat", "legs")

	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, bench.ID, 1).WithReps(10).WithWeight(135, "lbs"),
		models.NewWorkoutSet(1, squat.ID, 1).WithReps(5).WithWeight(185, "lbs"),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, bench.ID, 1).WithReps(8).WithWeight(155, "lbs"),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	prs, err := db.AllPersonalRecords(1)
	if err != nil {
		t.Fatalf("AllPersonalRecords failed: %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("Expected 2 PRs, got %d", len(prs))
	}
	// Heaviest first.
	if prs[0].Exercise.Name != "Squat" || *prs[0].Weight != 185 {
		t.Errorf("First PR = %s @ %v, want Squat @ 185", prs[0].Exercise.Name, *prs[0].Weight)
	}
	if prs[1].Exercise.Name != "Bench Press" || *prs[1].Weight != 155 {
		t.Errorf("Second PR = %s @ %v, want Bench Press @ 155", prs[1].Exercise.Name, *prs[1].Weight)
	}
}

func TestRecentForExercisesExcludesBatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Curl", "arms")

	oldBatch, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(12).WithWeight(25, "lbs"),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	newBatch, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, ex.ID, 1).WithReps(12).WithWeight(30, "lbs"),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	recent, err := db.RecentForExercises(1, []uuid.UUID{ex.ID}, newBatch)
	if err != nil {
		t.Fatalf("RecentForExercises failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 prior set, got %d", len(recent))
	}
	if recent[0].BatchID != oldBatch {
		t.Errorf("BatchID = %d, want %d", recent[0].BatchID, oldBatch)
	}
}

func TestRecentForExercisesPerExerciseWindow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bench := mustCreateExercise(t, db, "Bench Press", "chest")
	squat := mustCreateExercise(t, db, "Squat", "legs")

	now := time.Date(2026, 4, 20, 17, 0, 0, 0, time.UTC)

	// One lone squat session months back, then heavy recent bench volume.
	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, squat.ID, 1).WithReps(5).WithWeight(200, "lbs").
			WithSetDate(now.AddDate(0, -3, 0)),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	for i := 0; i < 9; i++ {
		sets := make([]*models.WorkoutSet, 5)
		for j := range sets {
			sets[j] = models.NewWorkoutSet(1, bench.ID, j+1).WithReps(10).
				WithWeight(135, "lbs").WithSetDate(now.AddDate(0, 0, -i-1))
		}
		if _, err := db.CreateSetBatch(sets); err != nil {
			t.Fatalf("CreateSetBatch failed: %v", err)
		}
	}
	newBatch, err := db.CreateSetBatch([]*models.WorkoutSet{
		models.NewWorkoutSet(1, bench.ID, 1).WithReps(10).WithWeight(140, "lbs").
			WithSetDate(now),
	})
	if err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	recent, err := db.RecentForExercises(1, []uuid.UUID{bench.ID, squat.ID}, newBatch)
	if err != nil {
		t.Fatalf("RecentForExercises failed: %v", err)
	}

	counts := map[string]int{}
	for _, s := range recent {
		counts[s.Exercise.Name]++
	}
	// The old squat set must survive no matter how much bench history there is.
	if counts["Squat"] != 1 {
		t.Errorf("Squat sets = %d, want 1", counts["Squat"])
	}
	if counts["Bench Press"] != recentPerExercise {
		t.Errorf("Bench sets = %d, want %d", counts["Bench Press"], recentPerExercise)
	}
}

func TestWeeklyVolume(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bench := mustCreateExercise(t, db, "Bench Press", "chest")
	squat := mustCreateExercise(t, db, "Squat", "legs")

	// Monday of ISO week 2026-W16.
	now := time.Date(2026, 4, 13, 18, 0, 0, 0, time.UTC)

	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		// This week: 10x100 + 10x100 chest, 5x200 legs.
		models.NewWorkoutSet(1, bench.ID, 1).WithReps(10).WithWeight(100, "lbs").WithSetDate(now),
		models.NewWorkoutSet(1, bench.ID, 2).WithReps(10).WithWeight(100, "lbs").WithSetDate(now),
		models.NewWorkoutSet(1, squat.ID, 1).WithReps(5).WithWeight(200, "lbs").WithSetDate(now),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		// The Sunday before lands in the previous ISO week.
		models.NewWorkoutSet(1, bench.ID, 1).WithReps(8).WithWeight(95, "lbs").
			WithSetDate(now.AddDate(0, 0, -1)),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}
	if _, err := db.CreateSetBatch([]*models.WorkoutSet{
		// Outside the window entirely.
		models.NewWorkoutSet(1, squat.ID, 1).WithReps(5).WithWeight(300, "lbs").
			WithSetDate(now.AddDate(0, 0, -60)),
	}); err != nil {
		t.Fatalf("CreateSetBatch failed: %v", err)
	}

	rows, err := db.WeeklyVolume(1, 4, now)
	if err != nil {
		t.Fatalf("WeeklyVolume failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 volume rows, got %d: %+v", len(rows), rows)
	}
	// Newest week first, higher volume first within the week.
	want := []VolumeRow{
		{YearWeek: "2026-W16", MuscleGroup: "chest", Volume: 2000},
		{YearWeek: "2026-W16", MuscleGroup: "legs", Volume: 1000},
		{YearWeek: "2026-W15", MuscleGroup: "chest", Volume: 760},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("Row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestWorkoutDates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ex := mustCreateExercise(t, db, "Press", "shoulders")
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	// Two sets on the same day plus one two days earlier.
	for _, d := range []time.Time{
		now.AddDate(0, 0, -2),
		now.Add(-2 * time.Hour),
		now.Add(-1 * time.Hour),
	} {
		if _, err := db.CreateSetBatch([]*models.WorkoutSet{
			models.NewWorkoutSet(1, ex.ID, 1).WithReps(10).WithSetDate(d),
		}); err != nil {
			t.Fatalf("CreateSetBatch failed: %v", err)
		}
	}

	dates, err := db.WorkoutDates(1, 30, now)
	if err != nil {
		t.Fatalf("WorkoutDates failed: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("Expected 2 distinct dates, got %d", len(dates))
	}
	if !dates[0].Before(dates[1]) {
		t.Errorf("Dates not ascending: %v", dates)
	}
	if dates[1].Day() != 10 {
		t.Errorf("Latest date = %v, want day 10", dates[1])
	}
}

// ABOUTME: WorkoutSet model, one row per physical set performed.
// ABOUTME: Sets are grouped into per-user batches that are created and deleted atomically.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultWeightUnit is assumed when the user doesn't specify one.
const DefaultWeightUnit = "lbs"

// WorkoutSet represents a single set of an exercise within a batch.
// BatchID groups the sets logged (or repeated) together; it is assigned
// per user, monotonically, starting at 1. RawName preserves what the user
// actually typed, even after matching to a canonical exercise.
type WorkoutSet struct {
	ID              uuid.UUID
	UserID          int64
	BatchID         int64
	SetDate         time.Time
	ExerciseID      uuid.UUID
	SetNumber       int
	Reps            *int
	Weight          *float64
	WeightUnit      string
	DurationMinutes *int
	Distance        *float64
	Notes           *string
	RawName         string
	CreatedAt       time.Time

	Exercise *Exercise // populated on joined fetches
}

// NewWorkoutSet creates a new WorkoutSet with generated UUID and current timestamp.
// BatchID is assigned by the storage layer when the batch is persisted.
func NewWorkoutSet(userID int64, exerciseID uuid.UUID, setNumber int) *WorkoutSet {
	now := time.Now()
	return &WorkoutSet{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		SetDate:    now,
		WeightUnit: DefaultWeightUnit,
		CreatedAt:  now,
	}
}

// WithReps sets the repetition count.
func (s *WorkoutSet) WithReps(reps int) *WorkoutSet {
	s.Reps = &reps
	return s
}

// WithWeight sets the weight and unit.
func (s *WorkoutSet) WithWeight(weight float64, unit string) *WorkoutSet {
	s.Weight = &weight
	if unit != "" {
		s.WeightUnit = unit
	}
	return s
}

// WithCardio sets duration and optional distance for a cardio set.
func (s *WorkoutSet) WithCardio(durationMinutes int, distance *float64) *WorkoutSet {
	s.DurationMinutes = &durationMinutes
	s.Distance = distance
	return s
}

// WithNotes sets free-text notes on the set.
func (s *WorkoutSet) WithNotes(notes string) *WorkoutSet {
	s.Notes = &notes
	return s
}

// WithSetDate sets a custom set timestamp.
func (s *WorkoutSet) WithSetDate(t time.Time) *WorkoutSet {
	s.SetDate = t
	return s
}

// IsCardio reports whether the set was logged by duration instead of reps/weight.
func (s *WorkoutSet) IsCardio() bool {
	return s.DurationMinutes != nil
}

// ExerciseName returns the canonical exercise name when loaded, falling back
// to the raw name the user typed.
func (s *WorkoutSet) ExerciseName() string {
	if s.Exercise != nil {
		return s.Exercise.Name
	}
	return s.RawName
}

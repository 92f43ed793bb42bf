// ABOUTME: Exercise model for the canonical movement catalog.
// ABOUTME: Ad-hoc exercises are created with muscle group "general" on first mention.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroupGeneral is the muscle group assigned to ad-hoc exercises
// created from unmatched user input.
const MuscleGroupGeneral = "general"

// MuscleGroupCardio marks exercises logged by duration/distance instead of
// reps/weight.
const MuscleGroupCardio = "cardio"

// Exercise represents a canonical movement in the catalog.
type Exercise struct {
	ID          uuid.UUID
	Name        string
	MuscleGroup string
	Description *string
	Guidance    *string
	CreatedAt   time.Time
}

// NewExercise creates a new Exercise with generated UUID and current timestamp.
func NewExercise(name, muscleGroup string) *Exercise {
	return &Exercise{
		ID:          uuid.New(),
		Name:        name,
		MuscleGroup: muscleGroup,
		CreatedAt:   time.Now(),
	}
}

// WithDescription sets a short description on the exercise.
func (e *Exercise) WithDescription(description string) *Exercise {
	e.Description = &description
	return e
}

// WithGuidance sets coaching guidance text on the exercise.
func (e *Exercise) WithGuidance(guidance string) *Exercise {
	e.Guidance = &guidance
	return e
}

// IsCardio reports whether the exercise is tracked by duration rather than load.
func (e *Exercise) IsCardio() bool {
	return e.MuscleGroup == MuscleGroupCardio
}

// ABOUTME: Repository interface for workout assistant storage.
// ABOUTME: Defines the contract the message router depends on; SQLite implements it.
package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// VolumeRow is one (ISO year-week, muscle group) aggregate of weight x reps.
type VolumeRow struct {
	YearWeek    string
	MuscleGroup string
	Volume      float64
}

// Repository defines the storage interface for the assistant.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Exercise operations
	CreateExercise(e *models.Exercise) error
	GetExerciseByName(name string) (*models.Exercise, error)
	GetExercisesByMuscleGroup(muscleGroup string) ([]*models.Exercise, error)
	AllExercises() ([]*models.Exercise, error)

	// Workout set operations. CreateSetBatch assigns the next per-user batch
	// id (max existing + 1) and inserts every set in one transaction.
	CreateSetBatch(sets []*models.WorkoutSet) (int64, error)
	LatestBatch(userID int64) ([]*models.WorkoutSet, error)
	DeleteBatch(userID, batchID int64) ([]*models.WorkoutSet, error)
	LatestBatches(userID int64, limit int) ([]*models.WorkoutSet, error)
	SetsForExercise(userID int64, exerciseID uuid.UUID, limit int) ([]*models.WorkoutSet, error)
	RecentForExercises(userID int64, exerciseIDs []uuid.UUID, excludeBatch int64) ([]*models.WorkoutSet, error)
	AllPersonalRecords(userID int64) ([]*models.WorkoutSet, error)
	WeeklyVolume(userID int64, weeks int, now time.Time) ([]VolumeRow, error)
	WorkoutDates(userID int64, days int, now time.Time) ([]time.Time, error)

	// Body weight operations
	CreateBodyWeight(b *models.BodyWeight) error
	LatestBodyWeight(userID int64) (*models.BodyWeight, error)
	BodyWeightsByUser(userID int64, limit int) ([]*models.BodyWeight, error)

	// Audit log (best-effort from the caller's perspective)
	CreateMessageLog(m *models.MessageLog) error

	// Training principles (read side; seeding is external)
	CreateTrainingPrinciple(p *models.TrainingPrinciple) error
	PrinciplesByCategory(category string) ([]*models.TrainingPrinciple, error)
	PrinciplesByPriority(limit int) ([]*models.TrainingPrinciple, error)

	// Lifecycle
	Close() error
}

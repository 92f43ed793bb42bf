// ABOUTME: Exercise catalog operations plus the token-overlap match scorer.
// ABOUTME: ScoreMatch is a pure function so name matching is unit-testable without a DB.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// CreateExercise stores a new exercise in the catalog.
func (d *DB) CreateExercise(e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, muscle_group, description, guidance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		e.ID.String(),
		e.Name,
		e.MuscleGroup,
		e.Description,
		e.Guidance,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExerciseByName retrieves an exercise by name, case-insensitively.
// Returns nil (no error) when absent.
func (d *DB) GetExerciseByName(name string) (*models.Exercise, error) {
	query := `
		SELECT id, name, muscle_group, description, guidance, created_at
		FROM exercises
		WHERE name = ? COLLATE NOCASE
	`
	e, err := d.scanExercise(d.db.QueryRow(query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise by name: %w", err)
	}
	return e, nil
}

// GetExercisesByMuscleGroup retrieves exercises for a muscle group.
func (d *DB) GetExercisesByMuscleGroup(muscleGroup string) ([]*models.Exercise, error) {
	query := `
		SELECT id, name, muscle_group, description, guidance, created_at
		FROM exercises
		WHERE muscle_group = ? COLLATE NOCASE
		ORDER BY name
	`
	rows, err := d.db.Query(query, muscleGroup)
	if err != nil {
		return nil, fmt.Errorf("exercises by muscle group: %w", err)
	}
	defer rows.Close()

	return d.scanExercises(rows)
}

// AllExercises retrieves the full catalog.
func (d *DB) AllExercises() ([]*models.Exercise, error) {
	query := `
		SELECT id, name, muscle_group, description, guidance, created_at
		FROM exercises
		ORDER BY name
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("all exercises: %w", err)
	}
	defer rows.Close()

	return d.scanExercises(rows)
}

// ScoreMatch scores how well a free-text query matches a catalog name using
// word-overlap Jaccard similarity: both strings are lower-cased and
// whitespace-tokenized, score = |intersection| / |union| of the token sets.
// Returns 0 when either token set is empty.
func ScoreMatch(query, name string) float64 {
	qTokens := tokenSet(query)
	nTokens := tokenSet(name)
	if len(qTokens) == 0 || len(nTokens) == 0 {
		return 0
	}

	intersection := 0
	union := len(nTokens)
	for tok := range qTokens {
		if _, ok := nTokens[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tokens[tok] = struct{}{}
	}
	return tokens
}

// scanExercise scans a single row into an Exercise struct.
func (d *DB) scanExercise(row *sql.Row) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, createdAt string
	var description, guidance sql.NullString

	err := row.Scan(&idStr, &e.Name, &e.MuscleGroup, &description, &guidance, &createdAt)
	if err != nil {
		return nil, err
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if description.Valid {
		e.Description = &description.String
	}
	if guidance.Valid {
		e.Guidance = &guidance.String
	}

	return &e, nil
}

// scanExercises scans multiple rows into a slice of Exercises.
func (d *DB) scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	var exercises []*models.Exercise

	for rows.Next() {
		var e models.Exercise
		var idStr, createdAt string
		var description, guidance sql.NullString

		err := rows.Scan(&idStr, &e.Name, &e.MuscleGroup, &description, &guidance, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		e.ID, _ = uuid.Parse(idStr)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if description.Valid {
			e.Description = &description.String
		}
		if guidance.Valid {
			e.Guidance = &guidance.String
		}

		exercises = append(exercises, &e)
	}

	return exercises, rows.Err()
}

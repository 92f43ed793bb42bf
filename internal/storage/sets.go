// ABOUTME: WorkoutSet storage: transactional batch create/delete plus history queries.
// ABOUTME: Batches are the atomic unit; a batch either fully persists or not at all.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

const setColumns = `ws.id, ws.user_id, ws.batch_id, ws.set_date, ws.exercise_id,
	ws.set_number, ws.reps, ws.weight, ws.weight_unit, ws.duration_minutes,
	ws.distance, ws.notes, ws.raw_name, ws.created_at,
	e.name, e.muscle_group`

const setJoin = `FROM workout_sets ws JOIN exercises e ON e.id = ws.exercise_id`

// CreateSetBatch allocates the next batch id for the owning user (max existing
// + 1, starting at 1) and inserts every set under it, all in one transaction.
// The assigned batch id is written back into each set and returned.
//
// The read-then-write allocation assumes requests for a given user are
// serialized by the transport; concurrent same-user logs are a documented
// scalability boundary, not a supported mode.
func (d *DB) CreateSetBatch(sets []*models.WorkoutSet) (int64, error) {
	if len(sets) == 0 {
		return 0, fmt.Errorf("create set batch: no sets")
	}
	userID := sets[0].UserID

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("create set batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxBatch sql.NullInt64
	row := tx.QueryRow(`SELECT MAX(batch_id) FROM workout_sets WHERE user_id = ?`, userID)
	if err := row.Scan(&maxBatch); err != nil {
		return 0, fmt.Errorf("next batch id: %w", err)
	}
	batchID := maxBatch.Int64 + 1

	insert := `
		INSERT INTO workout_sets (id, user_id, batch_id, set_date, exercise_id,
			set_number, reps, weight, weight_unit, duration_minutes, distance,
			notes, raw_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, s := range sets {
		s.BatchID = batchID
		_, err := tx.Exec(insert,
			s.ID.String(),
			s.UserID,
			s.BatchID,
			formatTime(s.SetDate),
			s.ExerciseID.String(),
			s.SetNumber,
			s.Reps,
			s.Weight,
			s.WeightUnit,
			s.DurationMinutes,
			s.Distance,
			s.Notes,
			s.RawName,
			s.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return 0, fmt.Errorf("insert set: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return batchID, nil
}

// LatestBatch returns all sets from the user's most recent batch, ordered by
// exercise id then set number. Empty slice when the user has no batches.
func (d *DB) LatestBatch(userID int64) ([]*models.WorkoutSet, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ws.user_id = ?
		  AND ws.batch_id = (SELECT MAX(batch_id) FROM workout_sets WHERE user_id = ?)
		ORDER BY ws.exercise_id, ws.set_number
	`, setColumns, setJoin)

	rows, err := d.db.Query(query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("latest batch: %w", err)
	}
	defer rows.Close()

	return d.scanSets(rows)
}

// DeleteBatch removes every set in (userID, batchID) in one transaction and
// returns the rows as they were before deletion, with exercises loaded.
// Returns an empty slice when the batch doesn't exist or belongs to another
// user; the two cases are indistinguishable by design.
func (d *DB) DeleteBatch(userID, batchID int64) ([]*models.WorkoutSet, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("delete batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ws.user_id = ? AND ws.batch_id = ?
		ORDER BY ws.exercise_id, ws.set_number
	`, setColumns, setJoin)

	rows, err := tx.Query(query, userID, batchID)
	if err != nil {
		return nil, fmt.Errorf("delete batch: %w", err)
	}
	sets, err := d.scanSets(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}

	_, err = tx.Exec(`DELETE FROM workout_sets WHERE user_id = ? AND batch_id = ?`, userID, batchID)
	if err != nil {
		return nil, fmt.Errorf("delete batch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete batch: %w", err)
	}
	return sets, nil
}

// LatestBatches returns sets from the user's N most recent batches, newest
// batch first, exercises loaded.
func (d *DB) LatestBatches(userID int64, limit int) ([]*models.WorkoutSet, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ws.user_id = ?
		  AND ws.batch_id IN (
			SELECT DISTINCT batch_id FROM workout_sets
			WHERE user_id = ?
			ORDER BY batch_id DESC
			LIMIT ?
		  )
		ORDER BY ws.batch_id DESC, ws.exercise_id, ws.set_number
	`, setColumns, setJoin)

	rows, err := d.db.Query(query, userID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("latest batches: %w", err)
	}
	defer rows.Close()

	return d.scanSets(rows)
}

// SetsForExercise returns the user's sets for one exercise, newest first.
func (d *DB) SetsForExercise(userID int64, exerciseID uuid.UUID, limit int) ([]*models.WorkoutSet, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ws.user_id = ? AND ws.exercise_id = ?
		ORDER BY ws.set_date DESC, ws.batch_id DESC, ws.set_number
		LIMIT ?
	`, setColumns, setJoin)

	rows, err := d.db.Query(query, userID, exerciseID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("sets for exercise: %w", err)
	}
	defer rows.Close()

	return d.scanSets(rows)
}

// recentPerExercise caps how much history RecentForExercises keeps for each
// exercise. The window is per exercise so a high-volume movement cannot crowd
// an infrequent one out of the result.
const recentPerExercise = 20

// RecentForExercises returns recent sets for several exercises at once,
// excluding one batch (the one just written), newest first. Used to feed the
// commentary heuristics with pre-existing history only.
func (d *DB) RecentForExercises(userID int64, exerciseIDs []uuid.UUID, excludeBatch int64) ([]*models.WorkoutSet, error) {
	if len(exerciseIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(exerciseIDs))
	args := []interface{}{userID}
	for i, id := range exerciseIDs {
		placeholders[i] = "?"
		args = append(args, id.String())
	}
	args = append(args, excludeBatch, recentPerExercise)

	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY exercise_id
				ORDER BY set_date DESC, batch_id DESC, set_number
			) AS rn
			FROM workout_sets
			WHERE user_id = ?
			  AND exercise_id IN (%s)
			  AND batch_id != ?
		) ws
		JOIN exercises e ON e.id = ws.exercise_id
		WHERE ws.rn <= ?
		ORDER BY ws.set_date DESC, ws.batch_id DESC, ws.set_number
	`, setColumns, strings.Join(placeholders, ", "))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent for exercises: %w", err)
	}
	defer rows.Close()

	return d.scanSets(rows)
}

// AllPersonalRecords returns the single heaviest set per exercise for the
// user, heaviest exercise first. Ties on weight break to the lowest set id so
// the result is deterministic.
func (d *DB) AllPersonalRecords(userID int64) ([]*models.WorkoutSet, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY exercise_id
				ORDER BY weight DESC, id ASC
			) AS rn
			FROM workout_sets
			WHERE user_id = ? AND weight IS NOT NULL
		) ws
		JOIN exercises e ON e.id = ws.exercise_id
		WHERE ws.rn = 1
		ORDER BY ws.weight DESC, e.name
	`, setColumns)

	rows, err := d.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("personal records: %w", err)
	}
	defer rows.Close()

	return d.scanSets(rows)
}

// WeeklyVolume aggregates weight x reps by (ISO year-week, muscle group) over
// the given number of weeks back from now, ordered by week descending then
// volume descending.
func (d *DB) WeeklyVolume(userID int64, weeks int, now time.Time) ([]VolumeRow, error) {
	cutoff := formatTime(now.AddDate(0, 0, -7*weeks))

	query := `
		SELECT strftime('%G-W%V', ws.set_date) AS yw,
		       e.muscle_group,
		       SUM(ws.weight * ws.reps) AS total_vol
		FROM workout_sets ws
		JOIN exercises e ON e.id = ws.exercise_id
		WHERE ws.user_id = ?
		  AND ws.weight IS NOT NULL
		  AND ws.reps IS NOT NULL
		  AND ws.set_date >= ?
		GROUP BY yw, e.muscle_group
		ORDER BY yw DESC, total_vol DESC
	`
	rows, err := d.db.Query(query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("weekly volume: %w", err)
	}
	defer rows.Close()

	var out []VolumeRow
	for rows.Next() {
		var r VolumeRow
		if err := rows.Scan(&r.YearWeek, &r.MuscleGroup, &r.Volume); err != nil {
			return nil, fmt.Errorf("scan weekly volume: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// WorkoutDates returns the user's distinct workout dates within the last N
// days, ascending, truncated to midnight in the reference timezone.
func (d *DB) WorkoutDates(userID int64, days int, now time.Time) ([]time.Time, error) {
	cutoff := formatTime(now.AddDate(0, 0, -days))

	query := `
		SELECT DISTINCT date(set_date) AS d
		FROM workout_sets
		WHERE user_id = ? AND set_date >= ?
		ORDER BY d
	`
	rows, err := d.db.Query(query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan workout date: %w", err)
		}
		t, err := time.ParseInLocation("2006-01-02", s, d.loc)
		if err != nil {
			return nil, fmt.Errorf("parse workout date %q: %w", s, err)
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

// scanSets scans joined workout set rows, populating a minimal Exercise.
func (d *DB) scanSets(rows *sql.Rows) ([]*models.WorkoutSet, error) {
	var sets []*models.WorkoutSet

	for rows.Next() {
		var s models.WorkoutSet
		var idStr, exIDStr, setDate, createdAt, exName, exGroup string
		var reps, duration sql.NullInt64
		var weight, distance sql.NullFloat64
		var notes sql.NullString

		err := rows.Scan(&idStr, &s.UserID, &s.BatchID, &setDate, &exIDStr,
			&s.SetNumber, &reps, &weight, &s.WeightUnit, &duration,
			&distance, &notes, &s.RawName, &createdAt,
			&exName, &exGroup)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}

		s.ID, _ = uuid.Parse(idStr)
		s.ExerciseID, _ = uuid.Parse(exIDStr)
		s.SetDate = d.parseTime(setDate)
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if reps.Valid {
			r := int(reps.Int64)
			s.Reps = &r
		}
		if weight.Valid {
			s.Weight = &weight.Float64
		}
		if duration.Valid {
			m := int(duration.Int64)
			s.DurationMinutes = &m
		}
		if distance.Valid {
			s.Distance = &distance.Float64
		}
		if notes.Valid {
			s.Notes = &notes.String
		}
		s.Exercise = &models.Exercise{ID: s.ExerciseID, Name: exName, MuscleGroup: exGroup}

		sets = append(sets, &s)
	}

	return sets, rows.Err()
}

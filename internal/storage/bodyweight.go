// ABOUTME: Body weight storage operations.
// ABOUTME: Recorded-at timestamps use the reference timezone wall clock.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// CreateBodyWeight inserts a body weight entry.
func (d *DB) CreateBodyWeight(bw *models.BodyWeight) error {
	query := `
		INSERT INTO body_weights (id, user_id, weight, unit, notes, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		bw.ID.String(),
		bw.UserID,
		bw.Weight,
		bw.Unit,
		bw.Notes,
		formatTime(bw.RecordedAt),
		bw.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create body weight: %w", err)
	}
	return nil
}

// LatestBodyWeight returns the user's most recent entry, or nil if none.
func (d *DB) LatestBodyWeight(userID int64) (*models.BodyWeight, error) {
	query := `
		SELECT id, user_id, weight, unit, notes, recorded_at, created_at
		FROM body_weights
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	row := d.db.QueryRow(query, userID)
	bw, err := d.scanBodyWeight(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest body weight: %w", err)
	}
	return bw, nil
}

// BodyWeightsByUser returns the user's entries, newest first.
func (d *DB) BodyWeightsByUser(userID int64, limit int) ([]*models.BodyWeight, error) {
	query := `
		SELECT id, user_id, weight, unit, notes, recorded_at, created_at
		FROM body_weights
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?
	`
	rows, err := d.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("body weights: %w", err)
	}
	defer rows.Close()

	var out []*models.BodyWeight
	for rows.Next() {
		bw, err := d.scanBodyWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan body weight: %w", err)
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (d *DB) scanBodyWeight(row rowScanner) (*models.BodyWeight, error) {
	var bw models.BodyWeight
	var idStr, recordedAt, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &bw.UserID, &bw.Weight, &bw.Unit, &notes, &recordedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	bw.ID, _ = uuid.Parse(idStr)
	bw.RecordedAt = d.parseTime(recordedAt)
	bw.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		bw.Notes = &notes.String
	}
	return &bw, nil
}

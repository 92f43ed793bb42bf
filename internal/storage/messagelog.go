// ABOUTME: Message audit log storage.
// ABOUTME: Write-only in the request path; failures there are logged, not fatal.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// CreateMessageLog inserts an audit record for a processed message.
func (d *DB) CreateMessageLog(ml *models.MessageLog) error {
	query := `
		INSERT INTO message_logs (id, user_id, message, intent, confidence, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		ml.ID.String(),
		ml.UserID,
		ml.Message,
		ml.Intent,
		ml.Confidence,
		ml.Response,
		ml.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create message log: %w", err)
	}
	return nil
}

// MessageLogsByUser returns the user's most recent audit records.
func (d *DB) MessageLogsByUser(userID int64, limit int) ([]*models.MessageLog, error) {
	query := `
		SELECT id, user_id, message, intent, confidence, response, created_at
		FROM message_logs
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := d.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("message logs: %w", err)
	}
	defer rows.Close()

	var out []*models.MessageLog
	for rows.Next() {
		var ml models.MessageLog
		var idStr, createdAt string
		err := rows.Scan(&idStr, &ml.UserID, &ml.Message, &ml.Intent,
			&ml.Confidence, &ml.Response, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan message log: %w", err)
		}
		ml.ID, _ = uuid.Parse(idStr)
		ml.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &ml)
	}
	return out, rows.Err()
}

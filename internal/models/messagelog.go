// ABOUTME: MessageLog audit model, one row per processed message.
// ABOUTME: Written best-effort; a failed write never fails the user-facing response.
package models

import (
	"time"

	"github.com/google/uuid"
)

// responseSummaryLimit bounds the stored response excerpt.
const responseSummaryLimit = 200

// MessageLog records a processed message with its classified intent and a
// truncated response summary.
type MessageLog struct {
	ID         uuid.UUID
	UserID     int64
	Message    string
	Intent     string
	Confidence float64
	Response   string
	CreatedAt  time.Time
}

// NewMessageLog creates a new MessageLog, truncating the response summary.
func NewMessageLog(userID int64, message, intent string, confidence float64, response string) *MessageLog {
	if len(response) > responseSummaryLimit {
		response = response[:responseSummaryLimit-3] + "..."
	}
	return &MessageLog{
		ID:         uuid.New(),
		UserID:     userID,
		Message:    message,
		Intent:     intent,
		Confidence: confidence,
		Response:   response,
		CreatedAt:  time.Now(),
	}
}

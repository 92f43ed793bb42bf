// ABOUTME: BodyWeight model for weigh-in records.
// ABOUTME: RecordedAt is distinct from CreatedAt so weigh-ins can be backdated.
package models

import (
	"time"

	"github.com/google/uuid"
)

// BodyWeight represents a single weigh-in.
type BodyWeight struct {
	ID         uuid.UUID
	UserID     int64
	Weight     float64
	Unit       string
	Notes      *string
	RecordedAt time.Time
	CreatedAt  time.Time
}

// NewBodyWeight creates a new BodyWeight with generated UUID and current timestamps.
func NewBodyWeight(userID int64, weight float64, unit string) *BodyWeight {
	now := time.Now()
	if unit == "" {
		unit = DefaultWeightUnit
	}
	return &BodyWeight{
		ID:         uuid.New(),
		UserID:     userID,
		Weight:     weight,
		Unit:       unit,
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp (backdating).
func (b *BodyWeight) WithRecordedAt(t time.Time) *BodyWeight {
	b.RecordedAt = t
	return b
}

// WithNotes sets notes on the weigh-in.
func (b *BodyWeight) WithNotes(notes string) *BodyWeight {
	b.Notes = &notes
	return b
}

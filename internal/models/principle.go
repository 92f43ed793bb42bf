// ABOUTME: TrainingPrinciple model for static coaching knowledge.
// ABOUTME: Read-only from the assistant's perspective; owned by the seed command.
package models

import "github.com/google/uuid"

// TrainingPrinciple is a piece of coaching knowledge injected into prompts,
// keyed by category and ordered by priority (lower = more important).
type TrainingPrinciple struct {
	ID       uuid.UUID
	Category string
	Title    string
	Content  string
	Priority int
}

// NewTrainingPrinciple creates a new TrainingPrinciple with generated UUID.
func NewTrainingPrinciple(category, title, content string, priority int) *TrainingPrinciple {
	return &TrainingPrinciple{
		ID:       uuid.New(),
		Category: category,
		Title:    title,
		Content:  content,
		Priority: priority,
	}
}

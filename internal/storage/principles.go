// ABOUTME: Training principle storage for the coaching knowledge base.
// ABOUTME: Principles are seeded once and read into coaching context.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// CreateTrainingPrinciple inserts a principle.
func (d *DB) CreateTrainingPrinciple(p *models.TrainingPrinciple) error {
	query := `
		INSERT INTO training_principles (id, category, title, content, priority)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		p.ID.String(),
		p.Category,
		p.Title,
		p.Content,
		p.Priority,
	)
	if err != nil {
		return fmt.Errorf("create training principle: %w", err)
	}
	return nil
}

// PrinciplesByCategory returns principles in one category, most important
// first (lower priority value = more important).
func (d *DB) PrinciplesByCategory(category string) ([]*models.TrainingPrinciple, error) {
	query := `
		SELECT id, category, title, content, priority
		FROM training_principles
		WHERE category = ?
		ORDER BY priority, title
	`
	rows, err := d.db.Query(query, category)
	if err != nil {
		return nil, fmt.Errorf("principles by category: %w", err)
	}
	defer rows.Close()

	return scanPrinciples(rows)
}

// PrinciplesByPriority returns the N most important principles across all
// categories.
func (d *DB) PrinciplesByPriority(limit int) ([]*models.TrainingPrinciple, error) {
	query := `
		SELECT id, category, title, content, priority
		FROM training_principles
		ORDER BY priority, title
		LIMIT ?
	`
	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("principles by priority: %w", err)
	}
	defer rows.Close()

	return scanPrinciples(rows)
}

func scanPrinciples(rows *sql.Rows) ([]*models.TrainingPrinciple, error) {
	var out []*models.TrainingPrinciple
	for rows.Next() {
		var p models.TrainingPrinciple
		var idStr string
		err := rows.Scan(&idStr, &p.Category, &p.Title, &p.Content, &p.Priority)
		if err != nil {
			return nil, fmt.Errorf("scan training principle: %w", err)
		}
		p.ID, _ = uuid.Parse(idStr)
		out = append(out, &p)
	}
	return out, rows.Err()
}

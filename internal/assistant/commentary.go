// ABOUTME: Heuristic commentary: at most one remark per logged batch.
// ABOUTME: Pure over (logged summaries, prior history, reference time); priority is fixed.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// gapDays is the threshold beyond which a return is worth remarking on.
const gapDays = 3

// loggedSet is the per-set summary the commentary engine evaluates. It is
// built at log time so the engine stays independent of extraction types.
type loggedSet struct {
	exerciseID uuid.UUID
	name       string
	weight     *float64
	notes      *string
	cardio     bool
}

// generateLogComment picks at most one remark for a just-logged batch,
// checked in strict priority order: PR, first time, gap, weight increase,
// pain note. history must exclude the batch being commented on. Returns ""
// when nothing is noteworthy.
func generateLogComment(logged []loggedSet, history []*models.WorkoutSet, now time.Time) string {
	if len(logged) == 0 {
		return ""
	}

	// Dedup to first occurrence per exercise; weight checks use the batch max.
	var order []uuid.UUID
	names := make(map[uuid.UUID]string)
	batchMax := make(map[uuid.UUID]float64)
	cardio := make(map[uuid.UUID]bool)
	for _, s := range logged {
		if _, ok := names[s.exerciseID]; !ok {
			order = append(order, s.exerciseID)
			names[s.exerciseID] = s.name
			cardio[s.exerciseID] = s.cardio
		}
		if s.weight != nil && *s.weight > batchMax[s.exerciseID] {
			batchMax[s.exerciseID] = *s.weight
		}
	}

	histMax := make(map[uuid.UUID]float64)
	histLatest := make(map[uuid.UUID]*models.WorkoutSet)
	for _, h := range history {
		if h.Weight != nil && *h.Weight > histMax[h.ExerciseID] {
			histMax[h.ExerciseID] = *h.Weight
		}
		latest := histLatest[h.ExerciseID]
		if latest == nil || h.SetDate.After(latest.SetDate) {
			histLatest[h.ExerciseID] = h
		}
	}

	// 1. All-time PR.
	for _, id := range order {
		if cardio[id] || batchMax[id] == 0 {
			continue
		}
		if histMax[id] > 0 && batchMax[id] > histMax[id] {
			return fmt.Sprintf("New PR on %s!", names[id])
		}
	}

	// 2. First time logging this exercise.
	for _, id := range order {
		if histLatest[id] == nil {
			return fmt.Sprintf("First time logging %s.", names[id])
		}
	}

	// 3. Long gap since the last time.
	for _, id := range order {
		latest := histLatest[id]
		if latest == nil {
			continue
		}
		days := int(now.Sub(latest.SetDate).Hours() / 24)
		if days > gapDays {
			return fmt.Sprintf("Back at it after %d days.", days)
		}
	}

	// 4. Heavier than the most recent session, without being an all-time PR.
	for _, id := range order {
		if cardio[id] || batchMax[id] == 0 {
			continue
		}
		latest := histLatest[id]
		if latest != nil && latest.Weight != nil && batchMax[id] > *latest.Weight {
			return fmt.Sprintf("Moving up in weight on %s.", names[id])
		}
	}

	// 5. Pain mentioned anywhere in the batch notes.
	for _, s := range logged {
		if s.notes == nil {
			continue
		}
		lower := strings.ToLower(*s.notes)
		if strings.Contains(lower, "pain") || strings.Contains(lower, "sore") || strings.Contains(lower, "hurt") {
			return "Take it easy if the pain persists."
		}
	}

	return ""
}

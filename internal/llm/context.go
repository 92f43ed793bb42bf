// ABOUTME: Coaching context assembly: history, guidance, and principles in one prompt block.
// ABOUTME: Pulls from storage what the coaching model needs to prescribe real numbers.
package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
	"github.com/harperreed/repbot/internal/storage"
)

const (
	contextPrinciples     = 6
	contextHistorySets    = 10
	contextHistoryBatches = 5
	contextWeightReadings = 5
	contextMatchThreshold = 0.3
)

// BuildCoachingContext assembles training principles, per-exercise guidance
// and history, and recent body weight into one prompt-ready block. Empty
// string when nothing relevant exists.
func BuildCoachingContext(store storage.Repository, intent Intent, userID int64) (string, error) {
	var sections []string

	matched, err := resolveMentioned(store, intent)
	if err != nil {
		return "", err
	}

	hasCardio := false
	for _, ex := range matched {
		if ex.IsCardio() {
			hasCardio = true
			break
		}
	}
	for _, g := range intent.MentionedMuscleGroups {
		if strings.EqualFold(g, models.MuscleGroupCardio) {
			hasCardio = true
		}
	}

	principles, err := store.PrinciplesByPriority(contextPrinciples)
	if err != nil {
		return "", fmt.Errorf("load principles: %w", err)
	}
	if hasCardio {
		cardio, err := store.PrinciplesByCategory(models.MuscleGroupCardio)
		if err != nil {
			return "", fmt.Errorf("load cardio principles: %w", err)
		}
		seen := make(map[uuid.UUID]bool, len(principles))
		for _, p := range principles {
			seen[p.ID] = true
		}
		for _, p := range cardio {
			if !seen[p.ID] {
				principles = append(principles, p)
			}
		}
	}

	if len(principles) > 0 {
		lines := []string{"TRAINING PRINCIPLES:"}
		for _, p := range principles {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", p.Category, p.Title, p.Content))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	for _, ex := range matched {
		section, err := exerciseSection(store, ex, userID)
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}

	readings, err := store.BodyWeightsByUser(userID, contextWeightReadings)
	if err != nil {
		return "", fmt.Errorf("load body weights: %w", err)
	}
	if len(readings) > 0 {
		lines := []string{"BODY WEIGHT:"}
		for _, r := range readings {
			line := fmt.Sprintf("- %s: %s %s", r.RecordedAt.Format("Jan 2"), trimFloat(r.Weight), r.Unit)
			if r.Notes != nil {
				line += fmt.Sprintf(" (%s)", *r.Notes)
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n"), nil
}

// resolveMentioned turns intent-provided exercise names and muscle groups
// into catalog exercises, deduplicated, best scored match per name.
func resolveMentioned(store storage.Repository, intent Intent) ([]*models.Exercise, error) {
	var matched []*models.Exercise
	seen := make(map[uuid.UUID]bool)

	add := func(ex *models.Exercise) {
		if ex != nil && !seen[ex.ID] {
			seen[ex.ID] = true
			matched = append(matched, ex)
		}
	}

	var catalog []*models.Exercise
	for _, name := range intent.MentionedExercises {
		ex, err := store.GetExerciseByName(name)
		if err != nil {
			return nil, fmt.Errorf("resolve exercise %q: %w", name, err)
		}
		if ex == nil {
			if catalog == nil {
				catalog, err = store.AllExercises()
				if err != nil {
					return nil, fmt.Errorf("load catalog: %w", err)
				}
			}
			var best *models.Exercise
			bestScore := 0.0
			for _, cand := range catalog {
				if score := storage.ScoreMatch(name, cand.Name); score > bestScore {
					best, bestScore = cand, score
				}
			}
			if bestScore >= contextMatchThreshold {
				ex = best
			}
		}
		add(ex)
	}

	for _, group := range intent.MentionedMuscleGroups {
		groupExercises, err := store.GetExercisesByMuscleGroup(group)
		if err != nil {
			return nil, fmt.Errorf("resolve muscle group %q: %w", group, err)
		}
		for _, ex := range groupExercises {
			add(ex)
		}
	}

	return matched, nil
}

func exerciseSection(store storage.Repository, ex *models.Exercise, userID int64) (string, error) {
	lines := []string{fmt.Sprintf("EXERCISE: %s", ex.Name)}
	if ex.Guidance != nil {
		lines = append(lines, fmt.Sprintf("Guidance: %s", *ex.Guidance))
	}

	recent, err := store.SetsForExercise(userID, ex.ID, contextHistorySets)
	if err != nil {
		return "", fmt.Errorf("load history for %s: %w", ex.Name, err)
	}
	if len(recent) == 0 {
		return strings.Join(lines, "\n"), nil
	}

	lines = append(lines, "Recent history:")
	if ex.IsCardio() {
		for _, s := range recent {
			var parts []string
			if s.DurationMinutes != nil {
				parts = append(parts, fmt.Sprintf("%d min", *s.DurationMinutes))
			}
			if s.Distance != nil {
				parts = append(parts, fmt.Sprintf("%s mi", trimFloat(*s.Distance)))
			}
			if len(parts) == 0 && s.Reps != nil {
				parts = append(parts, fmt.Sprintf("%d reps", *s.Reps))
			}
			desc := "?"
			if len(parts) > 0 {
				desc = strings.Join(parts, ", ")
			}
			line := fmt.Sprintf("- %s: %s", s.SetDate.Format("Jan 2"), desc)
			if s.Notes != nil {
				line += fmt.Sprintf(" (%s)", *s.Notes)
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n"), nil
	}

	// Strength: group by batch, newest first, up to a handful of batches.
	var batchOrder []int64
	byBatch := make(map[int64][]*models.WorkoutSet)
	for _, s := range recent {
		if _, ok := byBatch[s.BatchID]; !ok {
			batchOrder = append(batchOrder, s.BatchID)
		}
		byBatch[s.BatchID] = append(byBatch[s.BatchID], s)
	}
	if len(batchOrder) > contextHistoryBatches {
		batchOrder = batchOrder[:contextHistoryBatches]
	}

	for _, batchID := range batchOrder {
		sets := byBatch[batchID]
		first := sets[0]

		var repsParts, weightParts []string
		for _, s := range sets {
			reps := 0
			if s.Reps != nil {
				reps = *s.Reps
			}
			repsParts = append(repsParts, strconv.Itoa(reps))
			if s.Weight != nil {
				weightParts = append(weightParts, trimFloat(*s.Weight))
			}
		}

		var line string
		if first.Weight != nil {
			line = fmt.Sprintf("- %s: %dx reps %s @ %s %s",
				first.SetDate.Format("Jan 2"), len(sets),
				strings.Join(repsParts, "/"), strings.Join(weightParts, "/"), first.WeightUnit)
		} else {
			line = fmt.Sprintf("- %s: %dx reps %s (bodyweight)",
				first.SetDate.Format("Jan 2"), len(sets), strings.Join(repsParts, "/"))
		}

		var noteParts []string
		noteSeen := make(map[string]bool)
		for _, s := range sets {
			if s.Notes != nil && !noteSeen[*s.Notes] {
				noteSeen[*s.Notes] = true
				noteParts = append(noteParts, *s.Notes)
			}
		}
		if len(noteParts) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(noteParts, "; "))
		}
		lines = append(lines, line)
	}

	var pr *models.WorkoutSet
	for _, s := range recent {
		if s.Weight == nil {
			continue
		}
		if pr == nil || *s.Weight > *pr.Weight {
			pr = s
		}
	}
	if pr != nil {
		reps := 0
		if pr.Reps != nil {
			reps = *pr.Reps
		}
		lines = append(lines, fmt.Sprintf("PR: %s %s x %d reps (%s)",
			trimFloat(*pr.Weight), pr.WeightUnit, reps, pr.SetDate.Format("Jan 2")))
	}

	return strings.Join(lines, "\n"), nil
}

// trimFloat renders a float without a trailing ".0".
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

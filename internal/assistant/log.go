// ABOUTME: Workout logger: repairs an extraction, persists it as a batch, confirms it.
// ABOUTME: Exercise resolution is exact match, then scored match, then ad-hoc create.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/repbot/internal/llm"
	"github.com/harperreed/repbot/internal/models"
	"github.com/harperreed/repbot/internal/storage"
)

// matchThreshold is the minimum Jaccard score to accept a scored match
// instead of creating an ad-hoc exercise.
const matchThreshold = 0.5

const extractionEmptyHint = "I couldn't extract workout details. Try something like: '3 sets of bench press at 185 lbs, 10 reps'"

// resolvedExercise is a catalog exercise plus whether it was matched under a
// different name than the user typed, for provenance display.
type resolvedExercise struct {
	exercise *models.Exercise
	differs  bool
}

// LogWorkout persists an extraction as one atomic batch and builds the
// confirmation. data is the (possibly pre-fetched) extraction for message;
// nil or empty data yields the retry hint without persisting anything.
func (a *Assistant) LogWorkout(userID int64, message string, data *llm.WorkoutData) (string, error) {
	if data == nil || len(data.Exercises) == 0 {
		return extractionEmptyHint, nil
	}

	expanded := expandSets(data.Exercises)
	repaired, assumed := applyRepsDefaults(expanded)

	now := a.now()
	setDate := now
	dateShown := false
	if data.Date != nil {
		d := *data.Date
		setDate = time.Date(d.Year(), d.Month(), d.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, a.loc)
		dateShown = true
	}

	resolved := make(map[string]*resolvedExercise)
	sets := make([]*models.WorkoutSet, 0, len(repaired))
	for _, ex := range repaired {
		res, err := a.resolveExercise(ex.ExerciseName, resolved)
		if err != nil {
			return "", err
		}

		s := models.NewWorkoutSet(userID, res.exercise.ID, ex.SetNumber).WithSetDate(setDate)
		s.RawName = ex.ExerciseName
		s.Reps = copyInt(ex.Reps)
		s.Notes = ex.Notes
		if ex.IsCardio() {
			s.WithCardio(*ex.DurationMinutes, copyFloat(ex.Distance))
		} else if ex.Weight != nil {
			s.WithWeight(*ex.Weight, normalizeExtractedUnit(ex.Unit))
		}
		sets = append(sets, s)
	}

	batchID, err := a.store.CreateSetBatch(sets)
	if err != nil {
		return "", fmt.Errorf("persist batch: %w", err)
	}

	header := fmt.Sprintf("Logged workout (batch #%d):", batchID)
	if dateShown {
		header = fmt.Sprintf("Logged workout (batch #%d) for %s:", batchID, formatDate(setDate))
	}
	lines := []string{header}

	logged := make([]loggedSet, 0, len(repaired))
	for i, ex := range repaired {
		res := resolved[strings.ToLower(ex.ExerciseName)]
		lines = append(lines, confirmationLine(ex, res, assumed[i]))
		logged = append(logged, loggedSet{
			exerciseID: res.exercise.ID,
			name:       res.exercise.Name,
			weight:     ex.Weight,
			notes:      ex.Notes,
			cardio:     ex.IsCardio(),
		})
	}

	lines = append(lines, volumeLines(sets)...)

	history, err := a.store.RecentForExercises(userID, uniqueExerciseIDs(sets), batchID)
	if err == nil {
		if comment := generateLogComment(logged, history, now); comment != "" {
			lines = append(lines, comment)
		}
	} else {
		a.logger.Debug("commentary history fetch failed", "err", err)
	}

	return strings.Join(lines, "\n"), nil
}

// resolveExercise finds or creates the catalog exercise for a raw name.
// Resolution is cached per batch so expanded copies of one name resolve (and
// ad-hoc create) exactly once.
func (a *Assistant) resolveExercise(rawName string, cache map[string]*resolvedExercise) (*resolvedExercise, error) {
	key := strings.ToLower(rawName)
	if res, ok := cache[key]; ok {
		return res, nil
	}

	exercise, err := a.store.GetExerciseByName(rawName)
	if err != nil {
		return nil, fmt.Errorf("look up exercise %q: %w", rawName, err)
	}

	if exercise == nil {
		catalog, err := a.store.AllExercises()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		var best *models.Exercise
		bestScore := 0.0
		for _, cand := range catalog {
			if score := storage.ScoreMatch(rawName, cand.Name); score > bestScore {
				best, bestScore = cand, score
			}
		}
		if bestScore >= matchThreshold {
			exercise = best
		}
	}

	if exercise == nil {
		exercise = models.NewExercise(rawName, models.MuscleGroupGeneral)
		if err := a.store.CreateExercise(exercise); err != nil {
			return nil, fmt.Errorf("create exercise %q: %w", rawName, err)
		}
	}

	res := &resolvedExercise{
		exercise: exercise,
		differs:  !strings.EqualFold(exercise.Name, rawName),
	}
	cache[key] = res
	return res, nil
}

// confirmationLine renders one per-set confirmation line.
func confirmationLine(ex llm.ExtractedSet, res *resolvedExercise, assumed bool) string {
	var line string
	if ex.IsCardio() {
		parts := []string{fmt.Sprintf("%d min", *ex.DurationMinutes)}
		if ex.Distance != nil {
			parts = append(parts, fmt.Sprintf("%s mi", trimFloat(*ex.Distance)))
		}
		line = fmt.Sprintf("  %s: %s", res.exercise.Name, strings.Join(parts, ", "))
	} else {
		reps := 0
		if ex.Reps != nil {
			reps = *ex.Reps
		}
		repsStr := fmt.Sprintf("%d reps", reps)
		if assumed {
			repsStr += " (assumed)"
		}
		weightStr := "bodyweight"
		if ex.Weight != nil {
			weightStr = formatWeight(*ex.Weight, normalizeExtractedUnit(ex.Unit))
		}
		line = fmt.Sprintf("  %s: set %d - %s @ %s", res.exercise.Name, ex.SetNumber, repsStr, weightStr)
	}

	if res.differs {
		line += fmt.Sprintf(" (from '%s')", ex.ExerciseName)
	}
	if ex.Notes != nil {
		line += fmt.Sprintf(" (%s)", *ex.Notes)
	}
	return line
}

// volumeLines sums weight x reps per distinct unit, one total line per unit.
func volumeLines(sets []*models.WorkoutSet) []string {
	var unitOrder []string
	totals := make(map[string]float64)
	for _, s := range sets {
		if s.Weight == nil || s.Reps == nil {
			continue
		}
		if _, ok := totals[s.WeightUnit]; !ok {
			unitOrder = append(unitOrder, s.WeightUnit)
		}
		totals[s.WeightUnit] += *s.Weight * float64(*s.Reps)
	}

	var lines []string
	for _, unit := range unitOrder {
		if totals[unit] > 0 {
			lines = append(lines, fmt.Sprintf("  Total volume: %s %s", trimFloat(totals[unit]), unit))
		}
	}
	return lines
}

// normalizeExtractedUnit maps the extractor's unit vocabulary onto stored
// weight units; "bodyweight" is stored as the default unit with nil weight.
func normalizeExtractedUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "kg", "kgs":
		return "kg"
	default:
		return models.DefaultWeightUnit
	}
}

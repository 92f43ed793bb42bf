// ABOUTME: Repeat engine: re-logs the most recent batch with optional overrides.
// ABOUTME: Modifiers (weight, repetition count, note) are parsed from the trigger message.
package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

// repeatModifiers are the parsed overrides for a repeat request. Zero values
// mean "keep the original": a malformed modifier is treated as absent, never
// as an error.
type repeatModifiers struct {
	Weight     *float64
	WeightUnit string
	Times      int
	Note       *string
}

var (
	repeatTimesTwiceRe   = regexp.MustCompile(`(?i)\btwice\b`)
	repeatTimesX2Re      = regexp.MustCompile(`(?i)\b(?:x\s*(\d+)|(\d+)\s*x)\b`)
	repeatTimesNRe       = regexp.MustCompile(`(?i)\b(\d+)\s+times\b`)
	repeatWeightAtRe     = regexp.MustCompile(`(?i)(?:\b(?:at|for)\s+|@\s*)(\d+(?:\.\d+)?)\s*(lbs|lb|kgs|kg)?\b`)
	repeatWeightBareRe   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(lbs|lb|kgs|kg)\b`)
	repeatTriggerPhrases = []string{
		"same as last time",
		"same as last",
		"same thing",
		"repeat last",
		"repeat",
		"again",
		"one more",
	}
)

// parseRepeatModifiers extracts weight/count/note overrides from a repeat
// trigger message. Recognized fragments are consumed; whatever text remains
// after stripping trigger phrases becomes the new note.
func parseRepeatModifiers(message string) repeatModifiers {
	mods := repeatModifiers{Times: 1}
	rest := message

	// Repetition count first, so its number can't be mistaken for a weight.
	if m := repeatTimesTwiceRe.FindStringIndex(rest); m != nil {
		mods.Times = 2
		rest = rest[:m[0]] + rest[m[1]:]
	} else if m := repeatTimesNRe.FindStringSubmatchIndex(rest); m != nil {
		if n, err := strconv.Atoi(rest[m[2]:m[3]]); err == nil && n > 0 {
			mods.Times = n
		}
		rest = rest[:m[0]] + rest[m[1]:]
	} else if m := repeatTimesX2Re.FindStringSubmatchIndex(rest); m != nil {
		digits := ""
		if m[2] >= 0 {
			digits = rest[m[2]:m[3]]
		} else if m[4] >= 0 {
			digits = rest[m[4]:m[5]]
		}
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			mods.Times = n
		}
		rest = rest[:m[0]] + rest[m[1]:]
	}

	if m := repeatWeightAtRe.FindStringSubmatchIndex(rest); m != nil {
		if w, err := strconv.ParseFloat(rest[m[2]:m[3]], 64); err == nil {
			mods.Weight = &w
			mods.WeightUnit = normalizeUnit(submatch(rest, m, 2))
		}
		rest = rest[:m[0]] + rest[m[1]:]
	} else if m := repeatWeightBareRe.FindStringSubmatchIndex(rest); m != nil {
		if w, err := strconv.ParseFloat(rest[m[2]:m[3]], 64); err == nil {
			mods.Weight = &w
			mods.WeightUnit = normalizeUnit(submatch(rest, m, 2))
		}
		rest = rest[:m[0]] + rest[m[1]:]
	}

	if note := extractRepeatNote(rest); note != "" {
		mods.Note = &note
	}
	return mods
}

// extractRepeatNote strips the known trigger phrases and returns whatever
// free text is left, trimmed of leading punctuation. "" means no note.
func extractRepeatNote(message string) string {
	rest := message
	for _, phrase := range repeatTriggerPhrases {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		rest = re.ReplaceAllString(rest, "")
	}
	return strings.Trim(rest, " \t,.;:-!")
}

// submatch returns the text of submatch group n (1-based), or "" when it did
// not participate in the match.
func submatch(s string, idx []int, n int) string {
	if 2*n+1 >= len(idx) || idx[2*n] < 0 {
		return ""
	}
	return s[idx[2*n]:idx[2*n+1]]
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(unit) {
	case "kg", "kgs":
		return "kg"
	case "lb", "lbs", "":
		return models.DefaultWeightUnit
	default:
		return models.DefaultWeightUnit
	}
}

// RepeatLast re-materializes the user's most recent batch as one or more new
// batches, applying any overrides parsed from the message.
func (a *Assistant) RepeatLast(userID int64, message string) (string, error) {
	original, err := a.store.LatestBatch(userID)
	if err != nil {
		return "", fmt.Errorf("load latest batch: %w", err)
	}
	if len(original) == 0 {
		return "Nothing to repeat. Log a workout first.", nil
	}

	mods := parseRepeatModifiers(message)
	now := a.now()

	var lastBatch int64
	var batchIDs []int64
	for rep := 0; rep < mods.Times; rep++ {
		sets := make([]*models.WorkoutSet, 0, len(original))
		for _, orig := range original {
			s := models.NewWorkoutSet(userID, orig.ExerciseID, orig.SetNumber).WithSetDate(now)
			s.RawName = orig.RawName
			s.Reps = copyInt(orig.Reps)
			s.DurationMinutes = copyInt(orig.DurationMinutes)
			s.Distance = copyFloat(orig.Distance)
			if mods.Weight != nil && !orig.IsCardio() {
				s.WithWeight(*mods.Weight, mods.WeightUnit)
			} else {
				s.Weight = copyFloat(orig.Weight)
				s.WeightUnit = orig.WeightUnit
			}
			// Notes never carry over; only an explicitly given new note applies.
			if mods.Note != nil {
				s.WithNotes(*mods.Note)
			}
			sets = append(sets, s)
		}

		batchID, err := a.store.CreateSetBatch(sets)
		if err != nil {
			return "", fmt.Errorf("repeat batch: %w", err)
		}
		lastBatch = batchID
		batchIDs = append(batchIDs, batchID)
	}

	header := fmt.Sprintf("Repeated last workout (batch #%d):", lastBatch)
	if len(batchIDs) > 1 {
		header = fmt.Sprintf("Repeated last workout x%d (batches #%d-#%d):",
			mods.Times, batchIDs[0], lastBatch)
	}

	lines := []string{header}
	logged := make([]loggedSet, 0, len(original))
	exerciseIDs := uniqueExerciseIDs(original)
	for _, orig := range original {
		name := orig.ExerciseName()
		weight := copyFloat(orig.Weight)
		unit := orig.WeightUnit
		if mods.Weight != nil && !orig.IsCardio() {
			weight = copyFloat(mods.Weight)
			unit = mods.WeightUnit
		}
		lines = append(lines, repeatedSetLine(orig, name, weight, unit, mods.Note))
		logged = append(logged, loggedSet{
			exerciseID: orig.ExerciseID,
			name:       name,
			weight:     weight,
			notes:      mods.Note,
			cardio:     orig.IsCardio(),
		})
	}

	history, err := a.store.RecentForExercises(userID, exerciseIDs, lastBatch)
	if err == nil {
		if comment := generateLogComment(logged, history, now); comment != "" {
			lines = append(lines, comment)
		}
	} else {
		a.logger.Debug("commentary history fetch failed", "err", err)
	}

	return strings.Join(lines, "\n"), nil
}

func repeatedSetLine(orig *models.WorkoutSet, name string, weight *float64, unit string, note *string) string {
	var line string
	if orig.IsCardio() {
		parts := []string{fmt.Sprintf("%d min", *orig.DurationMinutes)}
		if orig.Distance != nil {
			parts = append(parts, fmt.Sprintf("%s mi", trimFloat(*orig.Distance)))
		}
		line = fmt.Sprintf("  %s: %s", name, strings.Join(parts, ", "))
	} else {
		reps := 0
		if orig.Reps != nil {
			reps = *orig.Reps
		}
		weightStr := "bodyweight"
		if weight != nil {
			weightStr = formatWeight(*weight, unit)
		}
		line = fmt.Sprintf("  %s: set %d - %d reps @ %s", name, orig.SetNumber, reps, weightStr)
	}
	if note != nil {
		line += fmt.Sprintf(" (%s)", *note)
	}
	return line
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func uniqueExerciseIDs(sets []*models.WorkoutSet) []uuid.UUID {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, s := range sets {
		if !seen[s.ExerciseID] {
			seen[s.ExerciseID] = true
			ids = append(ids, s.ExerciseID)
		}
	}
	return ids
}

// ABOUTME: Body-weight logging and trend rendering.
// ABOUTME: Each logged reading shows the delta against the previous one.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/repbot/internal/llm"
	"github.com/harperreed/repbot/internal/models"
)

// weightTrendReadings caps how many readings the trend view shows.
const weightTrendReadings = 10

const weightExtractionHint = "I couldn't extract a body weight. Try something like: 'weighed in at 185 lbs this morning'"

// LogBodyWeight persists a body-weight reading and confirms it with the delta
// against the previous reading, when one exists.
func (a *Assistant) LogBodyWeight(userID int64, data *llm.WeightData) (string, error) {
	if data == nil || data.Weight <= 0 {
		return weightExtractionHint, nil
	}

	prev, err := a.store.LatestBodyWeight(userID)
	if err != nil {
		return "", fmt.Errorf("fetch previous reading: %w", err)
	}

	bw := models.NewBodyWeight(userID, data.Weight, data.Unit)
	if data.Notes != nil {
		bw.WithNotes(*data.Notes)
	}
	recorded := a.now()
	if data.Date != nil {
		d := *data.Date
		recorded = time.Date(d.Year(), d.Month(), d.Day(),
			recorded.Hour(), recorded.Minute(), recorded.Second(), 0, a.loc)
	}
	bw.WithRecordedAt(recorded)

	if err := a.store.CreateBodyWeight(bw); err != nil {
		return "", fmt.Errorf("persist body weight: %w", err)
	}

	line := fmt.Sprintf("Logged body weight: %s", formatWeight(bw.Weight, bw.Unit))
	if data.Date != nil {
		line += fmt.Sprintf(" for %s", formatDate(recorded))
	}
	if prev != nil && prev.Unit == bw.Unit {
		if delta := formatDelta(bw.Weight, prev.Weight); delta != "" {
			line += fmt.Sprintf(" (%s from %s)", delta, formatDate(prev.RecordedAt))
		}
	}
	return line, nil
}

// WeightTrend renders recent body-weight readings, newest first, each with
// the change from the reading before it.
func (a *Assistant) WeightTrend(userID int64) (string, error) {
	readings, err := a.store.BodyWeightsByUser(userID, weightTrendReadings)
	if err != nil {
		return "", fmt.Errorf("fetch body weights: %w", err)
	}
	if len(readings) == 0 {
		return "No body weight logged yet. Tell me your weight to start tracking.", nil
	}

	lines := []string{"Body Weight:"}
	for i, bw := range readings {
		line := fmt.Sprintf("  %s: %s", formatDate(bw.RecordedAt), formatWeight(bw.Weight, bw.Unit))
		if i+1 < len(readings) {
			prev := readings[i+1]
			if prev.Unit == bw.Unit {
				if delta := formatDelta(bw.Weight, prev.Weight); delta != "" {
					line += fmt.Sprintf(" (%s)", delta)
				}
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

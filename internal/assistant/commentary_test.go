// ABOUTME: Tests for the log commentary heuristics.
// ABOUTME: Covers every remark kind and the fixed priority between them.
package assistant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/repbot/internal/models"
)

var commentNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func histSet(exerciseID uuid.UUID, weight float64, setDate time.Time) *models.WorkoutSet {
	s := models.NewWorkoutSet(1, exerciseID, 1)
	s.Weight = &weight
	s.SetDate = setDate
	return s
}

func TestCommentPRDetected(t *testing.T) {
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Bench Press", weight: floatPtr(200)}}
	history := []*models.WorkoutSet{histSet(ex, 185, commentNow.AddDate(0, 0, -1))}

	got := generateLogComment(logged, history, commentNow)
	if got != "New PR on Bench Press!" {
		t.Errorf("Comment = %q, want PR remark", got)
	}
}

func TestCommentFirstTime(t *testing.T) {
	logged := []loggedSet{{exerciseID: uuid.New(), name: "Dumbbell Flyes", weight: floatPtr(30)}}

	got := generateLogComment(logged, nil, commentNow)
	if got != "First time logging Dumbbell Flyes." {
		t.Errorf("Comment = %q, want first-time remark", got)
	}
}

func TestCommentGapDetected(t *testing.T) {
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Squat", weight: floatPtr(225)}}
	history := []*models.WorkoutSet{histSet(ex, 225, commentNow.AddDate(0, 0, -5))}

	got := generateLogComment(logged, history, commentNow)
	if got != "Back at it after 5 days." {
		t.Errorf("Comment = %q, want gap remark", got)
	}
}

func TestCommentWeightIncreaseNotPR(t *testing.T) {
	// Heavier than yesterday but below the all-time max from a month ago.
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Squat", weight: floatPtr(230)}}
	history := []*models.WorkoutSet{
		histSet(ex, 225, commentNow.AddDate(0, 0, -1)),
		histSet(ex, 250, commentNow.AddDate(0, 0, -30)),
	}

	got := generateLogComment(logged, history, commentNow)
	if got != "Moving up in weight on Squat." {
		t.Errorf("Comment = %q, want weight-increase remark", got)
	}
}

func TestCommentPRPriorityOverWeightIncrease(t *testing.T) {
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Bench Press", weight: floatPtr(200)}}
	history := []*models.WorkoutSet{histSet(ex, 185, commentNow.AddDate(0, 0, -1))}

	got := generateLogComment(logged, history, commentNow)
	if got != "New PR on Bench Press!" {
		t.Errorf("Comment = %q, PR must win over weight increase", got)
	}
}

func TestCommentFirstTimePriorityOverGap(t *testing.T) {
	// New exercise plus an old one with a gap: first-time wins.
	newEx, oldEx := uuid.New(), uuid.New()
	logged := []loggedSet{
		{exerciseID: oldEx, name: "Squat", weight: floatPtr(225)},
		{exerciseID: newEx, name: "Lunge", weight: floatPtr(95)},
	}
	history := []*models.WorkoutSet{histSet(oldEx, 225, commentNow.AddDate(0, 0, -10))}

	got := generateLogComment(logged, history, commentNow)
	if got != "First time logging Lunge." {
		t.Errorf("Comment = %q, first-time must win over gap", got)
	}
}

func TestCommentPainNotes(t *testing.T) {
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Bench Press", weight: floatPtr(135), notes: strPtr("shoulder pain")}}
	history := []*models.WorkoutSet{histSet(ex, 135, commentNow.AddDate(0, 0, -1))}

	got := generateLogComment(logged, history, commentNow)
	if got != "Take it easy if the pain persists." {
		t.Errorf("Comment = %q, want pain remark", got)
	}
}

func TestCommentNothingNoteworthy(t *testing.T) {
	ex := uuid.New()
	logged := []loggedSet{{exerciseID: ex, name: "Bench Press", weight: floatPtr(135)}}
	history := []*models.WorkoutSet{histSet(ex, 135, commentNow.AddDate(0, 0, -1))}

	if got := generateLogComment(logged, history, commentNow); got != "" {
		t.Errorf("Comment = %q, want none", got)
	}
}

func TestCommentCardioSkipsWeightChecks(t *testing.T) {
	logged := []loggedSet{{exerciseID: uuid.New(), name: "Running", cardio: true}}

	got := generateLogComment(logged, nil, commentNow)
	if got != "First time logging Running." {
		t.Errorf("Comment = %q, cardio still gets first-time remark", got)
	}
}

func TestCommentEmptyLoggedSets(t *testing.T) {
	if got := generateLogComment(nil, nil, commentNow); got != "" {
		t.Errorf("Comment = %q, want none for empty batch", got)
	}
}

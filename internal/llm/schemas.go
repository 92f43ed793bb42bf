// ABOUTME: Structured types exchanged with the language model.
// ABOUTME: Intent is a tagged variant; each kind carries only the fields relevant to it.
package llm

import "time"

// IntentKind is the primary classification of a user message.
type IntentKind string

const (
	IntentLogWorkout    IntentKind = "log_workout"
	IntentLogWeight     IntentKind = "log_weight"
	IntentViewStats     IntentKind = "view_stats"
	IntentDeleteWorkout IntentKind = "delete_workout"
	IntentRepeatLast    IntentKind = "repeat_last"
	IntentCoaching      IntentKind = "coaching"
)

// StatsKind narrows a view_stats intent to one sub-report.
type StatsKind string

const (
	StatsOverview    StatsKind = "overview"
	StatsPRs         StatsKind = "prs"
	StatsHistory     StatsKind = "history"
	StatsVolume      StatsKind = "volume"
	StatsConsistency StatsKind = "consistency"
	StatsList        StatsKind = "list"
	StatsWeight      StatsKind = "weight"
)

// Intent is the classifier's verdict on a message. StatsKind is only
// meaningful for view_stats; the mentioned lists feed exercise resolution and
// coaching context and may be empty for any kind.
type Intent struct {
	Kind                  IntentKind `json:"intent"`
	Confidence            float64    `json:"confidence"`
	StatsKind             StatsKind  `json:"stats_kind,omitempty"`
	MentionedExercises    []string   `json:"mentioned_exercises,omitempty"`
	MentionedMuscleGroups []string   `json:"mentioned_muscle_groups,omitempty"`
}

// ExtractedSet is one set as the extractor returned it, before repair.
// SetNumber is untrusted: a known extractor bug returns "N sets of X" as a
// single entry with SetNumber = N.
type ExtractedSet struct {
	ExerciseName    string   `json:"exercise_name"`
	SetNumber       int      `json:"set_number"`
	Reps            *int     `json:"reps"`
	Weight          *float64 `json:"weight"`
	Unit            string   `json:"unit"`
	DurationMinutes *int     `json:"duration_minutes"`
	Distance        *float64 `json:"distance"`
	Notes           *string  `json:"notes"`
}

// IsCardio reports whether the extractor returned this as a duration-based set.
func (s ExtractedSet) IsCardio() bool {
	return s.DurationMinutes != nil && *s.DurationMinutes > 0
}

// WorkoutData is a full extraction result for one message.
type WorkoutData struct {
	Exercises []ExtractedSet `json:"exercises"`
	Date      *time.Time     `json:"date,omitempty"`
}

// WeightData is an extracted body weight reading.
type WeightData struct {
	Weight float64    `json:"weight"`
	Unit   string     `json:"unit"`
	Date   *time.Time `json:"date,omitempty"`
	Notes  *string    `json:"notes,omitempty"`
}

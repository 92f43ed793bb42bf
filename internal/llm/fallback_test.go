// ABOUTME: Tests for the keyword fallback classifier.
// ABOUTME: Table-driven over representative trigger phrases per intent kind.
package llm

import "testing"

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		message string
		want    IntentKind
	}{
		{"undo", IntentDeleteWorkout},
		{"delete session #42", IntentDeleteWorkout},
		{"remove that", IntentDeleteWorkout},
		{"again", IntentRepeatLast},
		{"repeat last", IntentRepeatLast},
		{"same as last time", IntentRepeatLast},
		{"show my stats", IntentViewStats},
		{"how's my progress", IntentViewStats},
		{"weighed 185 lbs", IntentLogWeight},
		{"did 3 sets of bench press", IntentLogWorkout},
		{"i benched 135 for 10 reps", IntentLogWorkout},
		{"what should i do for chest day", IntentCoaching},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := FallbackClassify(tt.message)
			if got.Kind != tt.want {
				t.Errorf("FallbackClassify(%q).Kind = %v, want %v", tt.message, got.Kind, tt.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("Confidence out of range: %v", got.Confidence)
			}
		})
	}
}

func TestFallbackStatsSubKind(t *testing.T) {
	tests := []struct {
		message string
		want    StatsKind
	}{
		{"show my prs", StatsPRs},
		{"show weekly volume", StatsVolume},
		{"show my streak", StatsConsistency},
		{"show my stats", StatsOverview},
		{"show my progress", StatsOverview},
		{"show my personal records", StatsPRs},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := FallbackClassify(tt.message)
			if got.Kind != IntentViewStats {
				t.Fatalf("Kind = %v, want view_stats", got.Kind)
			}
			if got.StatsKind != tt.want {
				t.Errorf("StatsKind = %v, want %v", got.StatsKind, tt.want)
			}
		})
	}
}

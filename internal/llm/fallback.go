// ABOUTME: Keyword-heuristic intent classifier used when the model is unreachable.
// ABOUTME: Deterministic and local so classification never fails a request outright.
package llm

import "strings"

// FallbackClassify classifies a message by keyword matching. It is the
// last-resort path after model retries are exhausted, and is deliberately
// conservative: anything unrecognized routes to coaching.
func FallbackClassify(message string) Intent {
	lower := strings.ToLower(message)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("undo", "delete", "remove"):
		return Intent{Kind: IntentDeleteWorkout, Confidence: 0.7}
	case contains("again", "repeat", "same as last"):
		return Intent{Kind: IntentRepeatLast, Confidence: 0.7}
	case contains("stats", "progress", "history", "show"):
		return Intent{Kind: IntentViewStats, Confidence: 0.9, StatsKind: fallbackStatsKind(lower)}
	case contains("trend"):
		return Intent{Kind: IntentViewStats, Confidence: 0.8, StatsKind: StatsWeight}
	case contains("weigh"):
		return Intent{Kind: IntentLogWeight, Confidence: 0.7}
	case contains("log", "did", "worked out", "i benched", "sets", "reps"):
		return Intent{Kind: IntentLogWorkout, Confidence: 0.6}
	default:
		return Intent{Kind: IntentCoaching, Confidence: 0.5}
	}
}

func fallbackStatsKind(lower string) StatsKind {
	switch {
	case hasWord(lower, "pr", "prs") || strings.Contains(lower, "record"):
		return StatsPRs
	case strings.Contains(lower, "volume"):
		return StatsVolume
	case strings.Contains(lower, "consisten") || strings.Contains(lower, "streak"):
		return StatsConsistency
	case strings.Contains(lower, "list"):
		return StatsList
	case strings.Contains(lower, "weight trend") || strings.Contains(lower, "body weight"):
		return StatsWeight
	default:
		return StatsOverview
	}
}

// hasWord reports whether any of the words appears as a whole token, so
// "progress" doesn't trigger the "pr" report.
func hasWord(lower string, words ...string) bool {
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

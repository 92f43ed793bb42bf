// ABOUTME: Repair layer between the extractor and persistence.
// ABOUTME: Fixes the set-count-as-set-number extraction bug and fills missing reps.
package assistant

import "github.com/harperreed/repbot/internal/llm"

// defaultReps is assumed for a strength set when the extractor returned no
// rep count.
const defaultReps = 10

// expandSets repairs a known extraction pathology: "N sets of X" returned as
// one entry with SetNumber = N instead of N entries numbered 1..N. Only an
// exercise name occurring exactly once is expanded; names the extractor
// already enumerated are passed through untouched. Input is never mutated.
func expandSets(sets []llm.ExtractedSet) []llm.ExtractedSet {
	nameCount := make(map[string]int, len(sets))
	for _, s := range sets {
		nameCount[s.ExerciseName]++
	}

	out := make([]llm.ExtractedSet, 0, len(sets))
	for _, s := range sets {
		if nameCount[s.ExerciseName] == 1 && s.SetNumber > 1 {
			for n := 1; n <= s.SetNumber; n++ {
				copied := s
				copied.SetNumber = n
				out = append(out, copied)
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// applyRepsDefaults fills nil or zero reps on non-cardio sets with the policy
// default and returns the indices that were assumed, for display annotation.
// Cardio sets keep nil reps; explicit positive reps are never altered.
// Input is never mutated.
func applyRepsDefaults(sets []llm.ExtractedSet) ([]llm.ExtractedSet, map[int]bool) {
	out := make([]llm.ExtractedSet, len(sets))
	assumed := make(map[int]bool)

	for i, s := range sets {
		out[i] = s
		if s.IsCardio() {
			continue
		}
		if s.Reps == nil || *s.Reps == 0 {
			reps := defaultReps
			out[i].Reps = &reps
			assumed[i] = true
		}
	}
	return out, assumed
}

// ABOUTME: Stats engine: overview, PRs, history, volume, consistency, list, weight trend.
// ABOUTME: Every sub-report is a pure read over historical rows.
package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/repbot/internal/llm"
	"github.com/harperreed/repbot/internal/models"
	"github.com/harperreed/repbot/internal/storage"
)

const (
	overviewBatches   = 20
	overviewDays      = 3
	historyBatches    = 20
	historyMatchScore = 0.3
	listBatches       = 10
	volumeWeeks       = 8
)

const noWorkoutsMessage = "No workouts logged yet. Tell me about a workout to get started!"

// Stats dispatches a view_stats intent to the requested sub-report.
func (a *Assistant) Stats(userID int64, intent llm.Intent) (string, error) {
	switch intent.StatsKind {
	case llm.StatsPRs:
		return a.statsPRs(userID)
	case llm.StatsHistory:
		return a.statsHistory(userID, intent.MentionedExercises)
	case llm.StatsVolume:
		return a.statsVolume(userID)
	case llm.StatsConsistency:
		return a.statsConsistency(userID)
	case llm.StatsList:
		return a.statsList(userID)
	case llm.StatsWeight:
		return a.WeightTrend(userID)
	default:
		return a.statsOverview(userID)
	}
}

// statsOverview renders the last few distinct workout days from recent
// batches, one block per day.
func (a *Assistant) statsOverview(userID int64) (string, error) {
	sets, err := a.store.LatestBatches(userID, overviewBatches)
	if err != nil {
		return "", fmt.Errorf("load recent batches: %w", err)
	}
	if len(sets) == 0 {
		return noWorkoutsMessage, nil
	}

	// Sets arrive newest batch first; bucket by calendar day, keeping the
	// newest days. Batch order and day order can disagree when a batch is
	// backdated, so sets from unkept days are skipped, not treated as the end.
	var dayOrder []string
	byDay := make(map[string][]*models.WorkoutSet)
	for _, s := range sets {
		day := s.SetDate.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			if len(dayOrder) == overviewDays {
				continue
			}
			dayOrder = append(dayOrder, day)
		}
		byDay[day] = append(byDay[day], s)
	}

	var lines []string
	lines = append(lines, "Recent workouts:")
	for _, day := range dayOrder {
		daySets := byDay[day]
		lines = append(lines, fmt.Sprintf("%s:", formatDate(daySets[0].SetDate)))
		lines = append(lines, summarizeExerciseDay(daySets)...)
	}
	return strings.Join(lines, "\n"), nil
}

// summarizeExerciseDay renders one line per exercise for a day's sets,
// collapsing identical (reps, weight) sets into "Nx R @ W".
func summarizeExerciseDay(sets []*models.WorkoutSet) []string {
	var order []string
	byExercise := make(map[string][]*models.WorkoutSet)
	for _, s := range sets {
		name := s.ExerciseName()
		if _, ok := byExercise[name]; !ok {
			order = append(order, name)
		}
		byExercise[name] = append(byExercise[name], s)
	}

	var lines []string
	for _, name := range order {
		lines = append(lines, fmt.Sprintf("  %s: %s", name, summarizeSets(byExercise[name])))
	}
	return lines
}

// summarizeSets collapses a group of one exercise's sets into a compact
// description.
func summarizeSets(sets []*models.WorkoutSet) string {
	if sets[0].IsCardio() {
		var parts []string
		for _, s := range sets {
			desc := fmt.Sprintf("%d min", *s.DurationMinutes)
			if s.Distance != nil {
				desc += fmt.Sprintf(", %s mi", trimFloat(*s.Distance))
			}
			parts = append(parts, desc)
		}
		return strings.Join(parts, "; ")
	}

	uniform := true
	for _, s := range sets[1:] {
		if !sameRepsWeight(s, sets[0]) {
			uniform = false
			break
		}
	}

	if uniform {
		return fmt.Sprintf("%dx %s", len(sets), setDescription(sets[0]))
	}

	var parts []string
	for _, s := range sets {
		parts = append(parts, setDescription(s))
	}
	return strings.Join(parts, ", ")
}

func sameRepsWeight(a, b *models.WorkoutSet) bool {
	aReps, bReps := 0, 0
	if a.Reps != nil {
		aReps = *a.Reps
	}
	if b.Reps != nil {
		bReps = *b.Reps
	}
	if aReps != bReps {
		return false
	}
	switch {
	case a.Weight == nil && b.Weight == nil:
		return true
	case a.Weight == nil || b.Weight == nil:
		return false
	default:
		return *a.Weight == *b.Weight
	}
}

func setDescription(s *models.WorkoutSet) string {
	reps := 0
	if s.Reps != nil {
		reps = *s.Reps
	}
	if s.Weight == nil {
		return fmt.Sprintf("%d (bodyweight)", reps)
	}
	return fmt.Sprintf("%d @ %s", reps, formatWeight(*s.Weight, s.WeightUnit))
}

// statsPRs renders the heaviest set ever per exercise.
func (a *Assistant) statsPRs(userID int64) (string, error) {
	prs, err := a.store.AllPersonalRecords(userID)
	if err != nil {
		return "", fmt.Errorf("load personal records: %w", err)
	}
	if len(prs) == 0 {
		return noWorkoutsMessage, nil
	}

	lines := []string{"Personal records:"}
	for _, s := range prs {
		reps := 0
		if s.Reps != nil {
			reps = *s.Reps
		}
		lines = append(lines, fmt.Sprintf("  %s: %s x %d reps (%s)",
			s.ExerciseName(), formatWeight(*s.Weight, s.WeightUnit), reps, formatDate(s.SetDate)))
	}
	return strings.Join(lines, "\n"), nil
}

// statsHistory renders recent batches for one exercise resolved from the
// intent's mentioned names.
func (a *Assistant) statsHistory(userID int64, mentioned []string) (string, error) {
	exercise, err := a.resolveHistoryExercise(mentioned)
	if err != nil {
		return "", err
	}
	if exercise == nil {
		return "Which exercise? Try something like 'show my bench press history'.", nil
	}

	sets, err := a.store.SetsForExercise(userID, exercise.ID, historyBatches*10)
	if err != nil {
		return "", fmt.Errorf("load exercise history: %w", err)
	}
	if len(sets) == 0 {
		return fmt.Sprintf("No sets logged for %s yet.", exercise.Name), nil
	}

	var batchOrder []int64
	byBatch := make(map[int64][]*models.WorkoutSet)
	for _, s := range sets {
		if _, ok := byBatch[s.BatchID]; !ok {
			if len(batchOrder) == historyBatches {
				break
			}
			batchOrder = append(batchOrder, s.BatchID)
		}
		byBatch[s.BatchID] = append(byBatch[s.BatchID], s)
	}

	lines := []string{fmt.Sprintf("%s history:", exercise.Name)}
	for _, batchID := range batchOrder {
		batchSets := byBatch[batchID]
		lines = append(lines, fmt.Sprintf("  %s: %s",
			formatDate(batchSets[0].SetDate), summarizeSets(batchSets)))
	}
	return strings.Join(lines, "\n"), nil
}

// resolveHistoryExercise resolves the first usable mentioned name: exact
// match first, then the best scored match above the history threshold.
func (a *Assistant) resolveHistoryExercise(mentioned []string) (*models.Exercise, error) {
	if len(mentioned) == 0 {
		return nil, nil
	}

	var catalog []*models.Exercise
	for _, name := range mentioned {
		ex, err := a.store.GetExerciseByName(name)
		if err != nil {
			return nil, fmt.Errorf("resolve exercise %q: %w", name, err)
		}
		if ex != nil {
			return ex, nil
		}

		if catalog == nil {
			catalog, err = a.store.AllExercises()
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
		if bestScore >= historyMatchScore {
			return best, nil
		}
	}
	return nil, nil
}

// statsVolume renders weekly weight x reps totals by muscle group.
func (a *Assistant) statsVolume(userID int64) (string, error) {
	rows, err := a.store.WeeklyVolume(userID, volumeWeeks, a.now())
	if err != nil {
		return "", fmt.Errorf("load weekly volume: %w", err)
	}
	if len(rows) == 0 {
		return noWorkoutsMessage, nil
	}

	lines := []string{fmt.Sprintf("Weekly volume (last %d weeks):", volumeWeeks)}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %s %s: %s lbs", r.YearWeek, r.MuscleGroup, trimFloat(r.Volume)))
	}
	return strings.Join(lines, "\n"), nil
}

// consistencyReport is the computed workout-frequency summary. Nil pointer
// fields are undefined for the given data (too few dates).
type consistencyReport struct {
	Count30       int
	Count90       int
	AvgGap        *float64
	Streak        int
	DaysSinceLast *int
}

// computeConsistency derives frequency stats from distinct workout dates.
// dates90 must be distinct calendar days, ascending; today is the reference
// day in the same location.
func computeConsistency(dates90 []time.Time, today time.Time) consistencyReport {
	report := consistencyReport{Count90: len(dates90)}
	if len(dates90) == 0 {
		return report
	}

	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	todayDay := day(today)

	days := make(map[time.Time]bool, len(dates90))
	sorted := make([]time.Time, 0, len(dates90))
	for _, d := range dates90 {
		dd := day(d)
		days[dd] = true
		sorted = append(sorted, dd)
		if todayDay.Sub(dd).Hours() <= 30*24 {
			report.Count30++
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	last := sorted[len(sorted)-1]

	if len(sorted) >= 2 {
		totalGap := 0.0
		for i := 1; i < len(sorted); i++ {
			totalGap += sorted[i].Sub(sorted[i-1]).Hours() / 24
		}
		avg := totalGap / float64(len(sorted)-1)
		report.AvgGap = &avg
	}

	for d := todayDay; days[d]; d = d.AddDate(0, 0, -1) {
		report.Streak++
	}

	since := int(todayDay.Sub(last).Hours() / 24)
	report.DaysSinceLast = &since

	return report
}

// statsConsistency renders streaks and workout frequency.
func (a *Assistant) statsConsistency(userID int64) (string, error) {
	now := a.now()
	dates, err := a.store.WorkoutDates(userID, 90, now)
	if err != nil {
		return "", fmt.Errorf("load workout dates: %w", err)
	}
	if len(dates) == 0 {
		return noWorkoutsMessage, nil
	}

	report := computeConsistency(dates, now)

	lines := []string{
		"Consistency:",
		fmt.Sprintf("  Last 30 days: %d workouts", report.Count30),
		fmt.Sprintf("  Last 90 days: %d workouts", report.Count90),
	}
	if report.AvgGap != nil {
		lines = append(lines, fmt.Sprintf("  Average gap: %.1f days", *report.AvgGap))
	}
	if report.Streak > 0 {
		lines = append(lines, fmt.Sprintf("  Current streak: %d days", report.Streak))
	} else if report.DaysSinceLast != nil {
		lines = append(lines, fmt.Sprintf("  Last workout: %d days ago", *report.DaysSinceLast))
	}
	return strings.Join(lines, "\n"), nil
}

// statsList renders the last few batches with ids, for use with undo.
func (a *Assistant) statsList(userID int64) (string, error) {
	sets, err := a.store.LatestBatches(userID, listBatches)
	if err != nil {
		return "", fmt.Errorf("load recent batches: %w", err)
	}
	if len(sets) == 0 {
		return noWorkoutsMessage, nil
	}

	var batchOrder []int64
	byBatch := make(map[int64][]*models.WorkoutSet)
	for _, s := range sets {
		if _, ok := byBatch[s.BatchID]; !ok {
			batchOrder = append(batchOrder, s.BatchID)
		}
		byBatch[s.BatchID] = append(byBatch[s.BatchID], s)
	}

	lines := []string{"Recent workouts:"}
	for _, batchID := range batchOrder {
		batchSets := byBatch[batchID]
		var names []string
		seen := make(map[string]bool)
		for _, s := range batchSets {
			name := s.ExerciseName()
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		lines = append(lines, fmt.Sprintf("  #%d (%s): %s - %d sets",
			batchID, formatDate(batchSets[0].SetDate), strings.Join(names, ", "), len(batchSets)))
	}
	return strings.Join(lines, "\n"), nil
}

// ABOUTME: CLI command that seeds the exercise catalog and coaching knowledge.
// ABOUTME: Idempotent: an already-populated table is left alone.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/repbot/internal/models"
)

type seedExercise struct {
	name        string
	muscleGroup string
	description string
	guidance    string
}

type seedPrinciple struct {
	category string
	title    string
	content  string
	priority int
}

var seedExercises = []seedExercise{
	// Chest
	{"Bench Press", "chest", "Classic compound chest exercise",
		"Compound chest movement. Strength: 3-5x3-5, heavy. Hypertrophy: 3-4x8-12, moderate. " +
			"Progress +5 lbs when all sets hit target reps. Stalled 2+ sessions: deload 10%. " +
			"Rest 2-3 min (strength) or 60-90s (hypertrophy). Retract shoulder blades, plant feet."},
	{"Incline Dumbbell Press", "chest", "Upper chest focus",
		"Upper chest emphasis. Hypertrophy: 3-4x8-12. Progress +5 lbs per hand when all sets " +
			"hit target reps. 30-45 degree incline. Control the eccentric, press to lockout. Rest 60-90s."},
	{"Push-up", "chest", "Bodyweight chest exercise",
		"Bodyweight push. Progress by adding reps (3 sets to failure), then harder variations: " +
			"incline, flat, decline, weighted. Keep core tight, full ROM chest to floor. Rest 60s."},
	{"Dumbbell Flyes", "chest", "Chest isolation exercise",
		"Chest isolation, stretch emphasis. 3-4x10-15 with light-moderate weight. Do NOT go " +
			"heavy. Slight bend in elbows, control the stretch at bottom. Progress +5 lbs per hand " +
			"conservatively. Rest 60s."},
	// Back
	{"Pull-up", "back", "Compound back exercise",
		"Compound vertical pull. Can't do full reps: use band assistance or negatives. Progress " +
			"by adding reps, then add weight via belt. Strength: 5x3-5 weighted. Hypertrophy: " +
			"3-4x6-12. Full hang to chin over bar. Rest 2-3 min."},
	{"Barbell Row", "back", "Horizontal pulling movement",
		"Compound horizontal pull. Strength: 3-5x5. Hypertrophy: 3-4x8-12. Progress +5 lbs when " +
			"all sets hit target. Back at ~45 degrees, pull to lower chest, no excessive body " +
			"English. Rest 2-3 min (strength) or 60-90s (hypertrophy)."},
	{"Deadlift", "back", "Full body posterior chain",
		"Full posterior chain compound. Strength: 1-3x3-5, heavy. Hypertrophy: 3x6-8. Progress " +
			"+5-10 lbs when form is solid. Hinge at hips, neutral spine, bar close to body. Very " +
			"taxing, typically 1x/week. Rest 3-5 min between heavy sets."},
	{"Lat Pulldown", "back", "Vertical pulling movement",
		"Vertical pull, lat focus. Good pull-up substitute. 3-4x8-12. Progress when all sets " +
			"complete. Pull to upper chest, squeeze lats at bottom. Avoid leaning too far back. " +
			"Rest 60-90s."},
	// Shoulders
	{"Overhead Press", "shoulders", "Compound shoulder exercise",
		"Compound shoulder press. Strength: 3-5x3-5. Hypertrophy: 3-4x8-12. Progress +5 lbs when " +
			"all sets hit target; slowest progressing barbell lift. Brace core, press straight up, " +
			"lock out overhead. Rest 2-3 min (strength) or 60-90s (hypertrophy)."},
	{"Lateral Raises", "shoulders", "Shoulder isolation",
		"Side delt isolation. 3-4x12-20, light weight. Progress +2.5-5 lbs very slowly; ego " +
			"weight kills form. Slight lean forward, raise to shoulder height, control descent. " +
			"Tolerates 3-4x/week. Rest 45-60s."},
	{"Face Pulls", "shoulders", "Rear delt and shoulder health",
		"Rear delt and rotator cuff health. 3-4x15-20, light weight. Focus on squeeze and " +
			"external rotation at top. Do every upper body day. Progress slowly. Rest 45-60s."},
	// Arms
	{"Bicep Curls", "biceps", "Bicep isolation",
		"Bicep isolation. 3-4x8-12. Progress +5 lbs per hand when all sets hit target. Full ROM, " +
			"no swinging. Dumbbells allow supination. Biceps recover fast, 2-3x/week is fine. Rest 60s."},
	{"Tricep Pushdowns", "triceps", "Tricep isolation",
		"Tricep isolation, cable. 3-4x10-15. Progress when all sets complete. Elbows pinned to " +
			"sides, full extension at bottom. Rope attachment for better peak contraction. Rest 60s."},
	{"Hammer Curls", "biceps", "Brachioradialis and biceps",
		"Targets brachioradialis and bicep long head. 3-4x8-12. Neutral grip. Progress +5 lbs " +
			"per hand. Good complement to regular curls. Rest 60s."},
	{"Skull Crushers", "triceps", "Tricep isolation exercise",
		"Tricep isolation, long head emphasis. 3-4x8-12. Lower bar to forehead or just behind " +
			"head. Progress +5 lbs when all sets hit target. Watch for elbow pain; switch to " +
			"overhead extension if it flares. Rest 60-90s."},
	// Legs
	{"Squat", "legs", "King of leg exercises",
		"Compound quad/glute dominant. Strength: 3-5x3-5, heavy. Hypertrophy: 3-4x8-12. Progress " +
			"+5-10 lbs when all sets hit target. Depth: hip crease below knee. Brace core, chest " +
			"up, knees tracking toes. Rest 3-5 min (strength) or 2 min (hypertrophy)."},
	{"Romanian Deadlift", "legs", "Hamstring and glute focus",
		"Hamstring and glute emphasis. 3-4x8-12. Hinge at hips, slight knee bend, feel the " +
			"hamstring stretch. Progress +5-10 lbs when form stays clean. Bar close to legs, " +
			"no rounding. Rest 90s-2 min."},
	{"Leg Press", "legs", "Machine leg exercise",
		"Machine compound leg exercise. Good for volume after squats. 3-4x8-15. Progress when " +
			"all sets complete. Don't lock out knees. Foot placement varies emphasis: high = " +
			"glutes, low = quads. Rest 90s-2 min."},
	{"Bulgarian Split Squats", "legs", "Unilateral leg exercise",
		"Unilateral leg exercise, fixes imbalances. 3x8-12 per leg. Progress +5 lbs per hand " +
			"when stable. Rear foot elevated on bench, torso upright. Rest 60-90s per leg."},
	// Core
	{"Plank", "core", "Core stability exercise",
		"Core stability, anti-extension. Hold 3x30-60s. Progress by adding time (up to 2 min), " +
			"then weighted plate or ab wheel rollouts. Squeeze glutes, don't let hips sag. Rest 60s."},
	{"Russian Twists", "core", "Rotational core work",
		"Rotational core exercise. 3x15-20 per side. Progress by adding weight. Lean back " +
			"slightly, feet off ground for harder variation. Control the rotation. Rest 60s."},
	{"Hanging Leg Raises", "core", "Lower abs focus",
		"Lower ab emphasis. 3x8-15. Progress: knee raises, straight leg raises, toes to bar. " +
			"No swinging. Curl pelvis up, don't just lift legs with hip flexors. Rest 60-90s."},
	{"Crunches", "core", "Classic ab exercise",
		"Basic ab exercise. 3x15-25. Progress with a plate on chest or cable crunches. Short " +
			"ROM, lift shoulder blades off ground and squeeze. Don't pull on neck. Rest 45-60s."},
	// Cardio
	{"Running", "cardio", "Cardiovascular exercise",
		"Steady state: 20-45 min at conversational pace (RPE 4-6). Intervals: 6-10 rounds of " +
			"30s hard / 60-90s easy. Progress by adding 5 min/week to steady state or 1 round to " +
			"intervals. Track duration and distance, not weight. Easy runs should feel easy."},
	{"Cycling", "cardio", "Low impact cardio",
		"Steady state: 30-60 min at moderate effort (RPE 4-6). Intervals: 8-12 rounds of 30s " +
			"sprint / 90s easy. Progress by adding 5-10 min/week or increasing resistance. Low " +
			"impact, good for active recovery days. Track duration and distance."},
	{"Rowing Machine", "cardio", "Full body cardio",
		"Full body cardio, works back/legs/core. Steady state: 20-30 min at 18-22 strokes/min. " +
			"Intervals: 8x250m with 60s rest. Progress by adding duration or lowering split " +
			"times. Drive with legs first, then lean back, then pull arms."},
	// Flexibility
	{"Yoga", "flexibility", "Flexibility and mobility",
		"Flexibility and mobility work. 20-60 min sessions. Progress by increasing session " +
			"length or trying more advanced poses. Focus on breathing. Good on rest days. No " +
			"weight tracking needed."},
	{"Stretching", "flexibility", "Static stretching",
		"Static stretching. Hold each stretch 30-60s, 2-3 rounds. Best after workout when " +
			"muscles are warm. Progress by increasing hold time or deepening the stretch. Don't bounce."},
	{"Foam Rolling", "flexibility", "Self-myofascial release",
		"Self-myofascial release. 1-2 min per muscle group, rolling slowly over tight spots. " +
			"Quick passes before workout, slower deeper work after. Not a replacement for stretching."},
}

var seedPrinciples = []seedPrinciple{
	{"progression", "Linear Progression",
		"Add weight every session when all sets hit target reps. Barbell compounds: +5 lbs. " +
			"Dumbbell movements: +5 lbs per hand. Isolation exercises: +2.5 lbs or add reps first. " +
			"When you can't add weight, add reps within the target range before increasing.", 1},
	{"deload", "Deload Protocol",
		"Deload when stalled 2+ sessions on a lift or after 4-6 weeks of hard training. Reduce " +
			"weight by 10%, keep reps and sets the same. Work back up over 2-3 sessions. Deload " +
			"week: reduce volume by 40-50%, keep intensity moderate. Don't skip deloads; they " +
			"prevent injury and allow recovery.", 2},
	{"rep_ranges", "Rep Ranges and Goals",
		"Strength: 3-5 reps, 3-5 sets, heavy weight, rest 2-5 min. Hypertrophy: 8-12 reps, 3-4 " +
			"sets, moderate weight, rest 60-90s. Endurance: 15-20+ reps, 2-3 sets, light weight, " +
			"rest 30-60s. Most people benefit from a mix, with compounds in the strength range " +
			"and accessories in the hypertrophy range.", 3},
	{"volume", "Weekly Volume Targets",
		"Target 10-20 hard sets per muscle group per week for growth. Beginners: start at 10 " +
			"sets/week. Advanced: up to 20. Spread volume across 2-3 sessions per muscle group. " +
			"More than 10 sets in a single session has diminishing returns. If recovery is poor, " +
			"cut volume before cutting frequency.", 4},
	{"warmup", "Warm-up Sets",
		"Before working sets, do 2-3 ramp-up sets. Example for 185 lb bench: empty bar x10, 95 " +
			"x8, 135 x5, then working sets at 185. Warm-ups should not be fatiguing. Skip " +
			"warm-ups for isolation exercises if compounds were already done for that muscle.", 5},
	{"exercise_selection", "Exercise Selection",
		"Do compound movements first when fresh (squat, bench, deadlift, OHP, rows). Follow " +
			"with isolation work. Balance push and pull volume roughly 1:1. No more than 5-6 " +
			"exercises per session. Pick exercises you can do pain-free with good form; no " +
			"exercise is mandatory.", 6},
	{"stalling", "Breaking Through Plateaus",
		"Stalled on a lift? In order, try: 1) Eat and sleep more. 2) Deload 10% and build back " +
			"up. 3) Change rep scheme (e.g., 5x5 to 3x8). 4) Add a variation (pause bench, tempo " +
			"squat). 5) Increase frequency for that lift. Don't just keep grinding the same " +
			"weight; that's how you get hurt.", 7},
	{"new_exercise", "Starting a New Exercise",
		"New exercise? Start light. Use 50-60% of what you think you can do. Focus on form for " +
			"2-3 sessions. Add weight only when the movement feels natural. Film yourself or use " +
			"mirrors to check form. Better to start too light than too heavy.", 8},
	{"cardio", "Cardio Programming",
		"If lifting is the priority, do 2-3 cardio sessions per week. Keep most cardio low " +
			"intensity (can hold a conversation). 1 HIIT session per week max. Do cardio after " +
			"lifting or on separate days, not before. Progress by adding 5 min/week to steady " +
			"state. Cardio doesn't kill gains if recovery and nutrition are adequate.", 9},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the exercise catalog and coaching knowledge",
	Long: `Populate the database with a starter exercise catalog (with per-exercise
coaching guidance) and general training principles used for coaching replies.

Safe to re-run: tables that already have rows are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)

		existing, err := repo.AllExercises()
		if err != nil {
			return fmt.Errorf("check exercise catalog: %w", err)
		}
		if len(existing) > 0 {
			faint.Println("Exercise catalog already populated. Skipping.")
		} else {
			for _, e := range seedExercises {
				ex := models.NewExercise(e.name, e.muscleGroup).
					WithDescription(e.description).
					WithGuidance(e.guidance)
				if err := repo.CreateExercise(ex); err != nil {
					return fmt.Errorf("seed exercise %q: %w", e.name, err)
				}
			}
			fmt.Printf("Seeded %d exercises.\n", len(seedExercises))
		}

		principles, err := repo.PrinciplesByPriority(1)
		if err != nil {
			return fmt.Errorf("check training principles: %w", err)
		}
		if len(principles) > 0 {
			faint.Println("Training principles already populated. Skipping.")
			return nil
		}
		for _, p := range seedPrinciples {
			tp := models.NewTrainingPrinciple(p.category, p.title, p.content, p.priority)
			if err := repo.CreateTrainingPrinciple(tp); err != nil {
				return fmt.Errorf("seed principle %q: %w", p.title, err)
			}
		}
		fmt.Printf("Seeded %d training principles.\n", len(seedPrinciples))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

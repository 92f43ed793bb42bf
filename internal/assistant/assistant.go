// ABOUTME: Message router: classifies a message and dispatches to the matching handler.
// ABOUTME: Classification and workout extraction run concurrently to hide model latency.
package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/repbot/internal/llm"
	"github.com/harperreed/repbot/internal/models"
	"github.com/harperreed/repbot/internal/storage"
)

// confidenceFloor is the minimum classification confidence to act on a
// log_workout intent; below it the message is treated as coaching chat.
const confidenceFloor = 0.5

const coachingFallback = "I'm having trouble thinking right now. Your workout data is safe; try again in a moment."

// LLM is the language-model surface the router needs. *llm.Client satisfies it.
type LLM interface {
	ClassifyIntent(ctx context.Context, message string) llm.Intent
	ExtractWorkout(ctx context.Context, message string) (*llm.WorkoutData, error)
	ExtractBodyWeight(ctx context.Context, message string) (*llm.WeightData, error)
	CoachingResponse(ctx context.Context, message, contextBlock string) (string, error)
}

// Assistant wires storage and the model into per-message handling.
type Assistant struct {
	store  storage.Repository
	llm    LLM
	loc    *time.Location
	now    func() time.Time
	logger *log.Logger
}

// New creates an Assistant. loc is the reference timezone for set dates and
// weigh-in timestamps.
func New(store storage.Repository, model LLM, loc *time.Location, logger *log.Logger) *Assistant {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Assistant{
		store:  store,
		llm:    model,
		loc:    loc,
		now:    func() time.Time { return time.Now().In(loc) },
		logger: logger,
	}
}

// Process handles one user message end to end and returns the reply text.
// Errors are reserved for storage failures; model failures degrade to
// keyword classification or a friendly fallback reply.
func (a *Assistant) Process(ctx context.Context, userID int64, message string) (string, error) {
	intent, workout := a.classifyAndExtract(ctx, message)
	a.logger.Debug("classified message",
		"intent", intent.Kind, "confidence", intent.Confidence, "user", userID)

	reply, err := a.dispatch(ctx, userID, message, intent, workout)
	if err != nil {
		return "", err
	}

	a.audit(userID, message, intent, reply)
	return reply, nil
}

// classifyAndExtract runs classification and workout extraction concurrently.
// Extraction is speculative; its result is only consulted when the intent
// turns out to be log_workout, and extraction errors surface there as the
// retry hint rather than here.
func (a *Assistant) classifyAndExtract(ctx context.Context, message string) (llm.Intent, *llm.WorkoutData) {
	var (
		wg      sync.WaitGroup
		intent  llm.Intent
		workout *llm.WorkoutData
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		intent = a.llm.ClassifyIntent(ctx, message)
	}()
	go func() {
		defer wg.Done()
		data, err := a.llm.ExtractWorkout(ctx, message)
		if err != nil {
			a.logger.Debug("speculative extraction failed", "err", err)
			return
		}
		workout = data
	}()
	wg.Wait()
	return intent, workout
}

func (a *Assistant) dispatch(ctx context.Context, userID int64, message string, intent llm.Intent, workout *llm.WorkoutData) (string, error) {
	switch intent.Kind {
	case llm.IntentLogWorkout:
		if intent.Confidence <= confidenceFloor {
			return a.coach(ctx, userID, message, intent)
		}
		return a.LogWorkout(userID, message, workout)
	case llm.IntentLogWeight:
		data, err := a.llm.ExtractBodyWeight(ctx, message)
		if err != nil {
			a.logger.Debug("weight extraction failed", "err", err)
			data = nil
		}
		return a.LogBodyWeight(userID, data)
	case llm.IntentViewStats:
		return a.Stats(userID, intent)
	case llm.IntentDeleteWorkout:
		return a.DeleteWorkout(userID, message)
	case llm.IntentRepeatLast:
		return a.RepeatLast(userID, message)
	default:
		return a.coach(ctx, userID, message, intent)
	}
}

// coach answers free-form questions grounded in the user's own data.
func (a *Assistant) coach(ctx context.Context, userID int64, message string, intent llm.Intent) (string, error) {
	contextBlock, err := llm.BuildCoachingContext(a.store, intent, userID)
	if err != nil {
		return "", fmt.Errorf("build coaching context: %w", err)
	}
	reply, err := a.llm.CoachingResponse(ctx, message, contextBlock)
	if err != nil {
		a.logger.Debug("coaching response failed", "err", err)
		return coachingFallback, nil
	}
	return reply, nil
}

// audit records the exchange. A failed audit write never fails the message.
func (a *Assistant) audit(userID int64, message string, intent llm.Intent, reply string) {
	ml := models.NewMessageLog(userID, message, string(intent.Kind), intent.Confidence, reply)
	if err := a.store.CreateMessageLog(ml); err != nil {
		a.logger.Debug("audit write failed", "err", err)
	}
}

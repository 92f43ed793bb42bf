// ABOUTME: Chat model client against Ollama's OpenAI-compatible API.
// ABOUTME: Structured JSON extraction with bounded retries and a local classification fallback.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harperreed/repbot/internal/util"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama3.2"

// ClientConfig holds connection and retry settings for the model client.
type ClientConfig struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client talks to a local Ollama server through its OpenAI-compatible
// endpoint. All structured calls use JSON mode and low temperature.
type Client struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a model client. BaseURL is the Ollama root URL
// (e.g. http://localhost:11434); the OpenAI-compatible path is appended here.
func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	apiCfg := openai.DefaultConfig("ollama")
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"

	return &Client{
		client:     openai.NewClientWithConfig(apiCfg),
		model:      model,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: retryDelay,
	}
}

const classifyPrompt = `Analyze this user message and classify their primary intent:

MESSAGE: %q

POSSIBLE INTENTS:
- log_workout: User is reporting a workout they already did (past tense: "I did", "I benched", etc.)
- log_weight: User is reporting their body weight ("weighed 185 lbs", "I'm down to 180")
- view_stats: User wants to see their workout history or statistics
- delete_workout: User wants to undo, delete, or remove a logged workout ("undo", "delete last", "remove #42", "that's wrong")
- repeat_last: User wants to log the same workout again ("again", "repeat last", "same as last time")
- coaching: User wants advice, recommendations, questions about training, or anything else

For view_stats, also pick a stats_kind:
- overview: general recent summary
- prs: personal records
- history: history of one exercise
- volume: weekly volume by muscle group
- consistency: streaks and workout frequency
- list: list recent workouts with their ids
- weight: body weight trend

Also extract any exercise names and muscle groups mentioned in the message.
Muscle groups should match: chest, back, shoulders, legs, biceps, triceps, core, cardio, flexibility.

Return ONLY a JSON object:
{"intent": "...", "confidence": 0.0-1.0, "stats_kind": "...", "mentioned_exercises": [...], "mentioned_muscle_groups": [...]}`

type intentWire struct {
	Intent                string   `json:"intent"`
	Confidence            float64  `json:"confidence"`
	StatsKind             string   `json:"stats_kind"`
	MentionedExercises    []string `json:"mentioned_exercises"`
	MentionedMuscleGroups []string `json:"mentioned_muscle_groups"`
}

// ClassifyIntent classifies a message. It never fails: transient errors are
// retried with backoff, and exhausted retries fall through to the keyword
// heuristic.
func (c *Client) ClassifyIntent(ctx context.Context, message string) Intent {
	prompt := fmt.Sprintf(classifyPrompt, message)

	content, err := c.completeJSON(ctx, "", prompt, 0.1)
	if err != nil {
		log.Debug("intent classification failed, using keyword fallback", "err", err)
		return FallbackClassify(message)
	}

	var wire intentWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		log.Debug("intent response unparseable, using keyword fallback", "err", err)
		return FallbackClassify(message)
	}

	return Intent{
		Kind:                  IntentKind(wire.Intent),
		Confidence:            wire.Confidence,
		StatsKind:             StatsKind(wire.StatsKind),
		MentionedExercises:    wire.MentionedExercises,
		MentionedMuscleGroups: wire.MentionedMuscleGroups,
	}
}

const extractPrompt = `Extract workout details from this message. Be precise with numbers:

MESSAGE: %q

IMPORTANT:
- Exercise names should match common exercises
- For strength exercises: extract set_number, reps, and weight
- When the user says "N sets", return N separate set objects with set_number 1 through N
- For cardio exercises (running, cycling, rowing, swimming, etc.): use
  duration_minutes for time and distance if mentioned, leave reps null
- Weight in pounds unless specified otherwise; unit is one of "lbs", "kg", "bodyweight"
- If the message names a specific day ("yesterday", "on Tuesday", "Feb 15"), set "date" (YYYY-MM-DD); otherwise omit it
- Subjective observations (pain, effort, form) and equipment/variant modifiers
  (band color, grip width, tempo) go in "notes"; keep the exercise name just the base movement

Return ONLY a JSON object:
{"exercises": [{"exercise_name": "...", "set_number": 1, "reps": 10, "weight": 135.0, "unit": "lbs", "duration_minutes": null, "distance": null, "notes": null}], "date": "YYYY-MM-DD or omit"}`

type workoutWire struct {
	Exercises []ExtractedSet `json:"exercises"`
	Date      string         `json:"date"`
}

// ExtractWorkout extracts structured sets from a message. Returns nil (no
// error) when the model finds no exercises; that is the recoverable
// extraction-empty case, not a failure.
func (c *Client) ExtractWorkout(ctx context.Context, message string) (*WorkoutData, error) {
	prompt := fmt.Sprintf(extractPrompt, message)

	content, err := c.completeJSON(ctx, "", prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("extract workout: %w", err)
	}

	var wire workoutWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("parse workout extraction: %w", err)
	}
	if len(wire.Exercises) == 0 {
		return nil, nil
	}

	return &WorkoutData{
		Exercises: wire.Exercises,
		Date:      parseExtractedDate(wire.Date),
	}, nil
}

const extractWeightPrompt = `Extract the body weight reading from this message:

MESSAGE: %q

- "unit" is "lbs" or "kg" (default "lbs")
- If the message names a specific day ("yesterday", "Feb 15"), set "date" (YYYY-MM-DD); otherwise omit it
- Any other remark goes in "notes"

Return ONLY a JSON object:
{"weight": 185.0, "unit": "lbs", "date": "YYYY-MM-DD or omit", "notes": null}`

type weightWire struct {
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	Date   string  `json:"date"`
	Notes  *string `json:"notes"`
}

// ExtractBodyWeight extracts a weigh-in from a message. Returns nil (no
// error) when no usable weight was found.
func (c *Client) ExtractBodyWeight(ctx context.Context, message string) (*WeightData, error) {
	prompt := fmt.Sprintf(extractWeightPrompt, message)

	content, err := c.completeJSON(ctx, "", prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("extract body weight: %w", err)
	}

	var wire weightWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("parse weight extraction: %w", err)
	}
	if wire.Weight <= 0 {
		return nil, nil
	}

	return &WeightData{
		Weight: wire.Weight,
		Unit:   wire.Unit,
		Date:   parseExtractedDate(wire.Date),
		Notes:  wire.Notes,
	}, nil
}

const coachingSystemPrompt = `You are Rep, a direct workout coach. Give specific, actionable advice with exact sets, reps, and weights.

RULES:
- When the user's history is provided, base your advice on their actual numbers
- Prescribe specific weights: "3x10 @ 35/40/40 lbs" not "moderate weight"
- Progressive overload: if all target reps were hit last time, suggest +5 lbs for barbell compounds, +5 lbs (per hand) for dumbbells, +2.5 lbs for isolation
- If they missed reps or stalled, suggest same weight or a deload
- For cardio: progress by adding duration or intervals, not weight; reference their recent times/distances
- Keep responses concise, a prescription and brief rationale, not an essay
- If there's not enough history, say so and give a conservative starting point
- Reference the exercise guidance and training principles provided in context`

// CoachingResponse generates free-text advice from the message and an
// assembled context block (history, guidance, principles).
func (c *Client) CoachingResponse(ctx context.Context, message, contextBlock string) (string, error) {
	userContent := message
	if contextBlock != "" {
		userContent = contextBlock + "\n\n---\nUSER QUESTION: " + message
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: coachingSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userContent},
			},
			Temperature: 0.7,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if !isTransient(err) {
				break
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	return "", fmt.Errorf("coaching response: %w", lastErr)
}

// completeJSON runs a JSON-mode completion with the bounded retry loop.
// Only transient failures are retried.
func (c *Client) completeJSON(ctx context.Context, system, user string, temperature float32) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: user,
	})

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if !isTransient(err) {
				break
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

// isTransient reports whether an error is worth retrying: connection
// failures and timeouts, not malformed requests or parse errors.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// parseExtractedDate parses a model-returned date string, tolerating the
// bare-date and RFC3339 shapes. Anything else is treated as no date.
func parseExtractedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

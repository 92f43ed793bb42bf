// ABOUTME: Retry timing for LLM API calls.
// ABOUTME: Exponential backoff with jitter so retries don't synchronize.
package util

import (
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before retry number attempt (1-based): the base
// delay doubled each attempt, capped at 30 seconds, with ±25% random jitter.
// Attempt 0 or below returns 0.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	delay := baseDelay * time.Duration(1<<uint(attempt))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	// A zero or sub-2ns delay has no room for jitter (and Int64N rejects 0).
	if delay < 2 {
		return delay
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}

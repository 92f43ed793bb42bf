// ABOUTME: Tests for retry backoff timing.
// ABOUTME: Verifies exponential growth, jitter bounds, and the 30s cap.
package util

import (
	"testing"
	"time"
)

func TestBackoffZeroAttempt(t *testing.T) {
	if got := Backoff(time.Second, 0); got != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", got)
	}
	if got := Backoff(time.Second, -1); got != 0 {
		t.Errorf("expected 0 for negative attempt, got %v", got)
	}
}

func TestBackoffZeroBaseDelay(t *testing.T) {
	// An unconfigured base delay must not blow up in the jitter math.
	for attempt := 1; attempt <= 3; attempt++ {
		if got := Backoff(0, attempt); got != 0 {
			t.Errorf("attempt %d: expected 0 for zero base delay, got %v", attempt, got)
		}
	}
	if got := Backoff(time.Nanosecond, 1); got < 0 {
		t.Errorf("expected non-negative backoff for 1ns base delay, got %v", got)
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 5; attempt++ {
		expected := base * time.Duration(1<<uint(attempt))
		lo := expected * 3 / 4
		hi := expected * 5 / 4

		got := Backoff(base, attempt)
		if got < lo || got > hi {
			t.Errorf("attempt %d: expected between %v and %v, got %v", attempt, lo, hi, got)
		}
	}
}

func TestBackoffCap(t *testing.T) {
	// Attempt high enough that the uncapped value would overflow the cap.
	got := Backoff(time.Second, 20)
	max := 30 * time.Second * 5 / 4
	if got > max {
		t.Errorf("expected backoff capped near 30s, got %v", got)
	}
}

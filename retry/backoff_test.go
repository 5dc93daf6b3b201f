package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff_NextDelay_WithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{attempt: 0, expected: 100 * time.Millisecond},
		{attempt: 1, expected: 200 * time.Millisecond},
		{attempt: 2, expected: 400 * time.Millisecond},
		{attempt: 3, expected: 800 * time.Millisecond},
		{attempt: 4, expected: 1600 * time.Millisecond},
	}

	for _, tt := range tests {
		delay := strategy.NextDelay(tt.attempt)
		if delay != tt.expected {
			t.Errorf("Attempt %d: expected delay %v, got %v", tt.attempt, tt.expected, delay)
		}
	}
}

func TestExponentialBackoff_NextDelay_CappedAtMaxDelay(t *testing.T) {
	strategy := NewExponentialBackoff(100,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(1*time.Second),
		WithJitter(0),
	)

	for attempt := 0; attempt <= 50; attempt++ {
		delay := strategy.NextDelay(attempt)
		if delay > 1*time.Second {
			t.Errorf("Attempt %d: delay %v exceeds max of 1s", attempt, delay)
		}
		if attempt > 10 && delay != 1*time.Second {
			t.Errorf("Attempt %d: expected delay capped at 1s, got %v", attempt, delay)
		}
	}
}

func TestExponentialBackoff_NextDelay_JitterIsDeterministicWithJitterFunc(t *testing.T) {
	// jitterFunc returning 1.0 pushes the delay to its upper jitter bound,
	// 0.0 to its lower bound, 0.5 to the unjittered value.
	tests := []struct {
		name     string
		random   float64
		expected time.Duration
	}{
		{name: "UpperBound", random: 1.0, expected: 110 * time.Millisecond},
		{name: "LowerBound", random: 0.0, expected: 90 * time.Millisecond},
		{name: "Midpoint", random: 0.5, expected: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			strategy := NewExponentialBackoff(3,
				WithInitialDelay(100*time.Millisecond),
				WithJitter(0.1),
				WithJitterFunc(func() float64 { return tt.random }),
			)
			delay := strategy.NextDelay(0)
			if delay != tt.expected {
				t.Errorf("Expected delay %v, got %v", tt.expected, delay)
			}
		})
	}
}

func TestExponentialBackoff_MaxAttempts(t *testing.T) {
	strategy := NewExponentialBackoff(7)
	if strategy.MaxAttempts() != 7 {
		t.Errorf("Expected MaxAttempts=7, got %v", strategy.MaxAttempts())
	}
}

func TestExponentialBackoff_ZeroAttemptsMeansNoRetries(t *testing.T) {
	strategy := NewExponentialBackoff(0)
	if strategy.MaxAttempts() != 0 {
		t.Errorf("Expected MaxAttempts=0, got %v", strategy.MaxAttempts())
	}
}

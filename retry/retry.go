// Package retry wraps whole operations against a remote store with
// exponential backoff. The path resolver itself never retries; callers that
// want retry layer this package around complete operations, typically
// permission or copy calls that see transient rate limits.
package retry

import (
	"time"
)

// ErrorClassifier decides whether a failed attempt is worth repeating.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy produces the delay between attempts.
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration
	MaxAttempts() int
}

// Executor orchestrates retry attempts with backoff and error
// classification. Configure via WithOnRetry, which returns a new instance so
// executors can be shared between goroutines.
type Executor struct {
	classifier ErrorClassifier
	strategy   BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
	sleep      func(time.Duration)
}

// NewExecutor creates a retry executor. Panics if classifier or strategy is
// nil.
func NewExecutor(classifier ErrorClassifier, strategy BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		sleep:      time.Sleep,
	}
}

// WithOnRetry returns a new Executor that calls callback before every retry
// sleep. The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// withSleep returns a new Executor with a custom sleep function, for tests.
func (e *Executor) withSleep(sleep func(time.Duration)) *Executor {
	clone := *e
	clone.sleep = sleep
	return &clone
}

// Execute runs the operation, retrying transient failures until it succeeds
// or attempts are exhausted. The last error is returned.
func (e *Executor) Execute(operation func() error) error {
	lastErr := operation()
	if lastErr == nil {
		return nil
	}
	if !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	for attempt := 0; attempt < e.strategy.MaxAttempts(); attempt++ {
		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}
		e.sleep(delay)

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// Do is a convenience wrapper running operation with the transport
// classifier and a default backoff of maxAttempts retries.
func Do(maxAttempts int, operation func() error) error {
	return NewExecutor(NewTransportErrorClassifier(), NewExponentialBackoff(maxAttempts)).Execute(operation)
}

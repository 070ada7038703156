package embedder

import (
	"context"
	"errors"
	"time"
)

// RetryConfig configures exponential backoff retry behavior
type RetryConfig struct {
	MaxRetries int           // Maximum number of attempts
	BaseDelay  time.Duration // Initial delay between attempts
	MaxDelay   time.Duration // Maximum delay between attempts
	Multiplier float64       // Exponential backoff multiplier
}

// DefaultRetryConfig returns sensible defaults for API retry
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: MaxRetries,
		BaseDelay:  time.Duration(InitialBackoffMs) * time.Millisecond,
		MaxDelay:   time.Duration(MaxBackoffMs) * time.Millisecond,
		Multiplier: BackoffMultiplier,
	}
}

// permanentError marks a failure that retrying cannot fix, such as a
// rejected API key
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

// retryWithBackoff executes fn with exponential backoff between failed
// attempts. Permanent errors and context cancellation stop retrying.
func retryWithBackoff[T any](ctx context.Context, config RetryConfig, fn func() (T, error)) (T, int, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay
	attempts := 0

	for attempt := 0; attempt < config.MaxRetries; attempt++ {
		attempts++
		result, err := fn()
		if err == nil {
			return result, attempts, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return zero, attempts, ctx.Err()
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, attempts, perm.err
		}

		if attempt < config.MaxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, attempts, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, attempts, lastErr
}

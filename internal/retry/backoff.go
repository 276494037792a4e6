// Package retry implements exponential backoff for transient network
// failures against the extraction service.
package retry

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Policy configures retry behavior with exponential backoff.
type Policy struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay.
	MaxDelay time.Duration
	// Multiplier grows the delay per attempt.
	Multiplier float64
	// Jitter adds up to ±10% random noise to each delay.
	Jitter bool
}

// DefaultPolicy returns the policy used for extraction calls unless the
// configuration overrides it.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Do runs op, retrying per the policy while retryable reports the returned
// error as transient. The last error is returned after the attempt budget is
// exhausted. Context cancellation aborts both the operation loop and any
// in-progress backoff wait.
func (p Policy) Do(ctx context.Context, logger *slog.Logger, retryable func(error) bool, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		lastErr = op()
		if lastErr == nil {
			if attempt > 0 && logger != nil {
				logger.Info("operation succeeded after retry", "attempts", attempt+1)
			}
			return nil
		}
		if attempt >= p.MaxRetries || retryable == nil || !retryable(lastErr) {
			return lastErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := p.delay(attempt)
		if logger != nil {
			logger.Warn("operation failed, backing off",
				"attempt", attempt+1,
				"max_attempts", p.MaxRetries+1,
				"delay", delay,
				"error", lastErr,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// delay computes the backoff for the given zero-based attempt.
func (p Policy) delay(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}

	d := float64(base) * math.Pow(multiplier, float64(attempt))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter {
		jitterRange := d * 0.1
		d += (rand.Float64() - 0.5) * 2 * jitterRange
		if d < 0 {
			d = float64(base)
		}
	}
	return time.Duration(d)
}

package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"versegen/internal/domain"
)

// RetryPolicy bounds repeated provider calls with exponential backoff.
// Transient outcomes (429, 5xx, transport errors) are retried; anything
// else fails the call immediately. The same policy guards every outbound
// provider call, text and image alike.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy matches the product contract: three attempts, one
// second base delay, doubling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.Multiplier < 1 {
		p.Multiplier = 2
	}
	return p
}

// Do runs op under the policy. A permanent failure is returned as-is; an
// exhausted transient failure is wrapped in domain.ErrRetryExhausted so
// callers can tell the two apart.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	p = p.normalized()

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.BaseDelay
	expo.Multiplier = p.Multiplier
	expo.RandomizationFactor = 0
	expo.MaxInterval = time.Minute
	expo.MaxElapsedTime = 0

	lastTransient := false
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		var perm *backoff.PermanentError
		lastTransient = !errors.As(err, &perm)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(p.MaxAttempts-1)), ctx)
	err := backoff.Retry(wrapped, bo)
	if err == nil {
		return nil
	}
	if lastTransient && ctx.Err() == nil {
		return fmt.Errorf("%w after %d attempts: %v", domain.ErrRetryExhausted, p.MaxAttempts, err)
	}
	return err
}

// transientStatus reports whether an HTTP status warrants another attempt.
func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

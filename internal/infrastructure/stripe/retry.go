package stripe

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/config"
)

// RetryProcessor replays failed processor calls with exponential backoff. Create calls
// carry an idempotency key, so a replay after a lost response is never applied twice.
type RetryProcessor struct {
	inner      application.Processor
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryProcessor(inner application.Processor, cfg config.RetryConfig) application.Processor {
	maxRetries := int(cfg.MaxRetries)
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryProcessor{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryProcessor) CreateCustomer(ctx context.Context, req application.CustomerRequest, idempotencyKey string) (*application.Customer, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Customer, error) {
		return r.inner.CreateCustomer(ctx, req, idempotencyKey)
	})
}

func (r *RetryProcessor) GetCustomer(ctx context.Context, customerID string) (*application.Customer, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Customer, error) {
		return r.inner.GetCustomer(ctx, customerID)
	})
}

func (r *RetryProcessor) CreateSource(ctx context.Context, customerID string, req application.SourceRequest, idempotencyKey string) (*application.Source, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Source, error) {
		return r.inner.CreateSource(ctx, customerID, req, idempotencyKey)
	})
}

func (r *RetryProcessor) GetSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Source, error) {
		return r.inner.GetSource(ctx, customerID, sourceID)
	})
}

// UpdateSource writes the full field set, so replaying it is harmless.
func (r *RetryProcessor) UpdateSource(ctx context.Context, customerID, sourceID string, req application.SourceUpdate) (*application.Source, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Source, error) {
		return r.inner.UpdateSource(ctx, customerID, sourceID, req)
	})
}

func (r *RetryProcessor) DeleteSource(ctx context.Context, customerID, sourceID string) (*application.Source, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Source, error) {
		return r.inner.DeleteSource(ctx, customerID, sourceID)
	})
}

func (r *RetryProcessor) CreateCharge(ctx context.Context, req application.ChargeRequest, idempotencyKey string) (*application.Charge, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Charge, error) {
		return r.inner.CreateCharge(ctx, req, idempotencyKey)
	})
}

func (r *RetryProcessor) CreateRefund(ctx context.Context, req application.RefundRequest, idempotencyKey string) (*application.Refund, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.Refund, error) {
		return r.inner.CreateRefund(ctx, req, idempotencyKey)
	})
}

// Generic retry helper
func retry[T any](r *RetryProcessor, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !application.IsRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			if err := sleep(ctx, r.backoff(attempt)); err != nil {
				return nil, err
			}
		}
	}

	if r.maxRetries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff calculation with exponential delay and jitter
func (r *RetryProcessor) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Int63n(int64(r.baseDelay) + 1))

	return base + jitter
}

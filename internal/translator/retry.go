package translator

import (
	"context"
	"time"
)

// retryService wraps a Service with bounded retry and linear backoff. The
// wrapper sits between the provider and the batch orchestrator, so the
// orchestrator's per-record fallback policy is unaffected.
type retryService struct {
	next     Service
	attempts int
	delay    time.Duration
}

// WithRetry returns a Service that calls next up to attempts times per
// request (1 means no retries), waiting delay, 2×delay, … between tries.
func WithRetry(next Service, attempts int, delay time.Duration) Service {
	if attempts < 1 {
		attempts = 1
	}
	return &retryService{next: next, attempts: attempts, delay: delay}
}

func (r *retryService) Name() string {
	return r.next.Name()
}

func (r *retryService) Translate(ctx context.Context, req Request) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.delay * time.Duration(attempt)):
			}
		}
		res, err := r.next.Translate(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (r *retryService) TranslateBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	return translateEach(ctx, r, reqs)
}

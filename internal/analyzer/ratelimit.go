package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"golang.org/x/time/rate"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

const (
	defaultMaxRetries     = 5
	defaultBaseRetryDelay = 1 * time.Second
	defaultMaxRetryDelay  = 32 * time.Second

	// Rough cost of the prompt scaffolding and the model's answer.
	responseTokenAllowance = 500
)

// RateLimiter throttles LLM calls by estimated token volume and retries
// calls rejected with HTTP 429. One limiter is shared by every reviewer in
// the process.
type RateLimiter struct {
	limiter   *rate.Limiter
	burst     int
	logger    *utils.Logger
	retryable func(error) bool

	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
}

func NewRateLimiter(tokensPerSecond int, logger *utils.Logger) *RateLimiter {
	burst := tokensPerSecond * 2
	return &RateLimiter{
		limiter:        rate.NewLimiter(rate.Limit(tokensPerSecond), burst),
		burst:          burst,
		logger:         logger,
		retryable:      isRateLimitError,
		MaxRetries:     defaultMaxRetries,
		BaseRetryDelay: defaultBaseRetryDelay,
		MaxRetryDelay:  defaultMaxRetryDelay,
	}
}

// EstimateTokens approximates the token cost of sending text, capped at the
// limiter burst so a single large report can still be sent.
func (r *RateLimiter) EstimateTokens(text string) int {
	n := len(text)/4 + responseTokenAllowance
	if n > r.burst {
		n = r.burst
	}
	return n
}

func (r *RateLimiter) backoff(attempt int) time.Duration {
	delay := r.BaseRetryDelay << (attempt - 1)
	if delay > r.MaxRetryDelay || delay <= 0 {
		delay = r.MaxRetryDelay
	}
	return delay
}

// RateLimitedCall waits for limiter approval, then calls fn, retrying with
// exponential backoff while fn fails with a rate-limit error.
func RateLimitedCall[T any](ctx context.Context, r *RateLimiter, estimatedTokens int, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := r.limiter.WaitN(ctx, estimatedTokens); err != nil {
		return zero, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay := r.backoff(attempt)
			r.logger.Info("Retrying rate-limited LLM call", "attempt", attempt, "max_retries", r.MaxRetries, "delay", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("Retry succeeded", "attempt", attempt)
			}
			return result, nil
		}

		if !r.retryable(err) {
			return zero, err
		}
		if attempt == r.MaxRetries {
			return zero, fmt.Errorf("rate limit still exceeded after %d retries: %w", r.MaxRetries, err)
		}
	}
}

func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

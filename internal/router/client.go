package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Panandika/model-routing-benchmark/internal/llm"
	"github.com/Panandika/model-routing-benchmark/internal/observability"
)

// Completion is the outcome of a successful exchange: the model the remote
// router actually used and the first choice's text.
type Completion struct {
	Model  string
	Answer string
}

// ErrExhausted is returned when every attempt failed with a retryable error.
var ErrExhausted = errors.New("all completion attempts exhausted")

// Client performs prompt-completion exchanges with retry and exponential
// backoff. One Client is shared across all concurrent question handlers; it
// holds no mutable state beyond the provider's HTTP connection pool.
type Client struct {
	provider     llm.Provider
	model        string
	retries      int
	initialDelay time.Duration
	logger       *zap.Logger
	metrics      *observability.Metrics

	// sleep is swapped out in tests to avoid real waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a Client. model is the routing target sent with every
// request. retries must be >= 1 and initialDelay > 0; config validation
// enforces both, so NewClient normalizes rather than errors.
func NewClient(provider llm.Provider, model string, retries int, initialDelay time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if retries < 1 {
		retries = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		provider:     provider,
		model:        model,
		retries:      retries,
		initialDelay: initialDelay,
		logger:       logger,
		metrics:      metrics,
		sleep:        sleepCtx,
	}
}

// GetCompletion attempts one prompt-completion exchange, retrying rate-limit,
// server-status, and connection errors with a doubling delay. Non-retryable
// errors abort immediately. On success the first attempt to succeed wins; a
// nil error means Completion is populated.
func (c *Client) GetCompletion(ctx context.Context, prompt string) (Completion, error) {
	if prompt == "" {
		return Completion{}, fmt.Errorf("prompt cannot be empty")
	}

	req := llm.ChatRequest{
		Model: c.model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleUser, Content: prompt},
		},
	}

	delay := c.initialDelay
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		c.logger.Info("requesting completion",
			zap.Int("attempt", attempt),
			zap.String("model", c.model),
		)

		resp, err := c.provider.Chat(ctx, req)
		if err == nil {
			c.metrics.RecordAttempt("success")
			c.logger.Info("completion succeeded",
				zap.Int("attempt", attempt),
				zap.String("model_used", resp.Model),
			)
			return Completion{Model: resp.Model, Answer: resp.Message.Content}, nil
		}

		reason, retryable := classify(err)
		c.metrics.RecordAttempt(reason)
		lastErr = err

		if !retryable {
			c.logger.Error("completion aborted on non-retryable error",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return Completion{}, err
		}

		c.logger.Warn("completion attempt failed",
			zap.Int("attempt", attempt),
			zap.String("reason", reason),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		if attempt == c.retries {
			break
		}

		c.metrics.RecordRetry(reason)
		if err := c.sleep(ctx, delay); err != nil {
			return Completion{}, err
		}
		delay *= 2
	}

	c.logger.Error("completion failed after all attempts",
		zap.Int("attempts", c.retries),
		zap.Error(lastErr),
	)
	return Completion{}, fmt.Errorf("%w after %d attempts: %v", ErrExhausted, c.retries, lastErr)
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

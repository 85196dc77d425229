package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPublisher retries failed publishes with exponential backoff before
// giving up. Consume and Close pass through.
type RetryPublisher struct {
	Messaging
	attempts uint64
	base     time.Duration
}

// WithRetry wraps m so Publish is attempted up to attempts times.
func WithRetry(m Messaging, attempts uint64, base time.Duration) *RetryPublisher {
	if attempts == 0 {
		attempts = 1
	}
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	return &RetryPublisher{Messaging: m, attempts: attempts, base: base}
}

func (r *RetryPublisher) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	backoff := retry.WithMaxRetries(r.attempts-1, retry.NewExponential(r.base))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.Messaging.Publish(ctx, topic, msg); err != nil {
			if err == ErrTopicRequired || err == ErrClosed { //nolint:errorlint // sentinel, not wrapped
				return err
			}
			slog.WarnContext(ctx, "publish failed, retrying", "topic", topic, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

package notifier

import (
	"context"
	"fmt"
	"log"
	"time"
)

// RetryNotifier retries a failed Send with exponential backoff.
type RetryNotifier struct {
	Next       Notifier
	MaxRetries int
	Backoff    time.Duration // first wait, doubled after each failure
}

// NewRetryNotifier wraps n with maxRetries retries starting at one second.
func NewRetryNotifier(n Notifier, maxRetries int) *RetryNotifier {
	return &RetryNotifier{Next: n, MaxRetries: maxRetries, Backoff: time.Second}
}

func (r *RetryNotifier) Send(ctx context.Context, text string) error {
	var lastErr error
	backoff := r.Backoff
	for i := 0; i <= r.MaxRetries; i++ {
		lastErr = r.Next.Send(ctx, text)
		if lastErr == nil {
			return nil
		}
		if i == r.MaxRetries {
			break
		}
		log.Printf("[WARN] send failed (attempt %d/%d): %v, retrying in %v", i+1, r.MaxRetries+1, lastErr, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("all %d attempts failed: %w", r.MaxRetries+1, lastErr)
}

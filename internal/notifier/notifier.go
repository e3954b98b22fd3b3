// Package notifier delivers build summaries to a chat.
package notifier

import "context"

// Notifier sends a text message somewhere a human will read it.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// NoopNotifier drops every message. Used when Telegram is not configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Send(_ context.Context, _ string) error { return nil }

package notify

import (
	"context"
	"log/slog"
	"time"
)

// Notifier delivers reminder notifications. Delivery is fire-and-forget:
// implementations report errors for undeliverable requests but callers do
// not await delivery confirmation.
type Notifier interface {
	Schedule(ctx context.Context, title, body string, delay time.Duration) error
}

// LogNotifier writes notifications to the structured log. It is the default
// when no webhook is configured and doubles as a delivery audit trail.
type LogNotifier struct{}

// Schedule logs the notification after the given delay.
func (LogNotifier) Schedule(ctx context.Context, title, body string, delay time.Duration) error {
	if delay <= 0 {
		slog.Info("notification", "title", title, "body", body)
		return nil
	}
	time.AfterFunc(delay, func() {
		slog.Info("notification", "title", title, "body", body)
	})
	return nil
}

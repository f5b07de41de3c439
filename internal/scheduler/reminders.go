package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/notify"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ReminderScheduler periodically evaluates the reminder policy over the full
// wardrobe and delivers firing reminders through a Notifier. A per-kind
// cooldown, persisted in settings, prevents the same reminder from being
// re-delivered on every pass.
type ReminderScheduler struct {
	db       *sql.DB
	notifier notify.Notifier
	policy   wardrobe.Policy
	interval time.Duration
	cooldown time.Duration
	stopCh   chan struct{}
}

// New creates a reminder scheduler.
func New(db *sql.DB, notifier notify.Notifier, policy wardrobe.Policy, interval, cooldown time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		db:       db,
		notifier: notifier,
		policy:   policy,
		interval: interval,
		cooldown: cooldown,
		stopCh:   make(chan struct{}),
	}
}

// Start runs an immediate evaluation pass and then evaluates on every tick
// until Stop is called or the context is cancelled.
func (s *ReminderScheduler) Start(ctx context.Context) {
	if err := s.Evaluate(ctx, time.Now()); err != nil {
		slog.Error("initial reminder evaluation failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Evaluate(ctx, time.Now()); err != nil {
					slog.Error("reminder evaluation failed", "error", err)
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the scheduler.
func (s *ReminderScheduler) Stop() {
	close(s.stopCh)
}

// Evaluate runs one evaluation pass: refresh time-based statuses, evaluate
// both reminder rules, and deliver whatever fires and is out of cooldown.
func (s *ReminderScheduler) Evaluate(ctx context.Context, now time.Time) error {
	items, err := store.ListItems(ctx, s.db)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}

	for i := range items {
		if !wardrobe.RefreshStatus(&items[i], now) {
			continue
		}
		if err := store.SetItemStatus(ctx, s.db, items[i].ID, items[i].Status); err != nil {
			return fmt.Errorf("persisting refreshed status: %w", err)
		}
		metrics.StatusRefreshes.Inc()
	}

	for _, reminder := range s.policy.Evaluate(items, now) {
		fired, err := store.ReminderLastFired(ctx, s.db, reminder.Kind)
		if err != nil {
			return fmt.Errorf("checking reminder cooldown: %w", err)
		}
		if !fired.IsZero() && now.Sub(fired) < s.cooldown {
			slog.Debug("reminder suppressed by cooldown", "kind", reminder.Kind)
			continue
		}

		if err := s.notifier.Schedule(ctx, reminder.Title, reminder.Body, 0); err != nil {
			slog.Error("reminder delivery failed", "kind", reminder.Kind, "error", err)
			continue
		}
		metrics.RemindersFired.WithLabelValues(reminder.Kind).Inc()
		slog.Info("reminder delivered", "kind", reminder.Kind, "count", reminder.Count)

		if err := store.SetReminderLastFired(ctx, s.db, reminder.Kind, now); err != nil {
			return fmt.Errorf("recording reminder delivery: %w", err)
		}
	}

	return nil
}

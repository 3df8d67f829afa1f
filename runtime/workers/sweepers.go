package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// QueueSweeper drops queue entries older than the waiting TTL.
type QueueSweeper interface {
	SweepExpired() int
}

type QueueSweepWorker struct {
	log      *slog.Logger
	sweeper  QueueSweeper
	interval time.Duration
}

func NewQueueSweepWorker(log *slog.Logger, sweeper QueueSweeper, interval time.Duration) *QueueSweepWorker {
	return &QueueSweepWorker{log: log, sweeper: sweeper, interval: interval}
}

func (w *QueueSweepWorker) Run(ctx context.Context) error {
	w.log.Info("Starting queue sweep worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if purged := w.sweeper.SweepExpired(); purged > 0 {
				w.log.Info(fmt.Sprintf("Purged %d expired queue entries", purged))
			}
		}
	}
}

// StaleSweeper force-ends conversations nothing has touched for too long.
type StaleSweeper interface {
	SweepStale() int
}

type StaleConversationWorker struct {
	log      *slog.Logger
	sweeper  StaleSweeper
	interval time.Duration
}

func NewStaleConversationWorker(log *slog.Logger, sweeper StaleSweeper, interval time.Duration) *StaleConversationWorker {
	return &StaleConversationWorker{log: log, sweeper: sweeper, interval: interval}
}

func (w *StaleConversationWorker) Run(ctx context.Context) error {
	w.log.Info("Starting stale conversation worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := w.sweeper.SweepStale(); removed > 0 {
				w.log.Info(fmt.Sprintf("Removed %d stale conversations", removed))
			}
		}
	}
}

// QueuePoller checks waiting participants for a real counterpart.
type QueuePoller interface {
	PollQueued()
}

// PreemptionWorker gives real matches a chance to win the race against
// a pending synthetic timer, on a short cadence.
type PreemptionWorker struct {
	log      *slog.Logger
	poller   QueuePoller
	interval time.Duration
}

func NewPreemptionWorker(log *slog.Logger, poller QueuePoller, interval time.Duration) *PreemptionWorker {
	return &PreemptionWorker{log: log, poller: poller, interval: interval}
}

func (w *PreemptionWorker) Run(ctx context.Context) error {
	w.log.Info("Starting preemption poll worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.poller.PollQueued()
		}
	}
}

// MessagePurger removes durable messages older than a cutoff.
type MessagePurger interface {
	PurgeOlderThan(cutoff time.Time) (int, error)
}

// RetentionWorker enforces the durable log retention. It purges once at
// startup, then on every tick.
type RetentionWorker struct {
	log       *slog.Logger
	purger    MessagePurger
	retention time.Duration
	interval  time.Duration
}

func NewRetentionWorker(log *slog.Logger, purger MessagePurger, retention, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{log: log, purger: purger, retention: retention, interval: interval}
}

func (w *RetentionWorker) Run(ctx context.Context) error {
	w.log.Info("Starting retention purge worker")
	w.purge()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.purge()
		}
	}
}

func (w *RetentionWorker) purge() {
	cutoff := time.Now().Add(-w.retention)
	purged, err := w.purger.PurgeOlderThan(cutoff)
	if err != nil {
		w.log.Error("Retention purge failed", "error", err)
		return
	}
	if purged > 0 {
		w.log.Info(fmt.Sprintf("Purged %d messages older than %s", purged, w.retention))
	}
}

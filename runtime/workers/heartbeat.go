package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"chatdice/domain"
	"chatdice/observability"
)

// StatsSource snapshots the live engine counters.
type StatsSource interface {
	Stats() domain.Stats
}

type HeartbeatWorker struct {
	log      *slog.Logger
	stats    StatsSource
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, stats StatsSource, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, stats: stats, interval: interval}
}

// Run executes the main loop of the worker, refreshing engine gauges and
// self stats (CPU, RAM) every tick.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			observability.SetProcessStats(rss, cpu)

			stats := w.stats.Stats()
			w.log.Debug("Heartbeat",
				"pair_queue", stats.PairQueueDepth,
				"group_queue", stats.GroupQueueDepth,
				"rooms", stats.ActiveRooms,
				"conversations", stats.ActiveConversations,
				"participants", stats.ActiveParticipants,
				"rss", rss,
				"cpu", cpu,
			)
		}
	}
}

// getSelfStats retrieves technical metrics (Memory and CPU) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}

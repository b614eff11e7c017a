package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"lead_management_backend/platform/config"
	"lead_management_backend/platform/logger"
)

// Dispatcher enqueues the periodic tasks the worker consumes. Running more
// than one dispatcher is safe: window-keyed task IDs make duplicate enqueues
// no-ops.
type Dispatcher struct {
	client      *Client
	log         *logger.Logger
	cycleEvery  time.Duration
	exportEvery time.Duration
}

func NewDispatcher(client *Client, cfg config.SchedulerConfig, log *logger.Logger) *Dispatcher {
	cycleEvery := cfg.GetCycleInterval()
	if cycleEvery <= 0 {
		cycleEvery = time.Minute
	}
	exportEvery := cfg.GetExportInterval()
	if exportEvery <= 0 {
		exportEvery = 24 * time.Hour
	}

	return &Dispatcher{
		client:      client,
		log:         log,
		cycleEvery:  cycleEvery,
		exportEvery: exportEvery,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	// Enqueue immediately so a restarted process does not sit out a full
	// interval before its first cycle or export.
	d.enqueueCycle(ctx, time.Now())
	d.enqueueDailyExport(ctx, time.Now())

	cycleTicker := time.NewTicker(d.cycleEvery)
	defer cycleTicker.Stop()
	exportTicker := time.NewTicker(d.exportEvery)
	defer exportTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-cycleTicker.C:
			d.enqueueCycle(ctx, now)
		case now := <-exportTicker.C:
			d.enqueueDailyExport(ctx, now)
		}
	}
}

func (d *Dispatcher) enqueueCycle(ctx context.Context, now time.Time) {
	window := now.UTC().Truncate(d.cycleEvery)
	err := d.client.EnqueueAssignmentCycle(ctx, "scheduler", window)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			d.log.Debug("assignment cycle already enqueued for window", "window", window)
			return
		}
		d.log.Warn("failed to enqueue assignment cycle", "window", window, "error", err)
	}
}

func (d *Dispatcher) enqueueDailyExport(ctx context.Context, now time.Time) {
	date := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
	err := d.client.EnqueueDailyExport(ctx, date)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			d.log.Debug("daily export already enqueued", "date", date)
			return
		}
		d.log.Warn("failed to enqueue daily export", "date", date, "error", err)
	}
}

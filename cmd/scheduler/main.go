package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/adapters/storage"
	"lead_management_backend/internal/assignment"
	"lead_management_backend/internal/email"
	"lead_management_backend/internal/events"
	"lead_management_backend/internal/exports"
	"lead_management_backend/internal/notification"
	"lead_management_backend/internal/scheduler"
	"lead_management_backend/internal/simulation"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/db"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Cycles run here publish LeadAssigned on this process's bus, so seller
	// emails go out from the scheduler as well.
	notificationModule := notification.New(pool, sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)
	defer func() { _ = notificationModule.Close() }()

	val := validator.New()

	// No /metrics endpoint in this process, so the assignment module runs
	// without a metrics registry.
	assignmentModule := assignment.NewModule(pool, eventBus, val, log, nil)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	simulationModule := simulation.NewModule(pool, assignmentModule.Statuses(), rng, cfg, eventBus, log)

	var exporter scheduler.ReportExporter
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}

		bucket := cfg.GetMinioBucketAssignmentReports()
		if err := withRetry(ctx, log, "ensure report bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}

		exporter = exports.NewModule(pool, storageSvc, bucket, val, log).Service()
		log.Info("report exports enabled", "bucket", bucket)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; report export tasks will be dropped")
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	dispatcher := scheduler.NewDispatcher(client, cfg, log)
	go dispatcher.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, assignmentModule, simulationModule.Service(), exporter, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

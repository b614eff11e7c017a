package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead_management_backend/internal/assignment"
	"lead_management_backend/internal/email"
	"lead_management_backend/internal/events"
	"lead_management_backend/internal/notification"
	"lead_management_backend/internal/simulation"
	simulationservice "lead_management_backend/internal/simulation/service"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/db"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// The simulator is the redis-free dev loop: every tick it generates a
// synthetic lead batch and immediately runs one assignment cycle against it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting simulator", "interval", cfg.SimulationInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
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

	notificationModule := notification.New(pool, sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)
	defer func() { _ = notificationModule.Close() }()

	val := validator.New()
	assignmentModule := assignment.NewModule(pool, eventBus, val, log, nil)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	simulationModule := simulation.NewModule(pool, assignmentModule.Statuses(), rng, cfg, eventBus, log)

	ticker := time.NewTicker(cfg.GetSimulationInterval())
	defer ticker.Stop()

	for {
		tick(ctx, log, simulationModule.Service(), assignmentModule)

		select {
		case <-ctx.Done():
			log.Info("simulator stopped")
			return
		case <-ticker.C:
		}
	}
}

func tick(ctx context.Context, log *logger.Logger, generator *simulationservice.Service, runner assignment.CycleRunner) {
	summary, err := generator.RunOnce(ctx)
	if err != nil {
		log.Error("lead generation failed", "error", err)
		return
	}

	result, err := runner.RunCycle(ctx)
	if err != nil {
		log.Error("assignment cycle failed", "error", err)
		return
	}

	log.Info("simulation tick completed",
		"cycle", summary.Cycle,
		"generated", summary.Generated,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"assigned", result.AssignedCount)
}

package main

import (
	"context"

	"lead_management_backend/internal/assignment"
	"lead_management_backend/internal/email"
	"lead_management_backend/internal/events"
	"lead_management_backend/internal/notification"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/db"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// One-shot: run a single assignment cycle and exit. Useful for cron setups
// and for draining the pending pool by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("running one-shot assignment cycle")

	ctx := context.Background()
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

	// Close drains queued seller emails; without it the process would exit
	// before the sends finish.
	notificationModule := notification.New(pool, sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)
	defer func() { _ = notificationModule.Close() }()

	val := validator.New()
	assignmentModule := assignment.NewModule(pool, eventBus, val, log, nil)

	result, err := assignmentModule.RunCycle(ctx)
	if err != nil {
		log.Error("assignment cycle failed", "error", err)
		panic("assignment cycle failed: " + err.Error())
	}

	log.Info("assignment cycle completed",
		"cycleId", result.CycleID,
		"pendingLeads", result.PendingLeads,
		"eligibleSellers", result.EligibleSellers,
		"assigned", result.AssignedCount)
}

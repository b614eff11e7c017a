package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"lead_management_backend/internal/assignment"
	exportservice "lead_management_backend/internal/exports/service"
	simulationservice "lead_management_backend/internal/simulation/service"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/logger"
)

// LeadGenerator produces one batch of synthetic leads.
type LeadGenerator interface {
	RunOnce(ctx context.Context) (simulationservice.Summary, error)
}

// ReportExporter builds and uploads assignment reports.
type ReportExporter interface {
	ExportDay(ctx context.Context, day time.Time) (exportservice.Report, error)
	ExportPreviousDay(ctx context.Context) (exportservice.Report, error)
}

// Worker consumes queued tasks. The generator and exporter may be nil when
// the corresponding feature is not configured; their tasks are then dropped
// with a warning instead of erroring into asynq's retry loop.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	runner    assignment.CycleRunner
	generator LeadGenerator
	exporter  ReportExporter
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, runner assignment.CycleRunner, generator LeadGenerator, exporter ReportExporter, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetSchedulerConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		runner:    runner,
		generator: generator,
		exporter:  exporter,
		log:       log,
	}

	mux.HandleFunc(TaskAssignmentCycle, w.handleAssignmentCycle)
	mux.HandleFunc(TaskGenerateLeads, w.handleGenerateLeads)
	mux.HandleFunc(TaskDailyExport, w.handleDailyExport)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleAssignmentCycle(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAssignmentCyclePayload(task)
	if err != nil {
		return err
	}

	result, err := w.runner.RunCycle(ctx)
	if err != nil {
		w.log.Error("scheduled assignment cycle failed",
			"cycleId", result.CycleID, "triggeredBy", payload.TriggeredBy, "error", err)
		return err
	}

	w.log.Info("scheduled assignment cycle completed",
		"cycleId", result.CycleID,
		"pendingLeads", result.PendingLeads,
		"eligibleSellers", result.EligibleSellers,
		"assigned", result.AssignedCount,
		"triggeredBy", payload.TriggeredBy)
	return nil
}

func (w *Worker) handleGenerateLeads(ctx context.Context, task *asynq.Task) error {
	if w.generator == nil {
		w.log.Warn("lead generation task received but simulation is not wired")
		return nil
	}

	payload, err := ParseGenerateLeadsPayload(task)
	if err != nil {
		return err
	}

	summary, err := w.generator.RunOnce(ctx)
	if err != nil {
		w.log.Error("scheduled lead generation failed",
			"triggeredBy", payload.TriggeredBy, "error", err)
		return err
	}

	w.log.Info("scheduled lead generation completed",
		"cycle", summary.Cycle,
		"generated", summary.Generated,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"triggeredBy", payload.TriggeredBy)
	return nil
}

func (w *Worker) handleDailyExport(ctx context.Context, task *asynq.Task) error {
	if w.exporter == nil {
		w.log.Warn("export task received but object storage is not configured")
		return nil
	}

	payload, err := ParseDailyExportPayload(task)
	if err != nil {
		return err
	}

	report, err := w.runExport(ctx, payload)
	if err != nil {
		w.log.Error("scheduled report export failed", "date", payload.Date, "error", err)
		return err
	}

	w.log.Info("scheduled report export completed",
		"day", report.Day.Format("2006-01-02"),
		"rows", report.Rows,
		"fileKey", report.FileKey)
	return nil
}

func (w *Worker) runExport(ctx context.Context, payload DailyExportPayload) (exportservice.Report, error) {
	if payload.Date == "" {
		return w.exporter.ExportPreviousDay(ctx)
	}

	day, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return exportservice.Report{}, fmt.Errorf("parse export date %q: %w", payload.Date, err)
	}
	return w.exporter.ExportDay(ctx, day)
}

package assignment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/assignment/handler"
	"lead_management_backend/internal/assignment/metrics"
	"lead_management_backend/internal/assignment/repository"
	"lead_management_backend/internal/assignment/service"
	"lead_management_backend/internal/events"
	apphttp "lead_management_backend/internal/http"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// Module is the assignment bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	service  *service.Service
	repo     *repository.Repo
	statuses *repository.Statuses
}

// NewModule creates and initializes the assignment module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger, m *metrics.Metrics) *Module {
	repo := repository.New(pool)
	statuses := repository.NewStatuses(pool)
	svc := service.New(statuses, repo, repo, service.Config{
		PendingStatus:    StatusPending,
		AssignedStatus:   StatusAssigned,
		WorkloadStatuses: WorkloadStatuses(),
	}, bus, log, m)
	h := handler.New(svc, val, log)

	return &Module{
		handler:  h,
		service:  svc,
		repo:     repo,
		statuses: statuses,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assignments"
}

// RunCycle executes one assignment cycle. It implements CycleRunner for the
// scheduler, the simulator and the one-shot assigner.
func (m *Module) RunCycle(ctx context.Context) (CycleResult, error) {
	result, err := m.service.RunCycle(ctx)
	if err != nil {
		return CycleResult{CycleID: result.CycleID}, err
	}
	return CycleResult{
		CycleID:         result.CycleID,
		PendingLeads:    result.PendingLeads,
		EligibleSellers: result.EligibleSellers,
		AssignedCount:   result.AssignedCount,
	}, nil
}

// Statuses exposes the cached status registry so other modules can resolve
// status names against the same cache.
func (m *Module) Statuses() *repository.Statuses {
	return m.statuses
}

// RegisterRoutes mounts assignment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminGroup := ctx.Admin.Group("/assignments")
	adminGroup.GET("", m.handler.List)
	adminGroup.GET("/summary", m.handler.Summary)
	adminGroup.GET("/leads/:documentNumber", m.handler.GetByLead)
	adminGroup.POST("/run-cycle", m.handler.RunCycle)
}

// Compile-time checks.
var (
	_ apphttp.Module = (*Module)(nil)
	_ CycleRunner    = (*Module)(nil)
)

// Package exports builds daily CSV reports of assignment activity and
// uploads them to S3-compatible object storage.
package exports

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/adapters/storage"
	"lead_management_backend/internal/exports/handler"
	"lead_management_backend/internal/exports/repository"
	"lead_management_backend/internal/exports/service"
	apphttp "lead_management_backend/internal/http"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// Module is the exports module implementing http.Module. Composition roots
// construct it only when object storage is configured.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the exports module.
func NewModule(pool *pgxpool.Pool, store storage.ObjectStore, bucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, bucket, log)
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// Service exposes the export service for the scheduler.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminGroup := ctx.Admin.Group("/exports")
	adminGroup.POST("/assignments", m.handler.Run)
}

// Compile-time check.
var _ apphttp.Module = (*Module)(nil)

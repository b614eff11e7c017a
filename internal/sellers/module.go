// Package sellers provides the seller management bounded context module.
package sellers

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/assignment"
	apphttp "lead_management_backend/internal/http"
	"lead_management_backend/internal/sellers/handler"
	"lead_management_backend/internal/sellers/repository"
	"lead_management_backend/internal/sellers/service"
	"lead_management_backend/platform/validator"
)

// Module is the sellers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the sellers module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool, assignment.WorkloadStatuses())
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sellers"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts seller routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Authenticated read-only endpoints
	sellersGroup := ctx.Protected.Group("/sellers")
	sellersGroup.GET("", m.handler.List)
	sellersGroup.GET("/:documentNumber", m.handler.Get)

	// Admin-only management endpoints
	adminGroup := ctx.Admin.Group("/sellers")
	adminGroup.POST("", m.handler.Create)
	adminGroup.PUT("/:documentNumber", m.handler.Update)
	adminGroup.PATCH("/:documentNumber/toggle-active", m.handler.ToggleActive)
	adminGroup.DELETE("/:documentNumber", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

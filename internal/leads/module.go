// Package leads provides the lead intake bounded context module.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/events"
	apphttp "lead_management_backend/internal/http"
	"lead_management_backend/internal/leads/handler"
	"lead_management_backend/internal/leads/repository"
	"lead_management_backend/internal/leads/service"
	"lead_management_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public intake with stricter per-IP rate limiting, plus the reference
	// data an intake form needs.
	ctx.V1.POST("/leads", ctx.IntakeRateLimiter.RateLimit(), m.handler.Create)
	ctx.V1.GET("/business-lines", m.handler.BusinessLines)
	ctx.V1.GET("/countries", m.handler.Countries)
	ctx.V1.GET("/document-types", m.handler.DocumentTypes)

	// Reading leads requires authentication.
	leadsGroup := ctx.Protected.Group("/leads")
	leadsGroup.GET("", m.handler.List)
	leadsGroup.GET("/:documentNumber", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

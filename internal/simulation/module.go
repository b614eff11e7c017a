// Package simulation generates synthetic pending leads so the assignment
// engine has a steady stream of work in non-production environments.
package simulation

import (
	"math/rand"

	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/events"
	"lead_management_backend/internal/simulation/repository"
	"lead_management_backend/internal/simulation/service"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/logger"
)

// Module bundles the simulation service. It has no HTTP surface; the
// scheduler and the simulator binary drive it directly.
type Module struct {
	service *service.Service
}

// NewModule wires the simulation repository and service.
func NewModule(pool *pgxpool.Pool, statuses service.StatusResolver, rng *rand.Rand, cfg config.SimulationConfig, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, statuses, rng, cfg, bus, log)
	return &Module{service: svc}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "simulation"
}

// Service exposes the simulation service for schedulers and CLIs.
func (m *Module) Service() *service.Service {
	return m.service
}

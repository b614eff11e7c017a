// Package service orchestrates synthetic lead generation cycles.
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"lead_management_backend/internal/events"
	"lead_management_backend/internal/simulation/generator"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/logger"
)

// Repository defines the data access the simulation needs.
type Repository interface {
	ReferenceIDs(ctx context.Context) (generator.ReferenceIDs, error)
	InsertPendingLeads(ctx context.Context, leads []generator.Lead, pendingStatusID int) ([]generator.Lead, []string, error)
}

// StatusResolver resolves an assignment status name to its id.
type StatusResolver interface {
	Resolve(ctx context.Context, name string) (int, error)
}

// Summary reports one generation cycle.
type Summary struct {
	Cycle     int
	Generated int
	Inserted  int
	Skipped   int
}

// Service generates batches of synthetic pending leads.
type Service struct {
	repo     Repository
	statuses StatusResolver
	gen      *generator.Generator
	cfg      config.SimulationConfig
	bus      events.Bus
	log      *logger.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	cycle int
}

// New creates a new simulation service.
func New(repo Repository, statuses StatusResolver, rng *rand.Rand, cfg config.SimulationConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		statuses: statuses,
		gen:      generator.New(rng),
		cfg:      cfg,
		bus:      bus,
		log:      log,
		rng:      rng,
	}
}

// RunOnce generates one batch of synthetic leads, inserts them with pending
// tracking rows, and publishes LeadCreated for each lead that landed.
// Duplicate document numbers are skipped with a warning, like a real intake
// retry would be.
func (s *Service) RunOnce(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycle++
	cycle := s.cycle

	count := s.cfg.GetLeadsMin()
	if spread := s.cfg.GetLeadsMax() - s.cfg.GetLeadsMin(); spread > 0 {
		count += s.rng.Intn(spread + 1)
	}
	s.log.Info("generating synthetic leads", "cycle", cycle, "count", count)

	refs, err := s.repo.ReferenceIDs(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(refs.BusinessLines) == 0 || len(refs.Countries) == 0 || len(refs.DocumentTypes) == 0 {
		return Summary{}, errors.New("reference tables are empty; run migrations first")
	}

	pendingID, err := s.statuses.Resolve(ctx, s.cfg.GetInitialAssignmentStatus())
	if err != nil {
		return Summary{}, err
	}

	leads := s.gen.Batch(cycle, count, refs)

	inserted, skipped, err := s.repo.InsertPendingLeads(ctx, leads, pendingID)
	if err != nil {
		return Summary{}, err
	}

	for _, doc := range skipped {
		s.log.Warn("lead already exists, skipping", "documentNumber", doc)
	}
	for _, l := range inserted {
		s.bus.Publish(ctx, events.LeadCreated{
			BaseEvent:      events.NewBaseEvent(),
			DocumentNumber: l.DocumentNumber,
			BusinessLineID: l.BusinessLineID,
			GivenName:      l.GivenName,
			Surname:        l.Surname,
			Source:         "simulation",
		})
	}

	summary := Summary{
		Cycle:     cycle,
		Generated: count,
		Inserted:  len(inserted),
		Skipped:   len(skipped),
	}
	s.log.Info("synthetic leads generated",
		"cycle", summary.Cycle, "generated", summary.Generated,
		"inserted", summary.Inserted, "skipped", summary.Skipped)

	return summary, nil
}

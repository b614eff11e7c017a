package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lead_management_backend/internal/assignment/engine"
	"lead_management_backend/internal/assignment/metrics"
	"lead_management_backend/internal/assignment/repository"
	"lead_management_backend/internal/events"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/logger"
)

// Cycle stages reported when a run fails.
const (
	stageResolveStatuses  = "resolve_statuses"
	stageEnsureTracked    = "ensure_tracked"
	stageCycleTransaction = "cycle_transaction"
)

// Cycle outcomes reported to metrics.
const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
)

// Config declares the status names a cycle operates on. The registry matches
// them case-insensitively.
type Config struct {
	// PendingStatus marks leads waiting for a seller.
	PendingStatus string
	// AssignedStatus is stamped on leads handed to a seller.
	AssignedStatus string
	// WorkloadStatuses count against a seller's capacity.
	WorkloadStatuses []string
}

// Result summarizes one committed cycle run.
type Result struct {
	CycleID         uuid.UUID
	PendingLeads    int
	EligibleSellers int
	AssignedCount   int
}

// Service orchestrates assignment cycles and serves assignment queries.
type Service struct {
	statuses repository.StatusResolver
	store    repository.CycleStore
	reader   repository.AssignmentReader
	cfg      Config
	bus      events.Bus
	log      *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New creates a new assignment service.
func New(
	statuses repository.StatusResolver,
	store repository.CycleStore,
	reader repository.AssignmentReader,
	cfg Config,
	bus events.Bus,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		statuses: statuses,
		store:    store,
		reader:   reader,
		cfg:      cfg,
		bus:      bus,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// RunCycle executes one assignment cycle: it resolves the configured statuses,
// brings every untracked lead under tracking, then matches pending leads to
// eligible sellers and commits the resulting assignments in one transaction.
//
// Tracking rows commit on their own before the cycle transaction opens, so a
// lead stays visible as pending even when the matching pass later fails.
func (s *Service) RunCycle(ctx context.Context) (Result, error) {
	cycleID := uuid.New()
	start := s.now()

	pendingID, err := s.statuses.Resolve(ctx, s.cfg.PendingStatus)
	if err != nil {
		return s.fail(cycleID, stageResolveStatuses, err)
	}
	assignedID, err := s.statuses.Resolve(ctx, s.cfg.AssignedStatus)
	if err != nil {
		return s.fail(cycleID, stageResolveStatuses, err)
	}

	if _, err := s.store.EnsureTracked(ctx, pendingID, s.now()); err != nil {
		return s.fail(cycleID, stageEnsureTracked, err)
	}

	var (
		leads     []engine.Lead
		sellers   []engine.Seller
		proposals []engine.Proposal
	)
	err = s.store.InTx(ctx, func(ctx context.Context) error {
		var err error
		leads, err = s.store.PendingLeads(ctx, s.cfg.PendingStatus)
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			return nil
		}

		sellers, err = s.store.EligibleSellers(ctx, s.cfg.WorkloadStatuses)
		if err != nil {
			return err
		}
		if len(sellers) == 0 {
			return nil
		}

		proposals = engine.Match(leads, sellers, assignedID, s.now)
		if len(proposals) == 0 {
			return nil
		}

		_, err = s.store.ApplyProposals(ctx, proposals)
		return err
	})
	if err != nil {
		return s.fail(cycleID, stageCycleTransaction, err)
	}

	result := Result{
		CycleID:         cycleID,
		PendingLeads:    len(leads),
		EligibleSellers: len(sellers),
		AssignedCount:   len(proposals),
	}
	duration := s.now().Sub(start)

	s.metrics.IncrementCycle(outcomeCompleted)
	s.metrics.ObserveCycleDuration(duration)
	s.metrics.AddLeadsAssigned(result.AssignedCount)
	s.metrics.RecordSnapshot(result.PendingLeads, result.EligibleSellers)
	s.log.CycleCompleted(cycleID.String(), result.PendingLeads, result.EligibleSellers, result.AssignedCount, float64(duration.Milliseconds()))

	s.publishCycleEvents(ctx, cycleID, result, duration, leads, proposals)

	return result, nil
}

// fail records a failed cycle and returns the wrapped error.
func (s *Service) fail(cycleID uuid.UUID, stage string, err error) (Result, error) {
	s.metrics.IncrementCycle(outcomeFailed)
	s.log.CycleFailed(cycleID.String(), stage, err)
	return Result{CycleID: cycleID}, fmt.Errorf("assignment cycle %s: %w", cycleID, err)
}

// publishCycleEvents emits one LeadAssigned per committed proposal plus a
// cycle summary. Events go out only after the transaction committed.
func (s *Service) publishCycleEvents(ctx context.Context, cycleID uuid.UUID, result Result, duration time.Duration, leads []engine.Lead, proposals []engine.Proposal) {
	businessLines := make(map[string]int, len(leads))
	for _, l := range leads {
		businessLines[l.DocumentNumber] = l.BusinessLineID
	}

	for _, p := range proposals {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:            events.NewBaseEvent(),
			CycleID:              cycleID,
			LeadDocumentNumber:   p.LeadDocumentNumber,
			SellerDocumentNumber: p.SellerDocumentNumber,
			BusinessLineID:       businessLines[p.LeadDocumentNumber],
			AssignedAt:           p.AssignedAt,
		})
	}

	s.bus.Publish(ctx, events.AssignmentCycleCompleted{
		BaseEvent:       events.NewBaseEvent(),
		CycleID:         cycleID,
		PendingLeads:    result.PendingLeads,
		EligibleSellers: result.EligibleSellers,
		AssignedCount:   result.AssignedCount,
		Duration:        duration,
	})
}

// List retrieves assignments with an optional status filter and pagination.
func (s *Service) List(ctx context.Context, statusName string, limit, offset int) ([]repository.AssignmentRecord, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.reader.List(ctx, repository.ListParams{
		StatusName: statusName,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetByLeadDocumentNumber retrieves the assignment tracking a single lead.
func (s *Service) GetByLeadDocumentNumber(ctx context.Context, documentNumber string) (repository.AssignmentRecord, error) {
	if documentNumber == "" {
		return repository.AssignmentRecord{}, apperr.Validation("document number is required")
	}
	return s.reader.GetByLeadDocumentNumber(ctx, documentNumber)
}

// StatusSummary returns assignment counts grouped by status name.
func (s *Service) StatusSummary(ctx context.Context) ([]repository.StatusCount, error) {
	return s.reader.StatusSummary(ctx)
}

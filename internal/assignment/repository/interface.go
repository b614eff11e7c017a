package repository

import (
	"context"
	"time"

	"lead_management_backend/internal/assignment/engine"
)

// AssignmentRecord is an assignment row joined with its status name,
// as served by the inspection endpoints.
type AssignmentRecord struct {
	AssignmentID         int64
	LeadDocumentNumber   string
	SellerDocumentNumber *string
	StatusID             int
	StatusName           string
	AssignedAt           time.Time
}

// StatusCount is the number of assignments currently in one status.
type StatusCount struct {
	StatusName string
	Count      int
}

// ListParams filters and pages the assignment listing.
type ListParams struct {
	StatusName string
	Limit      int
	Offset     int
}

// StatusResolver resolves status names to their registry ids,
// creating missing statuses on first use.
type StatusResolver interface {
	Resolve(ctx context.Context, name string) (int, error)
}

// CycleStore provides the data access an assignment cycle needs.
// Read and write methods take part in a context transaction when one is
// present (see platform/pgtx); otherwise they run on the pool.
type CycleStore interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	EnsureTracked(ctx context.Context, pendingStatusID int, now time.Time) (int64, error)
	PendingLeads(ctx context.Context, pendingStatusName string) ([]engine.Lead, error)
	EligibleSellers(ctx context.Context, workloadStatuses []string) ([]engine.Seller, error)
	ApplyProposals(ctx context.Context, proposals []engine.Proposal) (int, error)
}

// AssignmentReader provides read access for the inspection endpoints.
type AssignmentReader interface {
	List(ctx context.Context, params ListParams) ([]AssignmentRecord, int, error)
	GetByLeadDocumentNumber(ctx context.Context, documentNumber string) (AssignmentRecord, error)
	StatusSummary(ctx context.Context) ([]StatusCount, error)
}

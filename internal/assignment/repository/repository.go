package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/assignment/engine"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/pgtx"
)

const assignmentNotFoundMessage = "assignment not found"

// Repo implements CycleStore and AssignmentReader with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assignment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time checks.
var (
	_ CycleStore       = (*Repo)(nil)
	_ AssignmentReader = (*Repo)(nil)
)

// InTx runs fn inside a single transaction. The transaction travels in the
// context, so repository calls made by fn join it automatically.
func (r *Repo) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin assignment transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(pgtx.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit assignment transaction: %w", err)
	}
	return nil
}

// EnsureTracked inserts a pending, unassigned tracking row for every lead
// that has none yet. It is a single set-based statement, so re-running it
// is a no-op. Returns the number of rows created.
func (r *Repo) EnsureTracked(ctx context.Context, pendingStatusID int, now time.Time) (int64, error) {
	query := `
		INSERT INTO lead_management.assignments
			(assigned_at, seller_document_number, lead_document_number, assignment_status_id)
		SELECT $2, NULL, l.document_number, $1
		FROM lead_management.leads l
		LEFT JOIN lead_management.assignments a
		  ON l.document_number = a.lead_document_number
		WHERE a.lead_document_number IS NULL`

	tag, err := pgtx.QuerierFrom(ctx, r.pool).Exec(ctx, query, pendingStatusID, now)
	if err != nil {
		return 0, fmt.Errorf("ensure tracked leads: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PendingLeads returns the leads whose assignment is in the given status,
// ordered by document number so every cycle sees the same sequence.
func (r *Repo) PendingLeads(ctx context.Context, pendingStatusName string) ([]engine.Lead, error) {
	query := `
		SELECT l.document_number, l.business_line_id
		FROM lead_management.leads l
		JOIN lead_management.assignments a
		  ON l.document_number = a.lead_document_number
		JOIN lead_management.assignment_statuses st
		  ON a.assignment_status_id = st.assignment_status_id
		WHERE LOWER(st.name) = LOWER($1)
		ORDER BY l.document_number`

	rows, err := pgtx.QuerierFrom(ctx, r.pool).Query(ctx, query, pendingStatusName)
	if err != nil {
		return nil, fmt.Errorf("fetch pending leads: %w", err)
	}
	defer rows.Close()

	leads := make([]engine.Lead, 0)
	for rows.Next() {
		var l engine.Lead
		if err := rows.Scan(&l.DocumentNumber, &l.BusinessLineID); err != nil {
			return nil, fmt.Errorf("scan pending lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending leads: %w", err)
	}

	return leads, nil
}

// EligibleSellers returns all active sellers with their live workload: the
// count of their assignments whose status is in workloadStatuses, matched
// case-insensitively. Ordered by document number so the matching pass is
// reproducible for a given snapshot.
func (r *Repo) EligibleSellers(ctx context.Context, workloadStatuses []string) ([]engine.Seller, error) {
	query := `
		SELECT
			s.document_number,
			s.business_line_id,
			s.max_leads_count,
			COALESCE((
				SELECT COUNT(*)
				FROM lead_management.assignments a
				JOIN lead_management.assignment_statuses st
				  ON a.assignment_status_id = st.assignment_status_id
				WHERE a.seller_document_number = s.document_number
				  AND LOWER(st.name) = ANY($1)
			), 0) AS current_leads
		FROM lead_management.sellers s
		WHERE s.is_active = TRUE
		ORDER BY s.document_number`

	lowered := make([]string, len(workloadStatuses))
	for i, name := range workloadStatuses {
		lowered[i] = strings.ToLower(strings.TrimSpace(name))
	}

	rows, err := pgtx.QuerierFrom(ctx, r.pool).Query(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("fetch eligible sellers: %w", err)
	}
	defer rows.Close()

	sellers := make([]engine.Seller, 0)
	for rows.Next() {
		var s engine.Seller
		if err := rows.Scan(&s.DocumentNumber, &s.BusinessLineID, &s.MaxLeadsCount, &s.CurrentLeads); err != nil {
			return nil, fmt.Errorf("scan eligible seller: %w", err)
		}
		sellers = append(sellers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eligible sellers: %w", err)
	}

	return sellers, nil
}

// ApplyProposals updates the tracked assignment row for each proposal in one
// batched round trip. Every proposal must hit exactly one existing row; a
// miss means the tracking invariant broke and the whole cycle must abort.
func (r *Repo) ApplyProposals(ctx context.Context, proposals []engine.Proposal) (int, error) {
	if len(proposals) == 0 {
		return 0, nil
	}

	query := `
		UPDATE lead_management.assignments
		SET seller_document_number = $1,
		    assignment_status_id = $2,
		    assigned_at = $3
		WHERE lead_document_number = $4`

	batch := &pgx.Batch{}
	for _, p := range proposals {
		batch.Queue(query, p.SellerDocumentNumber, p.StatusID, p.AssignedAt, p.LeadDocumentNumber)
	}

	results := pgtx.QuerierFrom(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	applied := 0
	for _, p := range proposals {
		tag, err := results.Exec()
		if err != nil {
			return applied, fmt.Errorf("assign lead %s: %w", p.LeadDocumentNumber, err)
		}
		if tag.RowsAffected() == 0 {
			return applied, fmt.Errorf("assign lead %s: no tracked assignment row", p.LeadDocumentNumber)
		}
		applied++
	}

	return applied, nil
}

// List retrieves assignments with an optional status filter and pagination,
// newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]AssignmentRecord, int, error) {
	var statusParam any
	if params.StatusName != "" {
		statusParam = params.StatusName
	}

	countQuery := `
		SELECT COUNT(*)
		FROM lead_management.assignments a
		JOIN lead_management.assignment_statuses st
		  ON a.assignment_status_id = st.assignment_status_id
		WHERE ($1::text IS NULL OR LOWER(st.name) = LOWER($1))`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	query := `
		SELECT a.assignment_id, a.lead_document_number, a.seller_document_number,
		       a.assignment_status_id, st.name, a.assigned_at
		FROM lead_management.assignments a
		JOIN lead_management.assignment_statuses st
		  ON a.assignment_status_id = st.assignment_status_id
		WHERE ($1::text IS NULL OR LOWER(st.name) = LOWER($1))
		ORDER BY a.assigned_at DESC, a.assignment_id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, statusParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	records, err := scanAssignmentRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetByLeadDocumentNumber retrieves the assignment tracking a single lead.
func (r *Repo) GetByLeadDocumentNumber(ctx context.Context, documentNumber string) (AssignmentRecord, error) {
	query := `
		SELECT a.assignment_id, a.lead_document_number, a.seller_document_number,
		       a.assignment_status_id, st.name, a.assigned_at
		FROM lead_management.assignments a
		JOIN lead_management.assignment_statuses st
		  ON a.assignment_status_id = st.assignment_status_id
		WHERE a.lead_document_number = $1`

	var rec AssignmentRecord
	err := r.pool.QueryRow(ctx, query, documentNumber).Scan(
		&rec.AssignmentID, &rec.LeadDocumentNumber, &rec.SellerDocumentNumber,
		&rec.StatusID, &rec.StatusName, &rec.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssignmentRecord{}, apperr.NotFound(assignmentNotFoundMessage)
		}
		return AssignmentRecord{}, fmt.Errorf("get assignment by lead: %w", err)
	}

	return rec, nil
}

// StatusSummary returns assignment counts grouped by status name.
func (r *Repo) StatusSummary(ctx context.Context) ([]StatusCount, error) {
	query := `
		SELECT st.name, COUNT(*)
		FROM lead_management.assignments a
		JOIN lead_management.assignment_statuses st
		  ON a.assignment_status_id = st.assignment_status_id
		GROUP BY st.name
		ORDER BY COUNT(*) DESC, st.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarize assignments: %w", err)
	}
	defer rows.Close()

	summary := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.StatusName, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan assignment summary: %w", err)
		}
		summary = append(summary, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignment summary: %w", err)
	}

	return summary, nil
}

func scanAssignmentRecords(rows pgx.Rows) ([]AssignmentRecord, error) {
	records := make([]AssignmentRecord, 0)
	for rows.Next() {
		var rec AssignmentRecord
		if err := rows.Scan(
			&rec.AssignmentID, &rec.LeadDocumentNumber, &rec.SellerDocumentNumber,
			&rec.StatusID, &rec.StatusName, &rec.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return records, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/internal/simulation/generator"
)

// insertLeadQuery inserts the lead and, only when it landed, its pending
// tracking row in one statement. A duplicate document number touches nothing.
const insertLeadQuery = `
	WITH new_lead AS (
		INSERT INTO lead_management.leads
			(document_number, given_name, surname, phone, email, business_line_id, country_id, document_type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (document_number) DO NOTHING
		RETURNING document_number
	)
	INSERT INTO lead_management.assignments
		(assigned_at, seller_document_number, lead_document_number, assignment_status_id)
	SELECT NOW(), NULL, document_number, $9
	FROM new_lead`

// Repo writes synthetic leads with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new simulation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ReferenceIDs loads the valid reference ids the generator samples from.
func (r *Repo) ReferenceIDs(ctx context.Context) (generator.ReferenceIDs, error) {
	var refs generator.ReferenceIDs
	var err error

	refs.BusinessLines, err = r.intColumn(ctx, `SELECT business_line_id FROM lead_management.business_lines ORDER BY business_line_id`)
	if err != nil {
		return generator.ReferenceIDs{}, fmt.Errorf("load business line ids: %w", err)
	}
	refs.Countries, err = r.intColumn(ctx, `SELECT country_id FROM lead_management.countries ORDER BY country_id`)
	if err != nil {
		return generator.ReferenceIDs{}, fmt.Errorf("load country ids: %w", err)
	}
	refs.DocumentTypes, err = r.intColumn(ctx, `SELECT document_type_id FROM lead_management.document_types ORDER BY document_type_id`)
	if err != nil {
		return generator.ReferenceIDs{}, fmt.Errorf("load document type ids: %w", err)
	}

	return refs, nil
}

// InsertPendingLeads writes the batch in one transaction. Each lead lands
// together with a pending tracking row; duplicates are returned as skipped
// document numbers.
func (r *Repo) InsertPendingLeads(ctx context.Context, leads []generator.Lead, pendingStatusID int) ([]generator.Lead, []string, error) {
	if len(leads) == 0 {
		return nil, nil, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin simulation transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, l := range leads {
		batch.Queue(insertLeadQuery,
			l.DocumentNumber, l.GivenName, l.Surname, l.Phone, l.Email,
			l.BusinessLineID, l.CountryID, l.DocumentTypeID,
			pendingStatusID,
		)
	}

	results := tx.SendBatch(ctx, batch)

	inserted := make([]generator.Lead, 0, len(leads))
	skipped := make([]string, 0)
	for _, l := range leads {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return nil, nil, fmt.Errorf("insert synthetic lead %s: %w", l.DocumentNumber, err)
		}
		if tag.RowsAffected() == 0 {
			skipped = append(skipped, l.DocumentNumber)
			continue
		}
		inserted = append(inserted, l)
	}
	if err := results.Close(); err != nil {
		return nil, nil, fmt.Errorf("close simulation batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit simulation transaction: %w", err)
	}

	return inserted, skipped, nil
}

func (r *Repo) intColumn(ctx context.Context, query string) ([]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

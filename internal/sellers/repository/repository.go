package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/platform/apperr"
)

const sellerNotFoundMessage = "seller not found"

// sellerSelect embeds the live workload count; $1 is always the lowered
// workload status names.
const sellerSelect = `
	SELECT
		s.document_number, s.given_name, s.surname, s.email, s.phone,
		s.business_line_id, bl.name,
		s.max_leads_count, s.is_active,
		COALESCE((
			SELECT COUNT(*)
			FROM lead_management.assignments a
			JOIN lead_management.assignment_statuses st
			  ON a.assignment_status_id = st.assignment_status_id
			WHERE a.seller_document_number = s.document_number
			  AND LOWER(st.name) = ANY($1)
		), 0) AS current_leads,
		s.created_at, s.updated_at
	FROM lead_management.sellers s
	JOIN lead_management.business_lines bl ON s.business_line_id = bl.business_line_id`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	// workloadStatuses are the lowered status names counted as load.
	workloadStatuses []string
}

// New creates a new sellers repository. workloadStatuses are the assignment
// statuses that count against a seller's capacity.
func New(pool *pgxpool.Pool, workloadStatuses []string) *Repo {
	lowered := make([]string, len(workloadStatuses))
	for i, name := range workloadStatuses {
		lowered[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return &Repo{pool: pool, workloadStatuses: lowered}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new seller and returns it.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Seller, error) {
	query := `
		INSERT INTO lead_management.sellers
			(document_number, given_name, surname, email, phone, business_line_id, max_leads_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		params.DocumentNumber, params.GivenName, params.Surname, params.Email, params.Phone,
		params.BusinessLineID, params.MaxLeadsCount, params.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Seller{}, apperr.Conflict("seller with this document number already exists")
			case "23503":
				return Seller{}, apperr.Validation("unknown business line")
			}
		}
		return Seller{}, fmt.Errorf("create seller: %w", err)
	}

	return r.GetByDocumentNumber(ctx, params.DocumentNumber)
}

// List retrieves sellers ordered by document number.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Seller, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM lead_management.sellers s
		WHERE ($1 = 0 OR s.business_line_id = $1)
		  AND (NOT $2 OR s.is_active)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.BusinessLineID, params.ActiveOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sellers: %w", err)
	}

	query := sellerSelect + `
		WHERE ($2 = 0 OR s.business_line_id = $2)
		  AND (NOT $3 OR s.is_active)
		ORDER BY s.document_number
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, r.workloadStatuses, params.BusinessLineID, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	sellers := make([]Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, 0, err
		}
		sellers = append(sellers, seller)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sellers: %w", err)
	}

	return sellers, total, nil
}

// GetByDocumentNumber retrieves a single seller with its live workload.
func (r *Repo) GetByDocumentNumber(ctx context.Context, documentNumber string) (Seller, error) {
	query := sellerSelect + `
		WHERE s.document_number = $2`

	seller, err := scanSeller(r.pool.QueryRow(ctx, query, r.workloadStatuses, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Seller{}, apperr.NotFound(sellerNotFoundMessage)
		}
		return Seller{}, fmt.Errorf("get seller by document number: %w", err)
	}

	return seller, nil
}

// Update applies a partial update and returns the stored seller.
func (r *Repo) Update(ctx context.Context, documentNumber string, params UpdateParams) (Seller, error) {
	query := `
		UPDATE lead_management.sellers
		SET given_name = COALESCE($2, given_name),
		    surname = COALESCE($3, surname),
		    email = COALESCE($4, email),
		    phone = COALESCE($5, phone),
		    business_line_id = COALESCE($6, business_line_id),
		    max_leads_count = COALESCE($7, max_leads_count),
		    is_active = COALESCE($8, is_active),
		    updated_at = NOW()
		WHERE document_number = $1
		RETURNING document_number`

	var updated string
	err := r.pool.QueryRow(ctx, query, documentNumber,
		params.GivenName, params.Surname, params.Email, params.Phone,
		params.BusinessLineID, params.MaxLeadsCount, params.IsActive,
	).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Seller{}, apperr.NotFound(sellerNotFoundMessage)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return Seller{}, apperr.Validation("unknown business line")
			case "23514":
				return Seller{}, apperr.Validation("max leads count must not be negative")
			}
		}
		return Seller{}, fmt.Errorf("update seller: %w", err)
	}

	return r.GetByDocumentNumber(ctx, documentNumber)
}

// ToggleActive flips the is_active flag and returns the stored seller.
func (r *Repo) ToggleActive(ctx context.Context, documentNumber string) (Seller, error) {
	query := `
		UPDATE lead_management.sellers
		SET is_active = NOT is_active,
		    updated_at = NOW()
		WHERE document_number = $1
		RETURNING document_number`

	var updated string
	if err := r.pool.QueryRow(ctx, query, documentNumber).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Seller{}, apperr.NotFound(sellerNotFoundMessage)
		}
		return Seller{}, fmt.Errorf("toggle seller active: %w", err)
	}

	return r.GetByDocumentNumber(ctx, documentNumber)
}

// Delete removes a seller that has no assignments. Sellers with assignment
// history should be deactivated instead.
func (r *Repo) Delete(ctx context.Context, documentNumber string) error {
	query := `DELETE FROM lead_management.sellers WHERE document_number = $1`

	tag, err := r.pool.Exec(ctx, query, documentNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.Conflict("seller has assigned leads; deactivate instead")
		}
		return fmt.Errorf("delete seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(sellerNotFoundMessage)
	}

	return nil
}

func scanSeller(row pgx.Row) (Seller, error) {
	var s Seller
	err := row.Scan(
		&s.DocumentNumber, &s.GivenName, &s.Surname, &s.Email, &s.Phone,
		&s.BusinessLineID, &s.BusinessLineName,
		&s.MaxLeadsCount, &s.IsActive,
		&s.CurrentLeads,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Seller{}, err
	}
	return s, nil
}

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

const leadNotFoundMessage = "lead not found"

const leadSelectColumns = `
	l.document_number, l.given_name, l.surname, l.phone, l.email,
	l.business_line_id, bl.name,
	l.country_id, c.name,
	l.document_type_id, dt.name,
	l.created_at,
	st.name, a.seller_document_number, a.assigned_at`

const leadFromClause = `
	FROM lead_management.leads l
	JOIN lead_management.business_lines bl ON l.business_line_id = bl.business_line_id
	JOIN lead_management.countries c ON l.country_id = c.country_id
	JOIN lead_management.document_types dt ON l.document_type_id = dt.document_type_id
	LEFT JOIN lead_management.assignments a ON l.document_number = a.lead_document_number
	LEFT JOIN lead_management.assignment_statuses st ON a.assignment_status_id = st.assignment_status_id`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new lead and returns it with its reference data resolved.
// A duplicate document number is a conflict; an unknown reference id is a
// validation error.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO lead_management.leads
			(document_number, given_name, surname, phone, email, business_line_id, country_id, document_type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		params.DocumentNumber, params.GivenName, params.Surname, params.Phone, params.Email,
		params.BusinessLineID, params.CountryID, params.DocumentTypeID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Lead{}, apperr.Conflict("lead with this document number already exists")
			case "23503":
				return Lead{}, apperr.Validation(referenceViolationMessage(pgErr.ConstraintName))
			}
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return r.GetByDocumentNumber(ctx, params.DocumentNumber)
}

// List retrieves leads with optional business line filter, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM lead_management.leads l
		WHERE ($1 = 0 OR l.business_line_id = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.BusinessLineID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT` + leadSelectColumns + leadFromClause + `
		WHERE ($1 = 0 OR l.business_line_id = $1)
		ORDER BY l.created_at DESC, l.document_number
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, params.BusinessLineID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}

	return leads, total, nil
}

// GetByDocumentNumber retrieves a single lead.
func (r *Repo) GetByDocumentNumber(ctx context.Context, documentNumber string) (Lead, error) {
	query := `SELECT` + leadSelectColumns + leadFromClause + `
		WHERE l.document_number = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by document number: %w", err)
	}

	return lead, nil
}

// BusinessLines retrieves all business lines.
func (r *Repo) BusinessLines(ctx context.Context) ([]BusinessLine, error) {
	query := `
		SELECT business_line_id, name
		FROM lead_management.business_lines
		ORDER BY business_line_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list business lines: %w", err)
	}
	defer rows.Close()

	lines := make([]BusinessLine, 0)
	for rows.Next() {
		var bl BusinessLine
		if err := rows.Scan(&bl.ID, &bl.Name); err != nil {
			return nil, fmt.Errorf("scan business line: %w", err)
		}
		lines = append(lines, bl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate business lines: %w", err)
	}

	return lines, nil
}

// Countries retrieves all countries.
func (r *Repo) Countries(ctx context.Context) ([]Country, error) {
	query := `
		SELECT country_id, name, iso_code
		FROM lead_management.countries
		ORDER BY country_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]Country, 0)
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name, &c.ISOCode); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}

	return countries, nil
}

// DocumentTypes retrieves all document types.
func (r *Repo) DocumentTypes(ctx context.Context) ([]DocumentType, error) {
	query := `
		SELECT document_type_id, code, name
		FROM lead_management.document_types
		ORDER BY document_type_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	defer rows.Close()

	types := make([]DocumentType, 0)
	for rows.Next() {
		var dt DocumentType
		if err := rows.Scan(&dt.ID, &dt.Code, &dt.Name); err != nil {
			return nil, fmt.Errorf("scan document type: %w", err)
		}
		types = append(types, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document types: %w", err)
	}

	return types, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.DocumentNumber, &l.GivenName, &l.Surname, &l.Phone, &l.Email,
		&l.BusinessLineID, &l.BusinessLineName,
		&l.CountryID, &l.CountryName,
		&l.DocumentTypeID, &l.DocumentTypeName,
		&l.CreatedAt,
		&l.AssignmentStatus, &l.SellerDocumentNumber, &l.AssignedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	return l, nil
}

func referenceViolationMessage(constraintName string) string {
	switch {
	case strings.Contains(constraintName, "business_line"):
		return "unknown business line"
	case strings.Contains(constraintName, "country"):
		return "unknown country"
	case strings.Contains(constraintName, "document_type"):
		return "unknown document type"
	default:
		return "unknown reference value"
	}
}

// Package repository provides data access for assignment report exports.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRow is one line of a daily assignment report.
type ReportRow struct {
	LeadDocumentNumber   string
	LeadGivenName        string
	LeadSurname          string
	BusinessLine         string
	SellerDocumentNumber *string
	SellerGivenName      *string
	SellerSurname        *string
	Status               string
	AssignedAt           time.Time
}

const assignmentsOnQuery = `
	SELECT
		a.lead_document_number,
		l.given_name,
		l.surname,
		bl.name,
		a.seller_document_number,
		s.given_name,
		s.surname,
		st.name,
		a.assigned_at
	FROM lead_management.assignments a
	JOIN lead_management.assignment_statuses st
		ON st.assignment_status_id = a.assignment_status_id
	JOIN lead_management.leads l
		ON l.document_number = a.lead_document_number
	JOIN lead_management.business_lines bl
		ON bl.business_line_id = l.business_line_id
	LEFT JOIN lead_management.sellers s
		ON s.document_number = a.seller_document_number
	WHERE a.assigned_at >= $1 AND a.assigned_at < $2
	ORDER BY a.assigned_at ASC, a.lead_document_number ASC`

// Repo reads assignment activity for reporting.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new export repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// AssignmentsOn returns all assignment rows whose assigned_at falls on the
// given UTC calendar day, oldest first.
func (r *Repo) AssignmentsOn(ctx context.Context, day time.Time) ([]ReportRow, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	rows, err := r.pool.Query(ctx, assignmentsOnQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("query assignment report rows: %w", err)
	}
	defer rows.Close()

	var report []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(
			&row.LeadDocumentNumber,
			&row.LeadGivenName,
			&row.LeadSurname,
			&row.BusinessLine,
			&row.SellerDocumentNumber,
			&row.SellerGivenName,
			&row.SellerSurname,
			&row.Status,
			&row.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("scan assignment report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignment report rows: %w", err)
	}

	return report, nil
}

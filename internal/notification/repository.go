package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_management_backend/platform/apperr"
)

// AssignmentContact holds the names and addresses needed to notify a seller
// about a lead handed to them.
type AssignmentContact struct {
	SellerEmail     string
	SellerGivenName string
	SellerSurname   string
	LeadGivenName   string
	LeadSurname     string
	BusinessLine    string
}

const assignmentContactQuery = `
	SELECT
		s.email,
		s.given_name,
		s.surname,
		l.given_name,
		l.surname,
		bl.name
	FROM lead_management.assignments a
	JOIN lead_management.leads l
		ON l.document_number = a.lead_document_number
	JOIN lead_management.sellers s
		ON s.document_number = a.seller_document_number
	JOIN lead_management.business_lines bl
		ON bl.business_line_id = l.business_line_id
	WHERE a.lead_document_number = $1 AND a.seller_document_number = $2`

// Repository reads notification recipient data.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new notification repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AssignmentContact returns contact details for one committed assignment.
func (r *Repository) AssignmentContact(ctx context.Context, leadDocumentNumber, sellerDocumentNumber string) (AssignmentContact, error) {
	var contact AssignmentContact
	err := r.pool.QueryRow(ctx, assignmentContactQuery, leadDocumentNumber, sellerDocumentNumber).Scan(
		&contact.SellerEmail,
		&contact.SellerGivenName,
		&contact.SellerSurname,
		&contact.LeadGivenName,
		&contact.LeadSurname,
		&contact.BusinessLine,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssignmentContact{}, apperr.NotFound("assignment contact not found")
		}
		return AssignmentContact{}, fmt.Errorf("query assignment contact: %w", err)
	}
	return contact, nil
}

// Compile-time check.
var _ ContactReader = (*Repository)(nil)

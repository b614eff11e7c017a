package repository

import (
	"context"
	"time"
)

// Lead is a stored lead joined with its reference data and, when tracked,
// its assignment state.
type Lead struct {
	DocumentNumber   string
	GivenName        string
	Surname          string
	Phone            string
	Email            string
	BusinessLineID   int
	BusinessLineName string
	CountryID        int
	CountryName      string
	DocumentTypeID   int
	DocumentTypeName string
	CreatedAt        time.Time

	// Assignment state is absent until the first cycle tracks the lead.
	AssignmentStatus     *string
	SellerDocumentNumber *string
	AssignedAt           *time.Time
}

// CreateParams contains the data for inserting a new lead.
type CreateParams struct {
	DocumentNumber string
	GivenName      string
	Surname        string
	Phone          string
	Email          string
	BusinessLineID int
	CountryID      int
	DocumentTypeID int
}

// ListParams filters and paginates the lead listing.
type ListParams struct {
	// BusinessLineID filters by business line; zero means all lines.
	BusinessLineID int
	Limit          int
	Offset         int
}

// BusinessLine is a reference row describing a product vertical.
type BusinessLine struct {
	ID   int
	Name string
}

// Country is a reference row.
type Country struct {
	ID      int
	Name    string
	ISOCode string
}

// DocumentType is a reference row.
type DocumentType struct {
	ID   int
	Code string
	Name string
}

// Repository defines persistence for leads and the reference tables.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (Lead, error)

	BusinessLines(ctx context.Context) ([]BusinessLine, error)
	Countries(ctx context.Context) ([]Country, error)
	DocumentTypes(ctx context.Context) ([]DocumentType, error)
}

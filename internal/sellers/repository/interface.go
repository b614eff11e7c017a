package repository

import (
	"context"
	"time"
)

// Seller is a stored seller with its live workload.
type Seller struct {
	DocumentNumber   string
	GivenName        string
	Surname          string
	Email            string
	Phone            string
	BusinessLineID   int
	BusinessLineName string
	MaxLeadsCount    int
	IsActive         bool
	// CurrentLeads counts assignments in a workload status at read time.
	CurrentLeads int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams contains the data for inserting a new seller.
type CreateParams struct {
	DocumentNumber string
	GivenName      string
	Surname        string
	Email          string
	Phone          string
	BusinessLineID int
	MaxLeadsCount  int
	IsActive       bool
}

// UpdateParams contains optional fields for a partial seller update.
// Nil fields keep their stored value.
type UpdateParams struct {
	GivenName      *string
	Surname        *string
	Email          *string
	Phone          *string
	BusinessLineID *int
	MaxLeadsCount  *int
	IsActive       *bool
}

// ListParams filters and paginates the seller listing.
type ListParams struct {
	// BusinessLineID filters by business line; zero means all lines.
	BusinessLineID int
	// ActiveOnly hides deactivated sellers.
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository defines persistence for sellers.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Seller, error)
	List(ctx context.Context, params ListParams) ([]Seller, int, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (Seller, error)
	Update(ctx context.Context, documentNumber string, params UpdateParams) (Seller, error)
	ToggleActive(ctx context.Context, documentNumber string) (Seller, error)
	Delete(ctx context.Context, documentNumber string) error
}

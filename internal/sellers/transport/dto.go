package transport

// CreateSellerRequest contains data for registering a new seller.
type CreateSellerRequest struct {
	DocumentNumber string `json:"documentNumber" validate:"required,min=3,max=50"`
	GivenName      string `json:"givenName" validate:"required,min=1,max=100"`
	Surname        string `json:"surname" validate:"required,min=1,max=100"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Phone          string `json:"phone" validate:"omitempty,min=7,max=20"`
	BusinessLineID int    `json:"businessLineId" validate:"required,min=1"`
	MaxLeadsCount  int    `json:"maxLeadsCount" validate:"min=0"`
	IsActive       *bool  `json:"isActive,omitempty"`
}

// UpdateSellerRequest contains optional fields for a partial seller update.
type UpdateSellerRequest struct {
	GivenName      *string `json:"givenName,omitempty" validate:"omitempty,min=1,max=100"`
	Surname        *string `json:"surname,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	BusinessLineID *int    `json:"businessLineId,omitempty" validate:"omitempty,min=1"`
	MaxLeadsCount  *int    `json:"maxLeadsCount,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// ListSellersRequest filters the seller listing.
type ListSellersRequest struct {
	BusinessLineID int  `form:"businessLineId" validate:"omitempty,min=1"`
	ActiveOnly     bool `form:"activeOnly"`
	Limit          int  `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset         int  `form:"offset" validate:"omitempty,min=0"`
}

// SellerResponse represents a seller in API responses.
type SellerResponse struct {
	DocumentNumber string `json:"documentNumber"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BusinessLineID int    `json:"businessLineId"`
	BusinessLine   string `json:"businessLine"`
	MaxLeadsCount  int    `json:"maxLeadsCount"`
	CurrentLeads   int    `json:"currentLeads"`
	AvailableSlots int    `json:"availableSlots"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// SellerListResponse wraps a page of sellers.
type SellerListResponse struct {
	Items []SellerResponse `json:"items"`
	Total int              `json:"total"`
}

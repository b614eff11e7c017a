package transport

// CreateLeadRequest contains data for registering a new lead.
type CreateLeadRequest struct {
	DocumentNumber string `json:"documentNumber" validate:"required,min=3,max=50"`
	GivenName      string `json:"givenName" validate:"required,min=1,max=100"`
	Surname        string `json:"surname" validate:"required,min=1,max=100"`
	Phone          string `json:"phone" validate:"required,min=7,max=20"`
	Email          string `json:"email" validate:"required,email,max=255"`
	BusinessLineID int    `json:"businessLineId" validate:"required,min=1"`
	CountryID      int    `json:"countryId" validate:"required,min=1"`
	DocumentTypeID int    `json:"documentTypeId" validate:"required,min=1"`
}

// ListLeadsRequest filters the lead listing.
type ListLeadsRequest struct {
	BusinessLineID int `form:"businessLineId" validate:"omitempty,min=1"`
	Limit          int `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset         int `form:"offset" validate:"omitempty,min=0"`
}

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	DocumentNumber string `json:"documentNumber"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	BusinessLineID int    `json:"businessLineId"`
	BusinessLine   string `json:"businessLine"`
	CountryID      int    `json:"countryId"`
	Country        string `json:"country"`
	DocumentTypeID int    `json:"documentTypeId"`
	DocumentType   string `json:"documentType"`
	CreatedAt      string `json:"createdAt"`

	AssignmentStatus     *string `json:"assignmentStatus,omitempty"`
	SellerDocumentNumber *string `json:"sellerDocumentNumber,omitempty"`
	AssignedAt           *string `json:"assignedAt,omitempty"`
}

// LeadListResponse wraps a page of leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// BusinessLineResponse represents a business line reference row.
type BusinessLineResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CountryResponse represents a country reference row.
type CountryResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	ISOCode string `json:"isoCode"`
}

// DocumentTypeResponse represents a document type reference row.
type DocumentTypeResponse struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

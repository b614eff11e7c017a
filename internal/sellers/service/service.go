// Package service handles seller management operations.
package service

import (
	"context"
	"strings"
	"time"

	"lead_management_backend/internal/sellers/repository"
	"lead_management_backend/internal/sellers/transport"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/phone"
	"lead_management_backend/platform/sanitize"
)

// Service handles seller operations.
type Service struct {
	repo repository.Repository
}

// New creates a new sellers service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new seller. New sellers are active unless the request
// says otherwise.
func (s *Service) Create(ctx context.Context, req transport.CreateSellerRequest) (transport.SellerResponse, error) {
	documentNumber := strings.TrimSpace(req.DocumentNumber)
	if documentNumber == "" {
		return transport.SellerResponse{}, apperr.Validation("document number is required")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	seller, err := s.repo.Create(ctx, repository.CreateParams{
		DocumentNumber: documentNumber,
		GivenName:      sanitize.Text(req.GivenName),
		Surname:        sanitize.Text(req.Surname),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          phone.NormalizeE164(req.Phone),
		BusinessLineID: req.BusinessLineID,
		MaxLeadsCount:  req.MaxLeadsCount,
		IsActive:       isActive,
	})
	if err != nil {
		return transport.SellerResponse{}, err
	}

	return toSellerResponse(seller), nil
}

// List retrieves sellers with optional filters.
func (s *Service) List(ctx context.Context, req transport.ListSellersRequest) (transport.SellerListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	sellers, total, err := s.repo.List(ctx, repository.ListParams{
		BusinessLineID: req.BusinessLineID,
		ActiveOnly:     req.ActiveOnly,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return transport.SellerListResponse{}, err
	}

	items := make([]transport.SellerResponse, 0, len(sellers))
	for _, seller := range sellers {
		items = append(items, toSellerResponse(seller))
	}

	return transport.SellerListResponse{Items: items, Total: total}, nil
}

// GetByDocumentNumber retrieves a single seller.
func (s *Service) GetByDocumentNumber(ctx context.Context, documentNumber string) (transport.SellerResponse, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return transport.SellerResponse{}, apperr.Validation("document number is required")
	}

	seller, err := s.repo.GetByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return transport.SellerResponse{}, err
	}

	return toSellerResponse(seller), nil
}

// Update applies a partial update to a seller.
func (s *Service) Update(ctx context.Context, documentNumber string, req transport.UpdateSellerRequest) (transport.SellerResponse, error) {
	params := repository.UpdateParams{
		BusinessLineID: req.BusinessLineID,
		MaxLeadsCount:  req.MaxLeadsCount,
		IsActive:       req.IsActive,
	}

	if req.GivenName != nil {
		cleaned := sanitize.Text(*req.GivenName)
		params.GivenName = &cleaned
	}
	if req.Surname != nil {
		cleaned := sanitize.Text(*req.Surname)
		params.Surname = &cleaned
	}
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		params.Email = &lowered
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	seller, err := s.repo.Update(ctx, documentNumber, params)
	if err != nil {
		return transport.SellerResponse{}, err
	}

	return toSellerResponse(seller), nil
}

// ToggleActive flips a seller's active flag. Deactivated sellers keep their
// assigned leads but receive no new ones.
func (s *Service) ToggleActive(ctx context.Context, documentNumber string) (transport.SellerResponse, error) {
	seller, err := s.repo.ToggleActive(ctx, documentNumber)
	if err != nil {
		return transport.SellerResponse{}, err
	}

	return toSellerResponse(seller), nil
}

// Delete removes a seller without assignment history.
func (s *Service) Delete(ctx context.Context, documentNumber string) error {
	return s.repo.Delete(ctx, documentNumber)
}

func toSellerResponse(seller repository.Seller) transport.SellerResponse {
	available := seller.MaxLeadsCount - seller.CurrentLeads
	if available < 0 {
		available = 0
	}

	return transport.SellerResponse{
		DocumentNumber: seller.DocumentNumber,
		GivenName:      seller.GivenName,
		Surname:        seller.Surname,
		Email:          seller.Email,
		Phone:          seller.Phone,
		BusinessLineID: seller.BusinessLineID,
		BusinessLine:   seller.BusinessLineName,
		MaxLeadsCount:  seller.MaxLeadsCount,
		CurrentLeads:   seller.CurrentLeads,
		AvailableSlots: available,
		IsActive:       seller.IsActive,
		CreatedAt:      seller.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      seller.UpdatedAt.Format(time.RFC3339),
	}
}

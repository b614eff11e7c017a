// Package service handles lead intake and lead queries.
package service

import (
	"context"
	"strings"
	"time"

	"lead_management_backend/internal/events"
	"lead_management_backend/internal/leads/repository"
	"lead_management_backend/internal/leads/transport"
	"lead_management_backend/platform/apperr"
	"lead_management_backend/platform/phone"
	"lead_management_backend/platform/sanitize"
)

// Service handles lead operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates a new leads service.
func New(repo repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create registers a new lead and publishes LeadCreated. The lead becomes
// eligible for assignment on the next cycle.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	documentNumber := strings.TrimSpace(req.DocumentNumber)
	if documentNumber == "" {
		return transport.LeadResponse{}, apperr.Validation("document number is required")
	}

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		DocumentNumber: documentNumber,
		GivenName:      sanitize.Text(req.GivenName),
		Surname:        sanitize.Text(req.Surname),
		Phone:          phone.NormalizeE164(req.Phone),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		BusinessLineID: req.BusinessLineID,
		CountryID:      req.CountryID,
		DocumentTypeID: req.DocumentTypeID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:      events.NewBaseEvent(),
		DocumentNumber: lead.DocumentNumber,
		BusinessLineID: lead.BusinessLineID,
		GivenName:      lead.GivenName,
		Surname:        lead.Surname,
		Source:         "api",
	})

	return toLeadResponse(lead), nil
}

// List retrieves leads with an optional business line filter.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	leads, total, err := s.repo.List(ctx, repository.ListParams{
		BusinessLineID: req.BusinessLineID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}

	return transport.LeadListResponse{Items: items, Total: total}, nil
}

// GetByDocumentNumber retrieves a single lead.
func (s *Service) GetByDocumentNumber(ctx context.Context, documentNumber string) (transport.LeadResponse, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return transport.LeadResponse{}, apperr.Validation("document number is required")
	}

	lead, err := s.repo.GetByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	return toLeadResponse(lead), nil
}

// BusinessLines retrieves the business line reference data.
func (s *Service) BusinessLines(ctx context.Context) ([]transport.BusinessLineResponse, error) {
	lines, err := s.repo.BusinessLines(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.BusinessLineResponse, 0, len(lines))
	for _, bl := range lines {
		out = append(out, transport.BusinessLineResponse{ID: bl.ID, Name: bl.Name})
	}
	return out, nil
}

// Countries retrieves the country reference data.
func (s *Service) Countries(ctx context.Context) ([]transport.CountryResponse, error) {
	countries, err := s.repo.Countries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CountryResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, transport.CountryResponse{ID: c.ID, Name: c.Name, ISOCode: c.ISOCode})
	}
	return out, nil
}

// DocumentTypes retrieves the document type reference data.
func (s *Service) DocumentTypes(ctx context.Context) ([]transport.DocumentTypeResponse, error) {
	types, err := s.repo.DocumentTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DocumentTypeResponse, 0, len(types))
	for _, dt := range types {
		out = append(out, transport.DocumentTypeResponse{ID: dt.ID, Code: dt.Code, Name: dt.Name})
	}
	return out, nil
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		DocumentNumber:       lead.DocumentNumber,
		GivenName:            lead.GivenName,
		Surname:              lead.Surname,
		Phone:                lead.Phone,
		Email:                lead.Email,
		BusinessLineID:       lead.BusinessLineID,
		BusinessLine:         lead.BusinessLineName,
		CountryID:            lead.CountryID,
		Country:              lead.CountryName,
		DocumentTypeID:       lead.DocumentTypeID,
		DocumentType:         lead.DocumentTypeName,
		CreatedAt:            lead.CreatedAt.Format(time.RFC3339),
		AssignmentStatus:     lead.AssignmentStatus,
		SellerDocumentNumber: lead.SellerDocumentNumber,
	}
	if lead.AssignedAt != nil {
		assignedAt := lead.AssignedAt.Format(time.RFC3339)
		resp.AssignedAt = &assignedAt
	}
	return resp
}

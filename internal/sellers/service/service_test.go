package service

import (
	"context"
	"testing"
	"time"

	"lead_management_backend/internal/sellers/repository"
	"lead_management_backend/internal/sellers/transport"
)

type fakeRepo struct {
	created    *repository.CreateParams
	updated    *repository.UpdateParams
	updatedDoc string
	listParams repository.ListParams
	stored     repository.Seller
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Seller, error) {
	f.created = &params
	return repository.Seller{
		DocumentNumber: params.DocumentNumber,
		GivenName:      params.GivenName,
		Surname:        params.Surname,
		Email:          params.Email,
		Phone:          params.Phone,
		BusinessLineID: params.BusinessLineID,
		MaxLeadsCount:  params.MaxLeadsCount,
		IsActive:       params.IsActive,
		CreatedAt:      time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeRepo) List(ctx context.Context, params repository.ListParams) ([]repository.Seller, int, error) {
	f.listParams = params
	return nil, 0, nil
}

func (f *fakeRepo) GetByDocumentNumber(ctx context.Context, documentNumber string) (repository.Seller, error) {
	return f.stored, nil
}

func (f *fakeRepo) Update(ctx context.Context, documentNumber string, params repository.UpdateParams) (repository.Seller, error) {
	f.updatedDoc = documentNumber
	f.updated = &params
	return f.stored, nil
}

func (f *fakeRepo) ToggleActive(ctx context.Context, documentNumber string) (repository.Seller, error) {
	f.stored.IsActive = !f.stored.IsActive
	return f.stored, nil
}

func (f *fakeRepo) Delete(ctx context.Context, documentNumber string) error {
	return nil
}

func validCreateRequest() transport.CreateSellerRequest {
	return transport.CreateSellerRequest{
		DocumentNumber: "  S2001  ",
		GivenName:      "Marta",
		Surname:        "Diaz",
		Email:          "  Marta.Diaz@Example.COM ",
		Phone:          "300 123 4567",
		BusinessLineID: 2,
		MaxLeadsCount:  5,
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected repository create call")
	}
	if !repo.created.IsActive {
		t.Fatal("expected new seller to default to active")
	}
	if !resp.IsActive {
		t.Fatal("expected response to report the seller active")
	}
}

func TestCreateHonorsExplicitInactive(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	req := validCreateRequest()
	inactive := false
	req.IsActive = &inactive

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if repo.created.IsActive {
		t.Fatal("expected explicit isActive=false to be kept")
	}
}

func TestCreateNormalizesInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	req := validCreateRequest()
	req.GivenName = "Marta <b>Lucia</b>"

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if repo.created.DocumentNumber != "S2001" {
		t.Fatalf("expected trimmed document number, got %q", repo.created.DocumentNumber)
	}
	if repo.created.GivenName != "Marta Lucia" {
		t.Fatalf("expected HTML stripped from name, got %q", repo.created.GivenName)
	}
	if repo.created.Email != "marta.diaz@example.com" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}
	if repo.created.Phone != "+573001234567" {
		t.Fatalf("expected E.164 phone, got %q", repo.created.Phone)
	}
}

func TestCreateRejectsBlankDocumentNumber(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	req := validCreateRequest()
	req.DocumentNumber = "   "

	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("expected validation error")
	}
	if repo.created != nil {
		t.Fatal("expected repository not to be called")
	}
}

func TestUpdatePassesOnlyProvidedFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	email := " Nuevo@Example.com "
	maxLeads := 8
	req := transport.UpdateSellerRequest{
		Email:         &email,
		MaxLeadsCount: &maxLeads,
	}

	if _, err := svc.Update(context.Background(), "S2001", req); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if repo.updatedDoc != "S2001" {
		t.Fatalf("expected update on S2001, got %q", repo.updatedDoc)
	}
	if repo.updated.GivenName != nil || repo.updated.Surname != nil || repo.updated.Phone != nil || repo.updated.IsActive != nil {
		t.Fatalf("expected untouched fields to stay nil, got %+v", repo.updated)
	}
	if repo.updated.Email == nil || *repo.updated.Email != "nuevo@example.com" {
		t.Fatalf("expected cleaned email pointer, got %v", repo.updated.Email)
	}
	if repo.updated.MaxLeadsCount == nil || *repo.updated.MaxLeadsCount != 8 {
		t.Fatalf("expected max leads pointer, got %v", repo.updated.MaxLeadsCount)
	}
}

func TestAvailableSlotsNeverNegative(t *testing.T) {
	repo := &fakeRepo{stored: repository.Seller{
		DocumentNumber: "S2001",
		MaxLeadsCount:  2,
		CurrentLeads:   5,
	}}
	svc := New(repo)

	resp, err := svc.GetByDocumentNumber(context.Background(), "S2001")
	if err != nil {
		t.Fatalf("GetByDocumentNumber returned error: %v", err)
	}

	if resp.CurrentLeads != 5 || resp.MaxLeadsCount != 2 {
		t.Fatalf("unexpected workload fields: %+v", resp)
	}
	if resp.AvailableSlots != 0 {
		t.Fatalf("expected available slots clamped to 0, got %d", resp.AvailableSlots)
	}
}

func TestListClampsPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	if _, err := svc.List(context.Background(), transport.ListSellersRequest{Limit: -1, Offset: -10}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.listParams.Limit != 20 || repo.listParams.Offset != 0 {
		t.Fatalf("expected default pagination, got %+v", repo.listParams)
	}

	if _, err := svc.List(context.Background(), transport.ListSellersRequest{Limit: 1000}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.listParams.Limit != 20 {
		t.Fatalf("expected oversized limit clamped to default, got %d", repo.listParams.Limit)
	}
}

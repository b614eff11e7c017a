package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lead_management_backend/internal/leads/service"
	"lead_management_backend/internal/leads/transport"
	"lead_management_backend/platform/httpkit"
	"lead_management_backend/platform/validator"
)

// Handler handles HTTP requests for leads and reference data.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create registers a new lead.
// POST /api/v1/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List retrieves leads with optional business line filter.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves a lead by document number.
// GET /api/v1/leads/:documentNumber
func (h *Handler) Get(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, "document number is required", nil)
		return
	}

	result, err := h.svc.GetByDocumentNumber(c.Request.Context(), documentNumber)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// BusinessLines retrieves the business line reference data.
// GET /api/v1/business-lines
func (h *Handler) BusinessLines(c *gin.Context) {
	result, err := h.svc.BusinessLines(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Countries retrieves the country reference data.
// GET /api/v1/countries
func (h *Handler) Countries(c *gin.Context) {
	result, err := h.svc.Countries(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DocumentTypes retrieves the document type reference data.
// GET /api/v1/document-types
func (h *Handler) DocumentTypes(c *gin.Context) {
	result, err := h.svc.DocumentTypes(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

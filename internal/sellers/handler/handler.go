package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lead_management_backend/internal/sellers/service"
	"lead_management_backend/internal/sellers/transport"
	"lead_management_backend/platform/httpkit"
	"lead_management_backend/platform/validator"
)

// Handler handles HTTP requests for sellers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgMissingDocument  = "document number is required"
)

// New creates a new sellers handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create registers a new seller.
// POST /api/v1/admin/sellers
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSellerRequest
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

// List retrieves sellers with optional filters.
// GET /api/v1/sellers
func (h *Handler) List(c *gin.Context) {
	var req transport.ListSellersRequest
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

// Get retrieves a seller by document number.
// GET /api/v1/sellers/:documentNumber
func (h *Handler) Get(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingDocument, nil)
		return
	}

	result, err := h.svc.GetByDocumentNumber(c.Request.Context(), documentNumber)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update applies a partial update to a seller.
// PUT /api/v1/admin/sellers/:documentNumber
func (h *Handler) Update(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingDocument, nil)
		return
	}

	var req transport.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), documentNumber, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ToggleActive flips the is_active flag for a seller.
// PATCH /api/v1/admin/sellers/:documentNumber/toggle-active
func (h *Handler) ToggleActive(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingDocument, nil)
		return
	}

	result, err := h.svc.ToggleActive(c.Request.Context(), documentNumber)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a seller without assignment history.
// DELETE /api/v1/admin/sellers/:documentNumber
func (h *Handler) Delete(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingDocument, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), documentNumber); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

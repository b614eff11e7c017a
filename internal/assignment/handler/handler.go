package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lead_management_backend/internal/assignment/repository"
	"lead_management_backend/internal/assignment/service"
	"lead_management_backend/internal/assignment/transport"
	"lead_management_backend/platform/httpkit"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// Handler handles HTTP requests for lead assignments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new assignments handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// List retrieves assignments with optional status filter (admin only).
// GET /api/v1/admin/assignments
func (h *Handler) List(c *gin.Context) {
	var req transport.ListAssignmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	records, total, err := h.svc.List(c.Request.Context(), req.Status, req.Limit, req.Offset)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.AssignmentResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toAssignmentResponse(rec))
	}
	httpkit.OK(c, transport.AssignmentListResponse{Items: items, Total: total})
}

// GetByLead retrieves the assignment tracking a single lead.
// GET /api/v1/admin/assignments/leads/:documentNumber
func (h *Handler) GetByLead(c *gin.Context) {
	documentNumber := c.Param("documentNumber")
	if documentNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, "document number is required", nil)
		return
	}

	rec, err := h.svc.GetByLeadDocumentNumber(c.Request.Context(), documentNumber)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toAssignmentResponse(rec))
}

// Summary returns assignment counts grouped by status.
// GET /api/v1/admin/assignments/summary
func (h *Handler) Summary(c *gin.Context) {
	counts, err := h.svc.StatusSummary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	statuses := make([]transport.StatusCountResponse, 0, len(counts))
	for _, sc := range counts {
		statuses = append(statuses, transport.StatusCountResponse{Status: sc.StatusName, Count: sc.Count})
	}
	httpkit.OK(c, transport.AssignmentSummaryResponse{Statuses: statuses})
}

// RunCycle triggers an assignment cycle immediately instead of waiting for
// the scheduler.
// POST /api/v1/admin/assignments/run-cycle
func (h *Handler) RunCycle(c *gin.Context) {
	result, err := h.svc.RunCycle(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	h.log.Info("manual assignment cycle triggered",
		"adminId", httpkit.GetIdentity(c).UserID(),
		"cycleId", result.CycleID)

	httpkit.OK(c, transport.RunCycleResponse{
		CycleID:         result.CycleID.String(),
		PendingLeads:    result.PendingLeads,
		EligibleSellers: result.EligibleSellers,
		AssignedCount:   result.AssignedCount,
	})
}

func toAssignmentResponse(rec repository.AssignmentRecord) transport.AssignmentResponse {
	return transport.AssignmentResponse{
		AssignmentID:         rec.AssignmentID,
		LeadDocumentNumber:   rec.LeadDocumentNumber,
		SellerDocumentNumber: rec.SellerDocumentNumber,
		Status:               rec.StatusName,
		AssignedAt:           rec.AssignedAt.Format(time.RFC3339),
	}
}

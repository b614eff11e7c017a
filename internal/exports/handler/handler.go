// Package handler provides HTTP handlers for assignment report exports.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lead_management_backend/internal/exports/service"
	"lead_management_backend/internal/exports/transport"
	"lead_management_backend/platform/httpkit"
	"lead_management_backend/platform/logger"
	"lead_management_backend/platform/validator"
)

// Handler handles HTTP requests for report exports.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new exports handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// Run builds and uploads the assignment report for one day (admin only).
// POST /api/v1/admin/exports/assignments
func (h *Handler) Run(c *gin.Context) {
	var req transport.RunExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := h.svc.ExportDay(c.Request.Context(), day)
	if httpkit.HandleError(c, err) {
		return
	}

	h.log.Info("manual report export triggered",
		"adminId", httpkit.GetIdentity(c).UserID(),
		"day", report.Day.Format("2006-01-02"))

	httpkit.OK(c, transport.ExportResponse{
		Date:        report.Day.Format("2006-01-02"),
		Rows:        report.Rows,
		Bucket:      report.Bucket,
		FileKey:     report.FileKey,
		DownloadURL: report.DownloadURL,
		ExpiresAt:   report.ExpiresAt.Format(time.RFC3339),
	})
}

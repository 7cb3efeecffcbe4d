// internal/handler/audit_log.go
package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/dangerclosesec/onboarding/internal/service"
)

// AuditLogHandler handles API requests related to admin audit logs
type AuditLogHandler struct {
	auditLogService *service.AuditLogService
}

func NewAuditLogHandler(auditLogService *service.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{auditLogService: auditLogService}
}

type AuditLogResponse struct {
	BaseResponse
	Logs  any   `json:"logs"`
	Total int64 `json:"total"`
}

// GetAuditLogs handles GET /api/admin/audit with filtering
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.AuditQueryParams{
		Action:     q.Get("action"),
		Subject:    q.Get("subject"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
	}

	if startTimeStr := q.Get("start_time"); startTimeStr != "" {
		if startTime, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			params.StartTime = startTime
		}
	}
	if endTimeStr := q.Get("end_time"); endTimeStr != "" {
		if endTime, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			params.EndTime = endTime
		}
	}

	if limit := queryInt(r, "limit", 0); limit > 0 {
		params.Limit = limit
	}
	if offset := queryInt(r, "offset", 0); offset > 0 {
		params.Offset = offset
	}

	logs, total, err := h.auditLogService.GetAuditLogs(r.Context(), params)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuditLogResponse{
		BaseResponse: BaseResponse{Ok: true},
		Logs:         logs,
		Total:        total,
	})
}

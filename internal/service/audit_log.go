// internal/service/audit_log.go
package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/onboarding/internal/audit"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/datatypes"
)

// Ensure AuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AuditLogService)(nil)

// AuditLogService stores admin actions and serves them back to operators.
type AuditLogService struct {
	repo   repository.AuditLogRepositoryIface
	logger *slog.Logger
}

func NewAuditLogService(repo repository.AuditLogRepositoryIface, logger *slog.Logger) *AuditLogService {
	return &AuditLogService{repo: repo, logger: logger}
}

// LogAdminAction persists entry together with the request's metadata.
func (s *AuditLogService) LogAdminAction(ctx context.Context, entry audit.Entry, req *http.Request) error {
	log := &model.AdminAuditLog{
		Action:     entry.Action,
		Subject:    entry.Subject,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
	}
	if len(entry.Context) > 0 {
		log.Context = datatypes.JSONMap(entry.Context)
	}

	if req != nil {
		log.RequestID = middleware.GetReqID(ctx)
		log.ClientIP = req.RemoteAddr
		log.UserAgent = req.UserAgent()
	}

	s.logger.InfoContext(ctx, "admin action",
		"action", entry.Action,
		"subject", entry.Subject,
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID)

	return s.repo.Create(ctx, log)
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *AuditLogService) GetAuditLogs(ctx context.Context, params repository.AuditQueryParams) ([]model.AdminAuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

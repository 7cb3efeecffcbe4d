// internal/repository/audit_log.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/onboarding/internal/model"
	"gorm.io/gorm"
)

type AuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.AdminAuditLog) error
	Query(ctx context.Context, params AuditQueryParams) ([]model.AdminAuditLog, int64, error)
}

// AuditLogRepository handles database operations for admin audit logs
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create inserts a new audit log entry
func (r *AuditLogRepository) Create(ctx context.Context, log *model.AdminAuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create admin audit log: %w", err)
	}
	return nil
}

// AuditQueryParams holds parameters for querying audit logs
type AuditQueryParams struct {
	Action     string
	Subject    string
	EntityType string
	EntityID   string
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
	Offset     int
}

// Query retrieves audit logs newest first. Limit defaults to 100.
func (r *AuditLogRepository) Query(ctx context.Context, params AuditQueryParams) ([]model.AdminAuditLog, int64, error) {
	var logs []model.AdminAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.AdminAuditLog{})

	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.Subject != "" {
		query = query.Where("subject = ?", params.Subject)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != "" {
		query = query.Where("entity_id = ?", params.EntityID)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count admin audit logs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(limit)
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	if err := query.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query admin audit logs: %w", err)
	}
	return logs, count, nil
}

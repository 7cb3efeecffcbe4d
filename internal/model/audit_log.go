// internal/model/audit_log.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin actions recorded in the audit log.
const (
	ActionResync       = "submission.resync"
	ActionExport       = "submission.export"
	ActionPillarUpsert = "pillar.upsert"
	ActionReconcile    = "crm.reconcile"
)

// AdminAuditLog records one operator action taken through the admin API or CLI.
type AdminAuditLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp  time.Time         `gorm:"not null;index" json:"timestamp"`
	Action     string            `gorm:"type:varchar(50);not null;index" json:"action"`
	Subject    string            `gorm:"type:varchar(100);index" json:"subject"`
	EntityType string            `gorm:"type:varchar(50)" json:"entity_type"`
	EntityID   string            `gorm:"type:varchar(100)" json:"entity_id"`
	Context    datatypes.JSONMap `json:"context"`
	RequestID  string            `gorm:"type:varchar(100)" json:"request_id"`
	ClientIP   string            `gorm:"type:varchar(64)" json:"client_ip"`
	UserAgent  string            `gorm:"type:varchar(255)" json:"user_agent"`
}

func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}

func (l *AdminAuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}

package audit

import (
	"encoding/json"
	"time"
)

// AuditLog is an append-only record of admin actions; never updated or deleted.
type AuditLog struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	OrganizationID int64           `json:"organization_id" gorm:"column:organization_id;not null;index"`
	ActorID        int64           `json:"actor_id" gorm:"column:actor_id;not null"`
	Action         string          `json:"action" gorm:"not null"`
	Entity         string          `json:"entity" gorm:"not null"`
	EntityID       int64           `json:"entity_id" gorm:"column:entity_id"`
	Detail         json.RawMessage `json:"detail,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

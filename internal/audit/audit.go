package audit

import (
	"encoding/json"
	"time"

	auditDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/audit"
)

// Entry is one audit log line. Entries are append-only.
type Entry struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organization_id"`
	ActorID        int64           `json:"actor_id"`
	Action         string          `json:"action"`
	Entity         string          `json:"entity"`
	EntityID       int64           `json:"entity_id"`
	Detail         json.RawMessage `json:"detail,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToDataModel(e *Entry) *auditDatamodel.AuditLog {
	return &auditDatamodel.AuditLog{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ActorID:        e.ActorID,
		Action:         e.Action,
		Entity:         e.Entity,
		EntityID:       e.EntityID,
		Detail:         e.Detail,
		CreatedAt:      e.CreatedAt,
	}
}

func FromDataModel(e *auditDatamodel.AuditLog) *Entry {
	return &Entry{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ActorID:        e.ActorID,
		Action:         e.Action,
		Entity:         e.Entity,
		EntityID:       e.EntityID,
		Detail:         e.Detail,
		CreatedAt:      e.CreatedAt,
	}
}

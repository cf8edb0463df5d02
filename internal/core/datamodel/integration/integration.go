package integration

import (
	"encoding/json"
	"time"
)

// Integration describes an external sync connector (CSV or API). Config rows
// only; sync execution is out of scope.
type Integration struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	OrganizationID int64           `json:"organization_id" gorm:"column:organization_id;not null;index"`
	Name           string          `json:"name" gorm:"not null"`
	Kind           string          `json:"kind" gorm:"not null"`
	Config         json.RawMessage `json:"config,omitempty" gorm:"type:jsonb"`
	IsEnabled      bool            `json:"is_enabled" gorm:"column:is_enabled;default:false"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Integration) TableName() string {
	return "integrations"
}

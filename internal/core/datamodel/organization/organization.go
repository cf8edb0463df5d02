package organization

import (
	"encoding/json"
	"time"
)

// Organization is the tenant root; every other row hangs off one of these.
type Organization struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	ContactEmail string          `json:"contact_email" gorm:"column:contact_email"`
	ContactPhone string          `json:"contact_phone" gorm:"column:contact_phone"`
	Address      string          `json:"address"`
	Settings     json.RawMessage `json:"settings,omitempty" gorm:"column:settings;type:jsonb"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Organization) TableName() string {
	return "organizations"
}

// MailRoom is a physical intake location within an organization.
type MailRoom struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OrganizationID int64     `json:"organization_id" gorm:"column:organization_id;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	Location       string    `json:"location"`
	IsActive       bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (MailRoom) TableName() string {
	return "mail_rooms"
}

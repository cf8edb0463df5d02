package notification

import "time"

// Notification is one notification attempt. Append-only; repeated rows per
// mail item are reminders.
type Notification struct {
	ID                  int64      `json:"id" gorm:"primaryKey"`
	OrganizationID      int64      `json:"organization_id" gorm:"column:organization_id;not null;index"`
	MailItemID          int64      `json:"mail_item_id" gorm:"column:mail_item_id;not null;index"`
	RecipientID         *int64     `json:"recipient_id,omitempty" gorm:"column:recipient_id"`
	ExternalRecipientID *int64     `json:"external_recipient_id,omitempty" gorm:"column:external_recipient_id"`
	Channel             string     `json:"channel" gorm:"not null"`
	Destination         string     `json:"destination"`
	Message             string     `json:"message"`
	DeliveryStatus      string     `json:"delivery_status" gorm:"column:delivery_status;default:queued"`
	SentAt              *time.Time `json:"sent_at,omitempty" gorm:"column:sent_at"`
	DeliveredAt         *time.Time `json:"delivered_at,omitempty" gorm:"column:delivered_at"`
	CreatedAt           time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}

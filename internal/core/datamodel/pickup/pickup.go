package pickup

import "time"

// Pickup is one pickup event. Created exactly once per mail item and immutable
// afterward; the recipient mutual-exclusion rule mirrors mail_items.
type Pickup struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	OrganizationID      int64     `json:"organization_id" gorm:"column:organization_id;not null;index"`
	MailItemID          int64     `json:"mail_item_id" gorm:"column:mail_item_id;not null;uniqueIndex"`
	RecipientID         *int64    `json:"recipient_id,omitempty" gorm:"column:recipient_id"`
	ExternalRecipientID *int64    `json:"external_recipient_id,omitempty" gorm:"column:external_recipient_id"`
	ProcessedByID       int64     `json:"processed_by_id" gorm:"column:processed_by_id;not null"`
	PickedUpAt          time.Time `json:"picked_up_at" gorm:"column:picked_up_at;not null"`
	Signature           string    `json:"signature" gorm:"not null"`
	Photo               *string   `json:"photo,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Pickup) TableName() string {
	return "pickups"
}

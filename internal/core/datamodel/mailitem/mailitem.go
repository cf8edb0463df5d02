package mailitem

import "time"

// MailItem is one physical piece of mail or package. recipient_id and
// external_recipient_id are mutually exclusive; exactly one is set (also
// enforced by a CHECK constraint in the schema).
type MailItem struct {
	ID                  int64      `json:"id" gorm:"primaryKey"`
	OrganizationID      int64      `json:"organization_id" gorm:"column:organization_id;not null;index:idx_mail_items_org_status"`
	MailRoomID          int64      `json:"mail_room_id" gorm:"column:mail_room_id;not null"`
	RecipientID         *int64     `json:"recipient_id,omitempty" gorm:"column:recipient_id"`
	ExternalRecipientID *int64     `json:"external_recipient_id,omitempty" gorm:"column:external_recipient_id"`
	TrackingNumber      *string    `json:"tracking_number,omitempty" gorm:"column:tracking_number"`
	Carrier             string     `json:"carrier" gorm:"not null"`
	MailType            string     `json:"mail_type" gorm:"column:mail_type;not null"`
	Description         string     `json:"description"`
	IsPriority          bool       `json:"is_priority" gorm:"column:is_priority;default:false"`
	Status              string     `json:"status" gorm:"default:pending;index:idx_mail_items_org_status"`
	ReceivedAt          time.Time  `json:"received_at" gorm:"column:received_at;not null"`
	NotifiedAt          *time.Time `json:"notified_at,omitempty" gorm:"column:notified_at"`
	PickedUpAt          *time.Time `json:"picked_up_at,omitempty" gorm:"column:picked_up_at"`
	ProcessedByID       *int64     `json:"processed_by_id,omitempty" gorm:"column:processed_by_id"`
	LabelImage          *string    `json:"label_image,omitempty" gorm:"column:label_image"`
	CreatedAt           time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt           time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (MailItem) TableName() string {
	return "mail_items"
}

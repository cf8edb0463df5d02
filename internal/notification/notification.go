package notification

import (
	"time"

	notificationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/notification"
	"github.com/parceldesk/mailroom/internal/recipient"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelApp   = "app"
)

var Channels = []string{ChannelEmail, ChannelSMS, ChannelApp}

const (
	DeliveryStatusQueued    = "queued"
	DeliveryStatusSent      = "sent"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Notification is one notification attempt. Rows are append-only; repeated
// rows for the same mail item are reminders. Delivery itself is not
// implemented; rows stay queued.
type Notification struct {
	ID                  int64               `json:"id"`
	OrganizationID      int64               `json:"organization_id"`
	MailItemID          int64               `json:"mail_item_id"`
	RecipientID         *int64              `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64              `json:"external_recipient_id,omitempty"`
	Recipient           *recipient.Resolved `json:"recipient,omitempty"`
	Channel             string              `json:"channel"`
	Destination         string              `json:"destination,omitempty"`
	Message             string              `json:"message,omitempty"`
	DeliveryStatus      string              `json:"delivery_status"`
	SentAt              *time.Time          `json:"sent_at,omitempty"`
	DeliveredAt         *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

func IsValidChannel(channel string) bool {
	for _, c := range Channels {
		if c == channel {
			return true
		}
	}
	return false
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:                  n.ID,
		OrganizationID:      n.OrganizationID,
		MailItemID:          n.MailItemID,
		RecipientID:         n.RecipientID,
		ExternalRecipientID: n.ExternalRecipientID,
		Channel:             n.Channel,
		Destination:         n.Destination,
		Message:             n.Message,
		DeliveryStatus:      n.DeliveryStatus,
		SentAt:              n.SentAt,
		DeliveredAt:         n.DeliveredAt,
		CreatedAt:           n.CreatedAt,
	}
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:                  n.ID,
		OrganizationID:      n.OrganizationID,
		MailItemID:          n.MailItemID,
		RecipientID:         n.RecipientID,
		ExternalRecipientID: n.ExternalRecipientID,
		Channel:             n.Channel,
		Destination:         n.Destination,
		Message:             n.Message,
		DeliveryStatus:      n.DeliveryStatus,
		SentAt:              n.SentAt,
		DeliveredAt:         n.DeliveredAt,
		CreatedAt:           n.CreatedAt,
	}
}

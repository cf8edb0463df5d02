package pickup

import (
	"time"

	pickupDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/pickup"
	"github.com/parceldesk/mailroom/internal/recipient"
)

// Pickup is one pickup event, immutable once recorded.
type Pickup struct {
	ID                  int64               `json:"id"`
	OrganizationID      int64               `json:"organization_id"`
	MailItemID          int64               `json:"mail_item_id"`
	RecipientID         *int64              `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64              `json:"external_recipient_id,omitempty"`
	Recipient           *recipient.Resolved `json:"recipient,omitempty"`
	ProcessedByID       int64               `json:"processed_by_id"`
	PickedUpAt          time.Time           `json:"picked_up_at"`
	Signature           string              `json:"signature"`
	Photo               *string             `json:"photo,omitempty"`
	Notes               *string             `json:"notes,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

func (p *Pickup) RecipientRef() recipient.Ref {
	return recipient.Ref{
		RecipientID:         p.RecipientID,
		ExternalRecipientID: p.ExternalRecipientID,
	}
}

func ToDataModel(p *Pickup) *pickupDatamodel.Pickup {
	return &pickupDatamodel.Pickup{
		ID:                  p.ID,
		OrganizationID:      p.OrganizationID,
		MailItemID:          p.MailItemID,
		RecipientID:         p.RecipientID,
		ExternalRecipientID: p.ExternalRecipientID,
		ProcessedByID:       p.ProcessedByID,
		PickedUpAt:          p.PickedUpAt,
		Signature:           p.Signature,
		Photo:               p.Photo,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
	}
}

func FromDataModel(p *pickupDatamodel.Pickup) *Pickup {
	return &Pickup{
		ID:                  p.ID,
		OrganizationID:      p.OrganizationID,
		MailItemID:          p.MailItemID,
		RecipientID:         p.RecipientID,
		ExternalRecipientID: p.ExternalRecipientID,
		ProcessedByID:       p.ProcessedByID,
		PickedUpAt:          p.PickedUpAt,
		Signature:           p.Signature,
		Photo:               p.Photo,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
	}
}

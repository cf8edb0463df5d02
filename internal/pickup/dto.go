package pickup

import (
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
	"github.com/parceldesk/mailroom/internal/recipient"
)

type CreatePickupDTO struct {
	MailItemID          int64      `json:"mail_item_id"`
	RecipientID         *int64     `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64     `json:"external_recipient_id,omitempty"`
	Signature           string     `json:"signature"`
	Photo               *string    `json:"photo,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	PickedUpAt          *time.Time `json:"picked_up_at,omitempty"`
}

func (dto CreatePickupDTO) Ref() recipient.Ref {
	return recipient.Ref{
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
	}
}

func (dto CreatePickupDTO) Validate() *internal.AppError {
	if err := dto.Ref().Validate(); err != nil {
		return err
	}

	v := validation.NewValidator()
	v.Field("mail_item_id", dto.MailItemID).Required()
	v.Field("signature", dto.Signature).Required()
	if dto.PickedUpAt != nil {
		v.Field("picked_up_at", *dto.PickedUpAt).NotFuture()
	}
	return v.Validate()
}

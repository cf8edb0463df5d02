package notification

import (
	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
	"github.com/parceldesk/mailroom/internal/recipient"
)

type CreateNotificationDTO struct {
	MailItemID          int64   `json:"mail_item_id"`
	RecipientID         *int64  `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64  `json:"external_recipient_id,omitempty"`
	Channel             string  `json:"channel"`
	Destination         *string `json:"destination,omitempty"`
	Message             *string `json:"message,omitempty"`
}

func (dto CreateNotificationDTO) Ref() recipient.Ref {
	return recipient.Ref{
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
	}
}

func (dto CreateNotificationDTO) Validate() *internal.AppError {
	if err := dto.Ref().Validate(); err != nil {
		return err
	}

	v := validation.NewValidator()
	v.Field("mail_item_id", dto.MailItemID).Required()
	v.Field("channel", dto.Channel).Required().OneOf(Channels, internal.ErrCodeInvalidChannel)
	return v.Validate()
}

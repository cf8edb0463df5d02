package mailitem

import (
	"math"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
	"github.com/parceldesk/mailroom/internal/recipient"
)

type IntakeDTO struct {
	MailRoomID          int64   `json:"mail_room_id"`
	RecipientID         *int64  `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64  `json:"external_recipient_id,omitempty"`
	TrackingNumber      *string `json:"tracking_number,omitempty"`
	Carrier             string  `json:"carrier"`
	MailType            string  `json:"mail_type"`
	Description         string  `json:"description,omitempty"`
	IsPriority          bool    `json:"is_priority"`
	LabelImage          *string `json:"label_image,omitempty"`
}

func (dto IntakeDTO) Ref() recipient.Ref {
	return recipient.Ref{
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
	}
}

func (dto IntakeDTO) Validate() *internal.AppError {
	if err := dto.Ref().Validate(); err != nil {
		return err
	}

	v := validation.NewValidator()
	v.Field("mail_room_id", dto.MailRoomID).Required()
	v.Field("carrier", dto.Carrier).Required().OneOf(Carriers, internal.ErrCodeInvalidCarrier)
	v.Field("mail_type", dto.MailType).Required().OneOf(MailTypes, internal.ErrCodeInvalidMailType)
	v.Field("description", dto.Description).MaxLength(500)
	return v.Validate()
}

type ListPendingQuery struct {
	MailRoomID *int64
	Page       int
	PageSize   int
	Search     string
}

func (q *ListPendingQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

// Page is the pagination envelope for pending lists. Start/End are 1-based
// positions of the first and last row on this page; both are 0 when the page
// is empty.
type Page struct {
	Items      []*MailItem `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
}

func NewPage(items []*MailItem, total int64, page, pageSize int) *Page {
	p := &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
	if len(items) > 0 {
		p.Start = (page-1)*pageSize + 1
		p.End = p.Start + len(items) - 1
	}
	return p
}

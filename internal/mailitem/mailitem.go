package mailitem

import (
	"time"

	mailitemDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/mailitem"
	"github.com/parceldesk/mailroom/internal/recipient"
)

const (
	StatusPending          = "pending"
	StatusNotified         = "notified"
	StatusPickedUp         = "picked_up"
	StatusReturnedToSender = "returned_to_sender"
	StatusLost             = "lost"
	StatusOther            = "other"
)

const (
	CarrierUPS    = "ups"
	CarrierFedEx  = "fedex"
	CarrierUSPS   = "usps"
	CarrierDHL    = "dhl"
	CarrierAmazon = "amazon"
	CarrierOther  = "other"
)

const (
	TypePackage    = "package"
	TypeLetter     = "letter"
	TypeOversized  = "oversized"
	TypePerishable = "perishable"
	TypeOther      = "other"
)

var (
	Carriers  = []string{CarrierUPS, CarrierFedEx, CarrierUSPS, CarrierDHL, CarrierAmazon, CarrierOther}
	MailTypes = []string{TypePackage, TypeLetter, TypeOversized, TypePerishable, TypeOther}

	// OpenStatuses are the statuses counted as "pending" by the dashboard.
	OpenStatuses = []string{StatusPending, StatusNotified}
)

// transitions is the legal status graph. picked_up, returned_to_sender, lost
// and other are terminal.
var transitions = map[string][]string{
	StatusPending:  {StatusNotified, StatusPickedUp, StatusReturnedToSender, StatusLost, StatusOther},
	StatusNotified: {StatusPickedUp, StatusReturnedToSender, StatusLost, StatusOther},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

func IsValidCarrier(carrier string) bool {
	for _, c := range Carriers {
		if c == carrier {
			return true
		}
	}
	return false
}

func IsValidMailType(mailType string) bool {
	for _, t := range MailTypes {
		if t == mailType {
			return true
		}
	}
	return false
}

type MailItem struct {
	ID                  int64               `json:"id"`
	OrganizationID      int64               `json:"organization_id"`
	MailRoomID          int64               `json:"mail_room_id"`
	RecipientID         *int64              `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64              `json:"external_recipient_id,omitempty"`
	Recipient           *recipient.Resolved `json:"recipient,omitempty"`
	TrackingNumber      *string             `json:"tracking_number,omitempty"`
	Carrier             string              `json:"carrier"`
	MailType            string              `json:"mail_type"`
	Description         string              `json:"description,omitempty"`
	IsPriority          bool                `json:"is_priority"`
	Status              string              `json:"status"`
	ReceivedAt          time.Time           `json:"received_at"`
	NotifiedAt          *time.Time          `json:"notified_at,omitempty"`
	PickedUpAt          *time.Time          `json:"picked_up_at,omitempty"`
	ProcessedByID       *int64              `json:"processed_by_id,omitempty"`
	LabelImage          *string             `json:"label_image,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func (m *MailItem) RecipientRef() recipient.Ref {
	return recipient.Ref{
		RecipientID:         m.RecipientID,
		ExternalRecipientID: m.ExternalRecipientID,
	}
}

func (m *MailItem) IsOpen() bool {
	return m.Status == StatusPending || m.Status == StatusNotified
}

func (m *MailItem) CanBePickedUp() bool {
	return CanTransition(m.Status, StatusPickedUp)
}

// MarkNotified flips a pending item to notified. Repeat notifications are
// status no-ops.
func (m *MailItem) MarkNotified(at time.Time) {
	if m.Status != StatusPending {
		return
	}
	m.Status = StatusNotified
	m.NotifiedAt = &at
	m.UpdatedAt = at
}

func ToDataModel(m *MailItem) *mailitemDatamodel.MailItem {
	return &mailitemDatamodel.MailItem{
		ID:                  m.ID,
		OrganizationID:      m.OrganizationID,
		MailRoomID:          m.MailRoomID,
		RecipientID:         m.RecipientID,
		ExternalRecipientID: m.ExternalRecipientID,
		TrackingNumber:      m.TrackingNumber,
		Carrier:             m.Carrier,
		MailType:            m.MailType,
		Description:         m.Description,
		IsPriority:          m.IsPriority,
		Status:              m.Status,
		ReceivedAt:          m.ReceivedAt,
		NotifiedAt:          m.NotifiedAt,
		PickedUpAt:          m.PickedUpAt,
		ProcessedByID:       m.ProcessedByID,
		LabelImage:          m.LabelImage,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func FromDataModel(m *mailitemDatamodel.MailItem) *MailItem {
	return &MailItem{
		ID:                  m.ID,
		OrganizationID:      m.OrganizationID,
		MailRoomID:          m.MailRoomID,
		RecipientID:         m.RecipientID,
		ExternalRecipientID: m.ExternalRecipientID,
		TrackingNumber:      m.TrackingNumber,
		Carrier:             m.Carrier,
		MailType:            m.MailType,
		Description:         m.Description,
		IsPriority:          m.IsPriority,
		Status:              m.Status,
		ReceivedAt:          m.ReceivedAt,
		NotifiedAt:          m.NotifiedAt,
		PickedUpAt:          m.PickedUpAt,
		ProcessedByID:       m.ProcessedByID,
		LabelImage:          m.LabelImage,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*mailitemDatamodel.MailItem) []*MailItem {
	result := make([]*MailItem, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

package organization

import (
	"encoding/json"
	"time"

	organizationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/organization"
)

type Organization struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	ContactEmail string          `json:"contact_email,omitempty"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MailRoom struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Name           string    `json:"name"`
	Location       string    `json:"location,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToDataModel(o *Organization) *organizationDatamodel.Organization {
	return &organizationDatamodel.Organization{
		ID:           o.ID,
		Name:         o.Name,
		ContactEmail: o.ContactEmail,
		ContactPhone: o.ContactPhone,
		Address:      o.Address,
		Settings:     o.Settings,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func FromDataModel(o *organizationDatamodel.Organization) *Organization {
	return &Organization{
		ID:           o.ID,
		Name:         o.Name,
		ContactEmail: o.ContactEmail,
		ContactPhone: o.ContactPhone,
		Address:      o.Address,
		Settings:     o.Settings,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func MailRoomToDataModel(m *MailRoom) *organizationDatamodel.MailRoom {
	return &organizationDatamodel.MailRoom{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Location:       m.Location,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func MailRoomFromDataModel(m *organizationDatamodel.MailRoom) *MailRoom {
	return &MailRoom{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Location:       m.Location,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

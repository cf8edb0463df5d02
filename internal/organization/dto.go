package organization

import (
	"encoding/json"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
)

type CreateOrganizationDTO struct {
	Name         string          `json:"name"`
	ContactEmail string          `json:"contact_email,omitempty"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
}

func (dto CreateOrganizationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	return v.Validate()
}

type UpdateOrganizationDTO struct {
	Name         *string         `json:"name,omitempty"`
	ContactEmail *string         `json:"contact_email,omitempty"`
	ContactPhone *string         `json:"contact_phone,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
}

func (dto UpdateOrganizationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	return v.Validate()
}

type CreateMailRoomDTO struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

func (dto CreateMailRoomDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	return v.Validate()
}

type UpdateMailRoomDTO struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (dto UpdateMailRoomDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	return v.Validate()
}

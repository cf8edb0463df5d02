package integration

import (
	"encoding/json"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
)

type CreateIntegrationDTO struct {
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Config    json.RawMessage `json:"config,omitempty"`
	IsEnabled bool            `json:"is_enabled"`
}

func (dto CreateIntegrationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("kind", dto.Kind).Required().OneOf(Kinds, internal.ErrCodeValidationFailed)
	return v.Validate()
}

type UpdateIntegrationDTO struct {
	Name      *string         `json:"name,omitempty"`
	Config    json.RawMessage `json:"config,omitempty"`
	IsEnabled *bool           `json:"is_enabled,omitempty"`
}

func (dto UpdateIntegrationDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	return v.Validate()
}

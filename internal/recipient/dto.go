package recipient

import (
	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/common/validation"
)

type CreateProfileDTO struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
	MailRoomID *int64 `json:"mail_room_id,omitempty"`
	Password   string `json:"password,omitempty"`
}

func (dto CreateProfileDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().MaxLength(255)
	if dto.Role != "" {
		v.Field("role", dto.Role).OneOf(Roles, internal.ErrCodeValidationFailed)
	}
	return v.Validate()
}

type UpdateProfileDTO struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Location   *string `json:"location,omitempty"`
	MailRoomID *int64  `json:"mail_room_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (dto UpdateProfileDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Role != nil {
		v.Field("role", *dto.Role).OneOf(Roles, internal.ErrCodeValidationFailed)
	}
	if dto.FirstName != nil {
		v.Field("first_name", *dto.FirstName).Required().MaxLength(100)
	}
	if dto.LastName != nil {
		v.Field("last_name", *dto.LastName).Required().MaxLength(100)
	}
	return v.Validate()
}

type CreateExternalPersonDTO struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
}

func (dto CreateExternalPersonDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	return v.Validate()
}

package recipient

import (
	"fmt"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	recipientDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/recipient"
)

const (
	KindInternal = "internal"
	KindExternal = "external"
)

const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleStaff     = "staff"
	RoleRecipient = "recipient"
)

var Roles = []string{RoleAdmin, RoleManager, RoleStaff, RoleRecipient}

type UserProfile struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	MailRoomID     *int64    `json:"mail_room_id,omitempty"`
	AuthUserID     *int64    `json:"auth_user_id,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	Department     string    `json:"department,omitempty"`
	Location       string    `json:"location,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ExternalPerson struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Department     string    `json:"department,omitempty"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Resolved is the uniform shape callers get back regardless of whether the
// underlying recipient is a UserProfile or an ExternalPerson.
type Resolved struct {
	ID         int64  `json:"id"`
	Kind       string `json:"kind"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
}

func (r *Resolved) FullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// Ref is the polymorphic recipient reference carried by mail items, pickups
// and notifications. Exactly one side is set.
type Ref struct {
	RecipientID         *int64 `json:"recipient_id,omitempty"`
	ExternalRecipientID *int64 `json:"external_recipient_id,omitempty"`
}

func (r Ref) Validate() *internal.AppError {
	set := 0
	if r.RecipientID != nil && *r.RecipientID != 0 {
		set++
	}
	if r.ExternalRecipientID != nil && *r.ExternalRecipientID != 0 {
		set++
	}
	if set != 1 {
		return internal.NewValidationFieldError(
			"recipient_id",
			"exactly one of recipient_id and external_recipient_id must be set",
			internal.ErrCodeInvalidRecipient,
		)
	}
	return nil
}

func (r Ref) IsInternal() bool {
	return r.RecipientID != nil && *r.RecipientID != 0
}

// Matches reports whether this ref points at the same person as the given
// pair of nullable columns.
func (r Ref) Matches(recipientID, externalRecipientID *int64) bool {
	if r.IsInternal() {
		return recipientID != nil && *recipientID == *r.RecipientID
	}
	if r.ExternalRecipientID == nil {
		return false
	}
	return externalRecipientID != nil && *externalRecipientID == *r.ExternalRecipientID
}

func ProfileFromDataModel(p *recipientDatamodel.UserProfile) *UserProfile {
	return &UserProfile{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		MailRoomID:     p.MailRoomID,
		AuthUserID:     p.AuthUserID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Role:           p.Role,
		Department:     p.Department,
		Location:       p.Location,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ExternalFromDataModel(p *recipientDatamodel.ExternalPerson) *ExternalPerson {
	return &ExternalPerson{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Department:     p.Department,
		Location:       p.Location,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (p *UserProfile) Resolved() *Resolved {
	return &Resolved{
		ID:         p.ID,
		Kind:       KindInternal,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Department: p.Department,
		Location:   p.Location,
	}
}

func (p *ExternalPerson) Resolved() *Resolved {
	return &Resolved{
		ID:         p.ID,
		Kind:       KindExternal,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Department: p.Department,
		Location:   p.Location,
	}
}

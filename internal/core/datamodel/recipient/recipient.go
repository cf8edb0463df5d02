package recipient

import "time"

// UserProfile is an internal person (staff or recipient) with a login.
type UserProfile struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OrganizationID int64     `json:"organization_id" gorm:"column:organization_id;not null;index"`
	MailRoomID     *int64    `json:"mail_room_id,omitempty" gorm:"column:mail_room_id"`
	AuthUserID     *int64    `json:"auth_user_id,omitempty" gorm:"column:auth_user_id"`
	FirstName      string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName       string    `json:"last_name" gorm:"column:last_name;not null"`
	Email          string    `json:"email" gorm:"not null"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role" gorm:"default:recipient"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	PasswordHash   *string   `json:"-" gorm:"column:password_hash"`
	IsActive       bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// ExternalPerson is a recipient without an internal login (visitor,
// contractor). Same descriptive attributes as UserProfile minus role/password.
type ExternalPerson struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OrganizationID int64     `json:"organization_id" gorm:"column:organization_id;not null;index"`
	FirstName      string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName       string    `json:"last_name" gorm:"column:last_name;not null"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (ExternalPerson) TableName() string {
	return "external_people"
}

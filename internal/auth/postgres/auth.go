package postgres

import (
	"database/sql"
	"fmt"

	"github.com/parceldesk/mailroom/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM user_profiles WHERE email = ? AND is_active = true AND password_hash IS NOT NULL`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, organization_id, email, role FROM user_profiles WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.OrganizationID, &user.Email, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	user.Permissions = auth.PermissionsForRole(user.Role)
	return &user, nil
}

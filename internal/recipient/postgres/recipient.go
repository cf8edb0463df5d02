package postgres

import (
	"strings"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	recipientDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/recipient"
	"github.com/parceldesk/mailroom/internal/recipient"
	"gorm.io/gorm"
)

type RecipientRepository struct {
	db *gorm.DB
}

func NewRecipientRepository(db *gorm.DB) recipient.Repository {
	return &RecipientRepository{db: db}
}

func (r *RecipientRepository) CreateProfile(p *recipient.UserProfile) error {
	row := &recipientDatamodel.UserProfile{
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
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *RecipientRepository) GetProfile(orgID, id int64) (*recipient.UserProfile, error) {
	var row recipientDatamodel.UserProfile
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRecipientNotFound
		}
		return nil, err
	}
	return recipient.ProfileFromDataModel(&row), nil
}

func (r *RecipientRepository) ListProfiles(orgID int64, limit, offset int, search string) ([]*recipient.UserProfile, error) {
	q := r.db.Where("organization_id = ?", orgID)
	if search != "" {
		s := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ?", s, s)
	}

	var rows []*recipientDatamodel.UserProfile
	err := q.Order("last_name ASC, first_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]*recipient.UserProfile, len(rows))
	for i, row := range rows {
		profiles[i] = recipient.ProfileFromDataModel(row)
	}
	return profiles, nil
}

func (r *RecipientRepository) UpdateProfile(p *recipient.UserProfile) error {
	return r.db.Model(&recipientDatamodel.UserProfile{}).
		Where("id = ? AND organization_id = ?", p.ID, p.OrganizationID).
		Updates(map[string]interface{}{
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"email":        p.Email,
			"phone":        p.Phone,
			"role":         p.Role,
			"department":   p.Department,
			"location":     p.Location,
			"mail_room_id": p.MailRoomID,
			"is_active":    p.IsActive,
			"updated_at":   time.Now(),
		}).Error
}

func (r *RecipientRepository) CreateExternal(p *recipient.ExternalPerson) error {
	row := &recipientDatamodel.ExternalPerson{
		OrganizationID: p.OrganizationID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Department:     p.Department,
		Location:       p.Location,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *RecipientRepository) GetExternal(orgID, id int64) (*recipient.ExternalPerson, error) {
	var row recipientDatamodel.ExternalPerson
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRecipientNotFound
		}
		return nil, err
	}
	return recipient.ExternalFromDataModel(&row), nil
}

func (r *RecipientRepository) ListExternal(orgID int64, limit, offset int, search string) ([]*recipient.ExternalPerson, error) {
	q := r.db.Where("organization_id = ?", orgID)
	if search != "" {
		s := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name || ' ' || last_name) LIKE ?", s)
	}

	var rows []*recipientDatamodel.ExternalPerson
	err := q.Order("last_name ASC, first_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	people := make([]*recipient.ExternalPerson, len(rows))
	for i, row := range rows {
		people[i] = recipient.ExternalFromDataModel(row)
	}
	return people, nil
}

func (r *RecipientRepository) Resolve(orgID int64, ref recipient.Ref) (*recipient.Resolved, error) {
	if ref.IsInternal() {
		profile, err := r.GetProfile(orgID, *ref.RecipientID)
		if err != nil {
			return nil, err
		}
		return profile.Resolved(), nil
	}

	person, err := r.GetExternal(orgID, *ref.ExternalRecipientID)
	if err != nil {
		return nil, err
	}
	return person.Resolved(), nil
}

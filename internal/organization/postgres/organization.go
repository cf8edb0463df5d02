package postgres

import (
	internal "github.com/parceldesk/mailroom/internal"
	organizationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/organization"
	"github.com/parceldesk/mailroom/internal/organization"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) organization.Repository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) CreateOrganization(o *organization.Organization) error {
	row := organization.ToDataModel(o)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	o.ID = row.ID
	return nil
}

func (r *OrganizationRepository) GetOrganization(id int64) (*organization.Organization, error) {
	var row organizationDatamodel.Organization
	err := r.db.First(&row, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrOrganizationNotFound
		}
		return nil, err
	}
	return organization.FromDataModel(&row), nil
}

func (r *OrganizationRepository) UpdateOrganization(o *organization.Organization) error {
	row := organization.ToDataModel(o)
	return r.db.Model(&organizationDatamodel.Organization{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"name":          row.Name,
			"contact_email": row.ContactEmail,
			"contact_phone": row.ContactPhone,
			"address":       row.Address,
			"settings":      row.Settings,
			"updated_at":    row.UpdatedAt,
		}).Error
}

func (r *OrganizationRepository) CreateMailRoom(m *organization.MailRoom) error {
	row := organization.MailRoomToDataModel(m)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	m.ID = row.ID
	return nil
}

func (r *OrganizationRepository) GetMailRoom(orgID, id int64) (*organization.MailRoom, error) {
	var row organizationDatamodel.MailRoom
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMailRoomNotFound
		}
		return nil, err
	}
	return organization.MailRoomFromDataModel(&row), nil
}

func (r *OrganizationRepository) ListMailRooms(orgID int64, activeOnly bool) ([]*organization.MailRoom, error) {
	q := r.db.Where("organization_id = ?", orgID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []*organizationDatamodel.MailRoom
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	rooms := make([]*organization.MailRoom, len(rows))
	for i, row := range rows {
		rooms[i] = organization.MailRoomFromDataModel(row)
	}
	return rooms, nil
}

func (r *OrganizationRepository) UpdateMailRoom(m *organization.MailRoom) error {
	row := organization.MailRoomToDataModel(m)
	return r.db.Model(&organizationDatamodel.MailRoom{}).
		Where("id = ? AND organization_id = ?", m.ID, m.OrganizationID).
		Updates(map[string]interface{}{
			"name":       row.Name,
			"location":   row.Location,
			"is_active":  row.IsActive,
			"updated_at": row.UpdatedAt,
		}).Error
}

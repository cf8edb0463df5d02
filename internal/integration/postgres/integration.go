package postgres

import (
	internal "github.com/parceldesk/mailroom/internal"
	integrationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/integration"
	"github.com/parceldesk/mailroom/internal/integration"
	"gorm.io/gorm"
)

type IntegrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) integration.Repository {
	return &IntegrationRepository{db: db}
}

func (r *IntegrationRepository) Create(i *integration.Integration) error {
	row := integration.ToDataModel(i)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	i.ID = row.ID
	return nil
}

func (r *IntegrationRepository) GetByID(orgID, id int64) (*integration.Integration, error) {
	var row integrationDatamodel.Integration
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("integration not found", internal.ErrCodeIntegrationNotFound)
		}
		return nil, err
	}
	return integration.FromDataModel(&row), nil
}

func (r *IntegrationRepository) ListByOrganization(orgID int64) ([]*integration.Integration, error) {
	var rows []*integrationDatamodel.Integration
	err := r.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	integrations := make([]*integration.Integration, len(rows))
	for i, row := range rows {
		integrations[i] = integration.FromDataModel(row)
	}
	return integrations, nil
}

func (r *IntegrationRepository) Update(i *integration.Integration) error {
	row := integration.ToDataModel(i)
	return r.db.Model(&integrationDatamodel.Integration{}).
		Where("id = ? AND organization_id = ?", i.ID, i.OrganizationID).
		Updates(map[string]interface{}{
			"name":       row.Name,
			"config":     row.Config,
			"is_enabled": row.IsEnabled,
			"updated_at": row.UpdatedAt,
		}).Error
}

func (r *IntegrationRepository) Delete(orgID, id int64) error {
	return r.db.Where("id = ? AND organization_id = ?", id, orgID).
		Delete(&integrationDatamodel.Integration{}).Error
}

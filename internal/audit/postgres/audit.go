package postgres

import (
	"github.com/parceldesk/mailroom/internal/audit"
	auditDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(e *audit.Entry) error {
	row := audit.ToDataModel(e)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	return nil
}

func (r *AuditRepository) ListByOrganization(orgID int64, limit int) ([]*audit.Entry, error) {
	var rows []*auditDatamodel.AuditLog
	err := r.db.Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, len(rows))
	for i, row := range rows {
		entries[i] = audit.FromDataModel(row)
	}
	return entries, nil
}

package postgres

import (
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	mailitemDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/mailitem"
	pickupDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/pickup"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"github.com/parceldesk/mailroom/internal/pickup"
	"gorm.io/gorm"
)

type PickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) pickup.Repository {
	return &PickupRepository{db: db}
}

// CreatePickup is the one write with a real atomicity requirement: the pickup
// insert and the mail-item transition commit together or not at all. The
// conditional update doubles as the double-pickup guard; a second caller sees
// zero rows affected and the whole transaction rolls back.
func (r *PickupRepository) CreatePickup(p *pickup.Pickup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := pickup.ToDataModel(p)
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		res := tx.Model(&mailitemDatamodel.MailItem{}).
			Where("id = ? AND organization_id = ? AND status IN ?",
				p.MailItemID, p.OrganizationID, mailitem.OpenStatuses).
			Updates(map[string]interface{}{
				"status":          mailitem.StatusPickedUp,
				"picked_up_at":    p.PickedUpAt,
				"processed_by_id": p.ProcessedByID,
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrAlreadyPickedUp
		}

		p.ID = row.ID
		return nil
	})
}

func (r *PickupRepository) GetByID(orgID, id int64) (*pickup.Pickup, error) {
	var row pickupDatamodel.Pickup
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("pickup not found", internal.ErrCodePickupNotFound)
		}
		return nil, err
	}
	return pickup.FromDataModel(&row), nil
}

func (r *PickupRepository) ListByMailItem(orgID, mailItemID int64) ([]*pickup.Pickup, error) {
	var rows []*pickupDatamodel.Pickup
	err := r.db.Where("organization_id = ? AND mail_item_id = ?", orgID, mailItemID).
		Order("picked_up_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	pickups := make([]*pickup.Pickup, len(rows))
	for i, row := range rows {
		pickups[i] = pickup.FromDataModel(row)
	}
	return pickups, nil
}

package postgres

import (
	internal "github.com/parceldesk/mailroom/internal"
	notificationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/notification"
	"github.com/parceldesk/mailroom/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	row := notification.ToDataModel(n)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	n.ID = row.ID
	return nil
}

func (r *NotificationRepository) GetByID(orgID, id int64) (*notification.Notification, error) {
	var row notificationDatamodel.Notification
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("notification not found", internal.ErrCodeNotificationNotFound)
		}
		return nil, err
	}
	return notification.FromDataModel(&row), nil
}

func (r *NotificationRepository) ListByMailItem(orgID, mailItemID int64) ([]*notification.Notification, error) {
	var rows []*notificationDatamodel.Notification
	err := r.db.Where("organization_id = ? AND mail_item_id = ?", orgID, mailItemID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(rows))
	for i, row := range rows {
		notifications[i] = notification.FromDataModel(row)
	}
	return notifications, nil
}

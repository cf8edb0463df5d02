package postgres

import (
	"strings"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	mailitemDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/mailitem"
	recipientDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/recipient"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"github.com/parceldesk/mailroom/internal/recipient"
	"gorm.io/gorm"
)

// MailItemRepository implements mailitem.Repository using GORM. It also
// carries the conditional notified-flip used by the notification recorder.
type MailItemRepository struct {
	db *gorm.DB
}

func NewMailItemRepository(db *gorm.DB) *MailItemRepository {
	return &MailItemRepository{db: db}
}

func (r *MailItemRepository) Create(item *mailitem.MailItem) error {
	row := mailitem.ToDataModel(item)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	item.ID = row.ID
	return nil
}

func (r *MailItemRepository) GetByID(orgID, id int64) (*mailitem.MailItem, error) {
	var row mailitemDatamodel.MailItem
	err := r.db.Where("id = ? AND organization_id = ?", id, orgID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMailItemNotFound
		}
		return nil, err
	}

	item := mailitem.FromDataModel(&row)
	if err := r.attachRecipients([]*mailitem.MailItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

// ListPending returns the open queue. Search matches recipient full name,
// tracking number, or description, case-insensitively. Ordering: priority
// items first, then received_at descending.
func (r *MailItemRepository) ListPending(orgID int64, query mailitem.ListPendingQuery) ([]*mailitem.MailItem, int64, error) {
	base := r.db.Table("mail_items").
		Joins("LEFT JOIN user_profiles ON user_profiles.id = mail_items.recipient_id").
		Joins("LEFT JOIN external_people ON external_people.id = mail_items.external_recipient_id").
		Where("mail_items.organization_id = ?", orgID).
		Where("mail_items.status IN ?", mailitem.OpenStatuses)

	if query.MailRoomID != nil {
		base = base.Where("mail_items.mail_room_id = ?", *query.MailRoomID)
	}

	if query.Search != "" {
		s := "%" + strings.ToLower(query.Search) + "%"
		base = base.Where(
			"LOWER(user_profiles.first_name || ' ' || user_profiles.last_name) LIKE ?"+
				" OR LOWER(external_people.first_name || ' ' || external_people.last_name) LIKE ?"+
				" OR LOWER(mail_items.tracking_number) LIKE ?"+
				" OR LOWER(mail_items.description) LIKE ?",
			s, s, s, s)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*mailitemDatamodel.MailItem
	err := base.Session(&gorm.Session{}).
		Select("mail_items.*").
		Order("mail_items.is_priority DESC, mail_items.received_at DESC").
		Limit(query.PageSize).
		Offset((query.Page - 1) * query.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := mailitem.FromDataModelSlice(rows)
	if err := r.attachRecipients(items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MailItemRepository) ListByStatus(orgID int64, status string, limit, offset int) ([]*mailitem.MailItem, error) {
	var rows []*mailitemDatamodel.MailItem
	err := r.db.Where("organization_id = ? AND status = ?", orgID, status).
		Order("received_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := mailitem.FromDataModelSlice(rows)
	if err := r.attachRecipients(items); err != nil {
		return nil, err
	}
	return items, nil
}

// TransitionStatus is the optimistic-concurrency guard: the UPDATE only
// matches while the row is still in one of the from statuses, so concurrent
// transitions cannot both win.
func (r *MailItemRepository) TransitionStatus(orgID, id int64, from []string, to string, at time.Time) (bool, error) {
	res := r.db.Model(&mailitemDatamodel.MailItem{}).
		Where("id = ? AND organization_id = ? AND status IN ?", id, orgID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkNotified flips a pending item to notified and stamps notified_at.
// Returns false when the item was not pending (reminder case) without error.
func (r *MailItemRepository) MarkNotified(orgID, id int64, at time.Time) (bool, error) {
	res := r.db.Model(&mailitemDatamodel.MailItem{}).
		Where("id = ? AND organization_id = ? AND status = ?", id, orgID, mailitem.StatusPending).
		Updates(map[string]interface{}{
			"status":      mailitem.StatusNotified,
			"notified_at": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// attachRecipients batch-resolves the polymorphic recipient references into
// the uniform Resolved shape.
func (r *MailItemRepository) attachRecipients(items []*mailitem.MailItem) error {
	var profileIDs, externalIDs []int64
	for _, item := range items {
		if item.RecipientID != nil {
			profileIDs = append(profileIDs, *item.RecipientID)
		}
		if item.ExternalRecipientID != nil {
			externalIDs = append(externalIDs, *item.ExternalRecipientID)
		}
	}

	profiles := make(map[int64]*recipient.Resolved)
	if len(profileIDs) > 0 {
		var rows []*recipientDatamodel.UserProfile
		if err := r.db.Where("id IN ?", profileIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			profiles[row.ID] = recipient.ProfileFromDataModel(row).Resolved()
		}
	}

	externals := make(map[int64]*recipient.Resolved)
	if len(externalIDs) > 0 {
		var rows []*recipientDatamodel.ExternalPerson
		if err := r.db.Where("id IN ?", externalIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			externals[row.ID] = recipient.ExternalFromDataModel(row).Resolved()
		}
	}

	for _, item := range items {
		if item.RecipientID != nil {
			item.Recipient = profiles[*item.RecipientID]
		} else if item.ExternalRecipientID != nil {
			item.Recipient = externals[*item.ExternalRecipientID]
		}
	}
	return nil
}

package notification

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/mailitem"
)

type Repository interface {
	Create(n *Notification) error
	GetByID(orgID, id int64) (*Notification, error)
	ListByMailItem(orgID, mailItemID int64) ([]*Notification, error)
}

// MailItemStore is the slice of the mail-item store the recorder needs.
// MarkNotified reports whether the item actually moved out of pending;
// false means the row was a reminder.
type MailItemStore interface {
	GetByID(orgID, id int64) (*mailitem.MailItem, error)
	MarkNotified(orgID, id int64, at time.Time) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	items     MailItemStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, items MailItemStore, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		publisher: publisher,
		logger:    logger,
	}
}

// RecordNotification appends a notification row for an open mail item. The
// first notification flips the item from pending to notified; later ones are
// reminders and leave the status alone. Closed items reject with a conflict.
func (s *Service) RecordNotification(ctx context.Context, orgID int64, dto CreateNotificationDTO) (*Notification, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("notification validation failed", "error", err, "org_id", orgID)
		return nil, err
	}

	item, err := s.items.GetByID(orgID, dto.MailItemID)
	if err != nil {
		return nil, err
	}

	if !item.IsOpen() {
		s.logger.Warn("notification rejected: mail item closed",
			"mail_item_id", item.ID,
			"status", item.Status)
		return nil, internal.ErrItemClosed
	}

	if !dto.Ref().Matches(item.RecipientID, item.ExternalRecipientID) {
		s.logger.Warn("notification recipient does not match mail item",
			"mail_item_id", item.ID,
			"org_id", orgID)
		return nil, internal.NewValidationError(
			"notification recipient does not match the mail item recipient",
			internal.ErrCodeRecipientMismatch)
	}

	now := time.Now()
	n := &Notification{
		OrganizationID:      orgID,
		MailItemID:          dto.MailItemID,
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
		Channel:             dto.Channel,
		DeliveryStatus:      DeliveryStatusQueued,
		CreatedAt:           now,
	}
	if dto.Destination != nil {
		n.Destination = *dto.Destination
	}
	if dto.Message != nil {
		n.Message = *dto.Message
	}

	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to record notification", "error", err, "mail_item_id", dto.MailItemID)
		return nil, err
	}
	n.Recipient = item.Recipient

	moved, err := s.items.MarkNotified(orgID, item.ID, now)
	if err != nil {
		s.logger.Error("failed to mark mail item notified", "error", err, "mail_item_id", item.ID)
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.NewMailItemNotifiedEvent(item.ID, n.ID, n.Channel))
	}

	s.logger.Info("notification recorded",
		"notification_id", n.ID,
		"mail_item_id", item.ID,
		"channel", n.Channel,
		"first_notice", moved)

	return n, nil
}

func (s *Service) GetNotification(orgID, id int64) (*Notification, error) {
	return s.repo.GetByID(orgID, id)
}

func (s *Service) ListByMailItem(orgID, mailItemID int64) ([]*Notification, error) {
	return s.repo.ListByMailItem(orgID, mailItemID)
}

package pickup

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/mailitem"
)

// Repository defines pickup data access. CreatePickup runs the insert and the
// mail-item transition as one transaction; it returns ErrAlreadyPickedUp when
// the item is no longer open.
type Repository interface {
	CreatePickup(p *Pickup) error
	GetByID(orgID, id int64) (*Pickup, error)
	ListByMailItem(orgID, mailItemID int64) ([]*Pickup, error)
}

// MailItemStore is the slice of the mail-item store the recorder needs.
type MailItemStore interface {
	GetByID(orgID, id int64) (*mailitem.MailItem, error)
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

// CreatePickup atomically records the pickup and transitions the mail item to
// picked_up. Either both changes land or neither does.
func (s *Service) CreatePickup(ctx context.Context, orgID, processedByID int64, dto CreatePickupDTO) (*Pickup, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("pickup validation failed", "error", err, "org_id", orgID)
		return nil, err
	}

	item, err := s.items.GetByID(orgID, dto.MailItemID)
	if err != nil {
		return nil, err
	}

	if !dto.Ref().Matches(item.RecipientID, item.ExternalRecipientID) {
		s.logger.Warn("pickup recipient does not match mail item",
			"mail_item_id", item.ID,
			"org_id", orgID)
		return nil, internal.NewValidationError(
			"pickup recipient does not match the mail item recipient",
			internal.ErrCodeRecipientMismatch)
	}

	if !item.CanBePickedUp() {
		s.logger.Warn("pickup rejected: mail item not open",
			"mail_item_id", item.ID,
			"status", item.Status)
		return nil, internal.ErrAlreadyPickedUp
	}

	pickedUpAt := time.Now()
	if dto.PickedUpAt != nil {
		pickedUpAt = *dto.PickedUpAt
	}

	p := &Pickup{
		OrganizationID:      orgID,
		MailItemID:          dto.MailItemID,
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
		ProcessedByID:       processedByID,
		PickedUpAt:          pickedUpAt,
		Signature:           dto.Signature,
		Photo:               dto.Photo,
		Notes:               dto.Notes,
		CreatedAt:           time.Now(),
	}

	if err := s.repo.CreatePickup(p); err != nil {
		s.logger.Error("failed to record pickup", "error", err, "mail_item_id", dto.MailItemID)
		return nil, err
	}
	p.Recipient = item.Recipient

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.NewMailItemPickedUpEvent(item.ID, p.ID, processedByID))
	}

	s.logger.Info("pickup recorded",
		"pickup_id", p.ID,
		"mail_item_id", item.ID,
		"processed_by_id", processedByID)

	return p, nil
}

func (s *Service) GetPickup(orgID, id int64) (*Pickup, error) {
	return s.repo.GetByID(orgID, id)
}

func (s *Service) ListByMailItem(orgID, mailItemID int64) ([]*Pickup, error) {
	return s.repo.ListByMailItem(orgID, mailItemID)
}

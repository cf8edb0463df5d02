package mailitem

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/recipient"
)

// Repository defines the data access methods for mail items. Every query is
// organization-scoped.
type Repository interface {
	Create(item *MailItem) error
	GetByID(orgID, id int64) (*MailItem, error)
	ListPending(orgID int64, query ListPendingQuery) ([]*MailItem, int64, error)
	ListByStatus(orgID int64, status string, limit, offset int) ([]*MailItem, error)

	// TransitionStatus conditionally moves an item out of one of the given
	// statuses. Returns false when no row matched, i.e. the item does not
	// exist in this organization or is no longer in an eligible status.
	TransitionStatus(orgID, id int64, from []string, to string, at time.Time) (bool, error)
}

// RecipientResolver resolves the polymorphic recipient reference.
type RecipientResolver interface {
	Resolve(orgID int64, ref recipient.Ref) (*recipient.Resolved, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service owns the mail-item lifecycle: intake, the pending queue, and the
// side-branch transitions. Notification and pickup transitions live in their
// own packages.
type Service struct {
	repo      Repository
	resolver  RecipientResolver
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, resolver RecipientResolver, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
	}
}

// RecordIntake creates a mail item in pending with received_at = now.
func (s *Service) RecordIntake(ctx context.Context, orgID, processedByID int64, dto IntakeDTO) (*MailItem, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("intake validation failed", "error", err, "org_id", orgID)
		return nil, err
	}

	resolved, err := s.resolver.Resolve(orgID, dto.Ref())
	if err != nil {
		s.logger.Warn("intake recipient not found", "error", err, "org_id", orgID)
		return nil, err
	}

	now := time.Now()
	item := &MailItem{
		OrganizationID:      orgID,
		MailRoomID:          dto.MailRoomID,
		RecipientID:         dto.RecipientID,
		ExternalRecipientID: dto.ExternalRecipientID,
		TrackingNumber:      dto.TrackingNumber,
		Carrier:             dto.Carrier,
		MailType:            dto.MailType,
		Description:         dto.Description,
		IsPriority:          dto.IsPriority,
		Status:              StatusPending,
		ReceivedAt:          now,
		ProcessedByID:       &processedByID,
		LabelImage:          dto.LabelImage,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(item); err != nil {
		s.logger.Error("failed to create mail item", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to create mail item", err)
	}
	item.Recipient = resolved

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.NewMailItemReceivedEvent(item.ID, orgID, item.MailRoomID, item.IsPriority))
	}

	s.logger.Info("mail item received",
		"mail_item_id", item.ID,
		"org_id", orgID,
		"mail_room_id", item.MailRoomID,
		"carrier", item.Carrier,
		"priority", item.IsPriority)

	return item, nil
}

func (s *Service) GetMailItem(orgID, id int64) (*MailItem, error) {
	return s.repo.GetByID(orgID, id)
}

// ListPending returns the open queue (pending + notified), priority items
// first, newest received first within each group.
func (s *Service) ListPending(orgID int64, query ListPendingQuery) (*Page, error) {
	query.Normalize()

	items, total, err := s.repo.ListPending(orgID, query)
	if err != nil {
		s.logger.Error("failed to list pending mail items", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to list pending mail items", err)
	}

	return NewPage(items, total, query.Page, query.PageSize), nil
}

func (s *Service) ListByStatus(orgID int64, status string, limit, offset int) ([]*MailItem, error) {
	return s.repo.ListByStatus(orgID, status, limit, offset)
}

// MarkReturned moves an open item to returned_to_sender.
func (s *Service) MarkReturned(orgID, id int64) (*MailItem, error) {
	return s.closeItem(orgID, id, StatusReturnedToSender)
}

// MarkLost moves an open item to lost.
func (s *Service) MarkLost(orgID, id int64) (*MailItem, error) {
	return s.closeItem(orgID, id, StatusLost)
}

func (s *Service) closeItem(orgID, id int64, to string) (*MailItem, error) {
	moved, err := s.repo.TransitionStatus(orgID, id, OpenStatuses, to, time.Now())
	if err != nil {
		s.logger.Error("status transition failed", "error", err, "mail_item_id", id, "to", to)
		return nil, internal.NewInternalError("failed to update mail item status", err)
	}

	if !moved {
		// Distinguish missing from already-closed for the caller.
		item, err := s.repo.GetByID(orgID, id)
		if err != nil {
			return nil, err
		}
		s.logger.Warn("illegal status transition rejected",
			"mail_item_id", id,
			"current_status", item.Status,
			"requested_status", to)
		return nil, internal.ErrItemClosed
	}

	s.logger.Info("mail item closed", "mail_item_id", id, "status", to)
	return s.repo.GetByID(orgID, id)
}

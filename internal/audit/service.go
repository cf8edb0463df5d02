package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/parceldesk/mailroom/internal/core/events"
)

type Repository interface {
	Create(e *Entry) error
	ListByOrganization(orgID int64, limit int) ([]*Entry, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterSubscriptions hooks the audit trail onto the event bus. Admin
// mutations become audit rows; failures are logged and dropped rather than
// failing the originating request.
func (s *Service) RegisterSubscriptions(bus Subscriber) {
	bus.Subscribe(events.EventTypeAdminAction, s.handleAdminAction)
}

func (s *Service) handleAdminAction(ctx context.Context, event events.Event) error {
	action, ok := event.(*events.AdminActionEvent)
	if !ok {
		s.logger.Warn("unexpected event payload on admin action subscription",
			"event_type", event.EventType())
		return nil
	}

	var detail json.RawMessage
	if action.Detail != nil {
		raw, err := json.Marshal(action.Detail)
		if err != nil {
			s.logger.Error("failed to encode audit detail", "error", err, "event_id", event.EventID())
		} else {
			detail = raw
		}
	}

	entry := &Entry{
		OrganizationID: action.OrganizationID,
		ActorID:        action.ActorID,
		Action:         action.Action,
		Entity:         action.Entity,
		EntityID:       action.EntityID,
		Detail:         detail,
		CreatedAt:      event.OccurredAt(),
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to write audit entry",
			"error", err,
			"event_id", event.EventID(),
			"entity", action.Entity)
		return err
	}
	return nil
}

func (s *Service) ListByOrganization(orgID int64, limit int) ([]*Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListByOrganization(orgID, limit)
}

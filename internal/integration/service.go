package integration

import (
	"context"
	"log/slog"
	"time"

	"github.com/parceldesk/mailroom/internal/core/events"
)

type Repository interface {
	Create(i *Integration) error
	GetByID(orgID, id int64) (*Integration, error)
	ListByOrganization(orgID int64) ([]*Integration, error)
	Update(i *Integration) error
	Delete(orgID, id int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, orgID, actorID int64, dto CreateIntegrationDTO) (*Integration, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	i := &Integration{
		OrganizationID: orgID,
		Name:           dto.Name,
		Kind:           dto.Kind,
		Config:         dto.Config,
		IsEnabled:      dto.IsEnabled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(i); err != nil {
		s.logger.Error("failed to create integration", "error", err, "org_id", orgID)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "create", i.ID,
		map[string]interface{}{"name": i.Name, "kind": i.Kind})
	return i, nil
}

func (s *Service) GetByID(orgID, id int64) (*Integration, error) {
	return s.repo.GetByID(orgID, id)
}

func (s *Service) ListByOrganization(orgID int64) ([]*Integration, error) {
	return s.repo.ListByOrganization(orgID)
}

func (s *Service) Update(ctx context.Context, orgID, id, actorID int64, dto UpdateIntegrationDTO) (*Integration, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if dto.Name != nil {
		i.Name = *dto.Name
		changed["name"] = *dto.Name
	}
	if dto.Config != nil {
		i.Config = dto.Config
		changed["config"] = "updated"
	}
	if dto.IsEnabled != nil {
		i.IsEnabled = *dto.IsEnabled
		changed["is_enabled"] = *dto.IsEnabled
	}
	i.UpdatedAt = time.Now()

	if err := s.repo.Update(i); err != nil {
		s.logger.Error("failed to update integration", "error", err, "integration_id", id)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "update", id, changed)
	return i, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id, actorID int64) error {
	if _, err := s.repo.GetByID(orgID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(orgID, id); err != nil {
		s.logger.Error("failed to delete integration", "error", err, "integration_id", id)
		return err
	}

	s.publishAdminAction(ctx, orgID, actorID, "delete", id, nil)
	return nil
}

func (s *Service) publishAdminAction(ctx context.Context, orgID, actorID int64, action string, entityID int64, detail map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.NewAdminActionEvent(orgID, actorID, action, "integration", entityID, detail))
}

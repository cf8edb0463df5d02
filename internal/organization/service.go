package organization

import (
	"context"
	"log/slog"
	"time"

	"github.com/parceldesk/mailroom/internal/core/events"
)

type Repository interface {
	CreateOrganization(o *Organization) error
	GetOrganization(id int64) (*Organization, error)
	UpdateOrganization(o *Organization) error

	CreateMailRoom(m *MailRoom) error
	GetMailRoom(orgID, id int64) (*MailRoom, error)
	ListMailRooms(orgID int64, activeOnly bool) ([]*MailRoom, error)
	UpdateMailRoom(m *MailRoom) error
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

func (s *Service) CreateOrganization(ctx context.Context, actorID int64, dto CreateOrganizationDTO) (*Organization, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	o := &Organization{
		Name:         dto.Name,
		ContactEmail: dto.ContactEmail,
		ContactPhone: dto.ContactPhone,
		Address:      dto.Address,
		Settings:     dto.Settings,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateOrganization(o); err != nil {
		s.logger.Error("failed to create organization", "error", err)
		return nil, err
	}

	s.publishAdminAction(ctx, o.ID, actorID, "create", "organization", o.ID,
		map[string]interface{}{"name": o.Name})

	s.logger.Info("organization created", "organization_id", o.ID, "actor_id", actorID)
	return o, nil
}

func (s *Service) GetOrganization(id int64) (*Organization, error) {
	return s.repo.GetOrganization(id)
}

func (s *Service) UpdateOrganization(ctx context.Context, orgID, actorID int64, dto UpdateOrganizationDTO) (*Organization, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if dto.Name != nil {
		o.Name = *dto.Name
		changed["name"] = *dto.Name
	}
	if dto.ContactEmail != nil {
		o.ContactEmail = *dto.ContactEmail
		changed["contact_email"] = *dto.ContactEmail
	}
	if dto.ContactPhone != nil {
		o.ContactPhone = *dto.ContactPhone
		changed["contact_phone"] = *dto.ContactPhone
	}
	if dto.Address != nil {
		o.Address = *dto.Address
		changed["address"] = *dto.Address
	}
	if dto.Settings != nil {
		o.Settings = dto.Settings
		changed["settings"] = "updated"
	}
	o.UpdatedAt = time.Now()

	if err := s.repo.UpdateOrganization(o); err != nil {
		s.logger.Error("failed to update organization", "error", err, "organization_id", orgID)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "update", "organization", orgID, changed)
	return o, nil
}

func (s *Service) CreateMailRoom(ctx context.Context, orgID, actorID int64, dto CreateMailRoomDTO) (*MailRoom, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetOrganization(orgID); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &MailRoom{
		OrganizationID: orgID,
		Name:           dto.Name,
		Location:       dto.Location,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateMailRoom(m); err != nil {
		s.logger.Error("failed to create mail room", "error", err, "organization_id", orgID)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "create", "mail_room", m.ID,
		map[string]interface{}{"name": m.Name, "location": m.Location})

	s.logger.Info("mail room created", "mail_room_id", m.ID, "organization_id", orgID)
	return m, nil
}

func (s *Service) GetMailRoom(orgID, id int64) (*MailRoom, error) {
	return s.repo.GetMailRoom(orgID, id)
}

func (s *Service) ListMailRooms(orgID int64, activeOnly bool) ([]*MailRoom, error) {
	return s.repo.ListMailRooms(orgID, activeOnly)
}

func (s *Service) UpdateMailRoom(ctx context.Context, orgID, id, actorID int64, dto UpdateMailRoomDTO) (*MailRoom, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMailRoom(orgID, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if dto.Name != nil {
		m.Name = *dto.Name
		changed["name"] = *dto.Name
	}
	if dto.Location != nil {
		m.Location = *dto.Location
		changed["location"] = *dto.Location
	}
	if dto.IsActive != nil {
		m.IsActive = *dto.IsActive
		changed["is_active"] = *dto.IsActive
	}
	m.UpdatedAt = time.Now()

	if err := s.repo.UpdateMailRoom(m); err != nil {
		s.logger.Error("failed to update mail room", "error", err, "mail_room_id", id)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "update", "mail_room", id, changed)
	return m, nil
}

// DeactivateMailRoom soft-disables a mail room. Rooms are never hard-deleted;
// historical mail items keep pointing at them.
func (s *Service) DeactivateMailRoom(ctx context.Context, orgID, id, actorID int64) (*MailRoom, error) {
	m, err := s.repo.GetMailRoom(orgID, id)
	if err != nil {
		return nil, err
	}

	m.IsActive = false
	m.UpdatedAt = time.Now()
	if err := s.repo.UpdateMailRoom(m); err != nil {
		s.logger.Error("failed to deactivate mail room", "error", err, "mail_room_id", id)
		return nil, err
	}

	s.publishAdminAction(ctx, orgID, actorID, "deactivate", "mail_room", id, nil)
	return m, nil
}

func (s *Service) publishAdminAction(ctx context.Context, orgID, actorID int64, action, entity string, entityID int64, detail map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.NewAdminActionEvent(orgID, actorID, action, entity, entityID, detail))
}

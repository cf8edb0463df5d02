package recipient

import (
	"log/slog"

	internal "github.com/parceldesk/mailroom/internal"
)

// Repository defines data access for profiles and external people. All reads
// are scoped by organization; a row from another organization is a not-found.
type Repository interface {
	CreateProfile(profile *UserProfile) error
	GetProfile(orgID, id int64) (*UserProfile, error)
	ListProfiles(orgID int64, limit, offset int, search string) ([]*UserProfile, error)
	UpdateProfile(profile *UserProfile) error

	CreateExternal(person *ExternalPerson) error
	GetExternal(orgID, id int64) (*ExternalPerson, error)
	ListExternal(orgID int64, limit, offset int, search string) ([]*ExternalPerson, error)

	// Resolve turns a validated Ref into the uniform recipient shape.
	Resolve(orgID int64, ref Ref) (*Resolved, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateProfile(orgID int64, dto CreateProfileDTO) (*UserProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = RoleRecipient
	}

	profile := &UserProfile{
		OrganizationID: orgID,
		MailRoomID:     dto.MailRoomID,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Role:           role,
		Department:     dto.Department,
		Location:       dto.Location,
		IsActive:       true,
	}

	if err := s.repo.CreateProfile(profile); err != nil {
		s.logger.Error("failed to create user profile", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to create user profile", err)
	}

	s.logger.Info("user profile created", "profile_id", profile.ID, "org_id", orgID, "role", role)
	return profile, nil
}

func (s *Service) GetProfile(orgID, id int64) (*UserProfile, error) {
	return s.repo.GetProfile(orgID, id)
}

func (s *Service) ListProfiles(orgID int64, limit, offset int, search string) ([]*UserProfile, error) {
	return s.repo.ListProfiles(orgID, limit, offset, search)
}

func (s *Service) UpdateProfile(orgID, id int64, dto UpdateProfileDTO) (*UserProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(orgID, id)
	if err != nil {
		return nil, err
	}

	if dto.FirstName != nil {
		profile.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		profile.LastName = *dto.LastName
	}
	if dto.Email != nil {
		profile.Email = *dto.Email
	}
	if dto.Phone != nil {
		profile.Phone = *dto.Phone
	}
	if dto.Role != nil {
		profile.Role = *dto.Role
	}
	if dto.Department != nil {
		profile.Department = *dto.Department
	}
	if dto.Location != nil {
		profile.Location = *dto.Location
	}
	if dto.MailRoomID != nil {
		profile.MailRoomID = dto.MailRoomID
	}
	if dto.IsActive != nil {
		profile.IsActive = *dto.IsActive
	}

	if err := s.repo.UpdateProfile(profile); err != nil {
		s.logger.Error("failed to update user profile", "error", err, "profile_id", id)
		return nil, internal.NewInternalError("failed to update user profile", err)
	}

	return profile, nil
}

func (s *Service) CreateExternal(orgID int64, dto CreateExternalPersonDTO) (*ExternalPerson, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	person := &ExternalPerson{
		OrganizationID: orgID,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Department:     dto.Department,
		Location:       dto.Location,
	}

	if err := s.repo.CreateExternal(person); err != nil {
		s.logger.Error("failed to create external person", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to create external person", err)
	}

	s.logger.Info("external person created", "external_person_id", person.ID, "org_id", orgID)
	return person, nil
}

func (s *Service) GetExternal(orgID, id int64) (*ExternalPerson, error) {
	return s.repo.GetExternal(orgID, id)
}

func (s *Service) ListExternal(orgID int64, limit, offset int, search string) ([]*ExternalPerson, error) {
	return s.repo.ListExternal(orgID, limit, offset, search)
}

// Resolve validates the ref and resolves it within the organization.
func (s *Service) Resolve(orgID int64, ref Ref) (*Resolved, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Resolve(orgID, ref)
}

package organization_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/organization"
)

func TestOrganizationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Organization Service Suite")
}

// Mock repository for testing
type mockOrganizationRepository struct {
	organizations map[int64]*organization.Organization
	mailRooms     map[int64]*organization.MailRoom
	nextID        int64
}

func newMockOrganizationRepository() *mockOrganizationRepository {
	return &mockOrganizationRepository{
		organizations: make(map[int64]*organization.Organization),
		mailRooms:     make(map[int64]*organization.MailRoom),
		nextID:        1,
	}
}

func (m *mockOrganizationRepository) CreateOrganization(o *organization.Organization) error {
	o.ID = m.nextID
	m.nextID++
	m.organizations[o.ID] = o
	return nil
}

func (m *mockOrganizationRepository) GetOrganization(id int64) (*organization.Organization, error) {
	o, ok := m.organizations[id]
	if !ok {
		return nil, internal.ErrOrganizationNotFound
	}
	return o, nil
}

func (m *mockOrganizationRepository) UpdateOrganization(o *organization.Organization) error {
	m.organizations[o.ID] = o
	return nil
}

func (m *mockOrganizationRepository) CreateMailRoom(room *organization.MailRoom) error {
	room.ID = m.nextID
	m.nextID++
	m.mailRooms[room.ID] = room
	return nil
}

func (m *mockOrganizationRepository) GetMailRoom(orgID, id int64) (*organization.MailRoom, error) {
	room, ok := m.mailRooms[id]
	if !ok || room.OrganizationID != orgID {
		return nil, internal.ErrMailRoomNotFound
	}
	return room, nil
}

func (m *mockOrganizationRepository) ListMailRooms(orgID int64, activeOnly bool) ([]*organization.MailRoom, error) {
	var result []*organization.MailRoom
	for _, room := range m.mailRooms {
		if room.OrganizationID != orgID {
			continue
		}
		if activeOnly && !room.IsActive {
			continue
		}
		result = append(result, room)
	}
	return result, nil
}

func (m *mockOrganizationRepository) UpdateMailRoom(room *organization.MailRoom) error {
	m.mailRooms[room.ID] = room
	return nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) lastAdminAction() *events.AdminActionEvent {
	if len(m.published) == 0 {
		return nil
	}
	action, _ := m.published[len(m.published)-1].(*events.AdminActionEvent)
	return action
}

var _ = Describe("Organization Service", func() {
	var (
		repo      *mockOrganizationRepository
		publisher *mockPublisher
		service   *organization.Service

		actorID int64 = 42
	)

	BeforeEach(func() {
		repo = newMockOrganizationRepository()
		publisher = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = organization.NewService(repo, publisher, logger)
	})

	Describe("CreateOrganization", func() {
		It("should create the organization and publish an admin action", func() {
			o, err := service.CreateOrganization(context.Background(), actorID, organization.CreateOrganizationDTO{
				Name: "Acme Workspaces",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(o.ID).NotTo(BeZero())

			action := publisher.lastAdminAction()
			Expect(action).NotTo(BeNil())
			Expect(action.Action).To(Equal("create"))
			Expect(action.Entity).To(Equal("organization"))
			Expect(action.ActorID).To(Equal(actorID))
		})

		It("should reject a missing name", func() {
			_, err := service.CreateOrganization(context.Background(), actorID, organization.CreateOrganizationDTO{})

			Expect(err).To(HaveOccurred())
			Expect(publisher.published).To(BeEmpty())
		})
	})

	Describe("UpdateOrganization", func() {
		It("should apply partial updates and record the changed fields", func() {
			o, err := service.CreateOrganization(context.Background(), actorID, organization.CreateOrganizationDTO{
				Name: "Acme Workspaces",
			})
			Expect(err).NotTo(HaveOccurred())

			newName := "Acme HQ"
			updated, err := service.UpdateOrganization(context.Background(), o.ID, actorID, organization.UpdateOrganizationDTO{
				Name: &newName,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Acme HQ"))

			action := publisher.lastAdminAction()
			Expect(action.Action).To(Equal("update"))
			Expect(action.Detail).To(HaveKeyWithValue("name", "Acme HQ"))
		})
	})

	Describe("Mail rooms", func() {
		var orgID int64

		BeforeEach(func() {
			o, err := service.CreateOrganization(context.Background(), actorID, organization.CreateOrganizationDTO{
				Name: "Acme Workspaces",
			})
			Expect(err).NotTo(HaveOccurred())
			orgID = o.ID
			publisher.published = nil
		})

		It("should create an active mail room", func() {
			room, err := service.CreateMailRoom(context.Background(), orgID, actorID, organization.CreateMailRoomDTO{
				Name:     "Main Lobby",
				Location: "Building A",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(room.IsActive).To(BeTrue())

			action := publisher.lastAdminAction()
			Expect(action.Entity).To(Equal("mail_room"))
			Expect(action.EntityID).To(Equal(room.ID))
		})

		It("should refuse a mail room for an unknown organization", func() {
			_, err := service.CreateMailRoom(context.Background(), 999, actorID, organization.CreateMailRoomDTO{
				Name: "Main Lobby",
			})

			Expect(err).To(Equal(internal.ErrOrganizationNotFound))
		})

		It("should deactivate instead of deleting", func() {
			room, err := service.CreateMailRoom(context.Background(), orgID, actorID, organization.CreateMailRoomDTO{
				Name: "Main Lobby",
			})
			Expect(err).NotTo(HaveOccurred())

			deactivated, err := service.DeactivateMailRoom(context.Background(), orgID, room.ID, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(deactivated.IsActive).To(BeFalse())

			got, err := service.GetMailRoom(orgID, room.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.IsActive).To(BeFalse())

			action := publisher.lastAdminAction()
			Expect(action.Action).To(Equal("deactivate"))
		})

		It("should filter inactive rooms when asked", func() {
			active, err := service.CreateMailRoom(context.Background(), orgID, actorID, organization.CreateMailRoomDTO{Name: "Main Lobby"})
			Expect(err).NotTo(HaveOccurred())
			dormant, err := service.CreateMailRoom(context.Background(), orgID, actorID, organization.CreateMailRoomDTO{Name: "Annex"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.DeactivateMailRoom(context.Background(), orgID, dormant.ID, actorID)
			Expect(err).NotTo(HaveOccurred())

			rooms, err := service.ListMailRooms(orgID, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(rooms).To(HaveLen(1))
			Expect(rooms[0].ID).To(Equal(active.ID))

			rooms, err = service.ListMailRooms(orgID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(rooms).To(HaveLen(2))
		})

		It("should scope mail room reads to the organization", func() {
			room, err := service.CreateMailRoom(context.Background(), orgID, actorID, organization.CreateMailRoomDTO{Name: "Main Lobby"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetMailRoom(orgID+1, room.ID)
			Expect(err).To(Equal(internal.ErrMailRoomNotFound))
		})
	})
})

package mailitem_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"github.com/parceldesk/mailroom/internal/recipient"
)

// Mock repository for testing
type mockMailItemRepository struct {
	items           map[int64]*mailitem.MailItem
	createError     error
	transitionError error
	nextID          int64
}

func newMockMailItemRepository() *mockMailItemRepository {
	return &mockMailItemRepository{
		items:  make(map[int64]*mailitem.MailItem),
		nextID: 1,
	}
}

func (m *mockMailItemRepository) Create(item *mailitem.MailItem) error {
	if m.createError != nil {
		return m.createError
	}
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *mockMailItemRepository) GetByID(orgID, id int64) (*mailitem.MailItem, error) {
	item, ok := m.items[id]
	if !ok || item.OrganizationID != orgID {
		return nil, internal.ErrMailItemNotFound
	}
	return item, nil
}

func (m *mockMailItemRepository) ListPending(orgID int64, query mailitem.ListPendingQuery) ([]*mailitem.MailItem, int64, error) {
	var result []*mailitem.MailItem
	for _, item := range m.items {
		if item.OrganizationID == orgID && item.IsOpen() {
			result = append(result, item)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockMailItemRepository) ListByStatus(orgID int64, status string, limit, offset int) ([]*mailitem.MailItem, error) {
	var result []*mailitem.MailItem
	for _, item := range m.items {
		if item.OrganizationID == orgID && item.Status == status {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockMailItemRepository) TransitionStatus(orgID, id int64, from []string, to string, at time.Time) (bool, error) {
	if m.transitionError != nil {
		return false, m.transitionError
	}
	item, ok := m.items[id]
	if !ok || item.OrganizationID != orgID {
		return false, nil
	}
	for _, f := range from {
		if item.Status == f {
			item.Status = to
			item.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

type mockResolver struct {
	resolved     *recipient.Resolved
	resolveError error
}

func (m *mockResolver) Resolve(orgID int64, ref recipient.Ref) (*recipient.Resolved, error) {
	if m.resolveError != nil {
		return nil, m.resolveError
	}
	return m.resolved, nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Mail item Service", func() {
	var (
		repo      *mockMailItemRepository
		resolver  *mockResolver
		publisher *mockPublisher
		service   *mailitem.Service
		logger    *slog.Logger

		orgID       int64 = 1
		processedBy int64 = 42
		recipientID int64 = 7
	)

	BeforeEach(func() {
		repo = newMockMailItemRepository()
		resolver = &mockResolver{
			resolved: &recipient.Resolved{
				ID:        recipientID,
				Kind:      recipient.KindInternal,
				FirstName: "Ava",
				LastName:  "Chen",
			},
		}
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = mailitem.NewService(repo, resolver, publisher, logger)
	})

	Describe("RecordIntake", func() {
		var dto mailitem.IntakeDTO

		BeforeEach(func() {
			dto = mailitem.IntakeDTO{
				MailRoomID:  3,
				RecipientID: &recipientID,
				Carrier:     mailitem.CarrierUPS,
				MailType:    mailitem.TypePackage,
				Description: "Laptop delivery",
				IsPriority:  true,
			}
		})

		It("should create a pending item with received_at set", func() {
			before := time.Now()

			item, err := service.RecordIntake(context.Background(), orgID, processedBy, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(item.ID).NotTo(BeZero())
			Expect(item.Status).To(Equal(mailitem.StatusPending))
			Expect(item.OrganizationID).To(Equal(orgID))
			Expect(item.ReceivedAt).To(BeTemporally(">=", before))
			Expect(item.ProcessedByID).NotTo(BeNil())
			Expect(*item.ProcessedByID).To(Equal(processedBy))
		})

		It("should attach the resolved recipient", func() {
			item, err := service.RecordIntake(context.Background(), orgID, processedBy, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(item.Recipient).NotTo(BeNil())
			Expect(item.Recipient.FullName()).To(Equal("Ava Chen"))
		})

		It("should publish a received event", func() {
			item, err := service.RecordIntake(context.Background(), orgID, processedBy, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeMailItemReceived))

			received, ok := publisher.published[0].(*events.MailItemReceivedEvent)
			Expect(ok).To(BeTrue())
			Expect(received.MailItemID).To(Equal(item.ID))
			Expect(received.IsPriority).To(BeTrue())
		})

		It("should reject when both recipient references are set", func() {
			var externalID int64 = 9
			dto.ExternalRecipientID = &externalID

			_, err := service.RecordIntake(context.Background(), orgID, processedBy, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(publisher.published).To(BeEmpty())
		})

		It("should propagate an unknown recipient", func() {
			resolver.resolveError = internal.ErrRecipientNotFound

			_, err := service.RecordIntake(context.Background(), orgID, processedBy, dto)

			Expect(err).To(Equal(internal.ErrRecipientNotFound))
			Expect(repo.items).To(BeEmpty())
		})
	})

	Describe("MarkReturned", func() {
		It("should close an open item", func() {
			item := &mailitem.MailItem{OrganizationID: orgID, Status: mailitem.StatusNotified}
			Expect(repo.Create(item)).To(Succeed())

			updated, err := service.MarkReturned(orgID, item.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(mailitem.StatusReturnedToSender))
		})

		It("should conflict on an already closed item", func() {
			item := &mailitem.MailItem{OrganizationID: orgID, Status: mailitem.StatusPickedUp}
			Expect(repo.Create(item)).To(Succeed())

			_, err := service.MarkReturned(orgID, item.ID)

			Expect(err).To(Equal(internal.ErrItemClosed))
			Expect(item.Status).To(Equal(mailitem.StatusPickedUp))
		})

		It("should return not found for an item in another organization", func() {
			item := &mailitem.MailItem{OrganizationID: 99, Status: mailitem.StatusPending}
			Expect(repo.Create(item)).To(Succeed())

			_, err := service.MarkReturned(orgID, item.ID)

			Expect(err).To(Equal(internal.ErrMailItemNotFound))
		})
	})

	Describe("MarkLost", func() {
		It("should move a pending item to lost", func() {
			item := &mailitem.MailItem{OrganizationID: orgID, Status: mailitem.StatusPending}
			Expect(repo.Create(item)).To(Succeed())

			updated, err := service.MarkLost(orgID, item.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(mailitem.StatusLost))
		})
	})

	Describe("ListPending", func() {
		It("should wrap results in a normalized page", func() {
			Expect(repo.Create(&mailitem.MailItem{OrganizationID: orgID, Status: mailitem.StatusPending})).To(Succeed())
			Expect(repo.Create(&mailitem.MailItem{OrganizationID: orgID, Status: mailitem.StatusPickedUp})).To(Succeed())

			page, err := service.ListPending(orgID, mailitem.ListPendingQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
			Expect(page.Page).To(Equal(1))
			Expect(page.PageSize).To(Equal(20))
		})
	})
})

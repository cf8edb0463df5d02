package audit_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parceldesk/mailroom/internal/audit"
	"github.com/parceldesk/mailroom/internal/core/events"
)

func TestAuditService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Service Suite")
}

// Mock repository for testing
type mockAuditRepository struct {
	entries     []*audit.Entry
	lastLimit   int
	createError error
}

func (m *mockAuditRepository) Create(e *audit.Entry) error {
	if m.createError != nil {
		return m.createError
	}
	e.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepository) ListByOrganization(orgID int64, limit int) ([]*audit.Entry, error) {
	m.lastLimit = limit
	var result []*audit.Entry
	for _, e := range m.entries {
		if e.OrganizationID == orgID {
			result = append(result, e)
		}
	}
	return result, nil
}

var _ = Describe("Audit Service", func() {
	var (
		repo    *mockAuditRepository
		service *audit.Service
		bus     *events.EventBus
		logger  *slog.Logger
	)

	BeforeEach(func() {
		repo = &mockAuditRepository{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(repo, logger)
		bus = events.NewEventBus(logger)
		service.RegisterSubscriptions(bus)
	})

	Describe("admin action subscription", func() {
		It("should turn an admin action event into an audit entry", func() {
			event := events.NewAdminActionEvent(1, 42, "create", "mail_room", 5,
				map[string]interface{}{"name": "Main Lobby"})

			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			Expect(repo.entries).To(HaveLen(1))
			entry := repo.entries[0]
			Expect(entry.OrganizationID).To(Equal(int64(1)))
			Expect(entry.ActorID).To(Equal(int64(42)))
			Expect(entry.Action).To(Equal("create"))
			Expect(entry.Entity).To(Equal("mail_room"))
			Expect(entry.EntityID).To(Equal(int64(5)))
			Expect(string(entry.Detail)).To(ContainSubstring("Main Lobby"))
			Expect(entry.CreatedAt).To(Equal(event.OccurredAt()))
		})

		It("should record entries without detail", func() {
			event := events.NewAdminActionEvent(1, 42, "deactivate", "mail_room", 5, nil)

			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			Expect(repo.entries).To(HaveLen(1))
			Expect(repo.entries[0].Detail).To(BeNil())
		})

		It("should ignore non-admin events on the bus", func() {
			event := events.NewMailItemReceivedEvent(10, 1, 1, false)

			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			Expect(repo.entries).To(BeEmpty())
		})

		It("should surface a repository failure to the bus", func() {
			repo.createError = context.DeadlineExceeded
			event := events.NewAdminActionEvent(1, 42, "create", "organization", 1, nil)

			err := bus.PublishSync(context.Background(), event)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListByOrganization", func() {
		It("should default the limit and cap oversized requests", func() {
			_, err := service.ListByOrganization(1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(100))

			_, err = service.ListByOrganization(1, 9999)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(100))

			_, err = service.ListByOrganization(1, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(25))
		})
	})
})

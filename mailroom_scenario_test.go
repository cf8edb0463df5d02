package main_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/insights"
	insightsPostgres "github.com/parceldesk/mailroom/internal/insights/postgres"
	"github.com/parceldesk/mailroom/internal/mailitem"
	mailitemPostgres "github.com/parceldesk/mailroom/internal/mailitem/postgres"
	"github.com/parceldesk/mailroom/internal/notification"
	notificationPostgres "github.com/parceldesk/mailroom/internal/notification/postgres"
	"github.com/parceldesk/mailroom/internal/pickup"
	pickupPostgres "github.com/parceldesk/mailroom/internal/pickup/postgres"
	recipientPostgres "github.com/parceldesk/mailroom/internal/recipient/postgres"
)

type scenarioUserProfile struct {
	ID             int64  `gorm:"primaryKey"`
	OrganizationID int64  `gorm:"column:organization_id;not null"`
	FirstName      string `gorm:"column:first_name;not null"`
	LastName       string `gorm:"column:last_name;not null"`
	Email          string `gorm:"not null"`
	Role           string `gorm:"default:recipient"`
	IsActive       bool   `gorm:"column:is_active;default:true"`
}

func (scenarioUserProfile) TableName() string { return "user_profiles" }

type scenarioExternalPerson struct {
	ID             int64  `gorm:"primaryKey"`
	OrganizationID int64  `gorm:"column:organization_id;not null"`
	FirstName      string `gorm:"column:first_name;not null"`
	LastName       string `gorm:"column:last_name;not null"`
}

func (scenarioExternalPerson) TableName() string { return "external_people" }

type scenarioMailItem struct {
	ID                  int64      `gorm:"primaryKey"`
	OrganizationID      int64      `gorm:"column:organization_id;not null"`
	MailRoomID          int64      `gorm:"column:mail_room_id;not null"`
	RecipientID         *int64     `gorm:"column:recipient_id"`
	ExternalRecipientID *int64     `gorm:"column:external_recipient_id"`
	TrackingNumber      *string    `gorm:"column:tracking_number"`
	Carrier             string     `gorm:"not null"`
	MailType            string     `gorm:"column:mail_type;not null"`
	Description         string     `gorm:"column:description"`
	IsPriority          bool       `gorm:"column:is_priority;default:false"`
	Status              string     `gorm:"default:pending"`
	ReceivedAt          time.Time  `gorm:"column:received_at"`
	NotifiedAt          *time.Time `gorm:"column:notified_at"`
	PickedUpAt          *time.Time `gorm:"column:picked_up_at"`
	ProcessedByID       *int64     `gorm:"column:processed_by_id"`
	LabelImage          *string    `gorm:"column:label_image"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (scenarioMailItem) TableName() string { return "mail_items" }

type scenarioPickup struct {
	ID                  int64     `gorm:"primaryKey"`
	OrganizationID      int64     `gorm:"column:organization_id;not null"`
	MailItemID          int64     `gorm:"column:mail_item_id;not null"`
	RecipientID         *int64    `gorm:"column:recipient_id"`
	ExternalRecipientID *int64    `gorm:"column:external_recipient_id"`
	ProcessedByID       int64     `gorm:"column:processed_by_id;not null"`
	PickedUpAt          time.Time `gorm:"column:picked_up_at"`
	Signature           string    `gorm:"not null"`
	Photo               *string   `gorm:"column:photo"`
	Notes               *string   `gorm:"column:notes"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (scenarioPickup) TableName() string { return "pickups" }

type scenarioNotification struct {
	ID                  int64      `gorm:"primaryKey"`
	OrganizationID      int64      `gorm:"column:organization_id;not null"`
	MailItemID          int64      `gorm:"column:mail_item_id;not null"`
	RecipientID         *int64     `gorm:"column:recipient_id"`
	ExternalRecipientID *int64     `gorm:"column:external_recipient_id"`
	Channel             string     `gorm:"not null"`
	Destination         string     `gorm:"column:destination"`
	Message             string     `gorm:"column:message"`
	DeliveryStatus      string     `gorm:"column:delivery_status;default:queued"`
	SentAt              *time.Time `gorm:"column:sent_at"`
	DeliveredAt         *time.Time `gorm:"column:delivered_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (scenarioNotification) TableName() string { return "notifications" }

// The full lifecycle against one database: intake lands pending, the first
// notification flips to notified, the pickup closes the item, and the
// dashboard reflects each step.
var _ = Describe("Mail item lifecycle", func() {
	var (
		db *gorm.DB

		mailItemRepo        *mailitemPostgres.MailItemRepository
		mailItemService     *mailitem.Service
		notificationService *notification.Service
		pickupService       *pickup.Service
		insightsService     *insights.Service

		orgID       int64 = 1
		processedBy int64 = 42
		recipientID int64 = 7
		ctx         context.Context
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&scenarioUserProfile{},
			&scenarioExternalPerson{},
			&scenarioMailItem{},
			&scenarioPickup{},
			&scenarioNotification{},
		)
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)

		mailItemRepo = mailitemPostgres.NewMailItemRepository(db)
		recipientRepo := recipientPostgres.NewRecipientRepository(db)
		mailItemService = mailitem.NewService(mailItemRepo, recipientRepo, bus, logger)
		notificationService = notification.NewService(notificationPostgres.NewNotificationRepository(db), mailItemRepo, bus, logger)
		pickupService = pickup.NewService(pickupPostgres.NewPickupRepository(db), mailItemRepo, bus, logger)
		insightsService = insights.NewService(insightsPostgres.NewInsightsRepository(db), logger)

		Expect(db.Create(&scenarioUserProfile{
			ID:             recipientID,
			OrganizationID: orgID,
			FirstName:      "Ava",
			LastName:       "Chen",
			Email:          "ava@acme.test",
			Role:           "recipient",
			IsActive:       true,
		}).Error).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should walk an item from intake through notification to pickup", func() {
		item, err := mailItemService.RecordIntake(ctx, orgID, processedBy, mailitem.IntakeDTO{
			MailRoomID:  1,
			RecipientID: &recipientID,
			Carrier:     mailitem.CarrierUPS,
			MailType:    mailitem.TypePackage,
			Description: "Laptop delivery",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(item.Status).To(Equal(mailitem.StatusPending))

		stats, err := insightsService.DashboardStats(ctx, insights.Filter{OrganizationID: orgID})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.PendingCount).To(Equal(int64(1)))
		Expect(stats.DeliveredToday).To(BeZero())

		n, err := notificationService.RecordNotification(ctx, orgID, notification.CreateNotificationDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Channel:     notification.ChannelEmail,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(n.DeliveryStatus).To(Equal(notification.DeliveryStatusQueued))

		notified, err := mailItemService.GetMailItem(orgID, item.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(notified.Status).To(Equal(mailitem.StatusNotified))
		Expect(notified.NotifiedAt).NotTo(BeNil())

		// A reminder appends a second row without touching the status.
		_, err = notificationService.RecordNotification(ctx, orgID, notification.CreateNotificationDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Channel:     notification.ChannelSMS,
		})
		Expect(err).NotTo(HaveOccurred())

		rows, err := notificationService.ListByMailItem(orgID, item.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))

		stillNotified, err := mailItemService.GetMailItem(orgID, item.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stillNotified.Status).To(Equal(mailitem.StatusNotified))

		p, err := pickupService.CreatePickup(ctx, orgID, processedBy, pickup.CreatePickupDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Signature:   "data:image/png;base64,iVBOR",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.ID).NotTo(BeZero())

		picked, err := mailItemService.GetMailItem(orgID, item.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(picked.Status).To(Equal(mailitem.StatusPickedUp))
		Expect(picked.PickedUpAt).NotTo(BeNil())

		stats, err = insightsService.DashboardStats(ctx, insights.Filter{OrganizationID: orgID})
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.PendingCount).To(BeZero())
		Expect(stats.DeliveredToday).To(Equal(int64(1)))
	})

	It("should reject a second pickup and further notifications once closed", func() {
		item, err := mailItemService.RecordIntake(ctx, orgID, processedBy, mailitem.IntakeDTO{
			MailRoomID:  1,
			RecipientID: &recipientID,
			Carrier:     mailitem.CarrierFedEx,
			MailType:    mailitem.TypeLetter,
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = pickupService.CreatePickup(ctx, orgID, processedBy, pickup.CreatePickupDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Signature:   "sig-1",
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = pickupService.CreatePickup(ctx, orgID, processedBy, pickup.CreatePickupDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Signature:   "sig-2",
		})
		Expect(err).To(Equal(internal.ErrAlreadyPickedUp))

		_, err = notificationService.RecordNotification(ctx, orgID, notification.CreateNotificationDTO{
			MailItemID:  item.ID,
			RecipientID: &recipientID,
			Channel:     notification.ChannelEmail,
		})
		Expect(err).To(Equal(internal.ErrItemClosed))

		pickups, err := pickupService.ListByMailItem(orgID, item.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(pickups).To(HaveLen(1))
	})
})

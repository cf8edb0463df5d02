package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	internal "github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"github.com/parceldesk/mailroom/internal/pickup"
)

func TestPickupRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PickupRepository Suite")
}

type SQLitePickup struct {
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

func (SQLitePickup) TableName() string {
	return "pickups"
}

type SQLiteMailItem struct {
	ID                  int64      `gorm:"primaryKey"`
	OrganizationID      int64      `gorm:"column:organization_id;not null"`
	MailRoomID          int64      `gorm:"column:mail_room_id;not null"`
	RecipientID         *int64     `gorm:"column:recipient_id"`
	ExternalRecipientID *int64     `gorm:"column:external_recipient_id"`
	Carrier             string     `gorm:"not null"`
	MailType            string     `gorm:"column:mail_type;not null"`
	Status              string     `gorm:"default:pending"`
	ReceivedAt          time.Time  `gorm:"column:received_at"`
	NotifiedAt          *time.Time `gorm:"column:notified_at"`
	PickedUpAt          *time.Time `gorm:"column:picked_up_at"`
	ProcessedByID       *int64     `gorm:"column:processed_by_id"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (SQLiteMailItem) TableName() string {
	return "mail_items"
}

var _ = Describe("PickupRepository", func() {
	var (
		db   *gorm.DB
		repo pickup.Repository

		orgID       int64 = 1
		recipientID int64 = 7
	)

	newPickup := func(mailItemID int64) *pickup.Pickup {
		return &pickup.Pickup{
			OrganizationID: orgID,
			MailItemID:     mailItemID,
			RecipientID:    &recipientID,
			ProcessedByID:  42,
			PickedUpAt:     time.Now(),
			Signature:      "data:image/png;base64,iVBOR",
			CreatedAt:      time.Now(),
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLitePickup{}, &SQLiteMailItem{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewPickupRepository(db)

		Expect(db.Create(&SQLiteMailItem{
			ID:             10,
			OrganizationID: orgID,
			MailRoomID:     1,
			RecipientID:    &recipientID,
			Carrier:        "ups",
			MailType:       "package",
			Status:         "notified",
			ReceivedAt:     time.Now().Add(-24 * time.Hour),
		}).Error).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("CreatePickup", func() {
		It("should insert the pickup and transition the mail item together", func() {
			p := newPickup(10)

			Expect(repo.CreatePickup(p)).To(Succeed())
			Expect(p.ID).NotTo(BeZero())

			var item SQLiteMailItem
			Expect(db.First(&item, 10).Error).NotTo(HaveOccurred())
			Expect(item.Status).To(Equal(mailitem.StatusPickedUp))
			Expect(item.PickedUpAt).NotTo(BeNil())
			Expect(item.ProcessedByID).NotTo(BeNil())
			Expect(*item.ProcessedByID).To(Equal(int64(42)))
		})

		It("should reject a second pickup and roll back the insert", func() {
			Expect(repo.CreatePickup(newPickup(10))).To(Succeed())

			err := repo.CreatePickup(newPickup(10))
			Expect(err).To(Equal(internal.ErrAlreadyPickedUp))

			var count int64
			Expect(db.Model(&SQLitePickup{}).Where("mail_item_id = ?", 10).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should reject a pickup for a closed mail item without persisting anything", func() {
			Expect(db.Model(&SQLiteMailItem{}).Where("id = ?", 10).
				Update("status", mailitem.StatusReturnedToSender).Error).NotTo(HaveOccurred())

			err := repo.CreatePickup(newPickup(10))
			Expect(err).To(Equal(internal.ErrAlreadyPickedUp))

			var count int64
			Expect(db.Model(&SQLitePickup{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(0)))
		})

		It("should not match a mail item in another organization", func() {
			p := newPickup(10)
			p.OrganizationID = 99

			err := repo.CreatePickup(p)
			Expect(err).To(Equal(internal.ErrAlreadyPickedUp))
		})
	})

	Describe("GetByID", func() {
		It("should scope reads to the organization", func() {
			p := newPickup(10)
			Expect(repo.CreatePickup(p)).To(Succeed())

			got, err := repo.GetByID(orgID, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.MailItemID).To(Equal(int64(10)))

			_, err = repo.GetByID(99, p.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePickupNotFound))
		})
	})

	Describe("ListByMailItem", func() {
		It("should return pickups for the mail item", func() {
			p := newPickup(10)
			Expect(repo.CreatePickup(p)).To(Succeed())

			pickups, err := repo.ListByMailItem(orgID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(pickups).To(HaveLen(1))
			Expect(pickups[0].ID).To(Equal(p.ID))
		})

		It("should return an empty slice for an item with no pickups", func() {
			pickups, err := repo.ListByMailItem(orgID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(pickups).To(BeEmpty())
		})
	})
})

package mailitem_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parceldesk/mailroom/internal/mailitem"
)

func TestMailItem(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MailItem Suite")
}

var _ = Describe("Status lifecycle", func() {
	Describe("CanTransition", func() {
		It("should allow pending to notified", func() {
			Expect(mailitem.CanTransition(mailitem.StatusPending, mailitem.StatusNotified)).To(BeTrue())
		})

		It("should allow pending and notified to picked_up", func() {
			Expect(mailitem.CanTransition(mailitem.StatusPending, mailitem.StatusPickedUp)).To(BeTrue())
			Expect(mailitem.CanTransition(mailitem.StatusNotified, mailitem.StatusPickedUp)).To(BeTrue())
		})

		It("should allow open items to move to returned_to_sender and lost", func() {
			for _, from := range mailitem.OpenStatuses {
				Expect(mailitem.CanTransition(from, mailitem.StatusReturnedToSender)).To(BeTrue())
				Expect(mailitem.CanTransition(from, mailitem.StatusLost)).To(BeTrue())
			}
		})

		It("should not allow notified back to pending", func() {
			Expect(mailitem.CanTransition(mailitem.StatusNotified, mailitem.StatusPending)).To(BeFalse())
		})

		It("should not allow any transition out of a terminal status", func() {
			for _, from := range []string{
				mailitem.StatusPickedUp,
				mailitem.StatusReturnedToSender,
				mailitem.StatusLost,
				mailitem.StatusOther,
			} {
				Expect(mailitem.CanTransition(from, mailitem.StatusPending)).To(BeFalse())
				Expect(mailitem.CanTransition(from, mailitem.StatusPickedUp)).To(BeFalse())
			}
		})
	})

	Describe("IsTerminal", func() {
		It("should report picked_up, returned_to_sender, lost and other as terminal", func() {
			Expect(mailitem.IsTerminal(mailitem.StatusPickedUp)).To(BeTrue())
			Expect(mailitem.IsTerminal(mailitem.StatusReturnedToSender)).To(BeTrue())
			Expect(mailitem.IsTerminal(mailitem.StatusLost)).To(BeTrue())
			Expect(mailitem.IsTerminal(mailitem.StatusOther)).To(BeTrue())
		})

		It("should report open statuses as non-terminal", func() {
			Expect(mailitem.IsTerminal(mailitem.StatusPending)).To(BeFalse())
			Expect(mailitem.IsTerminal(mailitem.StatusNotified)).To(BeFalse())
		})
	})

	Describe("MarkNotified", func() {
		It("should flip a pending item to notified and stamp notified_at", func() {
			item := &mailitem.MailItem{Status: mailitem.StatusPending}
			at := time.Now()

			item.MarkNotified(at)

			Expect(item.Status).To(Equal(mailitem.StatusNotified))
			Expect(item.NotifiedAt).NotTo(BeNil())
			Expect(*item.NotifiedAt).To(Equal(at))
		})

		It("should be a no-op on an already notified item", func() {
			first := time.Now().Add(-time.Hour)
			item := &mailitem.MailItem{Status: mailitem.StatusNotified, NotifiedAt: &first}

			item.MarkNotified(time.Now())

			Expect(item.Status).To(Equal(mailitem.StatusNotified))
			Expect(*item.NotifiedAt).To(Equal(first))
		})

		It("should be a no-op on a terminal item", func() {
			item := &mailitem.MailItem{Status: mailitem.StatusPickedUp}

			item.MarkNotified(time.Now())

			Expect(item.Status).To(Equal(mailitem.StatusPickedUp))
			Expect(item.NotifiedAt).To(BeNil())
		})
	})

	Describe("IsOpen", func() {
		It("should be true for pending and notified only", func() {
			Expect((&mailitem.MailItem{Status: mailitem.StatusPending}).IsOpen()).To(BeTrue())
			Expect((&mailitem.MailItem{Status: mailitem.StatusNotified}).IsOpen()).To(BeTrue())
			Expect((&mailitem.MailItem{Status: mailitem.StatusPickedUp}).IsOpen()).To(BeFalse())
			Expect((&mailitem.MailItem{Status: mailitem.StatusLost}).IsOpen()).To(BeFalse())
		})
	})
})

var _ = Describe("ListPendingQuery", func() {
	Describe("Normalize", func() {
		It("should default page and page size", func() {
			q := mailitem.ListPendingQuery{}
			q.Normalize()
			Expect(q.Page).To(Equal(1))
			Expect(q.PageSize).To(Equal(20))
		})

		It("should clamp an oversized page size back to the default", func() {
			q := mailitem.ListPendingQuery{Page: 2, PageSize: 500}
			q.Normalize()
			Expect(q.Page).To(Equal(2))
			Expect(q.PageSize).To(Equal(20))
		})

		It("should keep valid values", func() {
			q := mailitem.ListPendingQuery{Page: 3, PageSize: 50}
			q.Normalize()
			Expect(q.Page).To(Equal(3))
			Expect(q.PageSize).To(Equal(50))
		})
	})
})

var _ = Describe("NewPage", func() {
	It("should compute start, end and total pages", func() {
		items := []*mailitem.MailItem{{ID: 1}, {ID: 2}, {ID: 3}}

		page := mailitem.NewPage(items, 23, 2, 10)

		Expect(page.Total).To(Equal(int64(23)))
		Expect(page.TotalPages).To(Equal(3))
		Expect(page.Start).To(Equal(11))
		Expect(page.End).To(Equal(13))
	})

	It("should zero start and end on an empty page", func() {
		page := mailitem.NewPage(nil, 0, 1, 20)

		Expect(page.Total).To(Equal(int64(0)))
		Expect(page.TotalPages).To(Equal(0))
		Expect(page.Start).To(Equal(0))
		Expect(page.End).To(Equal(0))
	})

	It("should handle a full last page", func() {
		items := []*mailitem.MailItem{{ID: 1}, {ID: 2}}

		page := mailitem.NewPage(items, 4, 2, 2)

		Expect(page.TotalPages).To(Equal(2))
		Expect(page.Start).To(Equal(3))
		Expect(page.End).To(Equal(4))
	})
})

var _ = Describe("IntakeDTO validation", func() {
	var recipientID int64 = 7

	It("should accept a valid intake with an internal recipient", func() {
		dto := mailitem.IntakeDTO{
			MailRoomID:  1,
			RecipientID: &recipientID,
			Carrier:     mailitem.CarrierUPS,
			MailType:    mailitem.TypePackage,
		}
		Expect(dto.Validate()).To(BeNil())
	})

	It("should reject when both recipient references are set", func() {
		var externalID int64 = 9
		dto := mailitem.IntakeDTO{
			MailRoomID:          1,
			RecipientID:         &recipientID,
			ExternalRecipientID: &externalID,
			Carrier:             mailitem.CarrierFedEx,
			MailType:            mailitem.TypeLetter,
		}
		Expect(dto.Validate()).NotTo(BeNil())
	})

	It("should reject when neither recipient reference is set", func() {
		dto := mailitem.IntakeDTO{
			MailRoomID: 1,
			Carrier:    mailitem.CarrierUSPS,
			MailType:   mailitem.TypePackage,
		}
		Expect(dto.Validate()).NotTo(BeNil())
	})

	It("should reject an unknown carrier", func() {
		dto := mailitem.IntakeDTO{
			MailRoomID:  1,
			RecipientID: &recipientID,
			Carrier:     "pigeon",
			MailType:    mailitem.TypePackage,
		}
		Expect(dto.Validate()).NotTo(BeNil())
	})

	It("should reject an unknown mail type", func() {
		dto := mailitem.IntakeDTO{
			MailRoomID:  1,
			RecipientID: &recipientID,
			Carrier:     mailitem.CarrierDHL,
			MailType:    "furniture",
		}
		Expect(dto.Validate()).NotTo(BeNil())
	})
})

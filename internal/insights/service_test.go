package insights_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parceldesk/mailroom/internal/insights"
	"github.com/parceldesk/mailroom/internal/mailitem"
)

func TestInsightsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insights Service Suite")
}

// Mock repository for testing
type mockInsightsRepository struct {
	pendingCount       int64
	priorityCount      int64
	deliveredToday     int64
	deliveredYesterday int64
	agingCount         int64
	latestPending      *time.Time
	currentDays        []float64
	priorDays          []float64
	tallies            []insights.TypeTally
	receivedTimes      []time.Time
	err                error
}

func (m *mockInsightsRepository) PendingCount(f insights.Filter) (int64, error) {
	return m.pendingCount, m.err
}

func (m *mockInsightsRepository) PriorityCount(f insights.Filter) (int64, error) {
	return m.priorityCount, m.err
}

func (m *mockInsightsRepository) DeliveredCount(f insights.Filter, from, to time.Time) (int64, error) {
	if to.After(time.Now().Add(-time.Minute)) {
		return m.deliveredToday, m.err
	}
	return m.deliveredYesterday, m.err
}

func (m *mockInsightsRepository) AgingCount(f insights.Filter, cutoff time.Time) (int64, error) {
	return m.agingCount, m.err
}

func (m *mockInsightsRepository) LatestPendingReceivedAt(f insights.Filter) (*time.Time, error) {
	return m.latestPending, m.err
}

func (m *mockInsightsRepository) ProcessingDays(f insights.Filter, from, to time.Time) ([]float64, error) {
	if to.After(time.Now().Add(-time.Minute)) {
		return m.currentDays, m.err
	}
	return m.priorDays, m.err
}

func (m *mockInsightsRepository) CountByMailType(f insights.Filter) ([]insights.TypeTally, error) {
	return m.tallies, m.err
}

func (m *mockInsightsRepository) ReceivedTimes(f insights.Filter) ([]time.Time, error) {
	return m.receivedTimes, m.err
}

var _ = Describe("Insights Service", func() {
	var (
		repo    *mockInsightsRepository
		service *insights.Service
		filter  insights.Filter
	)

	BeforeEach(func() {
		repo = &mockInsightsRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = insights.NewService(repo, logger)
		filter = insights.Filter{OrganizationID: 1}
	})

	Describe("DashboardStats", func() {
		It("should return all zeros for an empty organization", func() {
			stats, err := service.DashboardStats(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.PendingCount).To(BeZero())
			Expect(stats.PriorityCount).To(BeZero())
			Expect(stats.DeliveredToday).To(BeZero())
			Expect(stats.DeliveredDiff).To(BeZero())
			Expect(stats.AgingCount).To(BeZero())
			Expect(stats.OldestDays).To(BeZero())
			Expect(stats.AvgProcessingDays).To(BeZero())
			Expect(stats.ProcessingDiff).To(BeZero())
		})

		It("should join the aggregates", func() {
			latest := time.Now().AddDate(0, 0, -3)
			repo.pendingCount = 12
			repo.priorityCount = 4
			repo.deliveredToday = 6
			repo.deliveredYesterday = 9
			repo.agingCount = 2
			repo.latestPending = &latest
			repo.currentDays = []float64{1, 2, 3}
			repo.priorDays = []float64{3, 4}

			stats, err := service.DashboardStats(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.PendingCount).To(Equal(int64(12)))
			Expect(stats.PriorityCount).To(Equal(int64(4)))
			Expect(stats.DeliveredToday).To(Equal(int64(6)))
			Expect(stats.DeliveredDiff).To(Equal(int64(-3)))
			Expect(stats.AgingCount).To(Equal(int64(2)))
			Expect(stats.OldestDays).To(Equal(3))
			Expect(stats.AvgProcessingDays).To(Equal(2.0))
			Expect(stats.ProcessingDiff).To(Equal(-1.5))
		})

		It("should leave the processing diff at zero when a window is empty", func() {
			repo.currentDays = []float64{2, 2}

			stats, err := service.DashboardStats(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.AvgProcessingDays).To(Equal(2.0))
			Expect(stats.ProcessingDiff).To(BeZero())
		})

		It("should propagate an aggregate failure", func() {
			repo.err = context.DeadlineExceeded

			_, err := service.DashboardStats(context.Background(), filter)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Distribution", func() {
		It("should return an empty slice for an empty organization", func() {
			distribution, err := service.Distribution(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(distribution).NotTo(BeNil())
			Expect(distribution).To(BeEmpty())
		})

		It("should compute percentage shares that sum to 100", func() {
			repo.tallies = []insights.TypeTally{
				{MailType: mailitem.TypePackage, Count: 6},
				{MailType: mailitem.TypeLetter, Count: 3},
				{MailType: mailitem.TypeOversized, Count: 1},
			}

			distribution, err := service.Distribution(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(distribution).To(HaveLen(3))
			Expect(distribution[0].Percentage).To(Equal(60.0))
			Expect(distribution[1].Percentage).To(Equal(30.0))
			Expect(distribution[2].Percentage).To(Equal(10.0))

			var sum float64
			for _, d := range distribution {
				sum += d.Percentage
			}
			Expect(sum).To(BeNumerically("~", 100, 0.3))
		})

		It("should assign a display color per mail type", func() {
			repo.tallies = []insights.TypeTally{
				{MailType: mailitem.TypePackage, Count: 1},
				{MailType: "unknown", Count: 1},
			}

			distribution, err := service.Distribution(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(distribution[0].Color).To(Equal("#3b82f6"))
			Expect(distribution[1].Color).To(Equal(insights.ColorForType(mailitem.TypeOther)))
		})
	})

	Describe("BusiestPeriods", func() {
		It("should return full zeroed buckets with no top periods when empty", func() {
			periods, err := service.BusiestPeriods(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(periods.Days).To(HaveLen(7))
			Expect(periods.Hours).To(HaveLen(24))
			Expect(periods.TopDay).To(BeNil())
			Expect(periods.TopHour).To(BeNil())
		})

		It("should bucket intake times by weekday and hour", func() {
			// A Monday and a Tuesday, both at 09:xx local time.
			monday := time.Date(2025, 6, 2, 9, 15, 0, 0, time.Local)
			tuesday := time.Date(2025, 6, 3, 9, 45, 0, 0, time.Local)
			repo.receivedTimes = []time.Time{monday, monday.Add(10 * time.Minute), tuesday}

			periods, err := service.BusiestPeriods(context.Background(), filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(periods.Days[int(time.Monday)].Count).To(Equal(int64(2)))
			Expect(periods.Days[int(time.Tuesday)].Count).To(Equal(int64(1)))

			Expect(periods.TopDay).NotTo(BeNil())
			Expect(periods.TopDay.Label).To(Equal("Monday"))
			Expect(periods.TopHour).NotTo(BeNil())
			Expect(periods.TopHour.Label).To(Equal("09:00"))
			Expect(periods.TopHour.Count).To(Equal(int64(3)))
			Expect(periods.TopHour.Percentage).To(Equal(100.0))
		})
	})
})

package insights

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// Repository exposes the scoped aggregates the dashboard is built from. Counts
// and grouped tallies run in SQL; time bucketing happens in the service.
type Repository interface {
	PendingCount(f Filter) (int64, error)
	PriorityCount(f Filter) (int64, error)
	DeliveredCount(f Filter, from, to time.Time) (int64, error)
	AgingCount(f Filter, cutoff time.Time) (int64, error)
	LatestPendingReceivedAt(f Filter) (*time.Time, error)
	ProcessingDays(f Filter, from, to time.Time) ([]float64, error)
	CountByMailType(f Filter) ([]TypeTally, error)
	ReceivedTimes(f Filter) ([]time.Time, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// DashboardStats fans the aggregate queries out concurrently and joins the
// results. Every aggregate is zero-row safe; an empty organization yields all
// zeros.
func (s *Service) DashboardStats(ctx context.Context, f Filter) (*DashboardStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	agingCutoff := now.AddDate(0, 0, -AgingThresholdDays)
	windowStart := now.AddDate(0, 0, -ProcessingWindowDays)
	priorWindowStart := now.AddDate(0, 0, -2*ProcessingWindowDays)

	stats := &DashboardStats{}
	var deliveredYesterday int64
	var latest *time.Time
	var currentDays, priorDays []float64

	tasks := []func() error{
		func() (err error) { stats.PendingCount, err = s.repo.PendingCount(f); return },
		func() (err error) { stats.PriorityCount, err = s.repo.PriorityCount(f); return },
		func() (err error) { stats.DeliveredToday, err = s.repo.DeliveredCount(f, todayStart, now); return },
		func() (err error) { deliveredYesterday, err = s.repo.DeliveredCount(f, yesterdayStart, todayStart); return },
		func() (err error) { stats.AgingCount, err = s.repo.AgingCount(f, agingCutoff); return },
		func() (err error) { latest, err = s.repo.LatestPendingReceivedAt(f); return },
		func() (err error) { currentDays, err = s.repo.ProcessingDays(f, windowStart, now); return },
		func() (err error) { priorDays, err = s.repo.ProcessingDays(f, priorWindowStart, windowStart); return },
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func() error) {
			defer wg.Done()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.logger.Error("dashboard aggregate failed", "error", err, "org_id", f.OrganizationID)
			return nil, err
		}
	}

	stats.DeliveredDiff = stats.DeliveredToday - deliveredYesterday

	if latest != nil {
		stats.OldestDays = int(now.Sub(*latest).Hours() / 24)
	}

	currentAvg := mean(currentDays)
	priorAvg := mean(priorDays)
	stats.AvgProcessingDays = round1(currentAvg)
	if len(currentDays) > 0 && len(priorDays) > 0 {
		stats.ProcessingDiff = round1(currentAvg - priorAvg)
	}

	return stats, nil
}

// Distribution returns per-type counts over all recorded items with percentage
// shares. Empty set yields an empty slice, never nil percentages.
func (s *Service) Distribution(ctx context.Context, f Filter) ([]TypeDistribution, error) {
	tallies, err := s.repo.CountByMailType(f)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, t := range tallies {
		total += t.Count
	}

	distribution := make([]TypeDistribution, 0, len(tallies))
	for _, t := range tallies {
		d := TypeDistribution{
			MailType: t.MailType,
			Count:    t.Count,
			Color:    ColorForType(t.MailType),
		}
		if total > 0 {
			d.Percentage = round1(float64(t.Count) * 100 / float64(total))
		}
		distribution = append(distribution, d)
	}
	return distribution, nil
}

// BusiestPeriods buckets intake times by day of week and hour of day. The
// bucketing runs here rather than in SQL so the same query works on every
// backing database.
func (s *Service) BusiestPeriods(ctx context.Context, f Filter) (*BusiestPeriods, error) {
	times, err := s.repo.ReceivedTimes(f)
	if err != nil {
		return nil, err
	}

	var dayCounts [7]int64
	var hourCounts [24]int64
	for _, t := range times {
		local := t.Local()
		dayCounts[int(local.Weekday())]++
		hourCounts[local.Hour()]++
	}
	total := int64(len(times))

	periods := &BusiestPeriods{
		Days:  make([]PeriodCount, 7),
		Hours: make([]PeriodCount, 24),
	}
	for i := 0; i < 7; i++ {
		periods.Days[i] = newPeriodCount(time.Weekday(i).String(), dayCounts[i], total)
	}
	for i := 0; i < 24; i++ {
		periods.Hours[i] = newPeriodCount(fmt.Sprintf("%02d:00", i), hourCounts[i], total)
	}

	if total > 0 {
		periods.TopDay = topPeriod(periods.Days)
		periods.TopHour = topPeriod(periods.Hours)
	}
	return periods, nil
}

func newPeriodCount(label string, count, total int64) PeriodCount {
	p := PeriodCount{Label: label, Count: count}
	if total > 0 {
		p.Percentage = round1(float64(count) * 100 / float64(total))
	}
	return p
}

func topPeriod(periods []PeriodCount) *PeriodCount {
	top := periods[0]
	for _, p := range periods[1:] {
		if p.Count > top.Count {
			top = p
		}
	}
	return &top
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

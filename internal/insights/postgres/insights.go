package postgres

import (
	"time"

	mailitemDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/mailitem"
	"github.com/parceldesk/mailroom/internal/insights"
	"github.com/parceldesk/mailroom/internal/mailitem"
	"gorm.io/gorm"
)

type InsightsRepository struct {
	db *gorm.DB
}

func NewInsightsRepository(db *gorm.DB) insights.Repository {
	return &InsightsRepository{db: db}
}

func (r *InsightsRepository) scoped(f insights.Filter) *gorm.DB {
	q := r.db.Model(&mailitemDatamodel.MailItem{}).
		Where("organization_id = ?", f.OrganizationID)
	if f.MailRoomID != nil {
		q = q.Where("mail_room_id = ?", *f.MailRoomID)
	}
	return q
}

func (r *InsightsRepository) PendingCount(f insights.Filter) (int64, error) {
	var count int64
	err := r.scoped(f).
		Where("status IN ?", mailitem.OpenStatuses).
		Count(&count).Error
	return count, err
}

func (r *InsightsRepository) PriorityCount(f insights.Filter) (int64, error) {
	var count int64
	err := r.scoped(f).
		Where("status IN ? AND is_priority = ?", mailitem.OpenStatuses, true).
		Count(&count).Error
	return count, err
}

func (r *InsightsRepository) DeliveredCount(f insights.Filter, from, to time.Time) (int64, error) {
	var count int64
	err := r.scoped(f).
		Where("status = ? AND picked_up_at >= ? AND picked_up_at < ?",
			mailitem.StatusPickedUp, from, to).
		Count(&count).Error
	return count, err
}

func (r *InsightsRepository) AgingCount(f insights.Filter, cutoff time.Time) (int64, error) {
	var count int64
	err := r.scoped(f).
		Where("status IN ? AND received_at < ?", mailitem.OpenStatuses, cutoff).
		Count(&count).Error
	return count, err
}

// LatestPendingReceivedAt reads the newest intake time in the pending set as
// an ordered single-row query rather than MAX(); an aggregate alias loses the
// column's declared type on some backing databases and breaks the time scan.
func (r *InsightsRepository) LatestPendingReceivedAt(f insights.Filter) (*time.Time, error) {
	var times []time.Time
	err := r.scoped(f).
		Where("status IN ?", mailitem.OpenStatuses).
		Order("received_at DESC").
		Limit(1).
		Pluck("received_at", &times).Error
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, nil
	}
	return &times[0], nil
}

// ProcessingDays returns the per-item days between intake and pickup for items
// picked up inside [from, to). The arithmetic happens here instead of in SQL so
// the query runs the same against every backing database.
func (r *InsightsRepository) ProcessingDays(f insights.Filter, from, to time.Time) ([]float64, error) {
	var rows []struct {
		ReceivedAt time.Time
		PickedUpAt time.Time
	}
	err := r.scoped(f).
		Where("status = ? AND picked_up_at >= ? AND picked_up_at < ?",
			mailitem.StatusPickedUp, from, to).
		Select("received_at, picked_up_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	days := make([]float64, len(rows))
	for i, row := range rows {
		days[i] = row.PickedUpAt.Sub(row.ReceivedAt).Hours() / 24
	}
	return days, nil
}

// CountByMailType tallies every item regardless of status; the distribution
// chart covers the full intake history, not just the open queue.
func (r *InsightsRepository) CountByMailType(f insights.Filter) ([]insights.TypeTally, error) {
	var tallies []insights.TypeTally
	err := r.scoped(f).
		Select("mail_type, COUNT(*) AS count").
		Group("mail_type").
		Order("count DESC").
		Scan(&tallies).Error
	return tallies, err
}

func (r *InsightsRepository) ReceivedTimes(f insights.Filter) ([]time.Time, error) {
	var times []time.Time
	err := r.scoped(f).
		Pluck("received_at", &times).Error
	return times, err
}

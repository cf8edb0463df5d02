package insights

import "github.com/parceldesk/mailroom/internal/mailitem"

// Filter scopes every aggregate to one organization, optionally narrowed to a
// single mail room.
type Filter struct {
	OrganizationID int64
	MailRoomID     *int64
}

// AgingThresholdDays is how long an item can sit in the pending set before the
// dashboard counts it as aging.
const AgingThresholdDays = 5

// ProcessingWindowDays is the trailing window for the average processing time,
// compared against the window immediately before it.
const ProcessingWindowDays = 14

type DashboardStats struct {
	PendingCount      int64   `json:"pending_count"`
	PriorityCount     int64   `json:"priority_count"`
	DeliveredToday    int64   `json:"delivered_today"`
	DeliveredDiff     int64   `json:"delivered_diff"`
	AgingCount        int64   `json:"aging_count"`
	OldestDays        int     `json:"oldest_days"`
	AvgProcessingDays float64 `json:"avg_processing_days"`
	ProcessingDiff    float64 `json:"processing_diff"`
}

type TypeTally struct {
	MailType string `json:"mail_type"`
	Count    int64  `json:"count"`
}

type TypeDistribution struct {
	MailType   string  `json:"mail_type"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type PeriodCount struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type BusiestPeriods struct {
	Days    []PeriodCount `json:"days"`
	Hours   []PeriodCount `json:"hours"`
	TopDay  *PeriodCount  `json:"top_day,omitempty"`
	TopHour *PeriodCount  `json:"top_hour,omitempty"`
}

// typeColors are the display colors the dashboard assigns per mail type.
var typeColors = map[string]string{
	mailitem.TypePackage:    "#3b82f6",
	mailitem.TypeLetter:     "#10b981",
	mailitem.TypeOversized:  "#f59e0b",
	mailitem.TypePerishable: "#ef4444",
	mailitem.TypeOther:      "#6b7280",
}

func ColorForType(mailType string) string {
	if color, ok := typeColors[mailType]; ok {
		return color
	}
	return typeColors[mailitem.TypeOther]
}

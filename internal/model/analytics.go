package model

import "time"

// Period identifies the calendar bucket size used when grouping analytics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Valid reports whether p is one of the supported period types.
func (p Period) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// AnalyticsSnapshot is one appended row of the periodic value time series.
// Rows are only written when a tracked figure actually moved, so the table
// stays sparse across no-op refreshes.
type AnalyticsSnapshot struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	PeriodType       Period    `json:"periodType"`
	TotalValue       float64   `json:"totalValue"`
	TotalProfit      float64   `json:"totalProfit"`
	RemainingBalance float64   `json:"remainingBalance"`
	ItemCount        int       `json:"itemCount"`
}

// PeriodSummary aggregates archive sales and snapshots over one calendar
// bucket (a week, month or year).
type PeriodSummary struct {
	Period           string  `json:"period"` // e.g. "2024-W05", "2024-01", "2024"
	AvgTotalValue    float64 `json:"avgTotalValue"`
	TotalProfit      float64 `json:"totalProfit"` // sum of realized profit in the bucket
	AvgRemaining     float64 `json:"avgRemaining"`
	AvgItemCount     float64 `json:"avgItemCount"`
	SnapshotCount    int     `json:"snapshotCount"`
	SoldInPeriod     int     `json:"soldInPeriod"`
	SaleProceedsSum  float64 `json:"saleProceedsSum"`
}

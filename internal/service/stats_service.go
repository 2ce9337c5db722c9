package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/store"
)

// snapshotEpsilon is the minimum movement (in currency units) of any
// tracked figure before a new analytics row is recorded. Refreshes that
// change nothing must not grow the table.
const snapshotEpsilon = 0.01

// StatsService derives summary figures from the ledger and maintains the
// periodic analytics time series.
type StatsService struct {
	store         *store.LedgerStore
	analyticsRepo *repository.AnalyticsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(ledger *store.LedgerStore, analyticsRepo *repository.AnalyticsRepository) *StatsService {
	return &StatsService{store: ledger, analyticsRepo: analyticsRepo}
}

// Snapshot computes the current summary: counters plus market values over
// the active inventory. Realized profit is the sales counter; unrealized is
// current minus purchase value of everything still held.
func (s *StatsService) Snapshot() model.Statistics {
	counters := s.store.Counters()
	items := s.store.Inventory()

	var purchaseValue, currentValue float64
	for _, item := range items {
		purchaseValue += item.PurchasePrice
		currentValue += item.CurrentPrice
	}

	unrealized := currentValue - purchaseValue

	return model.Statistics{
		TotalInvestment:     counters.TotalInvestment,
		RealizedProfit:      counters.TotalProfit,
		UnrealizedProfit:    unrealized,
		TotalProfit:         counters.TotalProfit + unrealized,
		RemainingBalance:    counters.RemainingBalance,
		TotalFees:           counters.TotalFees,
		PurchaseMarketValue: purchaseValue,
		CurrentMarketValue:  currentValue,
		ItemCount:           len(items),
	}
}

// RecordSnapshot appends a row to the analytics time series, unless every
// tracked figure is within snapshotEpsilon of the last recorded row. The
// boolean reports whether a row was written.
func (s *StatsService) RecordSnapshot(now time.Time, period model.Period) (bool, error) {
	if !period.Valid() {
		return false, fmt.Errorf("%w: %s", apperrors.ErrInvalidPeriod, period)
	}

	stats := s.Snapshot()

	last, exists, err := s.analyticsRepo.Latest()
	if err != nil {
		return false, err
	}
	if exists &&
		math.Abs(last.TotalValue-stats.CurrentMarketValue) <= snapshotEpsilon &&
		math.Abs(last.TotalProfit-stats.TotalProfit) <= snapshotEpsilon &&
		math.Abs(last.RemainingBalance-stats.RemainingBalance) <= snapshotEpsilon &&
		last.ItemCount == stats.ItemCount {
		return false, nil
	}

	snap := model.AnalyticsSnapshot{
		ID:               uuid.New().String(),
		Date:             now,
		PeriodType:       period,
		TotalValue:       stats.CurrentMarketValue,
		TotalProfit:      stats.TotalProfit,
		RemainingBalance: stats.RemainingBalance,
		ItemCount:        stats.ItemCount,
	}
	if err := s.analyticsRepo.Insert(snap); err != nil {
		return false, err
	}
	return true, nil
}

// GroupByPeriod buckets the analytics series and the sold archive by
// calendar week, month or year. Snapshot figures are averaged per bucket;
// realized profit and proceeds are summed over the sales that closed in it.
func (s *StatsService) GroupByPeriod(period model.Period) ([]model.PeriodSummary, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidPeriod, period)
	}

	snapshots, err := s.analyticsRepo.List()
	if err != nil {
		return nil, err
	}

	type bucket struct {
		valueSum     float64
		remainingSum float64
		itemCountSum int
		snapshots    int
		profitSum    float64
		proceedsSum  float64
		soldCount    int
	}
	buckets := make(map[string]*bucket)
	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		return b
	}

	for _, snap := range snapshots {
		b := get(periodKey(snap.Date, period))
		b.valueSum += snap.TotalValue
		b.remainingSum += snap.RemainingBalance
		b.itemCountSum += snap.ItemCount
		b.snapshots++
	}

	for _, sold := range s.store.Archive() {
		b := get(periodKey(sold.SellTime, period))
		b.profitSum += sold.TotalProfit
		b.proceedsSum += sold.SellPrice + sold.ExtraIncome
		b.soldCount++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summaries := make([]model.PeriodSummary, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		summary := model.PeriodSummary{
			Period:          key,
			TotalProfit:     b.profitSum,
			SnapshotCount:   b.snapshots,
			SoldInPeriod:    b.soldCount,
			SaleProceedsSum: b.proceedsSum,
		}
		if b.snapshots > 0 {
			summary.AvgTotalValue = b.valueSum / float64(b.snapshots)
			summary.AvgRemaining = b.remainingSum / float64(b.snapshots)
			summary.AvgItemCount = float64(b.itemCountSum) / float64(b.snapshots)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// periodKey renders a timestamp into its calendar bucket label. The labels
// sort lexicographically in chronological order.
func periodKey(tm time.Time, period model.Period) string {
	switch period {
	case model.PeriodWeek:
		year, week := tm.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.PeriodMonth:
		return tm.Format("2006-01")
	default:
		return tm.Format("2006")
	}
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/testutil"
)

// TestStatsService_Snapshot tests the live summary computation.
//
// WHY: Every dashboard figure comes out of this one method. Realized and
// unrealized profit must stay separate, and market values must reflect the
// active inventory only.
func TestStatsService_Snapshot(t *testing.T) {
	t.Run("empty ledger yields counter values only", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.SeedCounter(t, db, "total_investment", 1000)
		testutil.SeedCounter(t, db, "remaining_amount", 1000)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		stats := engine.Stats.Snapshot()

		// Assert
		if stats.TotalInvestment != 1000 {
			t.Errorf("Expected investment 1000, got %v", stats.TotalInvestment)
		}
		if stats.ItemCount != 0 || stats.CurrentMarketValue != 0 || stats.TotalProfit != 0 {
			t.Errorf("Expected empty market figures, got %+v", stats)
		}
	})

	t.Run("combines realized counter with unrealized market movement", func(t *testing.T) {
		// Setup: bought at 100, now worth 130; past sales realized 50
		db := testutil.SetupTestDB(t)
		testutil.SeedCounter(t, db, "total_profit", 50)
		testutil.NewItem().WithPrice(100).WithCurrentPrice(130).Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		stats := engine.Stats.Snapshot()

		// Assert
		if stats.RealizedProfit != 50 {
			t.Errorf("Expected realized profit 50, got %v", stats.RealizedProfit)
		}
		if stats.UnrealizedProfit != 30 {
			t.Errorf("Expected unrealized profit 30, got %v", stats.UnrealizedProfit)
		}
		if stats.TotalProfit != 80 {
			t.Errorf("Expected total profit 80, got %v", stats.TotalProfit)
		}
		if stats.PurchaseMarketValue != 100 || stats.CurrentMarketValue != 130 {
			t.Errorf("Expected market values 100/130, got %v/%v", stats.PurchaseMarketValue, stats.CurrentMarketValue)
		}
		if stats.ItemCount != 1 {
			t.Errorf("Expected 1 item, got %d", stats.ItemCount)
		}
	})
}

// TestStatsService_RecordSnapshot tests the analytics append logic.
//
// WHY: The series must grow when the portfolio moves and must not grow when
// it does not; otherwise period averages get skewed by duplicate rows.
func TestStatsService_RecordSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("first snapshot is always recorded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		recorded, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-15 00:00:00"), model.PeriodWeek)
		if err != nil {
			t.Fatalf("RecordSnapshot() returned unexpected error: %v", err)
		}
		if !recorded {
			t.Error("Expected the first snapshot to be recorded")
		}
	})

	t.Run("unchanged figures are not recorded again", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewItem().WithPrice(100).Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		if _, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-15 00:00:00"), model.PeriodWeek); err != nil {
			t.Fatalf("RecordSnapshot() returned unexpected error: %v", err)
		}

		recorded, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-16 00:00:00"), model.PeriodWeek)
		if err != nil {
			t.Fatalf("Second RecordSnapshot() returned unexpected error: %v", err)
		}
		if recorded {
			t.Error("Expected an unchanged portfolio not to record a new row")
		}
	})

	t.Run("a price movement beyond the epsilon records a row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		item := testutil.NewItem().WithPrice(100).Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		if _, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-15 00:00:00"), model.PeriodWeek); err != nil {
			t.Fatalf("RecordSnapshot() returned unexpected error: %v", err)
		}

		if err := engine.Inventory.UpdateCurrentPrice(ctx, item.ID, 100.05); err != nil {
			t.Fatalf("UpdateCurrentPrice() returned unexpected error: %v", err)
		}

		recorded, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-16 00:00:00"), model.PeriodWeek)
		if err != nil {
			t.Fatalf("RecordSnapshot() returned unexpected error: %v", err)
		}
		if !recorded {
			t.Error("Expected a moved portfolio to record a new row")
		}
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		_, err := engine.Stats.RecordSnapshot(testutil.MustTime(t, "2024-01-15 00:00:00"), model.Period("decade"))
		if !errors.Is(err, apperrors.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod, got %v", err)
		}
	})
}

// TestStatsService_GroupByPeriod tests the calendar bucketing.
//
// WHY: Period summaries mix two sources: snapshot rows are averaged and
// archived sales are summed. Buckets must land on calendar boundaries and
// come back in chronological order.
func TestStatsService_GroupByPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("averages snapshots per month and sums sales", func(t *testing.T) {
		// Setup: two January snapshots, one February snapshot, one January sale
		db := testutil.SetupTestDB(t)
		testutil.SeedSnapshot(t, db, model.AnalyticsSnapshot{
			ID: "snap-1", Date: testutil.MustTime(t, "2024-01-10 00:00:00"),
			PeriodType: model.PeriodMonth, TotalValue: 100, RemainingBalance: 900, ItemCount: 1,
		})
		testutil.SeedSnapshot(t, db, model.AnalyticsSnapshot{
			ID: "snap-2", Date: testutil.MustTime(t, "2024-01-20 00:00:00"),
			PeriodType: model.PeriodMonth, TotalValue: 200, RemainingBalance: 800, ItemCount: 3,
		})
		testutil.SeedSnapshot(t, db, model.AnalyticsSnapshot{
			ID: "snap-3", Date: testutil.MustTime(t, "2024-02-05 00:00:00"),
			PeriodType: model.PeriodMonth, TotalValue: 300, RemainingBalance: 700, ItemCount: 2,
		})
		item := testutil.NewItem().WithPrice(100).Holding().Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		if _, err := engine.Inventory.SellItem(ctx, item.ID, 150, 10, testutil.MustTime(t, "2024-01-25 12:00:00")); err != nil {
			t.Fatalf("SellItem() returned unexpected error: %v", err)
		}

		// Execute
		summaries, err := engine.Stats.GroupByPeriod(model.PeriodMonth)

		// Assert
		if err != nil {
			t.Fatalf("GroupByPeriod() returned unexpected error: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("Expected 2 buckets, got %d: %+v", len(summaries), summaries)
		}

		jan := summaries[0]
		if jan.Period != "2024-01" {
			t.Errorf("Expected first bucket 2024-01, got %s", jan.Period)
		}
		if jan.AvgTotalValue != 150 {
			t.Errorf("Expected average value (100+200)/2=150, got %v", jan.AvgTotalValue)
		}
		if jan.AvgRemaining != 850 {
			t.Errorf("Expected average remaining 850, got %v", jan.AvgRemaining)
		}
		if jan.AvgItemCount != 2 {
			t.Errorf("Expected average item count 2, got %v", jan.AvgItemCount)
		}
		if jan.SnapshotCount != 2 {
			t.Errorf("Expected 2 snapshots, got %d", jan.SnapshotCount)
		}
		if jan.SoldInPeriod != 1 || jan.TotalProfit != 60 || jan.SaleProceedsSum != 160 {
			t.Errorf("Expected one sale with profit 60 and proceeds 160, got %+v", jan)
		}

		feb := summaries[1]
		if feb.Period != "2024-02" {
			t.Errorf("Expected second bucket 2024-02, got %s", feb.Period)
		}
		if feb.AvgTotalValue != 300 || feb.SoldInPeriod != 0 {
			t.Errorf("Expected snapshot-only February bucket, got %+v", feb)
		}
	})

	t.Run("week buckets follow ISO weeks", func(t *testing.T) {
		// Setup: Jan 1 2024 is a Monday in ISO week 1
		db := testutil.SetupTestDB(t)
		testutil.SeedSnapshot(t, db, model.AnalyticsSnapshot{
			ID: "snap-1", Date: testutil.MustTime(t, "2024-01-01 12:00:00"),
			PeriodType: model.PeriodWeek, TotalValue: 100,
		})
		testutil.SeedSnapshot(t, db, model.AnalyticsSnapshot{
			ID: "snap-2", Date: testutil.MustTime(t, "2024-01-08 12:00:00"),
			PeriodType: model.PeriodWeek, TotalValue: 200,
		})
		engine := testutil.NewTestEngine(t, db)

		summaries, err := engine.Stats.GroupByPeriod(model.PeriodWeek)
		if err != nil {
			t.Fatalf("GroupByPeriod() returned unexpected error: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(summaries))
		}
		if summaries[0].Period != "2024-W01" || summaries[1].Period != "2024-W02" {
			t.Errorf("Expected 2024-W01 and 2024-W02, got %s and %s", summaries[0].Period, summaries[1].Period)
		}
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		_, err := engine.Stats.GroupByPeriod(model.Period("fortnight"))
		if !errors.Is(err, apperrors.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod, got %v", err)
		}
	})
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/testutil"
)

// TestInventoryService_AddItem tests the AddItem method.
//
// WHY: Adding a purchase is the entry point of the item lifecycle. This
// ensures the new item starts cooling, the remaining balance drops by the
// purchase price in the same commit, and the deterministic id blocks
// duplicate purchases.
func TestInventoryService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cooling item and debits remaining balance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.SeedCounter(t, db, "remaining_amount", 1000)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		item, err := engine.Inventory.AddItem(ctx, request.CreateItemRequest{
			Name:          "AK-47 | Redline",
			Category:      "Rifle",
			Subcategory:   "AK-47",
			WearTier:      "Field-Tested",
			WearValue:     0.2345,
			PurchasePrice: 100,
			PurchaseTime:  "2024-01-01 13:00:00",
		})

		// Assert
		if err != nil {
			t.Fatalf("AddItem() returned unexpected error: %v", err)
		}
		if item.ID != "20240101130000_0.2345" {
			t.Errorf("Expected id 20240101130000_0.2345, got %s", item.ID)
		}
		if item.State != model.StateCooling {
			t.Errorf("Expected new item to be cooling, got %s", item.State)
		}
		if item.CurrentPrice != 100 {
			t.Errorf("Expected current price to start at purchase price, got %v", item.CurrentPrice)
		}

		counters := engine.Finance.Counters()
		if counters.RemainingBalance != 900 {
			t.Errorf("Expected remaining balance 900, got %v", counters.RemainingBalance)
		}
	})

	t.Run("rejects duplicate purchase time and wear value", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		req := request.CreateItemRequest{
			Name:          "AK-47 | Redline",
			Category:      "Rifle",
			Subcategory:   "AK-47",
			WearTier:      "Field-Tested",
			WearValue:     0.2345,
			PurchasePrice: 100,
			PurchaseTime:  "2024-01-01 13:00:00",
		}

		if _, err := engine.Inventory.AddItem(ctx, req); err != nil {
			t.Fatalf("First AddItem() returned unexpected error: %v", err)
		}

		// Execute: same purchase time and wear, different name
		req.Name = "AK-47 | Vulcan"
		_, err := engine.Inventory.AddItem(ctx, req)

		// Assert
		if !errors.Is(err, apperrors.ErrDuplicateItem) {
			t.Errorf("Expected ErrDuplicateItem, got %v", err)
		}

		counters := engine.Finance.Counters()
		if counters.RemainingBalance != -100 {
			t.Errorf("Expected only one debit of 100, got remaining %v", counters.RemainingBalance)
		}
	})

	t.Run("rejects invalid wear tier", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		_, err := engine.Inventory.AddItem(ctx, request.CreateItemRequest{
			Name:          "AK-47 | Redline",
			Category:      "Rifle",
			Subcategory:   "AK-47",
			WearTier:      "Slightly Used",
			WearValue:     0.2345,
			PurchasePrice: 100,
		})

		// Assert
		if err == nil {
			t.Fatal("Expected validation error for unknown wear tier")
		}
		if len(engine.Store.Inventory()) != 0 {
			t.Error("Expected rejected item not to enter the inventory")
		}
	})
}

// TestInventoryService_RefreshCoolingStates tests the cooldown transition.
//
// WHY: Items become sellable only through this transition. It must be
// driven purely by the purchase time and the supplied clock, and repeated
// calls with the same clock must not write again.
func TestInventoryService_RefreshCoolingStates(t *testing.T) {
	ctx := context.Background()

	t.Run("moves elapsed items to holding and leaves the rest", func(t *testing.T) {
		// Setup: bought Jan 1 at 13:00, cooldown ends Jan 8 at 16:00
		db := testutil.SetupTestDB(t)
		elapsed := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-01 13:00:00")).
			Build(t, db)
		still := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-05 10:00:00")).
			WithWear("Minimal Wear", 0.1111).
			Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		transitioned, err := engine.Inventory.RefreshCoolingStates(ctx, testutil.MustTime(t, "2024-01-08 17:00:00"))

		// Assert
		if err != nil {
			t.Fatalf("RefreshCoolingStates() returned unexpected error: %v", err)
		}
		if transitioned != 1 {
			t.Errorf("Expected 1 transition, got %d", transitioned)
		}

		got, err := engine.Inventory.GetItem(elapsed.ID)
		if err != nil {
			t.Fatalf("GetItem() returned unexpected error: %v", err)
		}
		if got.State != model.StateHolding {
			t.Errorf("Expected elapsed item to be holding, got %s", got.State)
		}

		got, err = engine.Inventory.GetItem(still.ID)
		if err != nil {
			t.Fatalf("GetItem() returned unexpected error: %v", err)
		}
		if got.State != model.StateCooling {
			t.Errorf("Expected later item to still be cooling, got %s", got.State)
		}
	})

	t.Run("does not transition exactly at the boundary minus a second", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		item := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-01 13:00:00")).
			Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute: one second before Jan 8 16:00
		transitioned, err := engine.Inventory.RefreshCoolingStates(ctx, testutil.MustTime(t, "2024-01-08 15:59:59"))
		if err != nil {
			t.Fatalf("RefreshCoolingStates() returned unexpected error: %v", err)
		}
		if transitioned != 0 {
			t.Errorf("Expected no transitions before the cooldown end, got %d", transitioned)
		}

		// Execute: exactly at Jan 8 16:00 the item becomes holding
		transitioned, err = engine.Inventory.RefreshCoolingStates(ctx, testutil.MustTime(t, "2024-01-08 16:00:00"))
		if err != nil {
			t.Fatalf("RefreshCoolingStates() returned unexpected error: %v", err)
		}
		if transitioned != 1 {
			t.Errorf("Expected transition at the cooldown end, got %d", transitioned)
		}

		got, _ := engine.Inventory.GetItem(item.ID)
		if got.State != model.StateHolding {
			t.Errorf("Expected holding, got %s", got.State)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-01 13:00:00")).
			Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		now := testutil.MustTime(t, "2024-02-01 00:00:00")
		if _, err := engine.Inventory.RefreshCoolingStates(ctx, now); err != nil {
			t.Fatalf("RefreshCoolingStates() returned unexpected error: %v", err)
		}

		// Execute again with the same clock
		transitioned, err := engine.Inventory.RefreshCoolingStates(ctx, now)

		// Assert
		if err != nil {
			t.Fatalf("Second RefreshCoolingStates() returned unexpected error: %v", err)
		}
		if transitioned != 0 {
			t.Errorf("Expected second refresh to be a no-op, got %d transitions", transitioned)
		}
	})
}

// TestInventoryService_SellItem tests the sale transaction.
//
// WHY: A sale touches both ledgers and two counters. Either all four
// effects land or none do, and only holding items may be sold.
func TestInventoryService_SellItem(t *testing.T) {
	ctx := context.Background()

	t.Run("archives the item and credits proceeds and profit", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.SeedCounter(t, db, "remaining_amount", 900)
		item := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-01 10:00:00")).
			WithPrice(100).
			Holding().
			Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		sold, err := engine.Inventory.SellItem(ctx, item.ID, 150, 10, testutil.MustTime(t, "2024-01-10 12:00:00"))

		// Assert
		if err != nil {
			t.Fatalf("SellItem() returned unexpected error: %v", err)
		}
		if sold.TotalProfit != 60 {
			t.Errorf("Expected profit 60, got %v", sold.TotalProfit)
		}
		if sold.HoldDays != 9 {
			t.Errorf("Expected 9 hold days, got %d", sold.HoldDays)
		}

		if len(engine.Store.Inventory()) != 0 {
			t.Error("Expected item to leave the active inventory")
		}
		archive := engine.Store.Archive()
		if len(archive) != 1 || archive[0].ID != item.ID {
			t.Fatalf("Expected the sold item in the archive, got %v", archive)
		}

		counters := engine.Finance.Counters()
		if counters.RemainingBalance != 1060 {
			t.Errorf("Expected remaining 900+160=1060, got %v", counters.RemainingBalance)
		}
		if counters.TotalProfit != 60 {
			t.Errorf("Expected total profit 60, got %v", counters.TotalProfit)
		}
	})

	t.Run("rejects selling a cooling item and changes nothing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.SeedCounter(t, db, "remaining_amount", 500)
		item := testutil.NewItem().Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		_, err := engine.Inventory.SellItem(ctx, item.ID, 150, 0, testutil.MustTime(t, "2024-01-02 12:00:00"))

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidItemState) {
			t.Errorf("Expected ErrInvalidItemState, got %v", err)
		}
		if len(engine.Store.Inventory()) != 1 {
			t.Error("Expected item to stay in the inventory")
		}
		if len(engine.Store.Archive()) != 0 {
			t.Error("Expected archive to stay empty")
		}
		if got := engine.Finance.Counters().RemainingBalance; got != 500 {
			t.Errorf("Expected counters untouched, remaining is %v", got)
		}
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		_, err := engine.Inventory.SellItem(ctx, "20240101130000_0.2345", 150, 0, testutil.MustTime(t, "2024-01-02 12:00:00"))

		// Assert
		if !errors.Is(err, apperrors.ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("rejects negative sale price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		item := testutil.NewItem().Holding().Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		// Execute
		_, err := engine.Inventory.SellItem(ctx, item.ID, -1, 0, testutil.MustTime(t, "2024-01-02 12:00:00"))

		// Assert
		if err == nil {
			t.Fatal("Expected validation error for negative sale price")
		}
		if len(engine.Store.Inventory()) != 1 {
			t.Error("Expected item to stay in the inventory")
		}
	})
}

// TestInventoryService_CanSell tests the pre-sale check.
//
// WHY: The check is advisory for clients; the sale itself re-validates. It
// still has to give accurate reasons for the three possible answers.
func TestInventoryService_CanSell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cooling := testutil.NewItem().Build(t, db)
	holding := testutil.NewItem().
		WithPurchaseTime(testutil.MustTime(t, "2024-01-02 13:00:00")).
		Holding().
		Build(t, db)
	engine := testutil.NewTestEngine(t, db)

	tests := []struct {
		name       string
		id         string
		wantOK     bool
		wantReason string
	}{
		{"holding item is sellable", holding.ID, true, "item can be sold"},
		{"cooling item is not sellable", cooling.ID, false, "item is not in holding state"},
		{"unknown item is not sellable", "20990101000000_0.0001", false, "item not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := engine.Inventory.CanSell(tt.id)
			if ok != tt.wantOK {
				t.Errorf("CanSell() = %v, want %v", ok, tt.wantOK)
			}
			if reason != tt.wantReason {
				t.Errorf("CanSell() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

// TestInventoryService_UpdateCurrentPrice tests per-item price updates.
func TestInventoryService_UpdateCurrentPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the price of an active item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		item := testutil.NewItem().WithPrice(100).Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		if err := engine.Inventory.UpdateCurrentPrice(ctx, item.ID, 123.45); err != nil {
			t.Fatalf("UpdateCurrentPrice() returned unexpected error: %v", err)
		}

		got, _ := engine.Inventory.GetItem(item.ID)
		if got.CurrentPrice != 123.45 {
			t.Errorf("Expected current price 123.45, got %v", got.CurrentPrice)
		}
		if got.PurchasePrice != 100 {
			t.Errorf("Expected purchase price untouched, got %v", got.PurchasePrice)
		}
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		err := engine.Inventory.UpdateCurrentPrice(ctx, "20240101130000_0.2345", 10)
		if !errors.Is(err, apperrors.ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	})
}

// TestInventoryService_Lifecycle walks one item from purchase to sale.
//
// WHY: The individual operations are covered above; this ensures they
// compose. An item bought on Jan 1 cannot sell during its cooldown, becomes
// holding after Jan 8 16:00, and its sale settles every counter.
func TestInventoryService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	testutil.SeedCounter(t, db, "remaining_amount", 1000)
	testutil.SeedCounter(t, db, "total_investment", 1000)
	engine := testutil.NewTestEngine(t, db)

	item, err := engine.Inventory.AddItem(ctx, request.CreateItemRequest{
		Name:          "AWP | Asiimov",
		Category:      "Rifle",
		Subcategory:   "AWP",
		WearTier:      "Field-Tested",
		WearValue:     0.2800,
		PurchasePrice: 100,
		PurchaseTime:  "2024-01-01 10:00:00",
	})
	if err != nil {
		t.Fatalf("AddItem() returned unexpected error: %v", err)
	}

	if ok, _ := engine.Inventory.CanSell(item.ID); ok {
		t.Error("Expected a cooling item not to be sellable")
	}

	if _, err := engine.Inventory.RefreshCoolingStates(ctx, testutil.MustTime(t, "2024-01-08 17:00:00")); err != nil {
		t.Fatalf("RefreshCoolingStates() returned unexpected error: %v", err)
	}
	if ok, reason := engine.Inventory.CanSell(item.ID); !ok {
		t.Fatalf("Expected item to be sellable after its cooldown, got %q", reason)
	}

	sold, err := engine.Inventory.SellItem(ctx, item.ID, 150, 10, testutil.MustTime(t, "2024-01-10 12:00:00"))
	if err != nil {
		t.Fatalf("SellItem() returned unexpected error: %v", err)
	}
	if sold.TotalProfit != 60 {
		t.Errorf("Expected profit 150+10-100=60, got %v", sold.TotalProfit)
	}
	if sold.HoldDays != 9 {
		t.Errorf("Expected 9 hold days, got %d", sold.HoldDays)
	}

	counters := engine.Finance.Counters()
	if counters.RemainingBalance != 1060 {
		t.Errorf("Expected remaining 1000-100+160=1060, got %v", counters.RemainingBalance)
	}
	if counters.TotalProfit != 60 {
		t.Errorf("Expected total profit 60, got %v", counters.TotalProfit)
	}
	if counters.TotalInvestment != 1000 {
		t.Errorf("Expected investment untouched, got %v", counters.TotalInvestment)
	}
}

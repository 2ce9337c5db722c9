package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/testutil"
)

// TestCatalogService_EnsureMapping tests catalog row upserts.
//
// WHY: Every distinct skin kind gets exactly one catalog row. Repeat
// purchases must reuse it, and StatTrak variants must stay separate kinds.
func TestCatalogService_EnsureMapping(t *testing.T) {
	t.Run("creates a mapping on first sight and reuses it after", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		first, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", false,
			testutil.MustTime(t, "2024-01-01 13:00:00"))
		if err != nil {
			t.Fatalf("EnsureMapping() returned unexpected error: %v", err)
		}
		if first.MappingID == 0 {
			t.Error("Expected a generated mapping id")
		}
		if first.CurrentPrice != 0 {
			t.Errorf("Expected a fresh mapping to have no reference price, got %v", first.CurrentPrice)
		}

		second, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", false,
			testutil.MustTime(t, "2024-02-01 13:00:00"))
		if err != nil {
			t.Fatalf("Second EnsureMapping() returned unexpected error: %v", err)
		}
		if second.MappingID != first.MappingID {
			t.Errorf("Expected the same mapping to be reused, got %d and %d", first.MappingID, second.MappingID)
		}
		if !second.LastUsed.Equal(testutil.MustTime(t, "2024-02-01 13:00:00")) {
			t.Errorf("Expected last_used to be refreshed, got %v", second.LastUsed)
		}
	})

	t.Run("stattrak variant is a distinct kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)
		now := testutil.MustTime(t, "2024-01-01 13:00:00")

		plain, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", false, now)
		if err != nil {
			t.Fatalf("EnsureMapping() returned unexpected error: %v", err)
		}
		st, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", true, now)
		if err != nil {
			t.Fatalf("EnsureMapping() returned unexpected error: %v", err)
		}
		if plain.MappingID == st.MappingID {
			t.Error("Expected separate mappings for plain and StatTrak variants")
		}
	})
}

// TestCatalogService_UpdatePrice tests reference price propagation.
//
// WHY: A catalog price change has to reach every matching active item, and
// only those; the catalog is the one place a bulk price update happens.
func TestCatalogService_UpdatePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out to matching active items", func(t *testing.T) {
		// Setup: two Redlines of the same kind, one unrelated AWP
		db := testutil.SetupTestDB(t)
		first := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-01 13:00:00")).
			Build(t, db)
		second := testutil.NewItem().
			WithPurchaseTime(testutil.MustTime(t, "2024-01-02 13:00:00")).
			WithWear("Field-Tested", 0.3011).
			Build(t, db)
		other := testutil.NewItem().
			WithName("AWP | Asiimov").
			WithCategory("Rifle", "AWP").
			WithPurchaseTime(testutil.MustTime(t, "2024-01-03 13:00:00")).
			Build(t, db)
		engine := testutil.NewTestEngine(t, db)

		mapping, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", false,
			testutil.MustTime(t, "2024-01-01 13:00:00"))
		if err != nil {
			t.Fatalf("EnsureMapping() returned unexpected error: %v", err)
		}

		// Execute
		updated, err := engine.Catalog.UpdatePrice(ctx, mapping.MappingID, 142.50)

		// Assert
		if err != nil {
			t.Fatalf("UpdatePrice() returned unexpected error: %v", err)
		}
		if updated != 2 {
			t.Errorf("Expected 2 items updated, got %d", updated)
		}

		for _, id := range []string{first.ID, second.ID} {
			item, err := engine.Inventory.GetItem(id)
			if err != nil {
				t.Fatalf("GetItem() returned unexpected error: %v", err)
			}
			if item.CurrentPrice != 142.50 {
				t.Errorf("Expected item %s at 142.50, got %v", id, item.CurrentPrice)
			}
		}

		untouched, _ := engine.Inventory.GetItem(other.ID)
		if untouched.CurrentPrice != 100 {
			t.Errorf("Expected unrelated item untouched, got %v", untouched.CurrentPrice)
		}

		stored, err := engine.Catalog.GetMapping(mapping.MappingID)
		if err != nil {
			t.Fatalf("GetMapping() returned unexpected error: %v", err)
		}
		if stored.CurrentPrice != 142.50 {
			t.Errorf("Expected mapping price 142.50, got %v", stored.CurrentPrice)
		}
	})

	t.Run("rejects unknown mapping", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		_, err := engine.Catalog.UpdatePrice(ctx, 9999, 10)
		if !errors.Is(err, apperrors.ErrMappingNotFound) {
			t.Errorf("Expected ErrMappingNotFound, got %v", err)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestEngine(t, db)

		mapping, err := engine.Catalog.EnsureMapping("AK-47 | Redline", "Rifle", "Field-Tested", false,
			testutil.MustTime(t, "2024-01-01 13:00:00"))
		if err != nil {
			t.Fatalf("EnsureMapping() returned unexpected error: %v", err)
		}

		if _, err := engine.Catalog.UpdatePrice(ctx, mapping.MappingID, -1); err == nil {
			t.Fatal("Expected validation error for negative price")
		}
	})
}

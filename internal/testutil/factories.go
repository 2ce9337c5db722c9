package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/model"
)

// ItemBuilder provides a fluent interface for seeding inventory items
// directly into the database. Seed rows before the LedgerStore is loaded,
// or call Load again afterwards; the store caches on load.
//
// Example usage:
//
//	// Simple creation with defaults
//	item := testutil.NewItem().Build(t, db)
//
//	// A sellable item bought at a known time
//	item := testutil.NewItem().
//	    WithPurchaseTime(purchase).
//	    Holding().
//	    Build(t, db)
type ItemBuilder struct {
	Name          string
	Category      string
	Subcategory   string
	WearTier      string
	WearValue     float64
	StatTrak      bool
	PurchasePrice float64
	PurchaseTime  time.Time
	CurrentPrice  float64
	State         model.ItemState
}

// NewItem creates an ItemBuilder with sensible defaults.
func NewItem() *ItemBuilder {
	purchase := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	return &ItemBuilder{
		Name:          "AK-47 | Redline",
		Category:      "Rifle",
		Subcategory:   "AK-47",
		WearTier:      "Field-Tested",
		WearValue:     0.2345,
		StatTrak:      false,
		PurchasePrice: 100,
		PurchaseTime:  purchase,
		CurrentPrice:  100,
		State:         model.StateCooling,
	}
}

// WithName sets a custom skin name.
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}

// WithCategory sets category and subcategory together.
func (b *ItemBuilder) WithCategory(category, subcategory string) *ItemBuilder {
	b.Category = category
	b.Subcategory = subcategory
	return b
}

// WithWear sets the wear tier label and exact wear value.
func (b *ItemBuilder) WithWear(tier string, value float64) *ItemBuilder {
	b.WearTier = tier
	b.WearValue = value
	return b
}

// WithPrice sets the purchase price (and the current price, which defaults
// to it).
func (b *ItemBuilder) WithPrice(price float64) *ItemBuilder {
	b.PurchasePrice = price
	b.CurrentPrice = price
	return b
}

// WithCurrentPrice sets a current price diverging from the purchase price.
func (b *ItemBuilder) WithCurrentPrice(price float64) *ItemBuilder {
	b.CurrentPrice = price
	return b
}

// WithPurchaseTime sets the purchase timestamp. The item id derives from it.
func (b *ItemBuilder) WithPurchaseTime(purchase time.Time) *ItemBuilder {
	b.PurchaseTime = purchase
	return b
}

// StatTrakked marks the item as a StatTrak variant.
func (b *ItemBuilder) StatTrakked() *ItemBuilder {
	b.StatTrak = true
	return b
}

// Holding puts the item straight into the holding state.
func (b *ItemBuilder) Holding() *ItemBuilder {
	b.State = model.StateHolding
	return b
}

// Build inserts the item into the inventory table and returns it.
func (b *ItemBuilder) Build(t *testing.T, db *sql.DB) model.InventoryItem {
	t.Helper()

	item := model.InventoryItem{
		ID:            model.ItemID(b.PurchaseTime, b.WearValue),
		Name:          b.Name,
		Category:      b.Category,
		Subcategory:   b.Subcategory,
		WearTier:      b.WearTier,
		WearValue:     b.WearValue,
		StatTrak:      b.StatTrak,
		PurchasePrice: b.PurchasePrice,
		PurchaseTime:  b.PurchaseTime,
		CurrentPrice:  b.CurrentPrice,
		State:         b.State,
	}

	query := `
		INSERT INTO inventory (id, name, category, subcategory, wear_tier, wear_value,
		stattrak, purchase_price, purchase_time, current_price, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		item.ID, item.Name, item.Category, item.Subcategory, item.WearTier,
		item.WearValue, item.StatTrak, item.PurchasePrice,
		item.PurchaseTime.Format(time.RFC3339), item.CurrentPrice, int(item.State),
	)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return item
}

// SeedCounter sets a counter row to an absolute value.
func SeedCounter(t *testing.T, db *sql.DB, name string, value float64) {
	t.Helper()

	if _, err := db.Exec("UPDATE counters SET value = ? WHERE name = ?", value, name); err != nil {
		t.Fatalf("Failed to seed counter %s: %v", name, err)
	}
}

// SeedSnapshot inserts an analytics snapshot row.
func SeedSnapshot(t *testing.T, db *sql.DB, snap model.AnalyticsSnapshot) {
	t.Helper()

	query := `
		INSERT INTO analytics (id, date, period_type, total_value, total_profit,
		remaining_balance, item_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		snap.ID, snap.Date.Format(time.RFC3339), string(snap.PeriodType),
		snap.TotalValue, snap.TotalProfit, snap.RemainingBalance, snap.ItemCount,
	)
	if err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}
}

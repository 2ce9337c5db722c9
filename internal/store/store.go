// Package store owns the two ledger record sets (active inventory, sold
// archive) and the running counters. It keeps an in-memory authoritative
// copy loaded from SQLite; mutations are staged through Update and flushed
// as a single transaction, so a failed write never leaves memory ahead of
// what is durable.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
)

// Persisted counter names. AdjustCounter rejects anything else.
const (
	CounterInvestment = "total_investment"
	CounterProfit     = "total_profit"
	CounterRemaining  = "remaining_amount"
	CounterFees       = "total_fee"
)

// LedgerStore is the single owner of both record sets and the counters.
// Collaborators read copies and mutate only through Update.
type LedgerStore struct {
	db *sql.DB

	// The engine itself is single-actor, but the HTTP server and the cron
	// scheduler both call in, so the cache is guarded anyway.
	mu        sync.RWMutex
	inventory []model.InventoryItem
	sold      []model.SoldItem
	counters  model.Counters
}

// New creates a LedgerStore over an already-migrated database. Call Load
// before using it.
func New(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Load reads all three tables into memory, replacing whatever was cached.
func (s *LedgerStore) Load(ctx context.Context) error {
	inventory, err := s.loadInventory(ctx)
	if err != nil {
		return err
	}

	sold, err := s.loadSoldItems(ctx)
	if err != nil {
		return err
	}

	counters, err := s.loadCounters(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = inventory
	s.sold = sold
	s.counters = counters
	return nil
}

// Inventory returns an independent copy of the active inventory.
func (s *LedgerStore) Inventory() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InventoryItem(nil), s.inventory...)
}

// Archive returns an independent copy of the sold archive, in append order.
func (s *LedgerStore) Archive() []model.SoldItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SoldItem(nil), s.sold...)
}

// Counters returns a copy of the running totals.
func (s *LedgerStore) Counters() model.Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// Txn stages changes against a copy of the store state inside Update.
// Nothing a Txn does is visible, in memory or on disk, until Update
// flushes it.
type Txn struct {
	inventory []model.InventoryItem
	sold      []model.SoldItem
	counters  model.Counters

	invDirty      bool
	soldDirty     bool
	countersDirty bool
}

// Inventory returns a copy of the staged active inventory.
func (t *Txn) Inventory() []model.InventoryItem {
	return append([]model.InventoryItem(nil), t.inventory...)
}

// Archive returns a copy of the staged sold archive.
func (t *Txn) Archive() []model.SoldItem {
	return append([]model.SoldItem(nil), t.sold...)
}

// Counters returns the staged counter values.
func (t *Txn) Counters() model.Counters {
	return t.counters
}

// ReplaceInventory stages a full replacement of the active inventory.
func (t *Txn) ReplaceInventory(items []model.InventoryItem) {
	t.inventory = append([]model.InventoryItem(nil), items...)
	t.invDirty = true
}

// ReplaceArchive stages a full replacement of the sold archive.
func (t *Txn) ReplaceArchive(items []model.SoldItem) {
	t.sold = append([]model.SoldItem(nil), items...)
	t.soldDirty = true
}

// AdjustCounter stages a delta against one of the named counters.
func (t *Txn) AdjustCounter(name string, delta float64) error {
	switch name {
	case CounterInvestment:
		t.counters.TotalInvestment += delta
	case CounterProfit:
		t.counters.TotalProfit += delta
	case CounterRemaining:
		t.counters.RemainingBalance += delta
	case CounterFees:
		t.counters.TotalFees += delta
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownCounter, name)
	}
	t.countersDirty = true
	return nil
}

// Update runs fn against a staged copy of the ledger and commits everything
// it changed as one SQLite transaction. If fn returns an error nothing is
// written and memory is untouched. If the flush fails the staged changes are
// discarded, so the cache still matches the last durable commit, and the
// caller gets an error wrapping apperrors.ErrPersistence.
//
// A no-op fn (nothing staged dirty) skips the physical write entirely.
// fn must read through the Txn, not through the store's own accessors.
func (s *LedgerStore) Update(ctx context.Context, fn func(tx *Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := &Txn{
		inventory: append([]model.InventoryItem(nil), s.inventory...),
		sold:      append([]model.SoldItem(nil), s.sold...),
		counters:  s.counters,
	}

	if err := fn(txn); err != nil {
		return err
	}

	if !txn.invDirty && !txn.soldDirty && !txn.countersDirty {
		return nil
	}

	if err := s.flush(ctx, txn); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	// Promote the staged state only after the commit succeeded.
	s.inventory = txn.inventory
	s.sold = txn.sold
	s.counters = txn.counters
	return nil
}

// flush writes the dirty tables in one transaction. The record sets are
// small (a personal inventory), so dirty tables are rewritten whole rather
// than diffed row by row.
func (s *LedgerStore) flush(ctx context.Context, txn *Txn) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if txn.invDirty {
		if _, err := tx.ExecContext(ctx, "DELETE FROM inventory"); err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}
		for _, item := range txn.inventory {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO inventory (id, name, category, subcategory, wear_tier, wear_value,
				stattrak, purchase_price, purchase_time, current_price, state)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				item.ID, item.Name, item.Category, item.Subcategory, item.WearTier,
				item.WearValue, item.StatTrak, item.PurchasePrice,
				item.PurchaseTime.Format(time.RFC3339), item.CurrentPrice, int(item.State),
			)
			if err != nil {
				return fmt.Errorf("failed to insert inventory row %s: %w", item.ID, err)
			}
		}
	}

	if txn.soldDirty {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sold_items"); err != nil {
			return fmt.Errorf("failed to clear sold_items: %w", err)
		}
		for _, item := range txn.sold {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO sold_items (id, name, category, subcategory, wear_tier, wear_value,
				stattrak, purchase_price, purchase_time, sell_price, extra_income, sell_time,
				hold_days, total_profit)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				item.ID, item.Name, item.Category, item.Subcategory, item.WearTier,
				item.WearValue, item.StatTrak, item.PurchasePrice,
				item.PurchaseTime.Format(time.RFC3339), item.SellPrice, item.ExtraIncome,
				item.SellTime.Format(time.RFC3339), item.HoldDays, item.TotalProfit,
			)
			if err != nil {
				return fmt.Errorf("failed to insert sold_items row %s: %w", item.ID, err)
			}
		}
	}

	if txn.countersDirty {
		counterValues := map[string]float64{
			CounterInvestment: txn.counters.TotalInvestment,
			CounterProfit:     txn.counters.TotalProfit,
			CounterRemaining:  txn.counters.RemainingBalance,
			CounterFees:       txn.counters.TotalFees,
		}
		for name, value := range counterValues {
			if _, err := tx.ExecContext(ctx, "UPDATE counters SET value = ? WHERE name = ?", value, name); err != nil {
				return fmt.Errorf("failed to update counter %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger flush: %w", err)
	}
	return nil
}

func (s *LedgerStore) loadInventory(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, subcategory, wear_tier, wear_value, stattrak,
		       purchase_price, purchase_time, current_price, state
		FROM inventory
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		var purchaseTimeStr string
		var state int

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Subcategory,
			&item.WearTier,
			&item.WearValue,
			&item.StatTrak,
			&item.PurchasePrice,
			&purchaseTimeStr,
			&item.CurrentPrice,
			&state,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}

		item.PurchaseTime, err = ParseTime(purchaseTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse purchase_time: %w", err)
		}
		item.State = model.ItemState(state)

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return items, nil
}

func (s *LedgerStore) loadSoldItems(ctx context.Context) ([]model.SoldItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, subcategory, wear_tier, wear_value, stattrak,
		       purchase_price, purchase_time, sell_price, extra_income, sell_time,
		       hold_days, total_profit
		FROM sold_items
		ORDER BY sell_time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold_items: %w", err)
	}
	defer rows.Close()

	var items []model.SoldItem
	for rows.Next() {
		var item model.SoldItem
		var purchaseTimeStr, sellTimeStr string

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Subcategory,
			&item.WearTier,
			&item.WearValue,
			&item.StatTrak,
			&item.PurchasePrice,
			&purchaseTimeStr,
			&item.SellPrice,
			&item.ExtraIncome,
			&sellTimeStr,
			&item.HoldDays,
			&item.TotalProfit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sold_items row: %w", err)
		}

		item.PurchaseTime, err = ParseTime(purchaseTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse purchase_time: %w", err)
		}
		item.SellTime, err = ParseTime(sellTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sell_time: %w", err)
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sold_items: %w", err)
	}
	return items, nil
}

func (s *LedgerStore) loadCounters(ctx context.Context) (model.Counters, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, value FROM counters")
	if err != nil {
		return model.Counters{}, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	var counters model.Counters
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return model.Counters{}, fmt.Errorf("failed to scan counters row: %w", err)
		}

		switch name {
		case CounterInvestment:
			counters.TotalInvestment = value
		case CounterProfit:
			counters.TotalProfit = value
		case CounterRemaining:
			counters.RemainingBalance = value
		case CounterFees:
			counters.TotalFees = value
		}
	}
	if err := rows.Err(); err != nil {
		return model.Counters{}, fmt.Errorf("error iterating counters: %w", err)
	}
	return counters, nil
}

// ParseTime parses a stored timestamp in RFC3339 or "2006-01-02 15:04:05"
// format. The second form shows up when rows are seeded by hand.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(time.RFC3339, str)
	if err != nil {
		returnTime, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

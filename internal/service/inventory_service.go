package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/store"
	"github.com/skintrack/skin-ledger-backend/internal/timerules"
	"github.com/skintrack/skin-ledger-backend/internal/validation"
)

// InventoryService owns the item lifecycle: adding purchases, moving items
// out of their cooldown, and selling. Every mutation goes through one
// LedgerStore update, so either all of its effects land or none do.
type InventoryService struct {
	store *store.LedgerStore
}

// NewInventoryService creates a new InventoryService over the ledger store.
func NewInventoryService(ledger *store.LedgerStore) *InventoryService {
	return &InventoryService{store: ledger}
}

// AddItem validates the request and appends a new cooling item to the
// active inventory. The remaining balance drops by the purchase price in
// the same commit. A (purchase time, wear value) pair that is already
// present fails with apperrors.ErrDuplicateItem.
func (s *InventoryService) AddItem(ctx context.Context, req request.CreateItemRequest) (*model.InventoryItem, error) {
	if err := validation.ValidateCreateItem(req); err != nil {
		return nil, err
	}

	purchaseTime := time.Now().UTC()
	if req.PurchaseTime != "" {
		var err error
		purchaseTime, err = validation.ParseTime(req.PurchaseTime)
		if err != nil {
			return nil, err
		}
	}

	item := model.InventoryItem{
		ID:            model.ItemID(purchaseTime, req.WearValue),
		Name:          req.Name,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		WearTier:      req.WearTier,
		WearValue:     req.WearValue,
		StatTrak:      req.StatTrak,
		PurchasePrice: req.PurchasePrice,
		PurchaseTime:  purchaseTime,
		CurrentPrice:  req.PurchasePrice,
		State:         model.StateCooling,
	}

	err := s.store.Update(ctx, func(tx *store.Txn) error {
		items := tx.Inventory()
		for _, existing := range items {
			if existing.ID == item.ID {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateItem, item.ID)
			}
		}

		tx.ReplaceInventory(append(items, item))
		return tx.AdjustCounter(store.CounterRemaining, -item.PurchasePrice)
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// RefreshCoolingStates moves every cooling item whose cooldown has elapsed
// at now into the holding state. All transitions land in one batched write;
// when nothing is eligible no write happens at all, so repeated calls with
// the same now are free.
func (s *InventoryService) RefreshCoolingStates(ctx context.Context, now time.Time) (int, error) {
	transitioned := 0

	err := s.store.Update(ctx, func(tx *store.Txn) error {
		items := tx.Inventory()
		for i := range items {
			if items[i].State != model.StateCooling {
				continue
			}
			if timerules.CoolingElapsed(now, items[i].PurchaseTime) {
				items[i].State = model.StateHolding
				transitioned++
			}
		}

		if transitioned > 0 {
			tx.ReplaceInventory(items)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return transitioned, nil
}

// GetItem returns an active inventory item by id.
func (s *InventoryService) GetItem(id string) (model.InventoryItem, error) {
	for _, item := range s.store.Inventory() {
		if item.ID == id {
			return item, nil
		}
	}
	return model.InventoryItem{}, fmt.Errorf("%w: %s", apperrors.ErrItemNotFound, id)
}

// CanSell reports whether the item may be sold right now, with a
// human-readable reason when it may not.
func (s *InventoryService) CanSell(id string) (bool, string) {
	item, err := s.GetItem(id)
	if err != nil {
		return false, "item not found"
	}
	if item.State != model.StateHolding {
		return false, "item is not in holding state"
	}
	return true, "item can be sold"
}

// SellItem completes a sale: the item leaves the active inventory, an
// archive record is written, the remaining balance grows by the proceeds
// and the realized profit counter by the sale's profit. The four effects
// commit as one transaction; a rejection leaves both ledgers untouched.
//
// The holding state is re-checked inside the transaction regardless of any
// earlier CanSell call, so a stale caller cannot double-sell.
func (s *InventoryService) SellItem(ctx context.Context, id string, sellPrice, extraIncome float64, sellTime time.Time) (*model.SoldItem, error) {
	if err := validation.ValidateSellItem(request.SellItemRequest{
		SellPrice:   sellPrice,
		ExtraIncome: extraIncome,
	}); err != nil {
		return nil, err
	}

	var sold model.SoldItem

	err := s.store.Update(ctx, func(tx *store.Txn) error {
		items := tx.Inventory()

		idx := -1
		for i := range items {
			if items[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: %s", apperrors.ErrItemNotFound, id)
		}

		item := items[idx]
		if item.State != model.StateHolding {
			return fmt.Errorf("%w: %s is %s", apperrors.ErrInvalidItemState, id, item.State)
		}

		holdDays := timerules.HoldDays(item.PurchaseTime, sellTime)
		if holdDays < 0 {
			log.Printf("item %s sold before it was bought: purchase %s, sale %s",
				id, item.PurchaseTime.Format(time.RFC3339), sellTime.Format(time.RFC3339))
		}

		sold = model.SoldItem{
			ID:            item.ID,
			Name:          item.Name,
			Category:      item.Category,
			Subcategory:   item.Subcategory,
			WearTier:      item.WearTier,
			WearValue:     item.WearValue,
			StatTrak:      item.StatTrak,
			PurchasePrice: item.PurchasePrice,
			PurchaseTime:  item.PurchaseTime,
			SellPrice:     sellPrice,
			ExtraIncome:   extraIncome,
			SellTime:      sellTime,
			HoldDays:      holdDays,
			TotalProfit:   sellPrice + extraIncome - item.PurchasePrice,
		}

		tx.ReplaceInventory(append(items[:idx], items[idx+1:]...))
		tx.ReplaceArchive(append(tx.Archive(), sold))

		if err := tx.AdjustCounter(store.CounterRemaining, sellPrice+extraIncome); err != nil {
			return err
		}
		return tx.AdjustCounter(store.CounterProfit, sold.TotalProfit)
	})
	if err != nil {
		return nil, err
	}

	return &sold, nil
}

// UpdateCurrentPrice sets the current market price of a single active item.
// Until this is called an item's current price equals its purchase price.
func (s *InventoryService) UpdateCurrentPrice(ctx context.Context, id string, price float64) error {
	if err := validation.ValidateUpdatePrice(price); err != nil {
		return err
	}

	return s.store.Update(ctx, func(tx *store.Txn) error {
		items := tx.Inventory()
		for i := range items {
			if items[i].ID == id {
				if items[i].CurrentPrice != price {
					items[i].CurrentPrice = price
					tx.ReplaceInventory(items)
				}
				return nil
			}
		}
		return fmt.Errorf("%w: %s", apperrors.ErrItemNotFound, id)
	})
}

// TimeInfo renders the countdown or hold duration shown next to an item's
// state, e.g. "2d 4h remaining" or "held 3d 1h".
func (s *InventoryService) TimeInfo(id string, now time.Time) (string, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return "", err
	}

	switch item.State {
	case model.StateCooling:
		return timerules.Describe(now, item.PurchaseTime, false), nil
	case model.StateHolding:
		return timerules.Describe(now, item.PurchaseTime, true), nil
	default:
		return "", nil
	}
}

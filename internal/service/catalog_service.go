package service

import (
	"context"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/store"
	"github.com/skintrack/skin-ledger-backend/internal/validation"
)

// CatalogService maintains the price catalog: one mapping row per distinct
// skin kind, carrying the current market reference price shared by every
// inventory item of that kind.
type CatalogService struct {
	mappingRepo *repository.MappingRepository
	store       *store.LedgerStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(mappingRepo *repository.MappingRepository, ledger *store.LedgerStore) *CatalogService {
	return &CatalogService{mappingRepo: mappingRepo, store: ledger}
}

// EnsureMapping returns the mapping for the given skin kind, creating it
// with a zero reference price if it does not exist yet. The last_used
// timestamp is refreshed either way.
func (s *CatalogService) EnsureMapping(name, category, wearTier string, statTrak bool, now time.Time) (model.ItemMapping, error) {
	mapping, exists, err := s.mappingRepo.Find(name, category, wearTier, statTrak)
	if err != nil {
		return model.ItemMapping{}, err
	}

	if exists {
		if err := s.mappingRepo.TouchLastUsed(mapping.MappingID, now); err != nil {
			return model.ItemMapping{}, err
		}
		mapping.LastUsed = now
		return mapping, nil
	}

	return s.mappingRepo.Insert(model.ItemMapping{
		ItemName: name,
		Category: category,
		WearTier: wearTier,
		StatTrak: statTrak,
		LastUsed: now,
	})
}

// GetMapping returns a mapping by id.
func (s *CatalogService) GetMapping(mappingID int64) (model.ItemMapping, error) {
	return s.mappingRepo.Get(mappingID)
}

// UpdatePrice sets the market reference price of a mapping and propagates
// it to every matching active inventory item. Returns how many items picked
// up the new price.
func (s *CatalogService) UpdatePrice(ctx context.Context, mappingID int64, price float64) (int, error) {
	if err := validation.ValidateUpdatePrice(price); err != nil {
		return 0, err
	}

	mapping, err := s.mappingRepo.Get(mappingID)
	if err != nil {
		return 0, err
	}

	if err := s.mappingRepo.UpdatePrice(mappingID, price); err != nil {
		return 0, err
	}

	updated := 0
	err = s.store.Update(ctx, func(tx *store.Txn) error {
		items := tx.Inventory()
		for i := range items {
			if items[i].Name != mapping.ItemName ||
				items[i].Category != mapping.Category ||
				items[i].WearTier != mapping.WearTier ||
				items[i].StatTrak != mapping.StatTrak {
				continue
			}
			if items[i].CurrentPrice != price {
				items[i].CurrentPrice = price
				updated++
			}
		}
		if updated > 0 {
			tx.ReplaceInventory(items)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

package service

import (
	"sort"
	"strings"

	"github.com/skintrack/skin-ledger-backend/internal/catalog"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/store"
)

// SortDir is the purchase-time tie-break direction inside a state group.
// The direction is an explicit per-call choice; there is no hidden default
// beyond the zero value SortAscending (oldest first).
type SortDir int

const (
	SortAscending SortDir = iota
	SortDescending
)

// InventoryFilter narrows ListInventory results. Zero values mean
// unrestricted. When Category is set but Subcategory is not, every
// subcategory registered under Category in the catalog matches.
type InventoryFilter struct {
	NameContains string
	Category     string
	Subcategory  string
	WearTier     string
	State        *model.ItemState
	PriceMin     float64
	PriceMax     float64 // 0 means no upper bound
	SortDir      SortDir
}

// statePriority orders inventory listings: sellable items first, cooling
// ones next, anything sold (never expected in the active set) last.
var statePriority = map[model.ItemState]int{
	model.StateHolding: 0,
	model.StateCooling: 1,
	model.StateSold:    2,
}

// QueryService builds filtered, sorted projections of the ledger for the
// presentation layer.
type QueryService struct {
	store   *store.LedgerStore
	catalog catalog.Table
}

// NewQueryService creates a new QueryService.
func NewQueryService(ledger *store.LedgerStore, table catalog.Table) *QueryService {
	return &QueryService{store: ledger, catalog: table}
}

// ListInventory returns the active inventory narrowed by filter and ordered
// by state priority, then purchase time in the requested direction.
func (s *QueryService) ListInventory(filter InventoryFilter) []model.InventoryItem {
	items := s.store.Inventory()

	filtered := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if s.matches(item, filter) {
			filtered = append(filtered, item)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		pi, pj := statePriority[filtered[i].State], statePriority[filtered[j].State]
		if pi != pj {
			return pi < pj
		}
		if filter.SortDir == SortDescending {
			return filtered[i].PurchaseTime.After(filtered[j].PurchaseTime)
		}
		return filtered[i].PurchaseTime.Before(filtered[j].PurchaseTime)
	})

	return filtered
}

// ListSold returns the archive in append order. Callers sort themselves if
// they need another order.
func (s *QueryService) ListSold() []model.SoldItem {
	return s.store.Archive()
}

func (s *QueryService) matches(item model.InventoryItem, filter InventoryFilter) bool {
	if filter.NameContains != "" &&
		!strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.NameContains)) {
		return false
	}

	// A concrete subcategory wins over the category; a bare category expands
	// to its registered subcategory set.
	if filter.Subcategory != "" {
		if item.Subcategory != filter.Subcategory {
			return false
		}
	} else if filter.Category != "" {
		if !s.catalog.Contains(filter.Category, item.Subcategory) {
			return false
		}
	}

	if filter.WearTier != "" && item.WearTier != filter.WearTier {
		return false
	}

	if filter.State != nil && item.State != *filter.State {
		return false
	}

	if filter.PriceMin > 0 && item.PurchasePrice < filter.PriceMin {
		return false
	}
	if filter.PriceMax > 0 && item.PurchasePrice > filter.PriceMax {
		return false
	}

	return true
}

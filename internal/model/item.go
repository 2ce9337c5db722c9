package model

import (
	"fmt"
	"strconv"
	"time"
)

// ItemState represents the lifecycle state of an inventory item.
// The zero value is StateCooling, which is the state every freshly
// purchased item starts in.
type ItemState int

const (
	// StateCooling means the item is inside its trade-cooldown window and
	// cannot be sold yet.
	StateCooling ItemState = iota

	// StateHolding means the cooldown has elapsed and the item is sellable.
	StateHolding

	// StateSold is terminal. An item never carries this state inside the
	// active inventory; selling moves it to the sold archive instead.
	StateSold
)

// String returns the lowercase state name used in API responses and filters.
func (s ItemState) String() string {
	switch s {
	case StateCooling:
		return "cooling"
	case StateHolding:
		return "holding"
	case StateSold:
		return "sold"
	default:
		return "unknown"
	}
}

// ParseItemState converts a state name back into an ItemState.
// The boolean reports whether the name was recognized.
func ParseItemState(name string) (ItemState, bool) {
	switch name {
	case "cooling":
		return StateCooling, true
	case "holding":
		return StateHolding, true
	case "sold":
		return StateSold, true
	default:
		return 0, false
	}
}

// MarshalJSON renders the state as its lowercase name.
func (s ItemState) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// UnmarshalJSON accepts the lowercase state names.
func (s *ItemState) UnmarshalJSON(data []byte) error {
	name, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("item state must be a string: %s", data)
	}
	parsed, ok := ParseItemState(name)
	if !ok {
		return fmt.Errorf("unknown item state: %s", name)
	}
	*s = parsed
	return nil
}

// InventoryItem is a single skin in the active inventory.
type InventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	WearTier      string    `json:"wearTier"`
	WearValue     float64   `json:"wearValue"`
	StatTrak      bool      `json:"statTrak"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseTime  time.Time `json:"purchaseTime"`
	CurrentPrice  float64   `json:"currentPrice"`
	State         ItemState `json:"state"`
}

// ItemID derives the deterministic inventory id from the purchase time and
// the exact wear value, e.g. "20240101130000_0.1234". Two purchases with an
// identical (time, wear) pair collide on purpose; the caller treats that as
// a duplicate, never as an overwrite.
func ItemID(purchaseTime time.Time, wearValue float64) string {
	return purchaseTime.Format("20060102150405") + "_" + strconv.FormatFloat(wearValue, 'f', 4, 64)
}

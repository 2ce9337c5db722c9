// Package request defines the JSON request bodies accepted by the API.
package request

// CreateItemRequest is the body for adding a skin to the inventory.
// PurchaseTime is optional; when empty the item is stamped with the current
// time. Accepted formats: RFC3339 or "2006-01-02 15:04:05".
type CreateItemRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Subcategory   string  `json:"subcategory"`
	WearTier      string  `json:"wearTier"`
	WearValue     float64 `json:"wearValue"`
	StatTrak      bool    `json:"statTrak"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseTime  string  `json:"purchaseTime,omitempty"`
}

// SellItemRequest is the body for selling a holding item.
// SellTime is optional and defaults to the current time.
type SellItemRequest struct {
	SellPrice   float64 `json:"sellPrice"`
	ExtraIncome float64 `json:"extraIncome"`
	SellTime    string  `json:"sellTime,omitempty"`
}

// UpdatePriceRequest sets the current market price of a single item.
type UpdatePriceRequest struct {
	Price float64 `json:"price"`
}

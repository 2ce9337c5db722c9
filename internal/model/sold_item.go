package model

import "time"

// SoldItem is an immutable archive record of a completed sale. It copies the
// inventory fields by value at the moment of sale, so later catalog or price
// updates never rewrite history.
type SoldItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	WearTier      string    `json:"wearTier"`
	WearValue     float64   `json:"wearValue"`
	StatTrak      bool      `json:"statTrak"`
	PurchasePrice float64   `json:"purchasePrice"`
	PurchaseTime  time.Time `json:"purchaseTime"`
	SellPrice     float64   `json:"sellPrice"`
	ExtraIncome   float64   `json:"extraIncome"`
	SellTime      time.Time `json:"sellTime"`
	HoldDays      int       `json:"holdDays"`
	TotalProfit   float64   `json:"totalProfit"`
}

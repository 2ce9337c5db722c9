package model

import "time"

// ItemMapping is a price-catalog row. All inventory items sharing the same
// (name, category, wear tier, StatTrak) tuple reference one mapping, which
// carries the current market reference price for that skin kind.
type ItemMapping struct {
	MappingID    int64     `json:"mappingId"`
	ItemName     string    `json:"itemName"`
	Category     string    `json:"category"`
	WearTier     string    `json:"wearTier"`
	StatTrak     bool      `json:"statTrak"`
	LastUsed     time.Time `json:"lastUsed"`
	CurrentPrice float64   `json:"currentPrice"`
}

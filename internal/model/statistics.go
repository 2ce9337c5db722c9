package model

// Statistics is the derived summary over the ledger and its counters.
// RealizedProfit comes from the accumulated sales counter; UnrealizedProfit
// is the paper gain on items still held (current minus purchase value).
type Statistics struct {
	TotalInvestment     float64 `json:"totalInvestment"`
	TotalProfit         float64 `json:"totalProfit"` // realized + unrealized
	RealizedProfit      float64 `json:"realizedProfit"`
	UnrealizedProfit    float64 `json:"unrealizedProfit"`
	RemainingBalance    float64 `json:"remainingBalance"`
	TotalFees           float64 `json:"totalFees"`
	PurchaseMarketValue float64 `json:"purchaseMarketValue"`
	CurrentMarketValue  float64 `json:"currentMarketValue"`
	ItemCount           int     `json:"itemCount"`
}

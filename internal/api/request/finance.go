package request

// AdjustInvestmentRequest moves total investment and remaining balance
// together by Delta. Negative deltas withdraw.
type AdjustInvestmentRequest struct {
	Delta float64 `json:"delta"`
}

// AddFeeRequest records a non-negative fee against the ledger.
type AddFeeRequest struct {
	Amount float64 `json:"amount"`
}

// MarketTokenRequest stores the marketplace API token. The token is
// encrypted at rest.
type MarketTokenRequest struct {
	Token string `json:"token"`
}

// UpdateMappingPriceRequest sets the market reference price of a catalog
// mapping and propagates it to matching active items.
type UpdateMappingPriceRequest struct {
	Price float64 `json:"price"`
}

package model

// Counters holds the ledger-wide running totals. They live in the counters
// table as name/value rows and are adjusted by every purchase, sale, fee and
// investment change.
type Counters struct {
	TotalInvestment  float64 `json:"totalInvestment"`
	TotalProfit      float64 `json:"totalProfit"` // realized profit from completed sales
	RemainingBalance float64 `json:"remainingBalance"`
	TotalFees        float64 `json:"totalFees"`
}

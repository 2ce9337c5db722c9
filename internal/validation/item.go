package validation

import (
	"fmt"
	"strings"

	"github.com/skintrack/skin-ledger-backend/internal/api/request"
)

// ValidWearTier contains the allowed wear tier labels.
var ValidWearTier = map[string]bool{
	"Factory New": true, "Minimal Wear": true, "Field-Tested": true,
	"Well-Worn": true, "Battle-Scarred": true,
}

// ValidateCreateItem validates an item creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - name, category, subcategory: non-blank
//   - wearTier: one of the five standard tiers
//   - wearValue: within [0, 1]
//   - purchasePrice: non-negative
//   - purchaseTime: RFC3339 or "2006-01-02 15:04:05" if provided
//
// Returns a validation Error with field-specific error messages if
// validation fails. Nothing is mutated before this passes.
func ValidateCreateItem(req request.CreateItemRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	}

	if strings.TrimSpace(req.Subcategory) == "" {
		errors["subcategory"] = "subcategory is required"
	}

	if strings.TrimSpace(req.WearTier) == "" {
		errors["wearTier"] = "wearTier is required"
	} else if !ValidWearTier[req.WearTier] {
		errors["wearTier"] = fmt.Sprintf("invalid wear tier: %s", req.WearTier)
	}

	if req.WearValue < 0 || req.WearValue > 1 {
		errors["wearValue"] = "wearValue must be within [0, 1]"
	}

	if req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice must not be negative"
	}

	if req.PurchaseTime != "" {
		if _, err := ParseTime(req.PurchaseTime); err != nil {
			errors["purchaseTime"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSellItem validates a sale request. Prices and extra income must
// not be negative; the sell time must parse if provided.
func ValidateSellItem(req request.SellItemRequest) error {
	errors := make(map[string]string)

	if req.SellPrice < 0 {
		errors["sellPrice"] = "sellPrice must not be negative"
	}

	if req.ExtraIncome < 0 {
		errors["extraIncome"] = "extraIncome must not be negative"
	}

	if req.SellTime != "" {
		if _, err := ParseTime(req.SellTime); err != nil {
			errors["sellTime"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePrice validates a current-price update.
func ValidateUpdatePrice(price float64) error {
	if price < 0 {
		return &Error{Fields: map[string]string{"price": "price must not be negative"}}
	}
	return nil
}

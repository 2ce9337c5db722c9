package validation

// ValidateFee validates a fee amount. Fees are strictly non-negative;
// rejections happen before any counter is touched.
func ValidateFee(amount float64) error {
	if amount < 0 {
		return &Error{Fields: map[string]string{"amount": "fee amount must not be negative"}}
	}
	return nil
}

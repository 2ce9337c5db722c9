package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
)

// itemIDPattern matches the deterministic inventory id format:
// a 14-digit purchase timestamp, an underscore, and a wear value with four
// decimals, e.g. "20240101130000_0.2345".
var itemIDPattern = regexp.MustCompile(`^\d{14}_\d+\.\d{4}$`)

// ValidateItemID checks that an id has the time-plus-wear format.
func ValidateItemID(id string) error {
	if !itemIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidItemID, id)
	}
	return nil
}

// ParseTime parses a request timestamp in RFC3339 or "2006-01-02 15:04:05"
// format. Note: mirrors store.ParseTime; both are intentionally kept local
// to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(time.RFC3339, str)
	if err != nil {
		returnTime, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

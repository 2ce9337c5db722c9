package repository

import (
	"fmt"
	"time"
)

// parseTime parses a stored timestamp in RFC3339 or "2006-01-02 15:04:05"
// format. Note: mirrors store.ParseTime; both are intentionally kept local
// to avoid cross-layer imports.
func parseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(time.RFC3339, str)
	if err != nil {
		returnTime, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

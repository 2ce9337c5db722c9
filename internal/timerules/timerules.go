// Package timerules implements the trade-cooldown calendar arithmetic.
// Everything here is pure: callers pass every timestamp in, nothing reads
// the wall clock.
package timerules

import (
	"fmt"
	"time"
)

// CutoffHour is the local hour at which the marketplace rolls its trade day.
const CutoffHour = 16

// CoolingEndTime returns the instant the cooldown of a purchase ends.
//
// Purchases made at or before 16:00:00 local time wait 7 full days,
// purchases after 16:00:00 wait 8. The result is always at 16:00:00 on the
// day reached by adding the wait to the purchase date. A purchase at
// exactly 16:00:00 belongs to the early branch.
func CoolingEndTime(purchase time.Time) time.Time {
	cutoff := time.Date(purchase.Year(), purchase.Month(), purchase.Day(),
		CutoffHour, 0, 0, 0, purchase.Location())

	days := 7
	if purchase.After(cutoff) {
		days = 8
	}

	end := purchase.AddDate(0, 0, days)
	return time.Date(end.Year(), end.Month(), end.Day(),
		CutoffHour, 0, 0, 0, purchase.Location())
}

// CoolingElapsed reports whether an item purchased at purchase is out of its
// cooldown at now.
func CoolingElapsed(now, purchase time.Time) bool {
	return !now.Before(CoolingEndTime(purchase))
}

// HoldDays returns the whole days between purchase and sale, truncated.
// A negative result means the caller fed a sale time before the purchase
// time; the ledger flags that as a logic error but does not invent data.
func HoldDays(purchase, sell time.Time) int {
	return int(sell.Sub(purchase).Hours() / 24)
}

// Describe renders the human-readable countdown or hold duration the
// presentation layer shows next to an item's state.
func Describe(now, purchase time.Time, holding bool) string {
	end := CoolingEndTime(purchase)

	if !holding {
		remaining := end.Sub(now)
		if remaining <= 0 {
			return "cooldown ended"
		}
		d := int(remaining.Hours()) / 24
		h := int(remaining.Hours()) % 24
		m := int(remaining.Minutes()) % 60
		switch {
		case d > 0:
			return fmt.Sprintf("%dd %dh remaining", d, h)
		case h > 0:
			return fmt.Sprintf("%dh %dm remaining", h, m)
		default:
			return fmt.Sprintf("%dm remaining", m)
		}
	}

	// Holding time counts from the end of the cooldown, not the purchase.
	held := now.Sub(end)
	if held < 0 {
		held = 0
	}
	d := int(held.Hours()) / 24
	h := int(held.Hours()) % 24
	if d > 0 {
		return fmt.Sprintf("held %dd %dh", d, h)
	}
	return fmt.Sprintf("held %dh", h)
}

package wardrobe

import (
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// RarelyUsedAfterMonths is how many calendar months an item can go unworn
// before it is flagged as rarely used.
const RarelyUsedAfterMonths = 2

// ApplyAction records a lifecycle action on an item and derives its new
// status. Use, laundry and repair make the item unavailable; available
// makes it available again. A use action also bumps the last-worn time.
// Unknown actions return an InvalidActionError and leave the item untouched.
func ApplyAction(item *model.WardrobeItem, action model.Action, now time.Time) error {
	switch action {
	case model.ActionUse, model.ActionLaundry, model.ActionRepair:
		item.Status = model.StatusUnavailable
	case model.ActionAvailable:
		item.Status = model.StatusAvailable
	default:
		return &model.InvalidActionError{Action: string(action)}
	}

	t := now
	item.LastAction = action
	item.LastActionAt = &t
	if action == model.ActionUse {
		item.LastUsedAt = &t
	}
	return nil
}

// RefreshStatus re-derives the rarely-used status from the time since the
// item was last worn. Items worn RarelyUsedAfterMonths or more calendar
// months ago are marked rarely used, overriding any prior status. Items
// never worn are left alone. Idempotent: re-running with the same or a
// later time never un-sets the flag.
//
// Reports whether the status changed.
func RefreshStatus(item *model.WardrobeItem, now time.Time) bool {
	if item.LastUsedAt == nil {
		return false
	}
	if monthsBetween(*item.LastUsedAt, now) < RarelyUsedAfterMonths {
		return false
	}
	if item.Status == model.StatusRarelyUsed {
		return false
	}
	item.Status = model.StatusRarelyUsed
	return true
}

// RefreshStatuses refreshes every item in the collection and returns the
// ids of items whose status changed, so callers can persist them. Run this
// over the full collection before filtering or display.
func RefreshStatuses(items []model.WardrobeItem, now time.Time) []string {
	var changed []string
	for i := range items {
		if RefreshStatus(&items[i], now) {
			changed = append(changed, items[i].ID)
		}
	}
	return changed
}

// monthsBetween returns the calendar-month difference between from and to,
// using only the year and month fields. Two timestamps inside the same
// calendar month always yield 0, regardless of how many days apart they are.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

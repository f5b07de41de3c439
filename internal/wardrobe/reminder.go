package wardrobe

import (
	"fmt"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// Reminder kinds.
const (
	ReminderInactivity = "inactivity"
	ReminderRarelyUsed = "rarely_used"
)

// Reminder is a request to notify the user, decoupled from delivery.
type Reminder struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Count int    `json:"count"`
}

// Policy holds the day thresholds for reminder evaluation.
type Policy struct {
	// InactiveAfter is the number of whole days without any action before
	// an item counts as inactive.
	InactiveAfter int
	// UnwornAfter is the number of whole days without a use action before
	// an item counts as unworn.
	UnwornAfter int
}

// DefaultPolicy matches the thresholds of the original wardrobe app.
var DefaultPolicy = Policy{InactiveAfter: 14, UnwornAfter: 60}

// Inactivity returns a reminder for items that were never acted upon, or
// whose last action is at least InactiveAfter whole days ago. Returns nil
// when no item qualifies.
func (p Policy) Inactivity(items []model.WardrobeItem, now time.Time) *Reminder {
	count := 0
	for _, item := range items {
		if item.LastActionAt == nil || daysBetween(*item.LastActionAt, now) >= p.InactiveAfter {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &Reminder{
		Kind:  ReminderInactivity,
		Title: "Don't Forget Your Wardrobe",
		Body:  fmt.Sprintf("%d items have been inactive for some time. They may need your attention.", count),
		Count: count,
	}
}

// RarelyUsed returns a reminder for items that were never worn, or last
// worn at least UnwornAfter whole days ago. Returns nil when no item
// qualifies.
func (p Policy) RarelyUsed(items []model.WardrobeItem, now time.Time) *Reminder {
	count := 0
	for _, item := range items {
		if item.LastUsedAt == nil || daysBetween(*item.LastUsedAt, now) >= p.UnwornAfter {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &Reminder{
		Kind:  ReminderRarelyUsed,
		Title: "Time to Wear Your Clothes!",
		Body:  fmt.Sprintf("%d clothes haven't been worn in a while. Check your wardrobe!", count),
		Count: count,
	}
}

// Evaluate runs both reminder rules. The rules are independent and may both
// fire in the same pass.
func (p Policy) Evaluate(items []model.WardrobeItem, now time.Time) []Reminder {
	var reminders []Reminder
	if r := p.Inactivity(items, now); r != nil {
		reminders = append(reminders, *r)
	}
	if r := p.RarelyUsed(items, now); r != nil {
		reminders = append(reminders, *r)
	}
	return reminders
}

// daysBetween returns the number of whole 24-hour periods between from and
// to. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

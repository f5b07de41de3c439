package model

import "time"

// WardrobeItem represents a single piece of clothing in the wardrobe.
type WardrobeItem struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Style        string     `json:"style,omitempty"`
	Description  string     `json:"description,omitempty"`
	Colors       []string   `json:"colors"`
	Status       Status     `json:"status"`
	LastAction   Action     `json:"last_action,omitempty"`
	LastActionAt *time.Time `json:"last_action_at,omitempty"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	DateAdded    time.Time  `json:"date_added"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Status is an item's current wearability state.
type Status string

// Item statuses.
const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusRarelyUsed  Status = "rarely_used"
)

// ValidStatus reports whether s is a known item status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusRarelyUsed:
		return true
	}
	return false
}

// Action is an explicit lifecycle event applied to an item.
type Action string

// Lifecycle actions.
const (
	ActionUse       Action = "use"
	ActionLaundry   Action = "laundry"
	ActionRepair    Action = "repair"
	ActionAvailable Action = "available"
)

// ParseAction validates an action string. Unknown actions are rejected
// rather than ignored.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionUse, ActionLaundry, ActionRepair, ActionAvailable:
		return a, nil
	}
	return "", &InvalidActionError{Action: s}
}

// ItemImage is metadata for one stored item photo. Image bytes are kept
// separately and fetched on demand.
type ItemImage struct {
	ID        int64     `json:"id"`
	ItemID    string    `json:"item_id"`
	Position  int       `json:"position"`
	MIME      string    `json:"mime"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionRecord is one entry in an item's action history.
type ActionRecord struct {
	ID          int64     `json:"id"`
	ItemID      string    `json:"item_id"`
	Action      Action    `json:"action"`
	PerformedAt time.Time `json:"performed_at"`
	PerformedBy *int64    `json:"performed_by,omitempty"`
}

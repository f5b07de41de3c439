package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// RemindersHandler evaluates the reminder policy on demand.
type RemindersHandler struct {
	DB     *sql.DB
	Policy wardrobe.Policy
}

// List handles GET /api/reminders. It returns the reminders that would fire
// right now without delivering them; delivery belongs to the background
// scheduler.
func (h *RemindersHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	wardrobe.RefreshStatuses(items, now)

	reminders := h.Policy.Evaluate(items, now)
	if reminders == nil {
		reminders = []wardrobe.Reminder{}
	}
	jsonResponse(w, http.StatusOK, reminders)
}

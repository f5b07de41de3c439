package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ItemsHandler handles wardrobe item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/items. It refreshes time-based statuses over the
// whole collection, persists any changes, and then applies the dashboard
// filter, so the statuses a caller sees always reflect query time.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	facet, err := wardrobe.ParseFacet(r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	for i := range items {
		if !wardrobe.RefreshStatus(&items[i], now) {
			continue
		}
		if err := store.SetItemStatus(r.Context(), h.DB, items[i].ID, items[i].Status); err != nil {
			writeError(w, err)
			return
		}
		metrics.StatusRefreshes.Inc()
	}

	filtered := wardrobe.Filter(items, r.URL.Query().Get("search"), facet)
	jsonResponse(w, http.StatusOK, filtered)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.CreateItemParams
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.ItemsCreated.Inc()
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if wardrobe.RefreshStatus(item, time.Now()) {
		if err := store.SetItemStatus(r.Context(), h.DB, item.ID, item.Status); err != nil {
			writeError(w, err)
			return
		}
		metrics.StatusRefreshes.Inc()
	}

	images, err := store.ListItemImages(r.Context(), h.DB, item.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if images == nil {
		images = []model.ItemImage{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item":   item,
		"images": images,
	})
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.UpdateItemParams
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	metrics.ItemsDeleted.Inc()
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

type applyActionRequest struct {
	Action string `json:"action"`
}

// ApplyAction handles POST /api/items/{id}/actions.
func (h *ItemsHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var req applyActionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := model.ParseAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	if err := wardrobe.ApplyAction(item, action, now); err != nil {
		writeError(w, err)
		return
	}

	if err := store.SaveItemLifecycle(r.Context(), h.DB, item); err != nil {
		writeError(w, err)
		return
	}

	var performedBy *int64
	if claims := GetClaims(r.Context()); claims != nil {
		performedBy = &claims.UserID
	}
	if err := store.RecordAction(r.Context(), h.DB, item.ID, action, now, performedBy); err != nil {
		writeError(w, err)
		return
	}

	metrics.ActionsApplied.WithLabelValues(string(action)).Inc()
	jsonResponse(w, http.StatusOK, item)
}

// GetHistory handles GET /api/items/{id}/actions.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	// Verify the item exists so unknown ids 404 instead of returning
	// an empty history.
	if _, err := store.GetItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	history, err := store.ListItemActions(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []model.ActionRecord{}
	}
	jsonResponse(w, http.StatusOK, history)
}

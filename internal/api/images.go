package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/store"
)

// ImagesHandler handles item photo endpoints.
type ImagesHandler struct {
	DB *sql.DB
}

// Upload handles POST /api/items/{id}/images.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	// Sniffs the real format and downscales before storage.
	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := store.AddItemImage(r.Context(), h.DB, r.PathValue("id"), processed.Data, processed.MIME)
	if err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, img)
}

// Get handles GET /api/items/{id}/images/{imageID}. With ?thumb=1 a small
// thumbnail is served instead of the full photo.
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	imageID, err := strconv.ParseInt(r.PathValue("imageID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"), imageID)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("thumb") == "1" {
		thumb, err := imaging.Thumbnail(data)
		if err != nil {
			writeError(w, err)
			return
		}
		data, mime = thumb.Data, thumb.MIME
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// Delete handles DELETE /api/items/{id}/images/{imageID}.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	imageID, err := strconv.ParseInt(r.PathValue("imageID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := store.DeleteItemImage(r.Context(), h.DB, r.PathValue("id"), imageID); err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image deleted"})
}

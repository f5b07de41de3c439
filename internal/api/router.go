package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, policy wardrobe.Policy) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	imagesHandler := &ImagesHandler{DB: db}
	remindersHandler := &RemindersHandler{DB: db, Policy: policy}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// User management, admin only.
	adminOnly := RequireRole(model.RoleAdmin)
	mux.Handle("POST /api/users", authMW(adminOnly(http.HandlerFunc(authHandler.CreateUser))))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Lifecycle actions.
	mux.Handle("POST /api/items/{id}/actions", authMW(http.HandlerFunc(itemsHandler.ApplyAction)))
	mux.Handle("GET /api/items/{id}/actions", authMW(http.HandlerFunc(itemsHandler.GetHistory)))

	// Photos.
	mux.Handle("POST /api/items/{id}/images", authMW(http.HandlerFunc(imagesHandler.Upload)))
	mux.Handle("GET /api/items/{id}/images/{imageID}", authMW(http.HandlerFunc(imagesHandler.Get)))
	mux.Handle("DELETE /api/items/{id}/images/{imageID}", authMW(http.HandlerFunc(imagesHandler.Delete)))

	// Reminders.
	mux.Handle("GET /api/reminders", authMW(http.HandlerFunc(remindersHandler.List)))

	return mux
}

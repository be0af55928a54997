package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/restock/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
// assetRoot is the local asset directory to serve under /assets/; leave it
// empty when images live in an external object store.
func NewRouter(db *sql.DB, jwtSecret string, svc *inventory.Service, assetRoot string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{Service: svc}
	listHandler := &ListHandler{Service: svc}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: registration and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Items, scoped to the caller.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/decrement", authMW(http.HandlerFunc(itemsHandler.Decrement)))
	mux.Handle("POST /api/items/{id}/list", authMW(http.HandlerFunc(itemsHandler.Transfer)))

	// Restock list.
	mux.Handle("GET /api/list", authMW(http.HandlerFunc(listHandler.List)))
	mux.Handle("POST /api/list", authMW(http.HandlerFunc(listHandler.Create)))
	mux.Handle("DELETE /api/list/{id}", authMW(http.HandlerFunc(listHandler.Delete)))

	// Image refs are plain URLs, so stored files are public.
	if assetRoot != "" {
		assetsHandler := &AssetsHandler{Root: assetRoot}
		mux.HandleFunc("GET /assets/{key...}", assetsHandler.Get)
	}

	return mux
}

package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/spoolshelf/internal/model"
	"github.com/erazemk/spoolshelf/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, inv *service.Inventory) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	linesHandler := &LinesHandler{Inventory: inv, DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Lines: read, open and consume (all roles); stock and swatches (manager+);
	// import (admin).
	mux.Handle("GET /api/lines", authMW(http.HandlerFunc(linesHandler.List)))
	mux.Handle("GET /api/lines/export", authMW(http.HandlerFunc(linesHandler.Export)))
	mux.Handle("POST /api/lines/import", authMW(requireAdmin(http.HandlerFunc(linesHandler.Import))))
	mux.Handle("POST /api/lines/stock", authMW(requireManager(http.HandlerFunc(linesHandler.AddStock))))
	mux.Handle("GET /api/lines/{id}", authMW(http.HandlerFunc(linesHandler.Get)))
	mux.Handle("POST /api/lines/{id}/open", authMW(http.HandlerFunc(linesHandler.Open)))
	mux.Handle("POST /api/lines/{id}/consume", authMW(http.HandlerFunc(linesHandler.Consume)))
	mux.Handle("PUT /api/lines/{id}/swatch", authMW(requireManager(http.HandlerFunc(linesHandler.UploadSwatch))))
	mux.Handle("GET /api/lines/{id}/swatch", authMW(http.HandlerFunc(linesHandler.GetSwatch)))

	return mux
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nextliferp/accountd/internal/api/handler"
	apimiddleware "github.com/nextliferp/accountd/internal/api/middleware"
	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/middleware"
	"github.com/nextliferp/accountd/internal/services/gateway"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Gateway *gateway.Service
	Clock   clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.Gateway)
	playerHandler := handler.NewPlayerHandler(cfg.Gateway)
	healthHandler := handler.NewHealthHandler(cfg.Gateway, cfg.Clock)

	// Common middleware
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Auth routes. Tokens travel in request bodies, so no routes need
	// header-based auth middleware.
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/validate", authHandler.Validate).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Player data routes
	r.HandleFunc("/player_data", playerHandler.GetPlayerData).Methods(http.MethodPost)
	r.HandleFunc("/update_player", playerHandler.UpdatePlayerData).Methods(http.MethodPost)

	// Health and banner
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/", homeHandler).Methods(http.MethodGet)

	return r
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("NextLifeRP API - ONLINE | Use /register, /login, /validate"))
}

package http

import (
	"snake_webapp/internal/config"
	"snake_webapp/internal/http/handlers"
	"snake_webapp/internal/http/middleware"
	"snake_webapp/internal/session"
	"snake_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, sessions *session.Store, cfg *config.Config, version string) {
	h := handlers.NewHandler(sessions)
	healthHandler := handlers.NewHealthHandler(sessions, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes (the original interface lived there)
	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h, cfg)

	// WebSocket: server-driven tick loop pushing snapshots
	r.GET("/ws", ws.HandleWS(sessions, cfg.TickInterval))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Game action rate limiter (per session, not per IP)
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, cfg.GameRateWindow)

	api.POST("/game/new", h.NewGame)
	api.GET("/game/state", middleware.Session(), h.State)
	api.POST("/game/start", middleware.Session(), h.StartGame)
	api.POST("/game/move", middleware.Session(), gameRL, h.Move)
	api.POST("/game/update", middleware.Session(), gameRL, h.Update)
	api.POST("/game/reset", middleware.Session(), h.ResetGame)
}

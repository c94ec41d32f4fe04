package handlers

import (
	"net/http"

	"snake_webapp/internal/session"
	"snake_webapp/internal/snake"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Sessions *session.Store
}

func NewHandler(sessions *session.Store) *Handler {
	return &Handler{Sessions: sessions}
}

// getSessionID извлекает session_id из контекста Gin
func getSessionID(c interface{ Get(string) (any, bool) }) (string, bool) {
	val, ok := c.Get("session_id")
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}

// game resolves the request's session into its engine instance and writes
// the error response itself when there is none.
func (h *Handler) game(c *gin.Context) (*snake.Game, bool) {
	sessionID, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return nil, false
	}

	g, ok := h.Sessions.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active game"})
		return nil, false
	}
	return g, true
}

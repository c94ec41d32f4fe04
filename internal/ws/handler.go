package ws

import (
	"net/http"
	"os"
	"time"

	"snake_webapp/internal/logger"
	"snake_webapp/internal/service"
	"snake_webapp/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades the connection and hands the session's game to a
// Client, which ticks it on the given cadence and streams snapshots.
func HandleWS(sessions *session.Store, tick time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sessionID, err := service.ParseSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		game, ok := sessions.Get(sessionID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active game"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("ws upgrade error", "error", err)
			return
		}

		logger.Info("ws session connected", "session", sessionID)
		NewClient(sessionID, game, conn, tick).Run()
	}
}

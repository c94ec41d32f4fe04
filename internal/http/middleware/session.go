package middleware

import (
	"net/http"
	"strings"

	"snake_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Session resolves the session token into a session id and stores it in
// the request context. The token comes from the Authorization header
// (Bearer) or, for clients that cannot set headers, the token query param.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sessionID, err := service.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/server/auth"
)

// userIDKey is the gin context key the middleware stores the caller's id
// under.
const userIDKey = "user_id"

// AuthMiddleware checks the Bearer token and puts the user id on the
// context.
func (s *Server) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthTokenHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be in the format 'Bearer {token}'"})
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID reads the id the middleware stored.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

package middleware

import (
	"net/http"
	"strings"

	"bumptrack-be/internal/jwt"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key under which the authenticated user id
// is stored for downstream handlers.
const userIDKey = "userID"

// AuthMiddleware verifies the Bearer token and stores the user id in the
// request context. Handlers behind it can assume a verified identity.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}

		userID, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "401",
		"message": "invalid or missing access token",
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bumptrack-be/internal/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c)})
	})
	return router
}

func getWithHeader(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", 30*time.Minute)
	router := newAuthTestRouter(jwtService)

	token, err := jwtService.GenerateToken("user-123")
	require.NoError(t, err)

	rr := getWithHeader(router, "Bearer "+token)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "user-123")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter(jwt.NewJWTService("test-secret", 30*time.Minute))

	rr := getWithHeader(router, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(jwt.NewJWTService("test-secret", 30*time.Minute))

	for _, header := range []string{"token-without-scheme", "Basic abc123"} {
		rr := getWithHeader(router, header)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header: %s", header)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	expired := jwt.NewJWTService("test-secret", -time.Minute)
	router := newAuthTestRouter(jwt.NewJWTService("test-secret", 30*time.Minute))

	token, err := expired.GenerateToken("user-123")
	require.NoError(t, err)

	rr := getWithHeader(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

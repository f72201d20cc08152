package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safartaxi/trip-match-backend/pkg/jwt"
)

func setupAuthRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("", AuthMiddleware(jwtService))
	protected.GET("/ping", func(c *gin.Context) {
		claims, _ := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})

	adminOnly := router.Group("", AuthMiddleware(jwtService), RequireRole("admin"))
	adminOnly.GET("/admin-ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func doGet(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupAuthRouter(jwtService)

	t.Run("Missing Header", func(t *testing.T) {
		w := doGet(router, "/ping", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		w := doGet(router, "/ping", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		w := doGet(router, "/ping", "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.Generate("gateway", "gateway")
		require.NoError(t, err)

		w := doGet(router, "/ping", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		token, err := jwtService.Generate("gateway", "gateway")
		require.NoError(t, err)

		w := doGet(router, "/ping", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "gateway")
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	router := setupAuthRouter(jwtService)

	t.Run("Wrong Role", func(t *testing.T) {
		token, err := jwtService.Generate("gateway", "gateway")
		require.NoError(t, err)

		w := doGet(router, "/admin-ping", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin Role", func(t *testing.T) {
		token, err := jwtService.Generate("admin", "admin")
		require.NoError(t, err)

		w := doGet(router, "/admin-ping", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/stretchr/testify/assert"
)

func protectedRouter(tokens *auth.Manager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(Authenticate(tokens))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		identity := identityFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	router := protectedRouter(tokens)

	token, _, err := tokens.Issue(&domain.User{ID: 42, Username: "ada", Role: domain.RoleClient})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	router := protectedRouter(auth.NewManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	router := protectedRouter(tokens)

	other := auth.NewManager("other-secret", time.Hour)
	token, _, err := other.Issue(&domain.User{ID: 42, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	router := protectedRouter(tokens, domain.RoleAdmin)

	clientToken, _, err := tokens.Issue(&domain.User{ID: 1, Role: domain.RoleClient})
	assert.NoError(t, err)
	adminToken, _, err := tokens.Issue(&domain.User{ID: 2, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	mw := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	api := r.Group("/api", mw.Authenticate())
	api.GET("/whoami", func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	api.GET("/doctor-only", mw.RequireRole(model.RoleDoctor), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	return r, jwtSvc
}

func sessionCookie(t *testing.T, jwtSvc auth.JWTService, role model.Role) *http.Cookie {
	t.Helper()
	token, err := jwtSvc.GenerateToken(&model.TokenClaims{
		UserID: model.NewUserID(role),
		Role:   role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func TestAuthenticateMissingCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticateValidToken(t *testing.T) {
	r, jwtSvc := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(sessionCookie(t, jwtSvc, model.RolePatient))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.PatientIDPrefix)
}

func TestRequireRole(t *testing.T) {
	r, jwtSvc := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/doctor-only", nil)
	req.AddCookie(sessionCookie(t, jwtSvc, model.RolePatient))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only doctors can access this endpoint")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/doctor-only", nil)
	req.AddCookie(sessionCookie(t, jwtSvc, model.RoleDoctor))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

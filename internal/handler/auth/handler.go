package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/service/auth"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

// sessionMaxAge matches the token expiry: 24 hours.
const sessionMaxAge = 24 * 60 * 60

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	if err := h.service.Register(c.Request.Context(), &req); err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, http.StatusCreated, "Registration successful! Please login.", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Email and password are required"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, result.Token, sessionMaxAge, "/", "", false, true)

	handler.OK(c, http.StatusOK, "Login successful", gin.H{
		"user":     result.User,
		"redirect": result.Redirect,
	})
}

// Logout clears the session cookie. Idempotent: clearing an absent
// cookie still succeeds.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	handler.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// CurrentUser resolves the session user from the store, so renames and
// other changes show up without re-login.
func (h *Handler) CurrentUser(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	user, err := h.service.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"user": user})
}

// Verify echoes the cookie claims without touching the store.
func (h *Handler) Verify(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	handler.OK(c, http.StatusOK, "", gin.H{"user": claims})
}

// RegisterRoutes mounts the unauthenticated session endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// RegisterSessionRoutes mounts the introspection endpoints behind auth.
func (h *Handler) RegisterSessionRoutes(r *gin.RouterGroup) {
	r.GET("/current-user", h.CurrentUser)
	r.GET("/verify", h.Verify)
}

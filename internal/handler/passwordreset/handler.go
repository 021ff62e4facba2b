package passwordreset

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/service/passwordreset"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Handler struct {
	service *passwordreset.Service
}

func NewHandler(service *passwordreset.Service) *Handler {
	return &Handler{service: service}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Email is required"))
		return
	}

	if err := h.service.SendOTP(c.Request.Context(), req.Email); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "OTP sent successfully to your email", nil)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Email and OTP are required"))
		return
	}

	if err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "OTP verified successfully", nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Email and new password are required"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "Password reset successfully", nil)
}

// RegisterRoutes mounts the reset flow. These endpoints are
// unauthenticated: the caller has forgotten their password.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reset := r.Group("/forgot-password")
	{
		reset.POST("/send-otp", h.SendOTP)
		reset.POST("/verify-otp", h.VerifyOTP)
		reset.POST("/reset-password", h.ResetPassword)
	}
}

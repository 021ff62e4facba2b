package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/service/doctor"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Handler struct {
	service *doctor.Service
}

func NewHandler(service *doctor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProfile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	view, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{
		"user":    view.User,
		"profile": view.Profile,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.DoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	created, err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := "Profile updated successfully"
	if created {
		message = "Profile created successfully"
	}
	handler.OK(c, http.StatusOK, message, nil)
}

// ListDoctors is the patient-facing directory.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"doctors": doctors})
}

func (h *Handler) SearchPatient(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	result, err := h.service.SearchPatient(c.Request.Context(), claims.UserID, c.Param("patientId"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"patient": result})
}

func (h *Handler) DashboardStats(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	stats, err := h.service.DashboardStats(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"stats": stats})
}

func (h *Handler) RecentPatients(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	patients, err := h.service.RecentPatients(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"patients": patients})
}

func (h *Handler) PatientRecords(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	records, err := h.service.PatientRecords(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"records": records})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	doctorOnly := auth.RequireRole(model.RoleDoctor)
	patientOnly := auth.RequireRole(model.RolePatient)

	r.GET("/doctor-profile", doctorOnly, h.GetProfile)
	r.POST("/doctor-profile", doctorOnly, h.UpdateProfile)
	r.GET("/doctors", patientOnly, h.ListDoctors)
	r.GET("/search-patient/:patientId", doctorOnly, h.SearchPatient)
	r.GET("/patient-records", doctorOnly, h.PatientRecords)

	dashboard := r.Group("/doctor", doctorOnly)
	{
		dashboard.GET("/dashboard-stats", h.DashboardStats)
		dashboard.GET("/recent-patients", h.RecentPatients)
	}
}

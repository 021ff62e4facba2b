package patient

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/service/document"
	"github.com/healthhub/healthhub-api/internal/service/patient"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Handler struct {
	service     *patient.Service
	documentSvc *document.Service
}

func NewHandler(service *patient.Service, documentSvc *document.Service) *Handler {
	return &Handler{service: service, documentSvc: documentSvc}
}

func (h *Handler) GetProfile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	view, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"profile": view})
}

// UpdateProfile upserts the patient profile from a multipart form. An
// optional single medical-report PDF rides along; its failure degrades
// the message but never rolls back the profile write.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.PatientProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.Error(c, apperrors.Validation("Invalid form data"))
		return
	}

	var report *model.DocumentUpload
	if fh, err := c.FormFile("medicalReport"); err == nil {
		upload, err := handler.ReadUpload(fh)
		if err != nil {
			handler.Error(c, apperrors.Internal(err))
			return
		}
		if err := document.ValidateUpload(upload); err != nil {
			handler.Error(c, err)
			return
		}
		report = upload
	}

	claims := middleware.ClaimsFromContext(c)
	result, err := h.service.UpdateProfile(c.Request.Context(), claims, &req, report)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := "Profile updated successfully"
	if result.Created {
		message = "Profile created successfully"
	}
	if result.HadReport && !result.ReportStored {
		message += ", but the medical report could not be saved"
	}
	handler.OK(c, http.StatusOK, message, nil)
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

// DownloadMedicalReport streams the newest profile-sourced report.
func (h *Handler) DownloadMedicalReport(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	doc, err := h.documentSvc.MedicalReport(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, doc.Type, doc.Data)
}

func (h *Handler) DeleteMedicalReport(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if err := h.documentSvc.DeleteMedicalReport(c.Request.Context(), claims.UserID); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "Medical report deleted successfully", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patientOnly := auth.RequireRole(model.RolePatient)

	r.GET("/patient-profile", patientOnly, h.GetProfile)
	r.POST("/patient-profile", patientOnly, h.UpdateProfile)
	r.GET("/patient-profile/medical-report", patientOnly, h.DownloadMedicalReport)
	r.DELETE("/patient-profile/medical-report", patientOnly, h.DeleteMedicalReport)

	dashboard := r.Group("/patient", patientOnly)
	{
		dashboard.GET("/dashboard-stats", h.DashboardStats)
	}
}

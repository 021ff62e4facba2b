package appointment

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/service/appointment"
	"github.com/healthhub/healthhub-api/internal/service/document"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	appt, err := h.service.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, http.StatusCreated, "Appointment created successfully", gin.H{
		"appointment": appt,
	})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	appointments, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"appointments": appointments})
}

// CompleteAppointment transitions a pending appointment to completed and
// stores any attached documents. Document failures after the committed
// transition degrade the message instead of failing the request.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		handler.Error(c, apperrors.Validation("Invalid multipart form"))
		return
	}

	appointmentID := c.PostForm("appointmentId")
	notes := c.PostForm("notes")

	files := form.File["documents"]
	if len(files) > model.MaxCompletionUpload {
		handler.Error(c, apperrors.Validation(fmt.Sprintf(
			"Too many documents. Maximum is %d per appointment.", model.MaxCompletionUpload)))
		return
	}

	uploads := make([]*model.DocumentUpload, 0, len(files))
	for _, fh := range files {
		upload, err := handler.ReadUpload(fh)
		if err != nil {
			handler.Error(c, apperrors.Internal(err))
			return
		}
		if err := document.ValidateUpload(upload); err != nil {
			handler.Error(c, err)
			return
		}
		uploads = append(uploads, upload)
	}

	claims := middleware.ClaimsFromContext(c)
	result, err := h.service.Complete(c.Request.Context(), claims.UserID, claims.Name, appointmentID, notes, uploads)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := "Appointment completed successfully"
	if !result.DocumentsOK {
		message = "Appointment completed, but some documents could not be saved"
	}
	handler.OK(c, http.StatusOK, message, gin.H{
		"appointment":  result.Appointment,
		"patientAdded": result.PatientAdded,
	})
}

func (h *Handler) MarkDone(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	result, err := h.service.MarkDone(c.Request.Context(), claims.UserID, c.Param("appointmentId"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, http.StatusOK, "Appointment marked as done", gin.H{
		"appointment":  result.Appointment,
		"patientAdded": result.PatientAdded,
	})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("appointmentId")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "Appointment deleted successfully", nil)
}

// RegisterRoutes mounts the appointment endpoints; every route is
// doctor-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments", auth.RequireRole(model.RoleDoctor))
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.POST("/complete", h.CompleteAppointment)
		appointments.PUT("/:appointmentId/done", h.MarkDone)
		appointments.DELETE("/:appointmentId", h.DeleteAppointment)
	}
}

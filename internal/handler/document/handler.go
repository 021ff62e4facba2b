package document

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/handler"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/service/document"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
	"github.com/healthhub/healthhub-api/pkg/metrics"
)

type Handler struct {
	service *document.Service
	metrics *metrics.Metrics
}

func NewHandler(service *document.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("document")
	if err != nil {
		handler.Error(c, apperrors.Validation("No document provided"))
		return
	}

	upload, err := handler.ReadUpload(fh)
	if err != nil {
		handler.Error(c, apperrors.Internal(err))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	documentID, err := h.service.Upload(c.Request.Context(), c.Param("patientId"), claims, upload, c.PostForm("notes"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.DocumentUploads.WithLabelValues(model.DocumentSourceUpload, "success").Inc()
	}
	handler.OK(c, http.StatusCreated, "Document uploaded successfully", gin.H{
		"documentId": documentID,
	})
}

func (h *Handler) List(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	docs, err := h.service.List(c.Request.Context(), claims, c.Param("patientId"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, "", gin.H{"documents": docs})
}

// Download streams the stored payload with its original name and type,
// bypassing the JSON envelope.
func (h *Handler) Download(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	doc, err := h.service.Download(c.Request.Context(), claims, c.Param("patientId"), c.Param("documentId"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.DocumentBytesRead.Add(float64(len(doc.Data)))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	c.Data(http.StatusOK, doc.Type, doc.Data)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/patient-documents")
	{
		documents.POST("/:patientId/upload", h.Upload)
		documents.GET("/:patientId", h.List)
		documents.GET("/:patientId/:documentId/download", h.Download)
	}
}

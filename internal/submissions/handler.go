package submissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"luvix/onboarding/onboarding-backend/internal/form"
)

// Handler exposes the public submit endpoint and the admin read side.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a submissions handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the endpoints. The admin middleware guards
// everything except the public submit.
func (h *Handler) RegisterRoutes(router *gin.Engine, adminAuth gin.HandlerFunc) {
	router.POST("/submit-onboarding", h.Submit)

	admin := router.Group("", adminAuth)
	{
		admin.GET("/submissions", h.List)
		admin.GET("/submissions/export.xlsx", h.ExportWorkbook)
		admin.GET("/submissions/:id/export", h.Export)
		admin.PATCH("/submissions/:id/onboard", h.MarkOnboarded)
	}
}

// Submit accepts a completed form aggregate and runs the pipeline.
func (h *Handler) Submit(c *gin.Context) {
	var f form.FormData
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), f)
	if err != nil {
		var vf *ValidationFailure
		switch {
		case errors.As(err, &vf):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "fields": vf.Fields})
		case errors.Is(err, ErrConfig), errors.Is(err, ErrRender):
			h.logger.Error("Submission pipeline failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process submission"})
		case errors.Is(err, ErrNotification):
			h.logger.Error("Notification delivery failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to send notification email"})
		default:
			h.logger.Error("Submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process submission"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": sub.ID})
}

// List returns all submissions newest first.
func (h *Handler) List(c *gin.Context) {
	subs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": subs, "count": len(subs)})
}

// Export streams the PDF for one submission.
func (h *Handler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission id"})
		return
	}

	filename, pdf, err := h.service.Export(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Submission not found"})
			return
		}
		h.logger.Error("Failed to export submission", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export submission"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportWorkbook streams the XLSX listing of all submissions.
func (h *Handler) ExportWorkbook(c *gin.Context) {
	data, err := h.service.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to export workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export submissions"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="submissions.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// MarkOnboarded flips the onboarded flag for one submission.
func (h *Handler) MarkOnboarded(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission id"})
		return
	}

	if err := h.service.MarkOnboarded(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Submission not found"})
			return
		}
		h.logger.Error("Failed to mark submission onboarded", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id, "onboarded": true})
}

package handlers

import (
	"net/http"

	"campaign-site/pkg/models"
	"campaign-site/pkg/services"

	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	Photos []models.PhotoLocation `json:"photos"`
}

// LocationPreview returns the preview as JSON. Photos without coordinates
// are skipped, never rejected.
func (h *Handler) LocationPreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	c.JSON(http.StatusOK, services.BuildPreview(req.Photos, h.Map))
}

// LocationPreviewPage renders the same input as the HTML widget.
func (h *Handler) LocationPreviewPage(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}
	c.HTML(http.StatusOK, "location.html", gin.H{"Preview": services.BuildPreview(req.Photos, h.Map)})
}

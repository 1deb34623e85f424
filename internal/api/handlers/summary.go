package handlers

import (
	"net/http"

	"energy-dashboard/internal/api/models"
	"energy-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler serves the latest built summary.
type SummaryHandler struct {
	svc *service.Service
}

func NewSummaryHandler(svc *service.Service) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// GetSummary handles GET /api/v1/summary. With ?refresh=true a new cycle
// runs before responding; otherwise the latest summary is returned as-is.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary := h.svc.Summary()
	if c.Query("refresh") == "true" || len(summary.Rows) == 0 && summary.Window.IsZero() {
		summary = h.svc.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, models.FromSummary(summary))
}

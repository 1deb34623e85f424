package handlers

import (
	"errors"
	"net/http"

	"energy-dashboard/internal/api/models"
	"energy-dashboard/internal/config"
	"energy-dashboard/internal/dashboard"
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/stats"

	"github.com/gin-gonic/gin"
)

// RenderHandler runs the pipeline once over inline statistics.
type RenderHandler struct{}

func NewRenderHandler() *RenderHandler {
	return &RenderHandler{}
}

// Render handles POST /api/v1/render.
func (h *RenderHandler) Render(c *gin.Context) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	sources, err := config.Normalize(req.Sources)
	if err != nil {
		var cfgErr *config.ConfigError
		code := "INVALID_REQUEST"
		if errors.As(err, &cfgErr) {
			code = "INVALID_CONFIG"
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}
	nm := config.NormalizeNetMetering(req.NetMetering)

	format := dashboard.DefaultFormatter()
	if req.Format != nil {
		if req.Format.Currency != "" {
			format.Currency = req.Format.Currency
		}
		if req.Format.ValueDecimals != nil {
			format.ValueDecimals = *req.Format.ValueDecimals
		}
		if req.Format.CostDecimals != nil {
			format.CostDecimals = *req.Format.CostDecimals
		}
	}

	entityIDs := stats.EntityIDs(sources, nm)
	values := stats.Aggregate(req.Statistics, entityIDs)

	window := model.TimeWindow{}
	if req.Window != nil {
		window = *req.Window
	}

	engine := dashboard.New(format)
	summary := engine.BuildSummary(sources, nm, values, model.EntityStates(req.States), window)
	c.JSON(http.StatusOK, models.FromSummary(summary))
}

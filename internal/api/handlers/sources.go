package handlers

import (
	"net/http"

	"energy-dashboard/internal/api/models"
	"energy-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

// SourcesHandler exposes the normalized source descriptors and the kind
// default table.
type SourcesHandler struct {
	sources []model.Source
}

func NewSourcesHandler(sources []model.Source) *SourcesHandler {
	return &SourcesHandler{sources: sources}
}

// ListSources handles GET /api/v1/sources.
func (h *SourcesHandler) ListSources(c *gin.Context) {
	infos := make([]models.SourceInfo, 0, len(h.sources))
	for _, s := range h.sources {
		infos = append(infos, models.FromSource(s))
	}
	c.JSON(http.StatusOK, gin.H{"sources": infos})
}

// ListKinds handles GET /api/v1/kinds.
func (h *SourcesHandler) ListKinds(c *gin.Context) {
	kinds := make([]models.KindInfo, 0)
	for _, k := range model.AllKinds() {
		d := model.DefaultsFor(k)
		kinds = append(kinds, models.KindInfo{
			Kind:  string(k),
			Label: d.Label,
			Emoji: d.Emoji,
			Unit:  d.Unit,
		})
	}
	c.JSON(http.StatusOK, gin.H{"kinds": kinds})
}

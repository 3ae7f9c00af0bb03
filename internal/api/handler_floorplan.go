package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavrika-widget/internal/floorplan"
)

// GetFloorPlan handles GET /api/floorplan: the built-in plan with every real
// table drawn as available.
func (h *Handler) GetFloorPlan(c *gin.Context) {
	plan := floorplan.Plan{Sections: floorplan.Default(), Source: floorplan.SourceDefault}
	available := floorplan.NewIDSet(floorplan.IDs(floorplan.Eligible(plan.Tables(), nil))...)

	c.JSON(http.StatusOK, gin.H{
		"plan":   plan,
		"layout": h.layout.Layout(plan.Sections, available),
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Count()})
}

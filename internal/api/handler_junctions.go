package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junction-admin-backend/internal/model"
	"junction-admin-backend/internal/view"
)

// GetJunctions handles GET /api/junctions. Junctions have no hierarchy, so
// the forest degenerates to a flat, sorted list.
func (h *Handler) GetJunctions(c *gin.Context) {
	junctions, err := h.store.ListJunctions(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve junctions"})
		return
	}

	byID := make(map[int64]model.Junction, len(junctions))
	entities := make([]view.Entity, len(junctions))
	for i, j := range junctions {
		byID[j.ID] = j
		entities[i] = junctionEntity(j)
	}

	forest := view.BuildForest(entities)
	desc := h.descriptorFor(c, tableJunctions)
	roots := view.SortForest(forest, desc, junctionTableSpec.schema)

	if r := h.reconciler(tableJunctions); !r.Primed() {
		r.Observe(roots)
	}

	items := make([]model.Junction, len(roots))
	for i, n := range roots {
		items[i] = byID[n.Entity.ID]
	}

	c.JSON(http.StatusOK, gin.H{
		"sort":    desc,
		"columns": view.LoadColumns(h.prefs, columnsScope(tableJunctions), junctionTableSpec.knownColumns, junctionTableSpec.defaultColumns),
		"items":   items,
	})
}

// PostJunctionSortOrders handles POST /api/junctions/sortorders.
func (h *Handler) PostJunctionSortOrders(c *gin.Context) {
	var updates []view.OrderUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ApplyJunctionSortOrders(c.Request.Context(), updates); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply sort orders"})
		return
	}
	c.Status(http.StatusNoContent)
}

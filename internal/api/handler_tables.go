package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junction-admin-backend/internal/view"
)

type sortClickRequest struct {
	Field string `json:"field" binding:"required"`
}

// PostTableSort handles POST /api/tables/:table/sort — a sort-header click.
// Clicking the active field flips direction, a new field resets to
// ascending. The resulting order is observed by the table's reconciler,
// which debounces the backend sort-order write.
func (h *Handler) PostTableSort(c *gin.Context) {
	table := c.Param("table")
	spec, ok := tableSpecs[table]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}

	var req sortClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, known := spec.schema[req.Field]; !known {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "field is not sortable"})
		return
	}

	current := view.LoadSort(h.prefs, sortScope(table), view.DefaultDescriptor)
	next := view.NextDescriptor(current, req.Field)
	view.SaveSort(h.prefs, sortScope(table), next)

	roots, err := h.sortedRoots(c, table, next)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to re-sort table"})
		return
	}
	h.reconciler(table).Observe(roots)

	c.JSON(http.StatusOK, gin.H{"sort": next})
}

// sortedRoots recomputes the table's root-level order under the descriptor,
// feeding the reconciler the same order the client will render.
func (h *Handler) sortedRoots(c *gin.Context, table string, desc view.SortDescriptor) ([]*view.Node, error) {
	ctx := c.Request.Context()
	if table == tableJunctions {
		junctions, err := h.store.ListJunctions(ctx)
		if err != nil {
			return nil, err
		}
		entities := make([]view.Entity, len(junctions))
		for i, j := range junctions {
			entities[i] = junctionEntity(j)
		}
		return view.SortForest(view.BuildForest(entities), desc, junctionTableSpec.schema), nil
	}

	devices, err := h.store.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]view.Entity, len(devices))
	for i, d := range devices {
		entities[i] = deviceEntity(d)
	}
	if table == tableGateways {
		return view.SortGatewayForest(view.BuildGatewayForest(entities), desc, deviceTableSpec.schema), nil
	}
	return view.SortForest(view.BuildForest(entities), desc, deviceTableSpec.schema), nil
}

// GetTableColumns handles GET /api/tables/:table/columns.
func (h *Handler) GetTableColumns(c *gin.Context) {
	table := c.Param("table")
	spec, ok := tableSpecs[table]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}
	cols := view.LoadColumns(h.prefs, columnsScope(table), spec.knownColumns, spec.defaultColumns)
	c.JSON(http.StatusOK, gin.H{"columns": cols})
}

type toggleColumnRequest struct {
	Field   string `json:"field" binding:"required"`
	Visible *bool  `json:"visible" binding:"required"`
}

// PostTableColumnToggle handles POST /api/tables/:table/columns/toggle.
// Hiding a required column is refused and answers the unchanged list.
func (h *Handler) PostTableColumnToggle(c *gin.Context) {
	table := c.Param("table")
	spec, ok := tableSpecs[table]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}

	var req toggleColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := view.LoadColumns(h.prefs, columnsScope(table), spec.knownColumns, spec.defaultColumns)
	next := view.ToggleColumn(current, req.Field, *req.Visible, spec.requiredColumns)
	view.SaveColumns(h.prefs, columnsScope(table), next)

	c.JSON(http.StatusOK, gin.H{"columns": next})
}

type moveColumnRequest struct {
	Field     string             `json:"field" binding:"required"`
	Direction view.MoveDirection `json:"direction" binding:"required"`
}

// PostTableColumnMove handles POST /api/tables/:table/columns/move.
// Boundary moves are no-ops, mirroring the arrows the UI disables.
func (h *Handler) PostTableColumnMove(c *gin.Context) {
	table := c.Param("table")
	spec, ok := tableSpecs[table]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}

	var req moveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Direction != view.MoveUp && req.Direction != view.MoveDown {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}

	current := view.LoadColumns(h.prefs, columnsScope(table), spec.knownColumns, spec.defaultColumns)
	next := view.MoveColumn(current, req.Field, req.Direction)
	view.SaveColumns(h.prefs, columnsScope(table), next)

	c.JSON(http.StatusOK, gin.H{"columns": next})
}

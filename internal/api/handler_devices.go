package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junction-admin-backend/internal/model"
	"junction-admin-backend/internal/view"
)

// deviceNode is one row of the rendered device tree.
type deviceNode struct {
	model.Device
	Level    int          `json:"level"`
	Children []deviceNode `json:"children,omitempty"`
}

// GetDevices handles GET /api/devices: the general device table. Gateways
// come first with their full subtrees, then standalone devices, each group
// ordered by the active sort descriptor.
func (h *Handler) GetDevices(c *gin.Context) {
	devices, err := h.store.ListDevices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
		return
	}

	byID := make(map[int64]model.Device, len(devices))
	entities := make([]view.Entity, len(devices))
	for i, d := range devices {
		byID[d.ID] = d
		entities[i] = deviceEntity(d)
	}

	forest := view.BuildForest(entities)
	desc := h.descriptorFor(c, tableDevices)
	roots := view.SortForest(forest, desc, deviceTableSpec.schema)

	// The first render is the table's mount: it primes the reconciler
	// without ever writing sort orders back.
	if r := h.reconciler(tableDevices); !r.Primed() {
		r.Observe(roots)
	}

	c.JSON(http.StatusOK, gin.H{
		"sort":         desc,
		"columns":      view.LoadColumns(h.prefs, columnsScope(tableDevices), deviceTableSpec.knownColumns, deviceTableSpec.defaultColumns),
		"droppedEdges": forest.DroppedEdges,
		"items":        deviceTree(roots, byID),
	})
}

// GetGateways handles GET /api/gateways: the constrained one-level view of
// gateways and their direct children, both levels ordered independently.
func (h *Handler) GetGateways(c *gin.Context) {
	devices, err := h.store.ListDevices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
		return
	}

	byID := make(map[int64]model.Device, len(devices))
	entities := make([]view.Entity, len(devices))
	for i, d := range devices {
		byID[d.ID] = d
		entities[i] = deviceEntity(d)
	}

	forest := view.BuildGatewayForest(entities)
	desc := h.descriptorFor(c, tableGateways)
	roots := view.SortGatewayForest(forest, desc, deviceTableSpec.schema)

	if r := h.reconciler(tableGateways); !r.Primed() {
		r.Observe(roots)
	}

	c.JSON(http.StatusOK, gin.H{
		"sort":    desc,
		"columns": view.LoadColumns(h.prefs, columnsScope(tableGateways), deviceTableSpec.knownColumns, deviceTableSpec.defaultColumns),
		"items":   deviceTree(roots, byID),
	})
}

// PostDeviceSortOrders handles POST /api/devices/sortorders: the batched
// sort-order write used by drag-reordering in the UI.
func (h *Handler) PostDeviceSortOrders(c *gin.Context) {
	var updates []view.OrderUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.ApplyDeviceSortOrders(c.Request.Context(), updates); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply sort orders"})
		return
	}
	c.Status(http.StatusNoContent)
}

// descriptorFor resolves the active sort descriptor: an explicit query
// override wins, otherwise the persisted preference, otherwise the default.
func (h *Handler) descriptorFor(c *gin.Context, table string) view.SortDescriptor {
	if field := c.Query("sort"); field != "" {
		dir := view.Ascending
		if c.Query("direction") == string(view.Descending) {
			dir = view.Descending
		}
		return view.SortDescriptor{Field: field, Direction: dir}
	}
	return view.LoadSort(h.prefs, sortScope(table), view.DefaultDescriptor)
}

func deviceTree(nodes []*view.Node, byID map[int64]model.Device) []deviceNode {
	out := make([]deviceNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, deviceNode{
			Device:   byID[n.Entity.ID],
			Level:    n.Level,
			Children: deviceTree(n.Children, byID),
		})
	}
	return out
}

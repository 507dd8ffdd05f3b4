package api

import (
	"junction-admin-backend/internal/model"
	"junction-admin-backend/internal/view"
)

// Table identifiers double as preference-scope prefixes, so every table
// instance keeps its own persisted columns and sort descriptor.
const (
	tableDevices   = "devices"
	tableGateways  = "gateways"
	tableJunctions = "junctions"
)

// tableSpec describes one table's sortable fields and column sets. Adding a
// sortable field is an entry here, not a new code branch.
type tableSpec struct {
	schema         view.Schema
	knownColumns   []string
	defaultColumns []string
	// requiredColumns cannot be hidden: the selection checkbox and the row
	// action menu always render.
	requiredColumns []string
}

var deviceTableSpec = tableSpec{
	schema: view.Schema{
		"name":        view.KindString,
		"type":        view.KindString,
		"status":      view.KindString,
		"ipAddress":   view.KindString,
		"firmware":    view.KindVersion,
		"sensorCount": view.KindNumber,
		"sortOrder":   view.KindNumber,
		"lastPinged":  view.KindTime,
		"createdAt":   view.KindTime,
	},
	knownColumns: []string{
		"select", "name", "type", "status", "ipAddress", "firmware",
		"sensorCount", "lastPinged", "createdAt", "actions",
	},
	defaultColumns:  []string{"select", "name", "type", "status", "firmware", "lastPinged", "actions"},
	requiredColumns: []string{"select", "actions"},
}

var junctionTableSpec = tableSpec{
	schema: view.Schema{
		"name":        view.KindString,
		"type":        view.KindString,
		"status":      view.KindString,
		"mqttBroker":  view.KindString,
		"sourceCount": view.KindNumber,
		"targetCount": view.KindNumber,
		"sortOrder":   view.KindNumber,
		"lastRun":     view.KindTime,
		"createdAt":   view.KindTime,
	},
	knownColumns: []string{
		"select", "name", "type", "status", "mqttBroker",
		"sourceCount", "targetCount", "lastRun", "actions",
	},
	defaultColumns:  []string{"select", "name", "type", "status", "sourceCount", "targetCount", "actions"},
	requiredColumns: []string{"select", "actions"},
}

// tableSpecs routes a :table path parameter to its spec. The gateway table
// shows the same columns as the device table.
var tableSpecs = map[string]tableSpec{
	tableDevices:   deviceTableSpec,
	tableGateways:  deviceTableSpec,
	tableJunctions: junctionTableSpec,
}

func sortScope(table string) string    { return table + ":sort" }
func columnsScope(table string) string { return table + ":columns" }

// deviceEntity flattens a device row into the engine's entity shape.
func deviceEntity(d model.Device) view.Entity {
	return view.Entity{
		ID:          d.ID,
		ParentID:    d.GatewayID,
		IsContainer: d.IsGateway,
		SortOrder:   d.SortOrder,
		Fields: map[string]any{
			"name":        d.Name,
			"type":        d.Type,
			"status":      d.Status,
			"ipAddress":   d.IPAddress,
			"firmware":    d.FirmwareVersion,
			"sensorCount": d.SensorCount,
			"sortOrder":   d.SortOrder,
			"lastPinged":  d.LastPinged,
			"createdAt":   d.CreatedAt,
		},
	}
}

// junctionEntity flattens a junction row. Junctions never nest.
func junctionEntity(j model.Junction) view.Entity {
	return view.Entity{
		ID:        j.ID,
		SortOrder: j.SortOrder,
		Fields: map[string]any{
			"name":        j.Name,
			"type":        j.Type,
			"status":      j.Status,
			"mqttBroker":  j.MQTTBroker,
			"sourceCount": j.SourceCount,
			"targetCount": j.TargetCount,
			"sortOrder":   j.SortOrder,
			"lastRun":     j.LastRun,
			"createdAt":   j.CreatedAt,
		},
	}
}

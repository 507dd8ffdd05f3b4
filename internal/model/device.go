package model

import "time"

// Device represents a relay node known to the platform. A device flagged as
// a gateway may carry other devices nested beneath it via GatewayID.
type Device struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:256;not null" json:"name"`
	Type            string     `gorm:"size:64" json:"type"`
	Status          string     `gorm:"size:64;index" json:"status"`
	IsGateway       bool       `gorm:"not null;default:false" json:"isGateway"`
	GatewayID       *int64     `gorm:"index" json:"gatewayId,omitempty"`
	SortOrder       int        `gorm:"not null;default:0" json:"sortOrder"`
	IPAddress       string     `gorm:"size:64" json:"ipAddress"`
	FirmwareVersion string     `gorm:"size:128" json:"firmwareVersion"`
	SensorCount     int        `json:"sensorCount"`
	LastPinged      *time.Time `json:"lastPinged"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Device status values as reported by the health poller.
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
	DeviceStatusUnknown = "unknown"
)

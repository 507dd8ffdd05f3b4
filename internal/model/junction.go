package model

import "time"

// Junction is a data-routing link between source and target devices.
type Junction struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:256;not null" json:"name"`
	Type        string     `gorm:"size:64" json:"type"`
	Status      string     `gorm:"size:64" json:"status"`
	SortOrder   int        `gorm:"not null;default:0" json:"sortOrder"`
	MQTTBroker  string     `gorm:"size:256" json:"mqttBroker"`
	SourceCount int        `json:"sourceCount"`
	TargetCount int        `json:"targetCount"`
	LastRun     *time.Time `json:"lastRun"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

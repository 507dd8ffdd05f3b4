package model

import "time"

// ViewPreference stores one serialized table preference (column list or sort
// descriptor) under a caller-supplied scope key, e.g. "devices:columns".
type ViewPreference struct {
	Scope     string    `gorm:"primaryKey;size:128" json:"scope"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

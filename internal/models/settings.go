package models

import "gorm.io/datatypes"

// SiteSetting is one row of the key-value JSON store.
type SiteSetting struct {
	BaseModel
	Key       string         `gorm:"size:120;uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedBy *string        `gorm:"type:varchar(36)" json:"updated_by,omitempty"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

package models

import "gorm.io/datatypes"

// CV stores the resume as an opaque JSON document.
type CV struct {
	BaseModel
	UserID    string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string         `gorm:"size:160;not null" json:"title"`
	Template  string         `gorm:"size:40;not null;default:classic" json:"template"`
	Data      datatypes.JSON `json:"data"`
	Analysis  datatypes.JSON `json:"analysis,omitempty"`
	Score     *int           `json:"score,omitempty"`
	IsPrimary bool           `gorm:"not null;default:false" json:"is_primary"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

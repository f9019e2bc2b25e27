package models

import "gorm.io/datatypes"

type Consultant struct {
	BaseModel
	UserID    *string        `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Title     string         `gorm:"size:160" json:"title"`
	Bio       string         `gorm:"type:text" json:"bio"`
	Expertise datatypes.JSON `json:"expertise"`
	AvatarURL string         `gorm:"size:512" json:"avatar_url,omitempty"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}
